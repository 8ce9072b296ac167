// Package descriptor defines the application build descriptor: the
// declarative record of package identity, SDK window, language level,
// signing, plugin activation order and external libraries that a packaging
// toolchain consumes. Values are read once per invocation and never
// mutated afterwards.
package descriptor

import (
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/plugin"
	"github.com/agripots/appdesc/internal/sdk"
)

// Well-known names.
const (
	DebugSigningConfig = "debug"
	ReleaseBuildType   = "release"
	DebugBuildType     = "debug"
)

// Descriptor is the build descriptor of one application module.
//
//nolint:govet // Field order follows the Gradle DSL, not memory alignment
type Descriptor struct {
	Namespace     string    `yaml:"namespace,omitempty" toml:"namespace,omitempty" json:"namespace,omitempty"`
	ApplicationID string    `yaml:"applicationId" toml:"applicationId" json:"applicationId"`
	CompileSDK    sdk.Level `yaml:"compileSdk" toml:"compileSdk" json:"compileSdk"`
	MinSDK        sdk.Level `yaml:"minSdk" toml:"minSdk" json:"minSdk"`
	TargetSDK     sdk.Level `yaml:"targetSdk" toml:"targetSdk" json:"targetSdk"`

	// NDKVersion is optional; Flutter projects inherit flutter.ndkVersion.
	NDKVersion string `yaml:"ndkVersion,omitempty" toml:"ndkVersion,omitempty" json:"ndkVersion,omitempty"`

	CompileOptions CompileOptions `yaml:"compileOptions" toml:"compileOptions" json:"compileOptions"`
	KotlinOptions  KotlinOptions  `yaml:"kotlinOptions,omitempty" toml:"kotlinOptions,omitempty" json:"kotlinOptions,omitempty"`

	VersionCode     int    `yaml:"versionCode,omitempty" toml:"versionCode,omitempty" json:"versionCode,omitempty"`
	VersionName     string `yaml:"versionName,omitempty" toml:"versionName,omitempty" json:"versionName,omitempty"`
	MultiDexEnabled bool   `yaml:"multiDexEnabled" toml:"multiDexEnabled" json:"multiDexEnabled"`

	SigningConfigs []SigningConfig `yaml:"signingConfigs,omitempty" toml:"signingConfigs,omitempty" json:"signingConfigs,omitempty"`
	BuildTypes     []BuildType     `yaml:"buildTypes,omitempty" toml:"buildTypes,omitempty" json:"buildTypes,omitempty"`

	Plugins      []plugin.Plugin   `yaml:"plugins" toml:"plugins" json:"plugins"`
	Flutter      *FlutterConfig    `yaml:"flutter,omitempty" toml:"flutter,omitempty" json:"flutter,omitempty"`
	Dependencies []deps.Dependency `yaml:"dependencies,omitempty" toml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// CompileOptions holds the Java language levels.
type CompileOptions struct {
	SourceCompatibility string `yaml:"sourceCompatibility" toml:"sourceCompatibility" json:"sourceCompatibility"`
	TargetCompatibility string `yaml:"targetCompatibility" toml:"targetCompatibility" json:"targetCompatibility"`
}

// KotlinOptions holds Kotlin compiler settings.
type KotlinOptions struct {
	JVMTarget string `yaml:"jvmTarget,omitempty" toml:"jvmTarget,omitempty" json:"jvmTarget,omitempty"`
}

// SigningConfig is a named signing profile.
type SigningConfig struct {
	Name          string `yaml:"name" toml:"name" json:"name"`
	StoreFile     string `yaml:"storeFile,omitempty" toml:"storeFile,omitempty" json:"storeFile,omitempty"`
	StorePassword string `yaml:"storePassword,omitempty" toml:"storePassword,omitempty" json:"storePassword,omitempty"`
	KeyAlias      string `yaml:"keyAlias,omitempty" toml:"keyAlias,omitempty" json:"keyAlias,omitempty"`
	KeyPassword   string `yaml:"keyPassword,omitempty" toml:"keyPassword,omitempty" json:"keyPassword,omitempty"`
}

// BuildType is a build variant dimension such as release.
type BuildType struct {
	Name          string `yaml:"name" toml:"name" json:"name"`
	SigningConfig string `yaml:"signingConfig,omitempty" toml:"signingConfig,omitempty" json:"signingConfig,omitempty"`
	MinifyEnabled bool   `yaml:"minifyEnabled,omitempty" toml:"minifyEnabled,omitempty" json:"minifyEnabled,omitempty"`
	Debuggable    bool   `yaml:"debuggable,omitempty" toml:"debuggable,omitempty" json:"debuggable,omitempty"`
}

// FlutterConfig is the flutter {} extension block.
type FlutterConfig struct {
	Source string `yaml:"source" toml:"source" json:"source"`
}

// EffectiveNamespace returns Namespace, falling back to ApplicationID.
func (d *Descriptor) EffectiveNamespace() string {
	if d.Namespace != "" {
		return d.Namespace
	}
	return d.ApplicationID
}

// NDKVersionOption returns the NDK version when set explicitly.
func (d *Descriptor) NDKVersionOption() mo.Option[string] {
	if d.NDKVersion == "" {
		return mo.None[string]()
	}
	return mo.Some(d.NDKVersion)
}

// VersionCodeOption returns the version code when set explicitly.
func (d *Descriptor) VersionCodeOption() mo.Option[int] {
	if d.VersionCode <= 0 {
		return mo.None[int]()
	}
	return mo.Some(d.VersionCode)
}

// VersionNameOption returns the version name when set explicitly.
func (d *Descriptor) VersionNameOption() mo.Option[string] {
	if d.VersionName == "" {
		return mo.None[string]()
	}
	return mo.Some(d.VersionName)
}

// LanguageLevel returns the bytecode language level (targetCompatibility).
func (d *Descriptor) LanguageLevel() (sdk.JavaVersion, error) {
	return sdk.ParseJavaVersion(d.CompileOptions.TargetCompatibility)
}

// BuildType looks up a build type by name.
func (d *Descriptor) BuildType(name string) mo.Option[BuildType] {
	bt, ok := lo.Find(d.BuildTypes, func(b BuildType) bool { return b.Name == name })
	if !ok {
		return mo.None[BuildType]()
	}
	return mo.Some(bt)
}

// SigningConfig looks up a signing profile. The debug profile always exists.
func (d *Descriptor) SigningConfig(name string) mo.Option[SigningConfig] {
	sc, ok := lo.Find(d.SigningConfigs, func(s SigningConfig) bool { return s.Name == name })
	if ok {
		return mo.Some(sc)
	}
	if name == DebugSigningConfig {
		return mo.Some(SigningConfig{Name: DebugSigningConfig})
	}
	return mo.None[SigningConfig]()
}

// ReleaseSigningConfig returns the signing profile name used by the release
// build type, if any.
func (d *Descriptor) ReleaseSigningConfig() mo.Option[string] {
	bt, ok := d.BuildType(ReleaseBuildType).Get()
	if !ok || bt.SigningConfig == "" {
		return mo.None[string]()
	}
	return mo.Some(bt.SigningConfig)
}

// HasPlugin reports whether a plugin id is applied.
func (d *Descriptor) HasPlugin(id string) bool {
	return plugin.Index(d.Plugins, id) >= 0
}

// UsesFlutter reports whether the Flutter Gradle plugin is applied.
func (d *Descriptor) UsesFlutter() bool {
	return d.HasPlugin(plugin.Flutter)
}
