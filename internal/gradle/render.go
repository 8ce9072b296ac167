// Package gradle renders a build descriptor as a Gradle Kotlin DSL build
// script (build.gradle.kts).
package gradle

import (
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/descriptor"
	"github.com/agripots/appdesc/internal/plugin"
	"github.com/agripots/appdesc/internal/sdk"
)

// Flutter Gradle properties used when the descriptor leaves a value unset.
const (
	FlutterNDKVersion  = "flutter.ndkVersion"
	FlutterVersionCode = "flutter.versionCode"
	FlutterVersionName = "flutter.versionName"
)

//go:embed build.gradle.kts.tmpl
var scriptTemplate string

var script = template.Must(template.New("build.gradle.kts").
	Funcs(template.FuncMap{"kt": kotlinString}).
	Parse(scriptTemplate))

var kotlinEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// kotlinString quotes s as a Kotlin string literal. Dollar signs are
// escaped so that Kotlin does not treat them as string templates.
func kotlinString(s string) string {
	return `"` + kotlinEscaper.Replace(s) + `"`
}

// block is a named DSL block such as release { ... }.
type block struct {
	Opener string
	Props  []string
}

type view struct {
	Plugins             []plugin.Plugin
	Namespace           string
	CompileSDK          int
	NDKVersion          string
	SourceCompatibility sdk.JavaVersion
	TargetCompatibility sdk.JavaVersion
	JVMTarget           sdk.JavaVersion
	ApplicationID       string
	MinSDK              int
	TargetSDK           int
	VersionCode         string
	VersionName         string
	MultiDexEnabled     bool
	SigningConfigs      []block
	BuildTypes          []block
	FlutterSource       string
	Dependencies        []string
}

// Render writes the build script for d. Dependencies are emitted with the
// versions in res; a nil res resolves d.Dependencies with the default
// policy. Plugins are emitted in an order satisfying their constraints.
func Render(w io.Writer, d *descriptor.Descriptor, res *deps.Resolution) error {
	v, err := newView(d, res)
	if err != nil {
		return err
	}
	if err := script.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render build script: %w", err)
	}
	return nil
}

func newView(d *descriptor.Descriptor, res *deps.Resolution) (*view, error) {
	plugins, err := plugin.Sort(d.Plugins)
	if err != nil {
		return nil, fmt.Errorf("failed to order plugins: %w", err)
	}

	src, err := sdk.ParseJavaVersion(d.CompileOptions.SourceCompatibility)
	if err != nil {
		return nil, fmt.Errorf("compileOptions.sourceCompatibility: %w", err)
	}
	tgt, err := sdk.ParseJavaVersion(d.CompileOptions.TargetCompatibility)
	if err != nil {
		return nil, fmt.Errorf("compileOptions.targetCompatibility: %w", err)
	}

	if res == nil {
		res, err = deps.Resolve(d.Dependencies, deps.PolicyLastDeclared)
		if err != nil {
			return nil, err
		}
	}

	v := &view{
		Plugins:             plugins,
		Namespace:           d.EffectiveNamespace(),
		CompileSDK:          d.CompileSDK.Int(),
		SourceCompatibility: src,
		TargetCompatibility: tgt,
		ApplicationID:       d.ApplicationID,
		MinSDK:              d.MinSDK.Int(),
		TargetSDK:           d.TargetSDK.Int(),
		MultiDexEnabled:     d.MultiDexEnabled,
		SigningConfigs:      signingBlocks(d.SigningConfigs),
		BuildTypes:          buildTypeBlocks(d.BuildTypes),
		Dependencies:        dependencyLines(res),
	}

	if d.KotlinOptions.JVMTarget != "" {
		if v.JVMTarget, err = sdk.ParseJavaVersion(d.KotlinOptions.JVMTarget); err != nil {
			return nil, fmt.Errorf("kotlinOptions.jvmTarget: %w", err)
		}
	}
	if d.Flutter != nil {
		v.FlutterSource = d.Flutter.Source
	}

	flutter := d.UsesFlutter()
	v.NDKVersion = d.NDKVersionOption().
		MapValue(kotlinString).
		OrElse(fallback(flutter, FlutterNDKVersion))
	v.VersionName = d.VersionNameOption().
		MapValue(kotlinString).
		OrElse(fallback(flutter, FlutterVersionName))
	v.VersionCode = fallback(flutter, FlutterVersionCode)
	if code, ok := d.VersionCodeOption().Get(); ok {
		v.VersionCode = strconv.Itoa(code)
	}

	return v, nil
}

func fallback(flutter bool, property string) string {
	if flutter {
		return property
	}
	return ""
}

// opener returns the accessor for a named container element: the
// predefined ones are fetched, everything else is created.
func opener(name string, predefined bool) string {
	if predefined {
		return "getByName(" + kotlinString(name) + ")"
	}
	return "create(" + kotlinString(name) + ")"
}

func signingBlocks(configs []descriptor.SigningConfig) []block {
	out := make([]block, 0, len(configs))
	for _, sc := range configs {
		b := block{Opener: opener(sc.Name, sc.Name == descriptor.DebugSigningConfig)}
		if sc.StoreFile != "" {
			b.Props = append(b.Props, "storeFile = file("+kotlinString(sc.StoreFile)+")")
		}
		if sc.StorePassword != "" {
			b.Props = append(b.Props, "storePassword = "+kotlinString(sc.StorePassword))
		}
		if sc.KeyAlias != "" {
			b.Props = append(b.Props, "keyAlias = "+kotlinString(sc.KeyAlias))
		}
		if sc.KeyPassword != "" {
			b.Props = append(b.Props, "keyPassword = "+kotlinString(sc.KeyPassword))
		}
		out = append(out, b)
	}
	return out
}

func buildTypeBlocks(types []descriptor.BuildType) []block {
	out := make([]block, 0, len(types))
	for _, bt := range types {
		b := block{Opener: opener(bt.Name, false)}
		if bt.Name == descriptor.ReleaseBuildType || bt.Name == descriptor.DebugBuildType {
			b.Opener = bt.Name
		}
		if bt.SigningConfig != "" {
			b.Props = append(b.Props, "signingConfig = signingConfigs.getByName("+kotlinString(bt.SigningConfig)+")")
		}
		if bt.MinifyEnabled {
			b.Props = append(b.Props, "isMinifyEnabled = true")
		}
		if bt.Debuggable {
			b.Props = append(b.Props, "isDebuggable = true")
		}
		out = append(out, b)
	}
	return out
}

func dependencyLines(res *deps.Resolution) []string {
	out := make([]string, 0, len(res.Dependencies))
	for _, r := range res.Dependencies {
		notation := kotlinString(r.Coordinate())
		if r.Platform {
			notation = "platform(" + notation + ")"
		}
		out = append(out, r.Configuration+"("+notation+")")
	}
	return out
}
