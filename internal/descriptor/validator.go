package descriptor

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/plugin"
	"github.com/agripots/appdesc/internal/sdk"
)

// A package name segment starts with a letter and continues with letters,
// digits or underscores.
var packageSegment = `[A-Za-z][A-Za-z0-9_]*`

var packageNameRe = regexp.MustCompile(`^` + packageSegment + `(\.` + packageSegment + `)+$`)

// IsValidPackageName reports whether s is usable as an application id or
// namespace: two or more dot-separated segments.
func IsValidPackageName(s string) bool {
	return packageNameRe.MatchString(s)
}

// Validate checks the descriptor. It returns a *ValidationError listing
// every problem found, or nil.
func (d *Descriptor) Validate() error {
	errs := &ValidationError{}

	validateIdentity(d, errs)
	validateSDKWindow(d, errs)
	validateLanguageLevel(d, errs)
	validateSigning(d, errs)
	validatePlugins(d, errs)
	validateDependencies(d, errs)

	if d.VersionCode < 0 {
		errs.Addf("versionCode must be >= 0 (got %d)", d.VersionCode)
	}

	return errs.ToError()
}

func validateIdentity(d *Descriptor, errs *ValidationError) {
	switch {
	case d.ApplicationID == "":
		errs.Add("applicationId is required")
	case !IsValidPackageName(d.ApplicationID):
		errs.Addf("applicationId %q is not a valid package name", d.ApplicationID)
	}

	if d.Namespace != "" && !IsValidPackageName(d.Namespace) {
		errs.Addf("namespace %q is not a valid package name", d.Namespace)
	}
}

// validateSDKWindow enforces minSdk <= targetSdk <= compileSdk.
func validateSDKWindow(d *Descriptor, errs *ValidationError) {
	levels := []struct {
		name  string
		level sdk.Level
	}{
		{"minSdk", d.MinSDK},
		{"targetSdk", d.TargetSDK},
		{"compileSdk", d.CompileSDK},
	}

	ok := true
	for _, l := range levels {
		if l.level < 1 {
			errs.Addf("%s must be >= 1 (got %d)", l.name, l.level)
			ok = false
		}
	}
	if !ok {
		return
	}

	if d.MinSDK > d.TargetSDK {
		errs.Addf("minSdk > targetSdk (%d > %d)", d.MinSDK, d.TargetSDK)
	}
	if d.TargetSDK > d.CompileSDK {
		errs.Addf("targetSdk > compileSdk (%d > %d)", d.TargetSDK, d.CompileSDK)
	}
}

func validateLanguageLevel(d *Descriptor, errs *ValidationError) {
	parse := func(field, value string, required bool) (sdk.JavaVersion, bool) {
		if value == "" {
			if required {
				errs.Addf("%s is required", field)
			}
			return "", false
		}
		v, err := sdk.ParseJavaVersion(value)
		if err != nil {
			errs.Addf("%s is invalid (got %q)", field, value)
			return "", false
		}
		return v, true
	}

	src, srcOK := parse("compileOptions.sourceCompatibility", d.CompileOptions.SourceCompatibility, true)
	tgt, tgtOK := parse("compileOptions.targetCompatibility", d.CompileOptions.TargetCompatibility, true)
	parse("kotlinOptions.jvmTarget", d.KotlinOptions.JVMTarget, false)

	if srcOK && tgtOK && sdk.CompareJava(tgt, src) < 0 {
		errs.Addf("compileOptions.targetCompatibility (%s) is lower than sourceCompatibility (%s)", tgt, src)
	}
}

func validateSigning(d *Descriptor, errs *ValidationError) {
	seen := make(map[string]bool)
	for i, sc := range d.SigningConfigs {
		if sc.Name == "" {
			errs.Addf("signingConfigs[%d].name is required", i)
			continue
		}
		if seen[sc.Name] {
			errs.Addf("duplicate signing config name: %s", sc.Name)
		}
		seen[sc.Name] = true
	}

	seenTypes := make(map[string]bool)
	for i, bt := range d.BuildTypes {
		if bt.Name == "" {
			errs.Addf("buildTypes[%d].name is required", i)
			continue
		}
		if seenTypes[bt.Name] {
			errs.Addf("duplicate build type name: %s", bt.Name)
		}
		seenTypes[bt.Name] = true

		if bt.SigningConfig != "" && d.SigningConfig(bt.SigningConfig).IsAbsent() {
			errs.Addf("buildType[%s].signingConfig references unknown signing config %q", bt.Name, bt.SigningConfig)
		}
	}
}

func validatePlugins(d *Descriptor, errs *ValidationError) {
	seen := make(map[string]bool)
	for i, p := range d.Plugins {
		if p.ID == "" {
			errs.Addf("plugins[%d].id is required", i)
			continue
		}
		if seen[p.ID] {
			errs.Addf("duplicate plugin id: %s", p.ID)
		}
		seen[p.ID] = true
	}

	if !d.HasPlugin(plugin.AndroidApplication) {
		errs.Addf("plugin %q is required", plugin.AndroidApplication)
	}

	var orderErr *plugin.OrderError
	if err := plugin.CheckOrder(d.Plugins); errors.As(err, &orderErr) {
		for _, v := range orderErr.Violations {
			errs.Add(v)
		}
	}
}

func validateDependencies(d *Descriptor, errs *ValidationError) {
	for i := range d.Dependencies {
		dep := &d.Dependencies[i]
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if !deps.IsKnownConfiguration(dep.EffectiveConfiguration()) {
			errs.Addf("%s.configuration is invalid (got %q)", prefix, dep.Configuration)
		}
		if _, err := dep.Resolve(); err != nil {
			errs.Addf("%s: %v", prefix, err)
		}
	}
}
