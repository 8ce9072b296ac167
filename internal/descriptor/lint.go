package descriptor

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/sdk"
)

// Lint rule ids.
const (
	RuleReleaseDebugSigning     = "release-debug-signing"
	RuleMultidexLibraryUnneeded = "multidex-library-unneeded"
	RuleDuplicateDependency     = "duplicate-dependency"
	RuleJVMTargetMismatch       = "jvm-target-mismatch"
	RuleTargetBelowCompile      = "target-below-compile"
)

// LintRules lists every rule id Lint can report.
var LintRules = []string{
	RuleReleaseDebugSigning,
	RuleMultidexLibraryUnneeded,
	RuleDuplicateDependency,
	RuleJVMTargetMismatch,
	RuleTargetBelowCompile,
}

// IsKnownRule reports whether id names a lint rule.
func IsKnownRule(id string) bool {
	return lo.Contains(LintRules, id)
}

// multidexModule is the support library that native multidex (API 21+) replaces.
const multidexModule = "androidx.multidex:multidex"

// nativeMultidexLevel is the first API level with native multidex support.
const nativeMultidexLevel sdk.Level = 21

// Finding is one advisory lint result.
type Finding struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return f.Rule + ": " + f.Message
}

type lintRule struct {
	id    string
	check func(d *Descriptor) []string
}

var lintRules = []lintRule{
	{RuleReleaseDebugSigning, lintReleaseDebugSigning},
	{RuleMultidexLibraryUnneeded, lintMultidexLibrary},
	{RuleDuplicateDependency, lintDuplicateDependencies},
	{RuleJVMTargetMismatch, lintJVMTarget},
	{RuleTargetBelowCompile, lintTargetBelowCompile},
}

// Lint runs advisory checks and returns the findings in rule order.
// Rules listed in disabled are skipped.
func (d *Descriptor) Lint(disabled ...string) []Finding {
	var findings []Finding
	for _, rule := range lintRules {
		if lo.Contains(disabled, rule.id) {
			continue
		}
		for _, msg := range rule.check(d) {
			findings = append(findings, Finding{Rule: rule.id, Message: msg})
		}
	}
	return findings
}

func lintReleaseDebugSigning(d *Descriptor) []string {
	name, ok := d.ReleaseSigningConfig().Get()
	if !ok || name != DebugSigningConfig {
		return nil
	}
	return []string{"release build type is signed with the debug keys"}
}

func lintMultidexLibrary(d *Descriptor) []string {
	if d.MinSDK < nativeMultidexLevel {
		return nil
	}
	for i := range d.Dependencies {
		c, err := deps.ParseCoordinate(d.Dependencies[i].Coordinate)
		if err == nil && c.Module() == multidexModule {
			return []string{fmt.Sprintf("%s is not needed with minSdk %d (native multidex)", multidexModule, d.MinSDK)}
		}
	}
	return nil
}

func lintDuplicateDependencies(d *Descriptor) []string {
	keys := lo.FilterMap(d.Dependencies, func(dep deps.Dependency, _ int) (string, bool) {
		k, err := dep.Key()
		return k, err == nil
	})
	return lo.Map(lo.FindDuplicates(keys), func(k string, _ int) string {
		return fmt.Sprintf("%s is declared more than once", k)
	})
}

func lintJVMTarget(d *Descriptor) []string {
	if d.KotlinOptions.JVMTarget == "" {
		return nil
	}
	kt, err := sdk.ParseJavaVersion(d.KotlinOptions.JVMTarget)
	if err != nil {
		return nil
	}
	jt, err := sdk.ParseJavaVersion(d.CompileOptions.TargetCompatibility)
	if err != nil || kt == jt {
		return nil
	}
	return []string{fmt.Sprintf("kotlinOptions.jvmTarget %s differs from targetCompatibility %s", kt.Number(), jt.Number())}
}

func lintTargetBelowCompile(d *Descriptor) []string {
	if d.TargetSDK == 0 || d.TargetSDK >= d.CompileSDK {
		return nil
	}
	return []string{fmt.Sprintf("targetSdk %d is below compileSdk %d", d.TargetSDK, d.CompileSDK)}
}
