package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agripots/appdesc/internal/deps"
)

func rules(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestLintDefault(t *testing.T) {
	t.Parallel()

	findings := Default().Lint()
	assert.Equal(t, []string{RuleReleaseDebugSigning, RuleMultidexLibraryUnneeded}, rules(findings))
	assert.Equal(t,
		"release-debug-signing: release build type is signed with the debug keys",
		findings[0].String())
}

func TestLintDisabled(t *testing.T) {
	t.Parallel()

	findings := Default().Lint(RuleReleaseDebugSigning, RuleMultidexLibraryUnneeded)
	assert.Empty(t, findings)
}

func TestLintRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mutate func(d *Descriptor)
		name   string
		want   []string
	}{
		{
			name: "clean",
			mutate: func(d *Descriptor) {
				d.SigningConfigs = []SigningConfig{{Name: "upload"}}
				d.BuildTypes[0].SigningConfig = "upload"
				d.Dependencies = d.Dependencies[:6]
			},
			want: []string{},
		},
		{
			name: "multidex needed below 21",
			mutate: func(d *Descriptor) {
				d.BuildTypes = nil
				d.MinSDK = 19
			},
			want: []string{},
		},
		{
			name: "duplicate dependency",
			mutate: func(d *Descriptor) {
				d.BuildTypes = nil
				d.MinSDK = 19
				d.Dependencies = append(d.Dependencies, deps.Dependency{
					Coordinate: "com.google.android.gms:play-services-maps:18.1.0",
				})
			},
			want: []string{RuleDuplicateDependency},
		},
		{
			name: "bom and artifact are distinct",
			mutate: func(d *Descriptor) {
				d.BuildTypes = nil
				d.MinSDK = 19
				d.Dependencies = append(d.Dependencies, deps.Dependency{
					Coordinate: "org.jetbrains.kotlin:kotlin-bom:1.8.0",
				})
			},
			want: []string{},
		},
		{
			name: "jvm target mismatch",
			mutate: func(d *Descriptor) {
				d.BuildTypes = nil
				d.MinSDK = 19
				d.KotlinOptions.JVMTarget = "1.8"
			},
			want: []string{RuleJVMTargetMismatch},
		},
		{
			name: "target below compile",
			mutate: func(d *Descriptor) {
				d.BuildTypes = nil
				d.MinSDK = 19
				d.TargetSDK = 33
			},
			want: []string{RuleTargetBelowCompile},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := Default()
			tt.mutate(d)
			assert.Equal(t, tt.want, rules(d.Lint()))
		})
	}
}

func TestIsKnownRule(t *testing.T) {
	t.Parallel()

	for _, id := range LintRules {
		assert.True(t, IsKnownRule(id), id)
	}
	assert.False(t, IsKnownRule("unused-import"))
}
