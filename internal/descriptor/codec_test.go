package descriptor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agripots/appdesc/internal/sdk"
)

const yamlDescriptor = `
applicationId: com.example.agripots
compileSdk: 34
minSdk: L
targetSdk: U
compileOptions:
  sourceCompatibility: VERSION_11
  targetCompatibility: "11"
multiDexEnabled: true
plugins:
  - id: com.android.application
  - id: kotlin-android
  - id: dev.flutter.flutter-gradle-plugin
dependencies:
  - coordinate: com.google.android.gms:play-services-maps:18.2.0
`

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
	}{
		{"appdesc.yaml", FormatYAML},
		{"appdesc.yml", FormatYAML},
		{"dir/appdesc.TOML", FormatTOML},
		{"appdesc.json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := DetectFormat("build.gradle.kts")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DetectFormat("appdesc")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFromReaderYAML(t *testing.T) {
	t.Parallel()

	d, err := LoadFromReader(strings.NewReader(yamlDescriptor), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "com.example.agripots", d.ApplicationID)
	assert.Equal(t, "com.example.agripots", d.EffectiveNamespace())
	assert.Equal(t, sdk.Level(21), d.MinSDK)
	assert.Equal(t, sdk.Level(34), d.TargetSDK)
	assert.True(t, d.UsesFlutter())
	assert.Len(t, d.Dependencies, 1)
	require.NoError(t, d.Validate())
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := LoadFromReader(strings.NewReader("applicationId: a.b\nminSDK: 21\n"), FormatYAML)
	assert.Error(t, err)

	_, err = LoadFromReader(strings.NewReader(`{"applicationId":"a.b","minSDK":21}`), FormatJSON)
	assert.Error(t, err)

	_, err = LoadFromReader(strings.NewReader("applicationId = 'a.b'\nminSDK = 21\n"), FormatTOML)
	assert.Error(t, err)
}

func TestLoadFromReaderEmptyYAML(t *testing.T) {
	t.Parallel()

	d, err := LoadFromReader(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, &Descriptor{}, d)
}

func TestLoadFromReaderJSONCodename(t *testing.T) {
	t.Parallel()

	d, err := LoadFromReader(strings.NewReader(`{"minSdk":"M","targetSdk":33,"compileSdk":"android-34"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, sdk.Level(23), d.MinSDK)
	assert.Equal(t, sdk.Level(33), d.TargetSDK)
	assert.Equal(t, sdk.Level(34), d.CompileSDK)
}

func TestLoadFromReaderUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := LoadFromReader(strings.NewReader("{}"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("APPDESC_TEST_APP_ID", "com.example.fromenv")

	path := filepath.Join(t.TempDir(), "appdesc.yaml")
	content := strings.Replace(yamlDescriptor, "com.example.agripots", "${APPDESC_TEST_APP_ID}", 1)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "com.example.fromenv", d.ApplicationID)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("APPDESC_TEST_TOKEN", "tok")

	tests := []struct {
		in   string
		want string
	}{
		{"${APPDESC_TEST_TOKEN}", "tok"},
		{"a-${APPDESC_TEST_TOKEN}-b", "a-tok-b"},
		{"${APPDESC_TEST_UNSET}", ""},
		{"s3cr$t", "s3cr$t"},
		{"$APPDESC_TEST_TOKEN", "$APPDESC_TEST_TOKEN"},
		{"$${APPDESC_TEST_TOKEN}", "${APPDESC_TEST_TOKEN}"},
		{"$$${APPDESC_TEST_TOKEN}", "$${APPDESC_TEST_TOKEN}"},
		{"${not valid}", "${not valid}"},
		{"$", "$"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(ExpandEnv([]byte(tt.in))), tt.in)
	}
}

func TestRoundTripKeepsDollarSigns(t *testing.T) {
	t.Setenv("STORE_PASSWORD", "from-env")

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			want := Default()
			want.VersionName = "${STORE_PASSWORD}"
			want.SigningConfigs = []SigningConfig{{
				Name:          "upload",
				StorePassword: "s3cr$t",
				KeyPassword:   "$${x}",
			}}

			data, err := Marshal(want, format)
			require.NoError(t, err)
			got, err := LoadFromReader(strings.NewReader(string(data)), format)
			require.NoError(t, err)

			assert.Equal(t, "s3cr$t", got.SigningConfigs[0].StorePassword)
			assert.Equal(t, "$${x}", got.SigningConfigs[0].KeyPassword)
			assert.Equal(t, "${STORE_PASSWORD}", got.VersionName)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			want := Default()
			want.NDKVersion = "26.1.10909125"
			want.VersionCode = 7
			want.VersionName = "1.2.0"
			want.SigningConfigs = []SigningConfig{{Name: "upload", StoreFile: "upload.jks", KeyAlias: "upload"}}
			want.BuildTypes = append(want.BuildTypes, BuildType{Name: DebugBuildType, Debuggable: true})

			data, err := Marshal(want, format)
			require.NoError(t, err)

			got, err := Unmarshal(data, format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"appdesc.yaml", "appdesc.toml", "appdesc.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Write(path, Default()))

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, Default(), got, name)
	}
}

func TestMarshalUsesGradleNames(t *testing.T) {
	t.Parallel()

	data, err := Marshal(Default(), FormatYAML)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "applicationId: com.example.agripots")
	assert.Contains(t, out, "minSdk: 21")
	assert.Contains(t, out, "multiDexEnabled: true")
	assert.NotContains(t, out, "ndkVersion")
}
