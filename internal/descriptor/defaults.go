package descriptor

import (
	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/plugin"
	"github.com/agripots/appdesc/internal/sdk"
)

// Default returns the descriptor of the agripots Flutter application. It is
// what `appdesc init` writes.
func Default() *Descriptor {
	return &Descriptor{
		Namespace:     "com.example.agripots",
		ApplicationID: "com.example.agripots",
		CompileSDK:    34,
		MinSDK:        21,
		TargetSDK:     34,
		CompileOptions: CompileOptions{
			SourceCompatibility: sdk.Java11.String(),
			TargetCompatibility: sdk.Java11.String(),
		},
		KotlinOptions:   KotlinOptions{JVMTarget: sdk.Java11.Number()},
		MultiDexEnabled: true,
		BuildTypes: []BuildType{
			// No release keys yet; release builds sign with the debug keys.
			{Name: ReleaseBuildType, SigningConfig: DebugSigningConfig},
		},
		Plugins: []plugin.Plugin{
			{ID: plugin.AndroidApplication},
			{ID: plugin.KotlinAndroid},
			{ID: plugin.Flutter},
		},
		Flutter: &FlutterConfig{Source: "../.."},
		Dependencies: []deps.Dependency{
			{Coordinate: "org.jetbrains.kotlin:kotlin-bom:1.8.0", Platform: true},
			{Coordinate: "com.google.android.gms:play-services-maps:18.2.0"},
			{Coordinate: "com.google.android.gms:play-services-location:21.2.0"},
			{Coordinate: "com.google.android.gms:play-services-base:18.4.0"},
			{Coordinate: "com.google.android.gms:play-services-basement:18.4.0"},
			{Coordinate: "com.google.maps.android:maps-utils-ktx:5.0.0"},
			{Coordinate: "androidx.multidex:multidex:2.0.1"},
			{Coordinate: "androidx.annotation:annotation:1.8.0"},
			{Coordinate: "androidx.lifecycle:lifecycle-common-java8:2.7.0"},
		},
	}
}
