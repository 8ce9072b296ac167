package config

// DetectFormat exports detectFormat for testing.
var DetectFormat = detectFormat
