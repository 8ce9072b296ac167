package logging

var (
	ShouldUsePretty = shouldUsePretty
	FormatLevel     = formatLevel
	FormatMessage   = formatMessage
)
