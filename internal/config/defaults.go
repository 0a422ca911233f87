package config

import "github.com/project-chip/chipcmp/pkg/compare"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Compare defaults.
const (
	DefaultReference   = compare.DefaultReferencePath
	DefaultCandidate   = compare.DefaultCandidatePath
	DefaultDelimiter   = compare.DefaultDelimiter
	DefaultMaxLineSize = "1MiB"
)

// Output defaults.
const (
	DefaultOutputFormat = "text"
	DefaultOutputDiff   = false
)

// Logging defaults.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = LogFormatText
)
