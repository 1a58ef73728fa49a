package classifier

// Log prefixes
const (
	LogPrefixClassify = "internal.classifier.Classify"
)

// Classifier configuration
const (
	ClassifierTemperature = 0.1
	ClassifierMaxTokens   = 800
)

// Fallback reasons
const (
	ReasonParseError = "parse_error"
)
