package types

// Metadata is a map of string key-value pairs attached to gateway objects
// for traceability
type Metadata map[string]string
