package tagml

// Diagnostic codes reported by the tagml parsers. Malformed tags surface
// through the parse engine's own codes.
const (
	CodeUnterminatedComment = "E102"
	CodeUnterminatedPI      = "E103"
)
