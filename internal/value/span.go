package value

// Span is a half-open byte interval [Start, End) into the original source
// text. Spans travel with every Value so that errors and results can point
// back at the code that produced them. Line/column coordinates are derived
// on demand by callers that hold the source text.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span covering [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// UnknownSpan is the sentinel for values with no source location
// (values built programmatically, converted from external data, etc.).
func UnknownSpan() Span {
	return Span{Start: 0, End: 0}
}

// TestSpan returns a fixed non-zero span for use in tests and command
// examples, so example results are comparable without caring about
// real source offsets.
func TestSpan() Span {
	return Span{Start: 0, End: 0}
}

// IsUnknown reports whether the span carries no location information.
func (s Span) IsUnknown() bool {
	return s.Start == 0 && s.End == 0
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}
