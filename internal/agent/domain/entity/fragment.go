package entity

// ToolCallDelta extends the in-progress tool call at Index. Every field is a
// substring to append, never a replacement.
type ToolCallDelta struct {
	Index     int
	ID        string
	Name      string
	Arguments string
}

// Fragment is one increment of a streamed model response.
type Fragment struct {
	TextDelta string
	ToolCalls []ToolCallDelta
}

// Empty reports whether the fragment carries nothing.
func (f *Fragment) Empty() bool {
	return f == nil || (f.TextDelta == "" && len(f.ToolCalls) == 0)
}
