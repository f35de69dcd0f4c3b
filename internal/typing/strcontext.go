package typing

// StringContext tracks whether the session is inside a quoted literal.
// The zero value is outside any string.
type StringContext struct {
	inside bool
	delim  rune
}

// Observe feeds r to the tracker and returns the resulting state. Only the
// delimiter that opened a string can close it.
func (s *StringContext) Observe(r rune) bool {
	if r != '"' && r != '\'' {
		return s.inside
	}
	switch {
	case !s.inside:
		s.inside = true
		s.delim = r
	case r == s.delim:
		s.inside = false
		s.delim = 0
	}
	return s.inside
}

// Inside reports whether the last observed rune left the tracker in a string.
func (s *StringContext) Inside() bool {
	return s.inside
}

// Delimiter returns the quote that opened the current string, or 0.
func (s *StringContext) Delimiter() rune {
	return s.delim
}
