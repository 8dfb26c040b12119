package key

import "strings"

// Sequence is an ordered run of key events.
type Sequence []Event

// Len returns the number of events.
func (s Sequence) Len() int { return len(s) }

// String returns the sequence in key notation.
func (s Sequence) String() string {
	var sb strings.Builder
	for _, e := range s {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Equals reports whether two sequences hold the same events.
func (s Sequence) Equals(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a prefix of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	return len(prefix) <= len(s) && s[:len(prefix)].Equals(prefix)
}

// IsPrefixOf reports whether s is a strict prefix of o.
func (s Sequence) IsPrefixOf(o Sequence) bool {
	return len(s) < len(o) && o.HasPrefix(s)
}

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
