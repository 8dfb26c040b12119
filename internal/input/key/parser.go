package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse reads exactly one key: a single character or one <...> group.
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	seq, err := ParseSequence(spec)
	if err != nil {
		return Event{}, err
	}
	if seq.Len() != 1 {
		return Event{}, fmt.Errorf("%w: %q is %d keys", ErrInvalidSpec, spec, seq.Len())
	}
	return seq[0], nil
}

// MustParse is Parse for specs known to be valid.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("invalid key specification " + spec + ": " + err.Error())
	}
	return e
}

// ParseSequence reads a run of keys. A '<' that does not begin a valid
// group is taken literally.
func ParseSequence(s string) (Sequence, error) {
	var seq Sequence
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				group := s[i+1 : i+1+end]
				e, err := parseGroup(group)
				if err == nil {
					seq = append(seq, e)
					i += end + 2
					continue
				}
				if looksLikeGroup(group) {
					return nil, err
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrInvalidSpec, i)
		}
		seq = append(seq, Rune(r))
		i += size
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for sequences known to be valid.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence " + s + ": " + err.Error())
	}
	return seq
}

// looksLikeGroup reports whether text between angle brackets was meant as
// key notation rather than literal characters such as "<a href>".
func looksLikeGroup(group string) bool {
	if strings.ContainsAny(group, " \t") {
		return false
	}
	if len(group) > 2 && group[1] == '-' {
		return true
	}
	for _, r := range group {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func parseGroup(group string) (Event, error) {
	var mods Modifier
	rest := group
	for len(rest) > 2 && rest[1] == '-' {
		m := modifierFromLetter(rest[:1])
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in <%s>", ErrInvalidSpec, rest[:1], group)
		}
		mods = mods.With(m)
		rest = rest[2:]
	}
	if r, ok := runeAliases[strings.ToLower(rest)]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if k := KeyFromName(rest); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if utf8.RuneCountInString(rest) == 1 && mods != ModNone {
		r, _ := utf8.DecodeRuneInString(rest)
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: <%s>", ErrInvalidSpec, group)
}
