package register

import (
	"strings"

	"github.com/dshills/modal/internal/input/key"
)

// Style is the shape text was captured with.
type Style uint8

const (
	// CharacterWise text is pasted inline at the cursor.
	CharacterWise Style = iota
	// LineWise text is pasted as whole lines.
	LineWise
	// BlockWise text is pasted as a column, one row per line.
	BlockWise
)

func (s Style) String() string {
	switch s {
	case LineWise:
		return "line"
	case BlockWise:
		return "block"
	}
	return "char"
}

// Content is the value held by a register.
//
// Lines never carry a trailing newline; a line-wise register holding
// "a\nb\n" has Lines ["a", "b"]. Keys is set for registers filled by macro
// recording and keeps the exact events, including ones with no text form.
type Content struct {
	Style Style
	Lines []string
	Keys  key.Sequence
}

// Chars creates character-wise content from text.
func Chars(text string) Content {
	return Content{Style: CharacterWise, Lines: strings.Split(text, "\n")}
}

// Lines creates line-wise content. A single trailing newline in text is
// dropped.
func Lines(text string) Content {
	text = strings.TrimSuffix(text, "\n")
	return Content{Style: LineWise, Lines: strings.Split(text, "\n")}
}

// Block creates block-wise content from rows.
func Block(rows []string) Content {
	return Content{Style: BlockWise, Lines: append([]string(nil), rows...)}
}

// Macro creates content holding a recorded key sequence.
func Macro(keys key.Sequence) Content {
	return Content{Style: CharacterWise, Lines: []string{keys.String()}, Keys: keys.Clone()}
}

// String returns the text as it would be inserted. Line-wise content ends
// with a newline.
func (c Content) String() string {
	s := strings.Join(c.Lines, "\n")
	if c.Style == LineWise {
		s += "\n"
	}
	return s
}

// IsEmpty reports whether the content holds no text and no keys.
func (c Content) IsEmpty() bool {
	if len(c.Keys) > 0 {
		return false
	}
	for _, l := range c.Lines {
		if l != "" {
			return false
		}
	}
	return c.Style != LineWise || len(c.Lines) == 0
}

// Sequence returns the content as keys to replay. Recorded content returns
// its events; text is read as key notation and falls back to literal runes
// when it is not valid notation. Newlines replay as Enter.
func (c Content) Sequence() key.Sequence {
	if len(c.Keys) > 0 {
		return c.Keys.Clone()
	}
	text := c.String()
	seq, err := key.ParseSequence(text)
	if err != nil {
		seq = make(key.Sequence, 0, len(text))
		for _, r := range text {
			seq = append(seq, key.Rune(r))
		}
	}
	for i, ev := range seq {
		if ev.Is('\n') {
			seq[i] = key.Special(key.KeyEnter)
		}
	}
	return seq
}

// appendContent joins b onto a the way an uppercase register write does.
func appendContent(a, b Content) Content {
	if len(a.Lines) == 0 {
		return b
	}
	out := Content{Style: a.Style}
	if a.Style == LineWise || b.Style == LineWise {
		out.Style = LineWise
		out.Lines = append(append([]string(nil), a.Lines...), b.Lines...)
	} else {
		out.Lines = append([]string(nil), a.Lines...)
		last := len(out.Lines) - 1
		out.Lines[last] += b.Lines[0]
		out.Lines = append(out.Lines, b.Lines[1:]...)
	}
	if len(a.Keys) > 0 && len(b.Keys) > 0 {
		out.Keys = append(a.Keys.Clone(), b.Keys...)
	}
	return out
}
