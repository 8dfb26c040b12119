package vim

import (
	"fmt"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/engine/textobject"
)

// TargetKind selects which fields of a Target are meaningful.
type TargetKind uint8

const (
	// TargetTextObject is a text object such as iw or a(.
	TargetTextObject TargetKind = iota
	// TargetMotion is the span a motion moves over.
	TargetMotion
	// TargetLineRange is an inclusive range of whole lines.
	TargetLineRange
	// TargetCharRange is a half-open range of character offsets.
	TargetCharRange
)

func (k TargetKind) String() string {
	switch k {
	case TargetTextObject:
		return "textObject"
	case TargetMotion:
		return "motion"
	case TargetLineRange:
		return "lineRange"
	case TargetCharRange:
		return "charRange"
	}
	return "unknown"
}

// Target is what an operator acts on.
type Target struct {
	Kind TargetKind

	// Object and Include describe a TargetTextObject.
	Object  textobject.Kind
	Include bool

	// Motion describes a TargetMotion.
	Motion cursor.Motion

	// Start and End are lines for TargetLineRange (both inclusive) and
	// character offsets for TargetCharRange (End exclusive).
	Start int
	End   int
}

// TextObjectTarget targets a text object.
func TextObjectTarget(kind textobject.Kind, include bool) Target {
	return Target{Kind: TargetTextObject, Object: kind, Include: include}
}

// MotionTarget targets the text a motion passes over.
func MotionTarget(m cursor.Motion) Target {
	return Target{Kind: TargetMotion, Motion: m}
}

// LineRange targets lines start through end. The bounds are ordered.
func LineRange(start, end int) Target {
	if end < start {
		start, end = end, start
	}
	return Target{Kind: TargetLineRange, Start: start, End: end}
}

// CharRange targets the half-open offsets [start, end). The bounds are
// ordered.
func CharRange(start, end int) Target {
	if end < start {
		start, end = end, start
	}
	return Target{Kind: TargetCharRange, Start: start, End: end}
}

// Linewise reports whether the target covers whole lines.
func (t Target) Linewise() bool {
	switch t.Kind {
	case TargetLineRange:
		return true
	case TargetMotion:
		return t.Motion.Linewise()
	case TargetTextObject:
		return t.Object.Linewise()
	}
	return false
}

func (t Target) String() string {
	switch t.Kind {
	case TargetTextObject:
		prefix := "i"
		if t.Include {
			prefix = "a"
		}
		return fmt.Sprintf("%s%s", prefix, t.Object)
	case TargetMotion:
		return t.Motion.Kind.String()
	case TargetLineRange:
		return fmt.Sprintf("lines %d-%d", t.Start, t.End)
	case TargetCharRange:
		return fmt.Sprintf("chars %d-%d", t.Start, t.End)
	}
	return "unknown"
}
