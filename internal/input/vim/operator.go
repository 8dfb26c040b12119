package vim

import (
	"strings"

	"github.com/samber/mo"
)

// Operator is a command that acts on a range of text defined by a motion
// or text object.
type Operator uint8

const (
	// Delete removes text.
	Delete Operator = iota
	// Change removes text and enters insert mode.
	Change
	// Yank copies text to a register.
	Yank
	// Indent shifts lines right.
	Indent
	// Outdent shifts lines left.
	Outdent
	// Format reflows lines.
	Format
	// Fold creates a fold.
	Fold
	// Unfold removes a fold.
	Unfold
	// ToUpper converts text to uppercase.
	ToUpper
	// ToLower converts text to lowercase.
	ToLower
	// SwapCase toggles case.
	SwapCase
	// Filter runs lines through an external program.
	Filter
)

// CommandPrefix is the prefix of the keymap commands naming operators.
const CommandPrefix = "operator."

var operatorNames = [...]string{
	Delete:   "delete",
	Change:   "change",
	Yank:     "yank",
	Indent:   "indent",
	Outdent:  "outdent",
	Format:   "format",
	Fold:     "fold",
	Unfold:   "unfold",
	ToUpper:  "toUpper",
	ToLower:  "toLower",
	SwapCase: "swapCase",
	Filter:   "filter",
}

func (o Operator) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return "unknown"
}

// Command returns the keymap command that triggers o.
func (o Operator) Command() string {
	return CommandPrefix + o.String()
}

// ChangesText reports whether applying o modifies the buffer.
func (o Operator) ChangesText() bool {
	switch o {
	case Yank, Fold, Unfold:
		return false
	}
	return true
}

// EntersInsert reports whether o ends in insert mode.
func (o Operator) EntersInsert() bool {
	return o == Change
}

// AlwaysLinewise reports whether o widens every target to whole lines.
func (o Operator) AlwaysLinewise() bool {
	switch o {
	case Indent, Outdent, Format, Fold, Unfold, Filter:
		return true
	}
	return false
}

// Operators returns every operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, len(operatorNames))
	for i := range ops {
		ops[i] = Operator(i)
	}
	return ops
}

// OperatorFromCommand maps a keymap command such as "operator.delete" to
// its operator.
func OperatorFromCommand(cmd string) mo.Option[Operator] {
	name, ok := strings.CutPrefix(cmd, CommandPrefix)
	if !ok {
		return mo.None[Operator]()
	}
	for i, n := range operatorNames {
		if n == name {
			return mo.Some(Operator(i))
		}
	}
	return mo.None[Operator]()
}
