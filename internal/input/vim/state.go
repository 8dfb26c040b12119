package vim

import (
	"github.com/samber/mo"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/register"
)

// OperatorState is an operator waiting for, or holding, its target.
type OperatorState struct {
	Operator Operator
	// Count is at least 1 and multiplies the target span. HasCount
	// records whether it was typed.
	Count    int
	HasCount bool
	Target   mo.Option[Target]
	// Keys are the keys that started the operator. Repeating the last of
	// them selects whole lines (dd, gUU).
	Keys key.Sequence
}

// NewOperatorState creates the state for op with the given count.
func NewOperatorState(op Operator, count int, keys key.Sequence) OperatorState {
	if count <= 0 {
		count = 1
	}
	return OperatorState{Operator: op, Count: count, Keys: keys.Clone()}
}

// IsLinewiseKey reports whether ev repeats the operator's trigger key.
func (s OperatorState) IsLinewiseKey(ev key.Event) bool {
	if len(s.Keys) == 0 {
		return false
	}
	return s.Keys[len(s.Keys)-1].Equals(ev)
}

// Await is a command waiting for a single character argument.
type Await uint8

const (
	// AwaitNone means no argument is pending.
	AwaitNone Await = iota
	// AwaitRegister follows '"'.
	AwaitRegister
	// AwaitFindChar follows f, F, t and T.
	AwaitFindChar
	// AwaitReplaceChar follows r.
	AwaitReplaceChar
	// AwaitMarkSet follows m.
	AwaitMarkSet
	// AwaitMarkJump follows `.
	AwaitMarkJump
	// AwaitMarkLine follows '.
	AwaitMarkLine
	// AwaitMacroRecord follows q when not recording.
	AwaitMacroRecord
	// AwaitMacroPlay follows @.
	AwaitMacroPlay
	// AwaitTextObject follows i or a in operator-pending or visual mode.
	AwaitTextObject
)

var awaitNames = [...]string{
	AwaitNone:        "none",
	AwaitRegister:    "register",
	AwaitFindChar:    "findChar",
	AwaitReplaceChar: "replaceChar",
	AwaitMarkSet:     "markSet",
	AwaitMarkJump:    "markJump",
	AwaitMarkLine:    "markLine",
	AwaitMacroRecord: "macroRecord",
	AwaitMacroPlay:   "macroPlay",
	AwaitTextObject:  "textObject",
}

func (a Await) String() string {
	if int(a) < len(awaitNames) {
		return awaitNames[a]
	}
	return "unknown"
}

// Pending is the state of a partly typed normal mode command. It is
// cleared after every completed or cancelled command.
type Pending struct {
	// Count is typed before the operator; OpCount after it.
	Count   CountState
	OpCount CountState

	// Register is the one-shot register selection.
	Register mo.Option[register.Register]

	Operator mo.Option[OperatorState]

	Await Await
	// Find is the motion waiting for its character, and Include
	// distinguishes a from i while awaiting a text object.
	Find    cursor.Kind
	Include bool

	// Keys echoes what has been typed for display.
	Keys key.Sequence
}

// Reset clears all pending state.
func (p *Pending) Reset() {
	*p = Pending{}
}

// Idle reports whether nothing is pending.
func (p *Pending) Idle() bool {
	return !p.Count.Active() && !p.OpCount.Active() && !p.Register.IsPresent() &&
		!p.Operator.IsPresent() && p.Await == AwaitNone
}

// Counter returns the count state digits should accumulate into.
func (p *Pending) Counter() *CountState {
	if p.Operator.IsPresent() {
		return &p.OpCount
	}
	return &p.Count
}

// StartOperator records op as pending, consuming the count typed so far.
func (p *Pending) StartOperator(op Operator, keys key.Sequence) {
	count, typed := p.Count.Take().Get()
	p.OpCount.Reset()
	st := NewOperatorState(op, count, keys)
	st.HasCount = typed
	p.Operator = mo.Some(st)
}

// TakeCount returns the count for a command without an operator and
// clears it.
func (p *Pending) TakeCount() mo.Option[int] {
	return p.Count.Take()
}

// TargetCount returns the count that scales the pending operator's target:
// the operator count times the count typed after the operator. It is None
// when neither was typed.
func (p *Pending) TargetCount() mo.Option[int] {
	before := mo.None[int]()
	if op, ok := p.Operator.Get(); ok && op.HasCount {
		before = mo.Some(op.Count)
	}
	return CombineCounts(before, p.OpCount.Take())
}

// TakeRegister returns the selected register and clears the selection.
func (p *Pending) TakeRegister() mo.Option[register.Register] {
	r := p.Register
	p.Register = mo.None[register.Register]()
	return r
}

// Expect sets the pending argument.
func (p *Pending) Expect(a Await) {
	p.Await = a
}

// Echo appends ev to the displayed keys.
func (p *Pending) Echo(ev key.Event) {
	p.Keys = append(p.Keys, ev)
}
