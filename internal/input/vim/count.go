package vim

import (
	"math"

	"github.com/samber/mo"
)

// maxCount caps accumulated counts so arithmetic on them cannot overflow.
const maxCount = 999999

// CountState tracks count prefix accumulation.
type CountState struct {
	value  int
	active bool
}

// Reset clears the count.
func (c *CountState) Reset() {
	*c = CountState{}
}

// Active reports whether any digit has been accepted.
func (c *CountState) Active() bool {
	return c.active
}

// Accepts reports whether r would be taken as a count digit. A leading
// '0' is the line start motion, not a count.
func (c *CountState) Accepts(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	return r != '0' || c.active
}

// AccumulateDigit adds a digit to the count and reports whether it was
// accepted.
func (c *CountState) AccumulateDigit(r rune) bool {
	if !c.Accepts(r) {
		return false
	}
	c.active = true
	c.value = min(c.value*10+int(r-'0'), maxCount)
	return true
}

// Value returns the count typed so far.
func (c *CountState) Value() mo.Option[int] {
	if !c.active {
		return mo.None[int]()
	}
	return mo.Some(c.value)
}

// Get returns the effective count, 1 if none was typed.
func (c *CountState) Get() int {
	if !c.active || c.value <= 0 {
		return 1
	}
	return c.value
}

// Take returns the count and resets the state.
func (c *CountState) Take() mo.Option[int] {
	v := c.Value()
	c.Reset()
	return v
}

// CombineCounts multiplies the counts typed before and after an operator.
// "2d3w" deletes 6 words. A missing count counts as 1.
func CombineCounts(before, after mo.Option[int]) mo.Option[int] {
	if !before.IsPresent() && !after.IsPresent() {
		return mo.None[int]()
	}
	a, b := before.OrElse(1), after.OrElse(1)
	if a <= 0 {
		a = 1
	}
	if b <= 0 {
		b = 1
	}
	if a > math.MaxInt/b {
		return mo.Some(maxCount)
	}
	return mo.Some(min(a*b, maxCount))
}
