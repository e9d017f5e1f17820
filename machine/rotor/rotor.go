// rotor
package rotor

import (
	"fmt"

	"github.com/jgardner/enigma/machine/bitset"
)

// TurnoverFunc is invoked when one or more notches are passed while the
// rotor advances.  The argument is the number of notches encountered.
type TurnoverFunc func(knocks int)

// Rotor is a single substitution wheel.  Each code point is substituted
// for another, offset by the rotation of the rotor.  Advancing onto a
// notch invokes the turnover callback, which the machine uses to link a
// rotor to its neighbor.
type Rotor struct {
	forward    []int
	reverse    []int
	notches    *bitset.Bits
	notchCount int
	position   int
	turnover   TurnoverFunc
}

// New creates a rotor from a forward cipher table and a notch set.  The
// table must be a permutation of [0, base) where base is its length; the
// reverse table is derived from it.  A nil notch set means no notches, and
// a nil callback ignores turnovers.
func New(cipher []int, notches *bitset.Bits, callback TurnoverFunc) (*Rotor, error) {
	base := len(cipher)
	if base == 0 {
		return nil, fmt.Errorf("rotor: empty cipher table")
	}
	if notches == nil {
		notches = bitset.New(base)
	}
	if notches.Width() != base {
		return nil, fmt.Errorf("rotor: notch set width %d does not match cipher table length %d",
			notches.Width(), base)
	}
	r := &Rotor{
		forward:    make([]int, base),
		reverse:    make([]int, base),
		notches:    notches,
		notchCount: notches.Count(),
		turnover:   ignoreTurnover,
	}
	if callback != nil {
		r.turnover = callback
	}
	seen := make([]bool, base)
	for i, v := range cipher {
		if v < 0 || v >= base {
			return nil, fmt.Errorf("rotor: cipher table entry %d out of range: %d", i, v)
		}
		if seen[v] {
			return nil, fmt.Errorf("rotor: cipher table is not a permutation: %d appears twice", v)
		}
		seen[v] = true
		r.forward[i] = v
		r.reverse[v] = i
	}
	return r, nil
}

// Base returns the number of code points on the rotor.
func (r *Rotor) Base() int {
	return len(r.forward)
}

// Position returns the current rotation offset.
func (r *Rotor) Position() int {
	return r.position
}

// SetPosition rotates the rotor directly to position p without generating
// turnovers, as when setting the message key by hand.
func (r *Rotor) SetPosition(p int) error {
	if p < 0 || p >= len(r.forward) {
		return fmt.Errorf("rotor: position %d out of range [0,%d)", p, len(r.forward))
	}
	r.position = p
	return nil
}

// NotchCount returns the number of notches on the rotor.
func (r *Rotor) NotchCount() int {
	return r.notchCount
}

// SetTurnover replaces the active turnover callback.  Exactly one callback
// is active at a time.  Passing nil restores the ignoring default.
func (r *Rotor) SetTurnover(callback TurnoverFunc) {
	if callback == nil {
		callback = ignoreTurnover
	}
	r.turnover = callback
}

// Advance rotates the rotor by one step and invokes the turnover callback
// if a notch exists at the new position.  It returns the new position.
func (r *Rotor) Advance() int {
	r.position++
	if r.position == len(r.forward) {
		r.position = 0
	}
	if r.notches.Test(r.position) {
		r.turnover(1)
	}
	return r.position
}

// AdvanceBy rotates the rotor by steps and invokes the turnover callback
// once with the total number of notches that steps single-step advances
// would have encountered, or not at all when that total is zero.  The work
// done does not depend on steps.  It returns the new position.
func (r *Rotor) AdvanceBy(steps int) int {
	if steps < 0 {
		panic(fmt.Sprintf("rotor: negative step count %d", steps))
	}
	base := len(r.forward)
	total := r.position + steps
	final := total % base
	knocks := (total / base) * r.notchCount
	if final >= r.position {
		knocks += r.notches.CountRange(r.position+1, final)
	} else {
		// The full-revolution term counts the lap the trailing partial
		// arc did not complete; back out the notches it never reached.
		knocks -= r.notches.CountRange(final+1, r.position)
	}
	r.position = final
	if knocks > 0 {
		r.turnover(knocks)
	}
	return r.position
}

// ForwardCipher substitutes val in the forward signal direction.  The
// rotation of the rotor offsets which contact the incoming signal meets.
func (r *Rotor) ForwardCipher(val int) int {
	return r.forward[r.contact(val)]
}

// ReverseCipher substitutes val in the reverse signal direction.  The
// positional offset is applied the same way as in the forward direction.
func (r *Rotor) ReverseCipher(val int) int {
	return r.reverse[r.contact(val)]
}

func (r *Rotor) contact(val int) int {
	base := len(r.forward)
	if val < 0 || val >= base {
		panic(fmt.Sprintf("rotor: code point %d out of range [0,%d)", val, base))
	}
	return (r.position + val) % base
}

func ignoreTurnover(int) {}
