// machine implements the rotor assembly of an Enigma style cipher machine.
package machine

import (
	"fmt"

	"github.com/jgardner/enigma/machine/rotor"
)

// Machine is a rotor assembly plus a reflector.  Rotors are connected such
// that each advances the one following it when a notch is passed.  The
// reflector takes the output of a forward pass through the assembly and
// maps it to a new value ready for the reverse pass.
type Machine struct {
	rotors    []*rotor.Rotor
	reflector []int
	base      int
}

// New creates a machine from an ordered rotor sequence and a reflector
// table.  Rotor 0 is the fast rotor; the turnover callback of each rotor is
// wired to advance the next one, and the last rotor keeps whatever callback
// it already has.  The reflector must be a permutation of [0, base) where
// base is the common rotor size.  For the machine to be reciprocal the
// reflector must also be a fixed-point-free involution; that is the
// caller's contract and is not checked here.
func New(rotors []*rotor.Rotor, reflector []int) (*Machine, error) {
	if len(rotors) == 0 {
		return nil, fmt.Errorf("machine: at least one rotor is required")
	}
	base := rotors[0].Base()
	for i, r := range rotors {
		if r.Base() != base {
			return nil, fmt.Errorf("machine: rotor %d size %d does not match rotor 0 size %d",
				i, r.Base(), base)
		}
	}
	if len(reflector) != base {
		return nil, fmt.Errorf("machine: reflector length %d does not match rotor size %d",
			len(reflector), base)
	}
	seen := make([]bool, base)
	for i, v := range reflector {
		if v < 0 || v >= base {
			return nil, fmt.Errorf("machine: reflector entry %d out of range: %d", i, v)
		}
		if seen[v] {
			return nil, fmt.Errorf("machine: reflector is not a permutation: %d appears twice", v)
		}
		seen[v] = true
	}

	m := &Machine{
		rotors:    append([]*rotor.Rotor(nil), rotors...),
		reflector: append([]int(nil), reflector...),
		base:      base,
	}
	for i := 0; i < len(m.rotors)-1; i++ {
		next := m.rotors[i+1]
		m.rotors[i].SetTurnover(func(knocks int) {
			next.AdvanceBy(knocks)
		})
	}
	return m, nil
}

// Base returns the number of code points the machine operates on.
func (m *Machine) Base() int {
	return m.base
}

// RotorCount returns the number of rotors in the assembly.
func (m *Machine) RotorCount() int {
	return len(m.rotors)
}

// Positions returns the current rotor positions, fast rotor first.
func (m *Machine) Positions() []int {
	p := make([]int, len(m.rotors))
	for i, r := range m.rotors {
		p[i] = r.Position()
	}
	return p
}

// SetPositions sets the rotor positions directly, fast rotor first, without
// generating turnovers.
func (m *Machine) SetPositions(positions []int) error {
	if len(positions) != len(m.rotors) {
		return fmt.Errorf("machine: %d positions given for %d rotors",
			len(positions), len(m.rotors))
	}
	for i, p := range positions {
		if err := m.rotors[i].SetPosition(p); err != nil {
			return err
		}
	}
	return nil
}

// Advance rotates the fast rotor by steps.  The remaining rotors move only
// through the turnover chain, each rotor's own notches deciding whether the
// cascade continues.
func (m *Machine) Advance(steps int) {
	m.rotors[0].AdvanceBy(steps)
}

// Encode passes val forward through the rotor assembly, through the
// reflector, and back through the assembly in reverse order.  It does not
// move the rotors.
func (m *Machine) Encode(val int) int {
	for _, r := range m.rotors {
		val = r.ForwardCipher(val)
	}
	val = m.reflector[val]
	for i := len(m.rotors) - 1; i >= 0; i-- {
		val = m.rotors[i].ReverseCipher(val)
	}
	return val
}

// EncodeNext advances the assembly by one step and then encodes val.  On
// the physical machine pressing a key steps the rotors before the circuit
// closes; this models that order.
func (m *Machine) EncodeNext(val int) int {
	m.rotors[0].Advance()
	return m.Encode(val)
}
