// wiring holds the historical wheel and reflector tables of the Wehrmacht
// Enigma I.
// Source:
// https://en.wikipedia.org/wiki/Enigma_rotor_details#Rotor_wiring_tables
package wiring

import (
	"fmt"
	"strings"

	"github.com/jgardner/enigma/machine/bitset"
	"github.com/jgardner/enigma/machine/rotor"
)

// Base is the number of code points on the historical wheels.
const Base = 26

// A letter at index i of a cipher string maps to (is substituted with) the
// letter at cipher[i].  The notch letters are the positions at which the
// wheel, having just stepped there, knocks the next wheel on by one step.
var wheels = map[string]struct {
	cipher  string
	notches string
}{
	"I":   {"EKMFLGDQVZNTOWYHXUSPAIBRCJ", "R"},
	"II":  {"AJDKSIRUXBLHWTMCQGZNPYFVOE", "F"},
	"III": {"BDFHJLCPRTXVZNYEIWGAKMUSQO", "W"},
	"IV":  {"ESOVPZJAYQUIRHXLNFTGKDCMWB", "K"},
	"V":   {"VZBRGITYUPSDNHLXAWMJQOFECK", "A"},
}

var reflectors = map[string]string{
	"B": "YRUHQSLDPXNGOKMIEBFZCWVJAT",
	"C": "FVPJIAOYEDRZXWGCTKUQSBNMHL",
}

// Rotor builds a rotor wired as the named wheel (I through V), with no
// turnover callback set.
func Rotor(name string) (*rotor.Rotor, error) {
	w, ok := wheels[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("wiring: unknown wheel %q", name)
	}
	notches, err := bitset.FromPositions(Base, codePoints(w.notches)...)
	if err != nil {
		return nil, err
	}
	return rotor.New(codePoints(w.cipher), notches, nil)
}

// Reflector returns the permutation table of the named reflector (B or C).
func Reflector(name string) ([]int, error) {
	s, ok := reflectors[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("wiring: unknown reflector %q", name)
	}
	return codePoints(s), nil
}

// WheelNames returns the known wheel names.
func WheelNames() []string {
	return []string{"I", "II", "III", "IV", "V"}
}

// ReflectorNames returns the known reflector names.
func ReflectorNames() []string {
	return []string{"B", "C"}
}

func codePoints(letters string) []int {
	vals := make([]int, len(letters))
	for i := 0; i < len(letters); i++ {
		vals[i] = int(letters[i] - 'A')
	}
	return vals
}
