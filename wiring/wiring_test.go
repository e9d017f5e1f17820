package wiring

import (
	"testing"

	"github.com/jgardner/enigma/machine"
	"github.com/jgardner/enigma/machine/rotor"
)

func TestWheels_AreBijections(t *testing.T) {
	for name, w := range wheels {
		seen := make([]bool, Base)
		for _, v := range codePoints(w.cipher) {
			if v < 0 || v >= Base {
				t.Fatalf("wheel %s: value %d out of range", name, v)
			}
			if seen[v] {
				t.Fatalf("wheel %s: value %d appears twice", name, v)
			}
			seen[v] = true
		}
	}
}

func TestReflectors_AreFixedPointFreeInvolutions(t *testing.T) {
	for name, s := range reflectors {
		table := codePoints(s)
		for i, v := range table {
			if v == i {
				t.Errorf("reflector %s: fixed point at %d", name, i)
			}
			if table[v] != i {
				t.Errorf("reflector %s: not an involution at %d", name, i)
			}
		}
	}
}

func TestWheels_TurnoverNotches(t *testing.T) {
	// The wheel knocks its neighbor on when it steps onto the letter
	// after the historical turnover position.
	tests := []struct {
		wheel string
		notch int
	}{
		{"I", 'R' - 'A'},
		{"II", 'F' - 'A'},
		{"III", 'W' - 'A'},
		{"IV", 'K' - 'A'},
		{"V", 'A' - 'A'},
	}
	for _, tt := range tests {
		knocks := 0
		r, err := Rotor(tt.wheel)
		if err != nil {
			t.Fatalf("wheel %s: %v", tt.wheel, err)
		}
		r.SetTurnover(func(n int) { knocks += n })
		for i := 0; i < Base; i++ {
			before := knocks
			p := r.Advance()
			if knocks != before && p != tt.notch {
				t.Fatalf("wheel %s knocked at position %d, want %d", tt.wheel, p, tt.notch)
			}
		}
		if knocks != 1 {
			t.Fatalf("wheel %s: %d knocks per revolution, want 1", tt.wheel, knocks)
		}
	}
}

func TestRotor_UnknownWheel(t *testing.T) {
	if _, err := Rotor("VI"); err == nil {
		t.Error("expected error for unknown wheel VI")
	}
}

func TestReflector_UnknownName(t *testing.T) {
	if _, err := Reflector("A"); err == nil {
		t.Error("expected error for unknown reflector A")
	}
}

func TestRotor_NamesAreCaseAndSpaceInsensitive(t *testing.T) {
	if _, err := Rotor(" iii "); err != nil {
		t.Errorf("wheel ' iii ' rejected: %v", err)
	}
	if _, err := Reflector("b"); err != nil {
		t.Errorf("reflector 'b' rejected: %v", err)
	}
}

func buildMachine(t *testing.T) *machine.Machine {
	t.Helper()
	rotors := make([]*rotor.Rotor, 0, 3)
	for _, name := range []string{"III", "II", "I"} {
		r, err := Rotor(name)
		if err != nil {
			t.Fatalf("wheel %s: %v", name, err)
		}
		rotors = append(rotors, r)
	}
	refl, err := Reflector("B")
	if err != nil {
		t.Fatalf("reflector B: %v", err)
	}
	m, err := machine.New(rotors, refl)
	if err != nil {
		t.Fatalf("machine: %v", err)
	}
	return m
}

func TestMachine_IsReciprocal(t *testing.T) {
	plaintext := []int{0, 13, 8, 6, 12, 0, 17, 4, 21, 4, 0, 11, 18}
	enc := buildMachine(t)
	ciphertext := make([]int, len(plaintext))
	for i, v := range plaintext {
		ciphertext[i] = enc.EncodeNext(v)
	}

	dec := buildMachine(t)
	for i, v := range ciphertext {
		if got := dec.EncodeNext(v); got != plaintext[i] {
			t.Fatalf("letter %d: deciphered to %d, want %d", i, got, plaintext[i])
		}
	}
}

func TestMachine_NeverEnciphersToItself(t *testing.T) {
	// A consequence of the fixed-point-free reflector: no letter maps to
	// itself, the classic weakness of the design.
	m := buildMachine(t)
	for i := 0; i < 200; i++ {
		v := i % Base
		if m.EncodeNext(v) == v {
			t.Fatalf("letter %d enciphered to itself at step %d", v, i)
		}
	}
}
