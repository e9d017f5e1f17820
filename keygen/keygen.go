// keygen derives wide rotor machines from a passphrase.  The derived
// machines have one code point per byte value, so a byte stream can be fed
// straight through EncodeNext.
package keygen

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/jgardner/enigma/machine"
	"github.com/jgardner/enigma/machine/bitset"
	"github.com/jgardner/enigma/machine/rotor"
)

const (
	// Base is the code point range of derived machines.
	Base = 256

	// DefaultRotorCount is the rotor count used when the caller does not
	// choose one.
	DefaultRotorCount = 3

	// notchesPerRotor keeps the turnover rate close to the historical
	// wheels (about one notch per thirteen code points) so the slow
	// rotors keep moving.
	notchesPerRotor = 20
)

// Machine derives a base-256 machine with rotorCount rotors from secret.
// The same secret and rotor count always yield the same machine, with all
// rotors at position zero.  The derived reflector is a fixed-point-free
// involution, so the machine is reciprocal.
func Machine(secret []byte, rotorCount int) (*machine.Machine, error) {
	if rotorCount < 1 {
		return nil, fmt.Errorf("keygen: rotor count %d must be at least 1", rotorCount)
	}
	s := newStream(secret)
	rotors := make([]*rotor.Rotor, rotorCount)
	for i := range rotors {
		cipher := s.perm(Base)
		notches := bitset.New(Base)
		for _, p := range s.perm(Base)[:notchesPerRotor] {
			notches.Set(p)
		}
		r, err := rotor.New(cipher, notches, nil)
		if err != nil {
			return nil, err
		}
		rotors[i] = r
	}
	return machine.New(rotors, s.involution(Base))
}

// Fingerprint returns a short stable identifier for a secret, usable as a
// key into the message counter file without storing the secret itself.
func Fingerprint(secret []byte) string {
	var sum [16]byte
	h := sha3.NewShake256()
	h.Write([]byte("enigma fingerprint"))
	h.Write(secret)
	h.Read(sum[:])
	return hex.EncodeToString(sum[:])
}

// stream is a deterministic byte source drawn from SHAKE-256 over the
// secret.
type stream struct {
	shake sha3.ShakeHash
}

func newStream(secret []byte) *stream {
	h := sha3.NewShake256()
	h.Write(secret)
	return &stream{shake: h}
}

// intn returns a keystream value uniform over [0, n) using rejection
// sampling over a sixteen bit draw.
func (s *stream) intn(n int) int {
	limit := (1 << 16) / n * n
	var b [2]byte
	for {
		s.shake.Read(b[:])
		v := int(b[0])<<8 | int(b[1])
		if v < limit {
			return v % n
		}
	}
}

// perm returns a keystream-shuffled permutation of [0, n).
func (s *stream) perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// involution returns a fixed-point-free involution over [0, n) built by
// pairing up the elements of a keystream-shuffled permutation.  n must be
// even.
func (s *stream) involution(n int) []int {
	p := s.perm(n)
	table := make([]int, n)
	for i := 0; i < n; i += 2 {
		table[p[i]] = p[i+1]
		table[p[i+1]] = p[i]
	}
	return table
}
