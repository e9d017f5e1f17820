package machine

import "fmt"

// Generator adapts a Machine into a bounded pseudo-random value stream.
// Each draw advances the machine, so generators sharing one machine observe
// each other's draws; the machine must outlive the generator.  The sequence
// is fully determined by the machine's rotor positions and the seed.
type Generator struct {
	machine *Machine
	val     int
}

// NewGenerator creates a generator drawing from m, starting from seed.  The
// seed must lie in [0, base).
func NewGenerator(m *Machine, seed int) (*Generator, error) {
	if seed < 0 || seed >= m.base {
		return nil, fmt.Errorf("machine: seed %d out of range [0,%d)", seed, m.base)
	}
	return &Generator{machine: m, val: seed}, nil
}

// Min returns the smallest value the generator can produce.
func (g *Generator) Min() int {
	return 0
}

// Max returns the largest value the generator can produce.
func (g *Generator) Max() int {
	return g.machine.base - 1
}

// Next draws the next value of the sequence, advancing the machine.
func (g *Generator) Next() int {
	g.val = g.machine.EncodeNext(g.val)
	return g.val
}

// Intn returns a value in [0, n).  Draws are combined into base-ary digits
// and values above the largest multiple of n are rejected, so no part of
// the range is favored over another.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("machine: Intn bound %d must be positive", n))
	}
	base := g.machine.base
	span := 1
	for span < n {
		span *= base
	}
	limit := span - span%n
	for {
		v := 0
		for digits := span; digits > 1; digits /= base {
			v = v*base + g.Next()
		}
		if v < limit {
			return v % n
		}
	}
}

// Shuffle pseudo-randomly permutes n elements using swap, in the manner of
// rand.Shuffle.
func (g *Generator) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		swap(i, j)
	}
}
