package rotor

import (
	"testing"

	"github.com/jgardner/enigma/machine/bitset"
)

// shiftTable returns the identity permutation of [0, base) shifted by k.
func shiftTable(base, k int) []int {
	t := make([]int, base)
	for i := range t {
		t[i] = (i + k) % base
	}
	return t
}

func mustNotches(t *testing.T, width int, positions ...int) *bitset.Bits {
	t.Helper()
	b, err := bitset.FromPositions(width, positions...)
	if err != nil {
		t.Fatalf("building notch set: %v", err)
	}
	return b
}

func TestNew_DerivesInverseTable(t *testing.T) {
	cipher := []int{4, 10, 12, 5, 11, 6, 3, 16, 21, 25, 13, 19, 14,
		22, 24, 7, 23, 20, 18, 15, 0, 8, 1, 17, 2, 9}
	r, err := New(cipher, nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// At position zero the reverse cipher undoes the forward cipher.
	for v := 0; v < r.Base(); v++ {
		if got := r.ReverseCipher(r.ForwardCipher(v)); got != v {
			t.Fatalf("reverse(forward(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestNew_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		cipher  []int
		notches *bitset.Bits
	}{
		{"empty table", []int{}, nil},
		{"value out of range", []int{0, 1, 3}, nil},
		{"negative value", []int{0, -1, 2}, nil},
		{"duplicate value", []int{0, 1, 1}, nil},
		{"notch width mismatch", shiftTable(26, 1), bitset.New(25)},
	}
	for _, tt := range tests {
		if _, err := New(tt.cipher, tt.notches, nil); err == nil {
			t.Errorf("%s: expected construction error", tt.name)
		}
	}
}

func TestAdvance_WrapsAndStaysInRange(t *testing.T) {
	r, err := New(shiftTable(26, 1), nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 3*26; i++ {
		p := r.Advance()
		if p < 0 || p >= 26 {
			t.Fatalf("position out of range after %d steps: %d", i+1, p)
		}
		if p != r.Position() {
			t.Fatalf("Advance returned %d but Position reports %d", p, r.Position())
		}
	}
	if r.Position() != 0 {
		t.Fatalf("after three full revolutions position = %d, want 0", r.Position())
	}
}

func TestAdvance_KnocksOnNotch(t *testing.T) {
	knocks := 0
	r, err := New(shiftTable(26, 1), mustNotches(t, 26, 5), func(n int) {
		knocks += n
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		r.Advance()
	}
	if knocks != 0 {
		t.Fatalf("knocked before reaching the notch: %d", knocks)
	}
	r.Advance() // moves onto position 5
	if knocks != 1 {
		t.Fatalf("knocks after reaching notch: got %d, want 1", knocks)
	}
	for i := 0; i < 26; i++ {
		r.Advance()
	}
	if knocks != 2 {
		t.Fatalf("knocks after one more revolution: got %d, want 2", knocks)
	}
}

func TestSetTurnover_ReplacesNotStacks(t *testing.T) {
	first, second := 0, 0
	r, err := New(shiftTable(26, 1), mustNotches(t, 26, 1), func(n int) {
		first += n
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r.SetTurnover(func(n int) { second += n })
	r.Advance() // onto the notch at 1
	if first != 0 {
		t.Fatalf("replaced callback still invoked: %d", first)
	}
	if second != 1 {
		t.Fatalf("active callback: got %d knocks, want 1", second)
	}
}

func TestAdvanceBy_MatchesSingleSteps(t *testing.T) {
	const base = 26
	notchSets := [][]int{
		nil,
		{0},
		{5, 10},
		{0, 13, 25},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
			17, 18, 19, 20, 21, 22, 23, 24, 25},
	}
	for _, notches := range notchSets {
		for start := 0; start < base; start++ {
			for steps := 0; steps <= 3*base; steps++ {
				batchKnocks := 0
				batch, err := New(shiftTable(base, 1),
					mustNotches(t, base, notches...),
					func(n int) { batchKnocks += n })
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				if err := batch.SetPosition(start); err != nil {
					t.Fatalf("SetPosition(%d): %v", start, err)
				}

				stepKnocks := 0
				single, err := New(shiftTable(base, 1),
					mustNotches(t, base, notches...),
					func(n int) { stepKnocks += n })
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				if err := single.SetPosition(start); err != nil {
					t.Fatalf("SetPosition(%d): %v", start, err)
				}

				batch.AdvanceBy(steps)
				for i := 0; i < steps; i++ {
					single.Advance()
				}

				if batch.Position() != single.Position() {
					t.Fatalf("notches %v start %d steps %d: batch position %d, single %d",
						notches, start, steps, batch.Position(), single.Position())
				}
				if batchKnocks != stepKnocks {
					t.Fatalf("notches %v start %d steps %d: batch knocks %d, single %d",
						notches, start, steps, batchKnocks, stepKnocks)
				}
			}
		}
	}
}

func TestAdvanceBy_ZeroStepsDoesNotKnock(t *testing.T) {
	called := false
	r, err := New(shiftTable(26, 1), mustNotches(t, 26, 0), func(int) {
		called = true
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p := r.AdvanceBy(0); p != 0 {
		t.Fatalf("AdvanceBy(0) moved to %d", p)
	}
	if called {
		t.Fatal("AdvanceBy(0) invoked the turnover callback")
	}
}

func TestAdvanceBy_FullRevolutionKnocksNotchCount(t *testing.T) {
	knocks := 0
	r, err := New(shiftTable(26, 1), mustNotches(t, 26, 3, 9, 20), func(n int) {
		knocks += n
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r.AdvanceBy(26)
	if knocks != 3 {
		t.Fatalf("one revolution: got %d knocks, want %d", knocks, 3)
	}
	if r.Position() != 0 {
		t.Fatalf("one revolution: position %d, want 0", r.Position())
	}
}

func TestAdvanceBy_CallbackInvokedOnceWithTotal(t *testing.T) {
	calls := 0
	r, err := New(shiftTable(26, 1), mustNotches(t, 26, 1, 2, 3), func(n int) {
		calls++
		if n != 3 {
			t.Fatalf("callback count: got %d, want 3", n)
		}
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r.AdvanceBy(5)
	if calls != 1 {
		t.Fatalf("callback invoked %d times, want 1", calls)
	}
}

func TestCipher_OffsetByPosition(t *testing.T) {
	r, err := New(shiftTable(26, 1), nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.SetPosition(3); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	// forward[(3+4) mod 26] = 8 for the shift-by-one table.
	if got := r.ForwardCipher(4); got != 8 {
		t.Fatalf("ForwardCipher(4) at position 3 = %d, want 8", got)
	}
	// reverse[(3+4) mod 26] = 6.
	if got := r.ReverseCipher(4); got != 6 {
		t.Fatalf("ReverseCipher(4) at position 3 = %d, want 6", got)
	}
}

func TestCipher_PanicsOutOfRange(t *testing.T) {
	r, err := New(shiftTable(26, 1), nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out of range code point")
		}
	}()
	r.ForwardCipher(26)
}

func TestSetPosition_Validates(t *testing.T) {
	r, err := New(shiftTable(26, 1), nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.SetPosition(26); err == nil {
		t.Fatal("expected error for position 26")
	}
	if err := r.SetPosition(-1); err == nil {
		t.Fatal("expected error for negative position")
	}
}
