package mask

import "testing"

func TestIdxMap(t *testing.T) {
	cases := []struct {
		r, c, want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{1, 1, 2},
		{2, 0, 3},
		{2, 1, 4},
		{2, 2, 5},
	}
	for _, tc := range cases {
		if got := IdxMap(tc.r, tc.c); got != tc.want {
			t.Errorf("IdxMap(%d,%d) = %d, want %d", tc.r, tc.c, got, tc.want)
		}
	}
}

func TestPackedLen(t *testing.T) {
	if got := PackedLen(4); got != 10 {
		t.Errorf("PackedLen(4) = %d, want 10", got)
	}
}

func TestSingleQubitExpandMonotonic(t *testing.T) {
	// n=3, obj=1: base k ranges over [0,4). Expansion must be strictly
	// increasing in k, and r1 = r0 | objMask must always exceed r0.
	s := SingleQubitGateMask(1, nil)
	prev := -1
	for k := 0; k < 4; k++ {
		r0, r1 := s.Rows(k)
		if r0 <= prev {
			t.Fatalf("expand not monotonic at k=%d: r0=%d prev=%d", k, r0, prev)
		}
		if r1 <= r0 {
			t.Errorf("r1 (%d) should exceed r0 (%d) at k=%d", r1, r0, k)
		}
		if r0&s.ObjMask != 0 {
			t.Errorf("r0=%d should have object bit clear", r0)
		}
		prev = r0
	}
}

func TestSingleQubitExpandCoversAllIndices(t *testing.T) {
	n := 3
	d := 1 << n
	s := SingleQubitGateMask(2, nil)
	seen := make(map[int]bool)
	for k := 0; k < d/2; k++ {
		r0, r1 := s.Rows(k)
		seen[r0] = true
		seen[r1] = true
	}
	if len(seen) != d {
		t.Fatalf("expected %d distinct indices, got %d", d, len(seen))
	}
}

func TestDoubleQubitExpandCoversAllIndices(t *testing.T) {
	n := 4
	d := 1 << n
	dq := DoubleQubitGateMask(0, 2, nil)
	seen := make(map[int]bool)
	for k := 0; k < d/4; k++ {
		r00, r01, r10, r11 := dq.Rows(k)
		seen[r00], seen[r01], seen[r10], seen[r11] = true, true, true, true
	}
	if len(seen) != d {
		t.Fatalf("expected %d distinct indices, got %d", d, len(seen))
	}
}

func TestDoubleQubitGateMaskOrderNormalized(t *testing.T) {
	a := DoubleQubitGateMask(3, 1, nil)
	b := DoubleQubitGateMask(1, 3, nil)
	if a.Obj0Mask != b.Obj0Mask || a.Obj1Mask != b.Obj1Mask {
		t.Errorf("DoubleQubitGateMask should normalize order: got %+v vs %+v", a, b)
	}
}

func TestSatisfies(t *testing.T) {
	s := SingleQubitGateMask(0, []int{1, 2})
	// ctrl mask = bits 1 and 2
	if !s.Satisfies(0b110) {
		t.Errorf("expected idx 0b110 to satisfy ctrl mask 0b110")
	}
	if s.Satisfies(0b100) {
		t.Errorf("expected idx 0b100 to fail ctrl mask 0b110")
	}
}
