package knob

import "testing"

func sample(v int) Sample[int] {
	return Sample[int]{Value: v, OK: true}
}

func TestRing_NilSafe(t *testing.T) {
	var r *ring[int]

	// All operations should be safe on nil
	r.push(sample(1))
	r.clear()

	if r.all() != nil {
		t.Error("expected nil from nil ring")
	}
	if r.window() != nil {
		t.Error("expected nil window from nil ring")
	}
	if r.len() != 0 {
		t.Error("expected zero length from nil ring")
	}
}

func TestRing_ZeroSize(t *testing.T) {
	if r := newRing[int](0); r != nil {
		t.Error("expected nil ring for size 0")
	}
	if r := newRing[int](-1); r != nil {
		t.Error("expected nil ring for negative size")
	}
}

func TestRing_FillsWithoutWrapping(t *testing.T) {
	r := newRing[int](3)
	r.push(sample(1))
	r.push(sample(2))

	got := r.all()
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Value != 1 || got[1].Value != 2 {
		t.Errorf("expected oldest first, got %v", got)
	}
}

func TestRing_WrapsAndEvictsOldest(t *testing.T) {
	r := newRing[int](3)
	for i := 1; i <= 5; i++ {
		r.push(sample(i))
	}

	got := r.all()
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	for i, want := range []int{3, 4, 5} {
		if got[i].Value != want {
			t.Errorf("slot %d = %d, want %d", i, got[i].Value, want)
		}
	}
	if r.len() != 3 {
		t.Errorf("expected len 3, got %d", r.len())
	}
}

func TestRing_WindowPadsLeading(t *testing.T) {
	r := newRing[int](4)
	r.push(sample(7))
	r.push(Sample[int]{})

	w := r.window()
	if len(w) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(w))
	}
	if w[0].OK || w[1].OK {
		t.Error("expected leading slots to be unfilled")
	}
	if !w[2].OK || w[2].Value != 7 {
		t.Errorf("expected slot 2 to hold 7, got %+v", w[2])
	}
	if w[3].OK {
		t.Error("expected pushed empty sample to stay empty")
	}
}

func TestRing_Clear(t *testing.T) {
	r := newRing[int](2)
	r.push(sample(1))
	r.push(sample(2))
	r.push(sample(3))
	r.clear()

	if r.all() != nil {
		t.Error("expected empty ring after clear")
	}

	r.push(sample(4))
	got := r.all()
	if len(got) != 1 || got[0].Value != 4 {
		t.Errorf("expected [4] after clear and push, got %v", got)
	}
}
