package gesture

import "testing"

// feed runs labels through s and returns the stable output of every frame.
func feed(s *Stabilizer, labels ...Label) []Label {
	out := make([]Label, len(labels))
	for i, l := range labels {
		out[i] = s.Update(l)
	}
	return out
}

func repeat(l Label, n int) []Label {
	out := make([]Label, n)
	for i := range out {
		out[i] = l
	}
	return out
}

func TestStabilizer_HoldBoundary(t *testing.T) {
	t.Run("held exactly hold frames never confirms", func(t *testing.T) {
		s := NewStabilizer(5)
		feed(s, None, None)

		out := feed(s, repeat(Draw, 5)...)
		for i, got := range out {
			if got != None {
				t.Errorf("frame %d: stable = %s, want none", i+1, got)
			}
		}

		if got := s.Update(None); got != None {
			t.Errorf("after release: stable = %s, want none", got)
		}
	})

	t.Run("held one more frame confirms and stays confirmed", func(t *testing.T) {
		s := NewStabilizer(5)
		feed(s, None)

		out := feed(s, repeat(Next, 7)...)
		for i := 0; i < 5; i++ {
			if out[i] != None {
				t.Errorf("frame %d: stable = %s, want none", i+1, out[i])
			}
		}
		if out[5] != Next {
			t.Errorf("frame 6: stable = %s, want next", out[5])
		}
		if out[6] != Next {
			t.Errorf("frame 7: stable = %s, want next", out[6])
		}
	})
}

func TestStabilizer_SingleGlitchDoesNotFlip(t *testing.T) {
	s := NewStabilizer(5)
	feed(s, repeat(Pointer, 10)...)
	if s.Stable() != Pointer {
		t.Fatalf("expected pointer to be confirmed, got %s", s.Stable())
	}

	if got := s.Update(Draw); got != None {
		t.Errorf("glitch frame: stable = %s, want none", got)
	}

	out := feed(s, repeat(Pointer, 6)...)
	if out[4] != None {
		t.Errorf("frame 5 after glitch: stable = %s, want none", out[4])
	}
	if out[5] != Pointer {
		t.Errorf("frame 6 after glitch: stable = %s, want pointer", out[5])
	}
}

func TestStabilizer_RunCountsConsecutiveFrames(t *testing.T) {
	s := NewStabilizer(5)

	feed(s, Draw, Draw, Draw)
	if s.Run() != 3 || s.Previous() != Draw {
		t.Errorf("run = %d previous = %s, want 3 draw", s.Run(), s.Previous())
	}

	s.Update(Erase)
	if s.Run() != 1 || s.Previous() != Erase {
		t.Errorf("run = %d previous = %s, want 1 erase", s.Run(), s.Previous())
	}

	feed(s, repeat(Erase, 100)...)
	if s.Run() != 101 {
		t.Errorf("run = %d, want 101 (never reset on confirmation)", s.Run())
	}
}

func TestStabilizer_ZeroHold(t *testing.T) {
	s := NewStabilizer(0)
	if got := s.Update(Next); got != Next {
		t.Errorf("stable = %s, want next with no hold", got)
	}
}

func TestStabilizer_NegativeHoldClamped(t *testing.T) {
	s := NewStabilizer(-3)
	if s.HoldFrames() != 0 {
		t.Errorf("HoldFrames() = %d, want 0", s.HoldFrames())
	}
}

func TestStabilizer_EmptyLabelIsNone(t *testing.T) {
	s := NewStabilizer(1)
	feed(s, "", "", "")
	if s.Previous() != None {
		t.Errorf("previous = %q, want none", s.Previous())
	}
}

func TestStabilizer_Reset(t *testing.T) {
	s := NewStabilizer(2)
	feed(s, repeat(Pointer, 5)...)

	s.Reset()

	if s.Stable() != None || s.Previous() != None || s.Run() != 0 {
		t.Errorf("after Reset: stable=%s previous=%s run=%d", s.Stable(), s.Previous(), s.Run())
	}
	if got := s.Update(Pointer); got != None {
		t.Errorf("first frame after Reset: stable = %s, want none", got)
	}
}
