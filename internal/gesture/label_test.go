package gesture

import (
	"testing"

	"github.com/ayusman/airdeck/internal/detector"
)

func TestMap(t *testing.T) {
	tests := []struct {
		vector FingerVector
		want   Label
	}{
		{FingerVector{false, true, true, false, false}, Pointer},
		{FingerVector{false, true, false, false, false}, Draw},
		{FingerVector{false, true, true, true, false}, Erase},
		{FingerVector{true, false, false, false, false}, Next},
		{FingerVector{false, false, false, false, true}, Previous},
		{FingerVector{true, true, true, true, true}, None},
		{FingerVector{}, None},
		{FingerVector{true, true, false, false, false}, None},
	}

	for _, tt := range tests {
		t.Run(tt.vector.String(), func(t *testing.T) {
			if got := Map(tt.vector); got != tt.want {
				t.Errorf("Map(%s) = %s, want %s", tt.vector, got, tt.want)
			}
		})
	}
}

func TestMap_ClosedWorld(t *testing.T) {
	defined := 0
	for bits := 0; bits < 1<<NumFingers; bits++ {
		var v FingerVector
		for f := 0; f < int(NumFingers); f++ {
			v[f] = bits&(1<<f) != 0
		}

		got := Map(v)
		if got == "" {
			t.Fatalf("Map(%s) returned an empty label", v)
		}
		if got != None {
			defined++
			if pattern, _ := got.Pattern(); pattern != v {
				t.Errorf("Map(%s) = %s whose pattern is %s", v, got, pattern)
			}
		}
	}

	if defined != len(Labels) {
		t.Errorf("expected %d mapped vectors, got %d", len(Labels), defined)
	}
}

func TestLabel_Pattern(t *testing.T) {
	for _, l := range Labels {
		v, ok := l.Pattern()
		if !ok {
			t.Errorf("%s has no pattern", l)
			continue
		}
		if Map(v) != l {
			t.Errorf("Map(%s.Pattern()) = %s", l, Map(v))
		}
	}

	if _, ok := None.Pattern(); ok {
		t.Error("None should have no pattern")
	}
}

func TestLabel_Continuous(t *testing.T) {
	continuous := map[Label]bool{
		Pointer:  true,
		Draw:     true,
		Erase:    false,
		Next:     false,
		Previous: false,
		None:     false,
	}
	for l, want := range continuous {
		if got := l.Continuous(); got != want {
			t.Errorf("%s.Continuous() = %v, want %v", l, got, want)
		}
	}
}

func TestRecognize(t *testing.T) {
	tests := []struct {
		name string
		hand *detector.HandLandmarks
		want Label
	}{
		{name: "no hand", hand: nil, want: None},
		{name: "pointer", hand: ptr(detector.PointerLandmarks()), want: Pointer},
		{name: "draw", hand: ptr(detector.DrawLandmarks()), want: Draw},
		{name: "erase", hand: ptr(detector.EraseLandmarks()), want: Erase},
		{name: "next", hand: ptr(detector.ThumbOutLandmarks()), want: Next},
		{name: "previous", hand: ptr(detector.PinkyUpLandmarks()), want: Previous},
		{name: "open palm", hand: ptr(detector.OpenPalmLandmarks()), want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recognize(tt.hand.Pixels(1280, 720), HandRight); got != tt.want {
				t.Errorf("Recognize() = %s, want %s", got, tt.want)
			}
		})
	}
}

func ptr(h detector.HandLandmarks) *detector.HandLandmarks {
	return &h
}
