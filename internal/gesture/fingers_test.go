package gesture

import (
	"image"
	"testing"

	"github.com/ayusman/airdeck/internal/detector"
)

func pixels(hand detector.HandLandmarks) []image.Point {
	return hand.Pixels(1280, 720)
}

func TestFingers(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want string
	}{
		{name: "pointer", hand: detector.PointerLandmarks(), want: "01100"},
		{name: "draw", hand: detector.DrawLandmarks(), want: "01000"},
		{name: "erase", hand: detector.EraseLandmarks(), want: "01110"},
		{name: "thumb out", hand: detector.ThumbOutLandmarks(), want: "10000"},
		{name: "pinky up", hand: detector.PinkyUpLandmarks(), want: "00001"},
		{name: "open palm", hand: detector.OpenPalmLandmarks(), want: "11111"},
		{name: "fist", hand: detector.PoseLandmarks([5]bool{}), want: "00000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Fingers(pixels(tt.hand), HandRight)
			if !ok {
				t.Fatal("expected a hand")
			}
			if got := v.String(); got != tt.want {
				t.Errorf("Fingers() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFingers_NoHand(t *testing.T) {
	if _, ok := Fingers(nil, HandRight); ok {
		t.Error("expected ok=false for nil points")
	}
	if _, ok := Fingers(make([]image.Point, 5), HandRight); ok {
		t.Error("expected ok=false for incomplete points")
	}
}

func TestFingers_ThumbUsesXAxis(t *testing.T) {
	points := make([]image.Point, detector.NumLandmarks)
	// All fingers curled: tips below their PIP joints.
	for _, tip := range tipIDs[1:] {
		points[tip] = image.Point{X: 100, Y: 300}
		points[tip-2] = image.Point{X: 100, Y: 200}
	}
	points[detector.ThumbIP] = image.Point{X: 200, Y: 300}

	tests := []struct {
		name    string
		tipX    int
		hand    Handedness
		wantOut bool
	}{
		{name: "right hand tip beyond joint", tipX: 250, hand: HandRight, wantOut: true},
		{name: "right hand tip inside joint", tipX: 150, hand: HandRight, wantOut: false},
		{name: "right hand tip level with joint", tipX: 200, hand: HandRight, wantOut: false},
		{name: "left hand tip beyond joint", tipX: 150, hand: HandLeft, wantOut: true},
		{name: "left hand tip inside joint", tipX: 250, hand: HandLeft, wantOut: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points[detector.ThumbTip] = image.Point{X: tt.tipX, Y: 0}

			v, ok := Fingers(points, tt.hand)
			if !ok {
				t.Fatal("expected a hand")
			}
			if v[Thumb] != tt.wantOut {
				t.Errorf("thumb extended = %v, want %v", v[Thumb], tt.wantOut)
			}
			want := "00000"
			if tt.wantOut {
				want = "10000"
			}
			if v.String() != want {
				t.Errorf("Fingers() = %s, want %s", v, want)
			}
		})
	}
}

func TestFingers_LevelTipIsCurled(t *testing.T) {
	hand := detector.DrawLandmarks()
	points := pixels(hand)
	points[detector.IndexTip].Y = points[detector.IndexPIP].Y

	v, _ := Fingers(points, HandRight)
	if v[Index] {
		t.Error("a tip level with its PIP joint should not count as extended")
	}
}

func TestParseHandedness(t *testing.T) {
	tests := []struct {
		in      string
		want    Handedness
		wantErr bool
	}{
		{in: "", want: HandRight},
		{in: "right", want: HandRight},
		{in: " Left ", want: HandLeft},
		{in: "both", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHandedness(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHandedness(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHandedness(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
