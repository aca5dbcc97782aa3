package render

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdeck/internal/detector"
	"github.com/ayusman/airdeck/internal/gesture"
	"github.com/ayusman/airdeck/internal/presentation"
)

func whiteSlide(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)
}

// bgrAt returns the blue, green, red values of a pixel.
func bgrAt(m gocv.Mat, p image.Point) [3]uint8 {
	v := m.GetVecbAt(p.Y, p.X)
	return [3]uint8{v[0], v[1], v[2]}
}

func TestCompose_StrokesBurnedIn(t *testing.T) {
	slide := whiteSlide(640, 360)
	defer slide.Close()

	r := NewRenderer()
	r.Thumbnail = false
	snap := &presentation.Snapshot{
		Stable:  gesture.None,
		Strokes: [][]image.Point{{}, {{X: 50, Y: 200}, {X: 250, Y: 200}}},
	}

	out := r.Compose(slide, snap, nil)
	defer out.Close()

	if got := bgrAt(out, image.Pt(150, 200)); got != [3]uint8{0, 0, 255} {
		t.Errorf("stroke pixel = %v, want red", got)
	}
	if got := bgrAt(out, image.Pt(150, 300)); got != [3]uint8{255, 255, 255} {
		t.Errorf("background pixel = %v, want white", got)
	}
	if got := bgrAt(slide, image.Pt(150, 200)); got != [3]uint8{255, 255, 255} {
		t.Errorf("input slide was modified: %v", got)
	}
}

func TestCompose_PointerMarker(t *testing.T) {
	tests := []struct {
		stable gesture.Label
		want   bool
	}{
		{gesture.Pointer, true},
		{gesture.Draw, true},
		{gesture.Erase, false},
		{gesture.None, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.stable), func(t *testing.T) {
			slide := whiteSlide(640, 360)
			defer slide.Close()

			r := NewRenderer()
			r.Thumbnail = false
			out := r.Compose(slide, &presentation.Snapshot{Stable: tt.stable, Tip: image.Pt(100, 100)}, nil)
			defer out.Close()

			red := bgrAt(out, image.Pt(100, 100)) == [3]uint8{0, 0, 255}
			if red != tt.want {
				t.Errorf("marker drawn = %v, want %v", red, tt.want)
			}
		})
	}
}

func TestCompose_Thumbnail(t *testing.T) {
	slide := whiteSlide(1280, 720)
	defer slide.Close()
	webcam := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 720, 1280, gocv.MatTypeCV8UC3)
	defer webcam.Close()

	out := NewRenderer().Compose(slide, &presentation.Snapshot{}, &webcam)
	defer out.Close()

	if out.Cols() != 1280 || out.Rows() != 720 {
		t.Fatalf("output = %dx%d, want 1280x720", out.Cols(), out.Rows())
	}
	if got := bgrAt(out, image.Pt(1280-ThumbnailWidth/2, ThumbnailHeight/2)); got != [3]uint8{0, 0, 0} {
		t.Errorf("thumbnail pixel = %v, want black", got)
	}
	if got := bgrAt(out, image.Pt(100, 100)); got != [3]uint8{255, 255, 255} {
		t.Errorf("slide pixel = %v, want white", got)
	}
}

func TestCompose_NilSnapshot(t *testing.T) {
	slide := whiteSlide(64, 36)
	defer slide.Close()

	out := NewRenderer().Compose(slide, nil, nil)
	defer out.Close()

	if out.Cols() != 64 || out.Rows() != 36 {
		t.Errorf("output = %dx%d, want a copy of the slide", out.Cols(), out.Rows())
	}
}

func TestDrawHand(t *testing.T) {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 720, 1280, gocv.MatTypeCV8UC3)
	defer frame.Close()

	hand := detector.PointerLandmarks()
	points := hand.Pixels(1280, 720)
	DrawHand(&frame, points)

	if gocv.CountNonZero(channel(frame)) == 0 {
		t.Error("expected skeleton pixels")
	}

	blank := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 72, 128, gocv.MatTypeCV8UC3)
	defer blank.Close()
	DrawHand(&blank, points[:5])
	if gocv.CountNonZero(channel(blank)) != 0 {
		t.Error("partial hand should not be drawn")
	}
}

func TestBGR(t *testing.T) {
	c := BGR(1, 2, 3)
	if c.B != 1 || c.G != 2 || c.R != 3 || c.A != 255 {
		t.Errorf("BGR(1, 2, 3) = %+v", c)
	}
}

func channel(m gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(m, &gray, gocv.ColorBGRToGray)
	return gray
}
