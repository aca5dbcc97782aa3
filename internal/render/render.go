// Package render composes the presenter output frame: slide, annotations,
// pointer marker and webcam thumbnail.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdeck/internal/detector"
	"github.com/ayusman/airdeck/internal/presentation"
)

// Default rendering settings
const (
	DefaultThickness     = 12
	DefaultPointerRadius = 12
	ThumbnailWidth       = 320
	ThumbnailHeight      = 180

	// maskThreshold separates drawn canvas pixels from the background.
	maskThreshold = 50
)

// DefaultColor is the annotation color, red.
var DefaultColor = color.RGBA{R: 255, A: 255}

// handConnections are the landmark pairs drawn as the hand skeleton.
var handConnections = [][2]int{
	{detector.Wrist, detector.ThumbCMC}, {detector.ThumbCMC, detector.ThumbMCP},
	{detector.ThumbMCP, detector.ThumbIP}, {detector.ThumbIP, detector.ThumbTip},
	{detector.Wrist, detector.IndexMCP}, {detector.IndexMCP, detector.IndexPIP},
	{detector.IndexPIP, detector.IndexDIP}, {detector.IndexDIP, detector.IndexTip},
	{detector.IndexMCP, detector.MiddleMCP}, {detector.MiddleMCP, detector.MiddlePIP},
	{detector.MiddlePIP, detector.MiddleDIP}, {detector.MiddleDIP, detector.MiddleTip},
	{detector.MiddleMCP, detector.RingMCP}, {detector.RingMCP, detector.RingPIP},
	{detector.RingPIP, detector.RingDIP}, {detector.RingDIP, detector.RingTip},
	{detector.RingMCP, detector.PinkyMCP}, {detector.Wrist, detector.PinkyMCP},
	{detector.PinkyMCP, detector.PinkyPIP}, {detector.PinkyPIP, detector.PinkyDIP},
	{detector.PinkyDIP, detector.PinkyTip},
}

// Renderer draws annotation state onto slides.
type Renderer struct {
	Color         color.RGBA
	Thickness     int
	PointerRadius int
	// Thumbnail toggles the webcam overlay in the top-right corner.
	Thumbnail bool
}

// NewRenderer returns a Renderer with the default look.
func NewRenderer() *Renderer {
	return &Renderer{
		Color:         DefaultColor,
		Thickness:     DefaultThickness,
		PointerRadius: DefaultPointerRadius,
		Thumbnail:     true,
	}
}

// BGR converts a blue, green, red triple into a drawing color.
func BGR(b, g, r uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Compose returns a new frame: slide with the snapshot's strokes burned in,
// the pointer marker when the stable gesture asks for one, and webcam
// shrunk into the top-right corner. slide and webcam are not modified;
// webcam may be nil. The caller owns the result.
func (r *Renderer) Compose(slide gocv.Mat, snap *presentation.Snapshot, webcam *gocv.Mat) gocv.Mat {
	out := slide.Clone()
	if snap == nil || out.Empty() {
		return out
	}

	if snap.ShowPointer() {
		gocv.Circle(&out, snap.Tip, r.PointerRadius, r.Color, -1)
	}

	if hasSegments(snap.Strokes) {
		r.overlayStrokes(&out, snap.Strokes)
	}

	if r.Thumbnail && webcam != nil && !webcam.Empty() {
		overlayThumbnail(&out, *webcam)
	}

	return out
}

// overlayStrokes draws strokes on a black canvas and merges it onto out:
// slide pixels under the ink are cleared, then the ink is added.
func (r *Renderer) overlayStrokes(out *gocv.Mat, strokes [][]image.Point) {
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), out.Rows(), out.Cols(), gocv.MatTypeCV8UC3)
	defer canvas.Close()

	for _, stroke := range strokes {
		for j := 1; j < len(stroke); j++ {
			gocv.Line(&canvas, stroke[j-1], stroke[j], r.Color, r.Thickness)
		}
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(canvas, &gray, gocv.ColorBGRToGray)

	inv := gocv.NewMat()
	defer inv.Close()
	gocv.Threshold(gray, &inv, maskThreshold, 255, gocv.ThresholdBinaryInv)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.CvtColor(inv, &mask, gocv.ColorGrayToBGR)

	gocv.BitwiseAnd(*out, mask, out)
	gocv.BitwiseOr(*out, canvas, out)
}

func overlayThumbnail(out *gocv.Mat, webcam gocv.Mat) {
	w, h := ThumbnailWidth, ThumbnailHeight
	if out.Cols() < w || out.Rows() < h {
		return
	}

	thumb := gocv.NewMat()
	defer thumb.Close()
	gocv.Resize(webcam, &thumb, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

	roi := out.Region(image.Rect(out.Cols()-w, 0, out.Cols(), h))
	defer roi.Close()
	thumb.CopyTo(&roi)
}

// DrawHand draws the hand skeleton onto frame. points must be pixel
// coordinates in frame space; anything but a full hand is ignored.
func DrawHand(frame *gocv.Mat, points []image.Point) {
	if len(points) != detector.NumLandmarks {
		return
	}

	bone := color.RGBA{G: 255, A: 255}
	joint := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, c := range handConnections {
		gocv.Line(frame, points[c[0]], points[c[1]], bone, 2)
	}
	for _, p := range points {
		gocv.Circle(frame, p, 4, joint, -1)
	}
}

func hasSegments(strokes [][]image.Point) bool {
	for _, s := range strokes {
		if len(s) > 1 {
			return true
		}
	}
	return false
}
