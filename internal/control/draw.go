package control

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	statusColor = color.RGBA{R: 255, G: 255, A: 255} // yellow
	footerColor = color.RGBA{B: 255, A: 255}         // blue
	shadeColor  = color.RGBA{A: 255}
)

const statusFont = gocv.FontHersheySimplex

func drawable(frame *gocv.Mat) bool {
	return frame != nil && !frame.Empty()
}

// drawStatus writes the mode/lock line in the top-left corner.
func drawStatus(frame *gocv.Mat, text string) {
	if !drawable(frame) {
		return
	}
	gocv.PutText(frame, text, image.Pt(10, 30), statusFont, 0.7, statusColor, 2)
}

// drawFooter writes a line in the bottom-left corner.
func drawFooter(frame *gocv.Mat, text string, scale float64) {
	if !drawable(frame) {
		return
	}
	gocv.PutText(frame, text, image.Pt(10, frame.Rows()-20), statusFont, scale, footerColor, 2)
}

// darkenCircle blends a filled black circle into frame with the given
// opacity.
func darkenCircle(frame *gocv.Mat, center image.Point, radius int, alpha float64) {
	if !drawable(frame) {
		return
	}
	overlay := frame.Clone()
	defer overlay.Close()

	gocv.Circle(&overlay, center, radius, shadeColor, -1)
	gocv.AddWeighted(overlay, alpha, *frame, 1-alpha, 0, frame)
}
