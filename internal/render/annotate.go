// Package render draws accessible-tree geometry into images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/chrishoke/access-bridge-explorer/internal/model"
)

// LabelMode controls what text is drawn on each rendered node.
type LabelMode int

const (
	// LabelRoles draws the node's role.
	LabelRoles LabelMode = iota
	// LabelCoords draws "(x,y)" screen-absolute center coordinates.
	LabelCoords
)

// RenderTree draws the bounding boxes of a flattened node list onto a
// fresh canvas sized to windowBounds ([x, y, w, h] in screen points).
// Node bounds are screen-absolute and are shifted window-relative.
func RenderTree(nodes []model.FlatNode, windowBounds [4]int, mode LabelMode) (*image.RGBA, error) {
	w, h := windowBounds[2], windowBounds[3]
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("window has no renderable area: %dx%d", w, h)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 100}         // Red with transparency
	textColor := color.RGBA{R: 0, G: 0, B: 0, A: 255}          // Black
	outlineColor := color.RGBA{R: 255, G: 255, B: 255, A: 200} // White halo

	for _, n := range nodes {
		drawNodeBox(rgba, n, windowBounds[0], windowBounds[1], boxColor, textColor, outlineColor, mode)
	}
	return rgba, nil
}

// drawNodeBox draws a bounding box and label for a single node.
// winX, winY are the window origin in screen points.
func drawNodeBox(img *image.RGBA, n model.FlatNode, winX, winY int, boxColor, textColor, outlineColor color.Color, mode LabelMode) {
	bounds := n.Bounds
	if bounds[2] == 0 || bounds[3] == 0 {
		return // off-screen or unreadable node
	}
	x := bounds[0] - winX
	y := bounds[1] - winY
	w := bounds[2]
	h := bounds[3]

	centerX := x + w/2
	centerY := y + h/2

	drawRectangle(img, x, y, x+w, y+h, boxColor)

	var label string
	switch mode {
	case LabelCoords:
		label = fmt.Sprintf("(%d,%d)", bounds[0]+bounds[2]/2, bounds[1]+bounds[3]/2)
	default: // LabelRoles
		label = n.Role
	}
	// A label wider or taller than its box would spill over the box edges
	// and the neighbouring nodes; small nodes get the box only.
	if len(label)*7 > w || 13 > h {
		return
	}
	drawTextWithOutline(img, label, centerX, centerY, textColor, outlineColor)
}

// isWithinBounds checks if a point is within the image bounds
func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline on the image
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()

	// Clamp to image bounds
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}

	if x2 <= x1 || y2 <= y1 {
		return // Empty rectangle
	}

	// Draw top and bottom lines
	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}

	// Draw left and right lines
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text with an outline for better visibility
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13 characters are 7 pixels wide, 13 pixels tall
	textWidth := len(text) * 7
	textHeight := 13

	// Offset position to center the text at (x, y)
	offsetX := x - textWidth/2
	offsetY := y - textHeight/2

	// Draw outline (8 directions around the text)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue // Skip center, we'll draw it as main text
			}
			p := fixed.Point26_6{
				X: fixed.Int26_6((offsetX + dx) * 64),
				Y: fixed.Int26_6((offsetY + dy) * 64),
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot:  p,
			}
			d.DrawString(text)
		}
	}

	// Draw main text
	point := fixed.Point26_6{
		X: fixed.Int26_6(offsetX * 64),
		Y: fixed.Int26_6(offsetY * 64),
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  point,
	}
	d.DrawString(text)
}
