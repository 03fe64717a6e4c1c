package render

import (
	"image/color"
	"testing"

	"github.com/chrishoke/access-bridge-explorer/internal/model"
)

func TestRenderTree_DrawsBoxEdges(t *testing.T) {
	nodes := []model.FlatNode{
		{Role: "push button", Bounds: [4]int{110, 120, 40, 20}},
	}
	img, err := RenderTree(nodes, [4]int{100, 100, 200, 150}, LabelRoles)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := img.Bounds().Dx(); got != 200 {
		t.Fatalf("expected canvas width 200, got %d", got)
	}

	// The box is window-relative: screen (110,120) maps to image (10,20).
	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 100}
	if got := img.RGBAAt(10, 20); got != boxColor {
		t.Errorf("top-left corner not drawn, got %v", got)
	}
	if got := img.RGBAAt(49, 39); got != boxColor {
		t.Errorf("bottom-right corner not drawn, got %v", got)
	}
	// "push button" is 77px wide, wider than the 40px box, so no label is
	// drawn and the interior stays white.
	if got := img.RGBAAt(12, 36); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("box interior should stay white, got %v", got)
	}
}

func TestRenderTree_OversizedLabelSkipped(t *testing.T) {
	nodes := []model.FlatNode{
		{Role: "push button", Bounds: [4]int{10, 10, 40, 20}},
	}
	img, err := RenderTree(nodes, [4]int{0, 0, 200, 150}, LabelRoles)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	// Nothing but white inside the box: the label and its outline would
	// have overpainted the box edges.
	white := color.RGBA{255, 255, 255, 255}
	for y := 11; y < 29; y++ {
		for x := 11; x < 49; x++ {
			if got := img.RGBAAt(x, y); got != white {
				t.Fatalf("pixel (%d,%d) painted %v inside a label-free box", x, y, got)
			}
		}
	}
}

func TestRenderTree_FittingLabelDrawn(t *testing.T) {
	nodes := []model.FlatNode{
		{Role: "ok", Bounds: [4]int{10, 10, 100, 30}},
	}
	img, err := RenderTree(nodes, [4]int{0, 0, 200, 150}, LabelRoles)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	white := color.RGBA{255, 255, 255, 255}
	painted := 0
	for y := 11; y < 39; y++ {
		for x := 11; x < 109; x++ {
			if img.RGBAAt(x, y) != white {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("expected the label to paint inside the box")
	}
}

func TestRenderTree_ZeroAreaWindow(t *testing.T) {
	if _, err := RenderTree(nil, [4]int{0, 0, 0, 0}, LabelRoles); err == nil {
		t.Error("expected error for zero-area window")
	}
}

func TestRenderTree_SkipsZeroSizeNodes(t *testing.T) {
	nodes := []model.FlatNode{
		{Role: "panel", Bounds: [4]int{0, 0, 0, 0}},
	}
	img, err := RenderTree(nodes, [4]int{0, 0, 50, 50}, LabelRoles)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("zero-size node should not be drawn, got %v", got)
	}
}
