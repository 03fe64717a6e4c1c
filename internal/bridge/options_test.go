package bridge

import "testing"

func TestOptionLabels_BijectiveWithFlags(t *testing.T) {
	seenFlags := make(map[PropertyOptions]bool)
	seenLabels := make(map[string]bool)
	for _, ol := range OptionLabels() {
		if ol.Flag == 0 || ol.Flag&(ol.Flag-1) != 0 {
			t.Errorf("label %q maps to non-single-bit flag %b", ol.Label, ol.Flag)
		}
		if seenFlags[ol.Flag] {
			t.Errorf("flag %b appears twice", ol.Flag)
		}
		if seenLabels[ol.Label] {
			t.Errorf("label %q appears twice", ol.Label)
		}
		seenFlags[ol.Flag] = true
		seenLabels[ol.Label] = true
	}
	if len(seenFlags) != 11 {
		t.Errorf("expected 11 property options, got %d", len(seenFlags))
	}
}

func TestParsePropertyOption(t *testing.T) {
	flag, err := ParsePropertyOption("Key Bindings")
	if err != nil || flag != OptKeyBindings {
		t.Errorf("label parse failed: %v %v", flag, err)
	}
	flag, err = ParsePropertyOption("key-bindings")
	if err != nil || flag != OptKeyBindings {
		t.Errorf("slug parse failed: %v %v", flag, err)
	}
	if _, err := ParsePropertyOption("bogus"); err == nil {
		t.Error("expected error for unknown option")
	}
}

func TestPropertyOptionsWith(t *testing.T) {
	opts := PropertyOptions(0).With(OptValue, true).With(OptText, true)
	if !opts.Has(OptValue) || !opts.Has(OptText) {
		t.Error("flags not set")
	}
	opts = opts.With(OptValue, false)
	if opts.Has(OptValue) || !opts.Has(OptText) {
		t.Error("clearing one flag disturbed another")
	}
}

func TestParseEventKind(t *testing.T) {
	k, err := ParseEventKind("focusGained")
	if err != nil || k != EventFocusGained {
		t.Errorf("parse failed: %v %v", k, err)
	}
	if _, err := ParseEventKind("nope"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPropertyList_Text(t *testing.T) {
	var props PropertyList
	props.Add("Name", "OK")
	g := props.Group("Context Info")
	g.Add("Role", "push button")

	want := "Name: OK\nContext Info:\n  Role: push button"
	if got := props.Text(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(Point{X: 10, Y: 10}) {
		t.Error("origin should be inside")
	}
	if r.Contains(Point{X: 30, Y: 10}) {
		t.Error("right edge is exclusive")
	}
	if !r.Contains(Point{X: 29, Y: 29}) {
		t.Error("inner corner should be inside")
	}
}
