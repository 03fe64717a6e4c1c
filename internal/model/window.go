package model

import (
	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// Window summarizes one top-level Java window for listings.
type Window struct {
	JvmID  int    `yaml:"jvm"             json:"jvm"`
	Title  string `yaml:"title"           json:"title"`
	Role   string `yaml:"role,omitempty"  json:"role,omitempty"`
	Bounds [4]int `yaml:"bounds"          json:"bounds"`
}

// Windows enumerates the provider's top-level windows, unwrapping JVM
// root nodes, and releases every handle.
func Windows(provider bridge.Provider) ([]Window, error) {
	roots, err := provider.Windows()
	if err != nil {
		return nil, err
	}
	var out []Window
	for _, r := range roots {
		if r.Kind() == bridge.KindRoot {
			children, err := r.Children()
			if err == nil {
				for _, w := range children {
					out = append(out, windowSummary(w))
					w.Dispose()
				}
			}
			r.Dispose()
			continue
		}
		out = append(out, windowSummary(r))
		r.Dispose()
	}
	return out, nil
}

func windowSummary(n bridge.Node) Window {
	w := Window{JvmID: n.JvmID()}
	w.Title, _ = n.Title()
	w.Role, _ = n.Role()
	if rect, err := n.ScreenRect(); err == nil {
		w.Bounds = [4]int{rect.X, rect.Y, rect.Width, rect.Height}
	}
	return w
}
