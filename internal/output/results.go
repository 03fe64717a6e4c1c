package output

import (
	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/model"
)

// WindowsResult is the top-level output of the `windows` command.
type WindowsResult struct {
	TS      int64          `yaml:"ts"      json:"ts"`
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// TreeResult is the top-level output of the `tree` command.
type TreeResult struct {
	Jvm   int          `yaml:"jvm,omitempty"    json:"jvm,omitempty"`
	Title string       `yaml:"window,omitempty" json:"window,omitempty"`
	TS    int64        `yaml:"ts"               json:"ts"`
	Nodes []model.Node `yaml:"nodes"            json:"nodes"`
}

// TreeFlatResult is the top-level output when --flat is used.
type TreeFlatResult struct {
	Jvm   int              `yaml:"jvm,omitempty"    json:"jvm,omitempty"`
	Title string           `yaml:"window,omitempty" json:"window,omitempty"`
	TS    int64            `yaml:"ts"               json:"ts"`
	Nodes []model.FlatNode `yaml:"nodes"            json:"nodes"`
}

// PropsResult is the top-level output of the `props` command.
type PropsResult struct {
	Path  string              `yaml:"path"  json:"path"`
	TS    int64               `yaml:"ts"    json:"ts"`
	Props bridge.PropertyList `yaml:"props" json:"props"`
}

// WatchEvent is one streamed row of the `watch` command.
type WatchEvent struct {
	Seq   int64  `yaml:"seq"             json:"seq"`
	TS    int64  `yaml:"ts"              json:"ts"`
	Text  string `yaml:"text"            json:"text"`
	Error bool   `yaml:"error,omitempty" json:"error,omitempty"`
}
