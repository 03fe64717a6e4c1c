package bridge

import "fmt"

// PropertyOptions is a bitset selecting which property categories a
// Properties fetch materializes. Options trade completeness against fetch
// cost and must be read at fetch time, never cached.
type PropertyOptions uint32

const (
	OptContextInfo PropertyOptions = 1 << iota
	OptIcons
	OptKeyBindings
	OptRelations
	OptParent
	OptTopLevelWindow
	OptText
	OptValue
	OptSelection
	OptTable
	OptActions
)

// DefaultPropertyOptions is the initial selection: everything except the
// expensive table and relation scans.
const DefaultPropertyOptions = OptContextInfo |
	OptIcons |
	OptKeyBindings |
	OptParent |
	OptTopLevelWindow |
	OptText |
	OptValue |
	OptSelection |
	OptActions

// Has reports whether the flag is set.
func (o PropertyOptions) Has(flag PropertyOptions) bool {
	return o&flag != 0
}

// With returns o with the flag set or cleared.
func (o PropertyOptions) With(flag PropertyOptions, on bool) PropertyOptions {
	if on {
		return o | flag
	}
	return o &^ flag
}

// OptionLabel pairs one property flag with its display label. The mapping
// is bijective: one flag, one label, one output property group.
type OptionLabel struct {
	Flag  PropertyOptions
	Label string
}

// optionLabels is the static flag table, in menu/display order.
var optionLabels = []OptionLabel{
	{OptContextInfo, "Context Info"},
	{OptIcons, "Icons"},
	{OptKeyBindings, "Key Bindings"},
	{OptRelations, "Relations"},
	{OptParent, "Parent"},
	{OptTopLevelWindow, "Top Level Window"},
	{OptText, "Text"},
	{OptValue, "Value"},
	{OptSelection, "Selection"},
	{OptTable, "Table"},
	{OptActions, "Actions"},
}

// OptionLabels returns the flag/label table in display order.
func OptionLabels() []OptionLabel {
	out := make([]OptionLabel, len(optionLabels))
	copy(out, optionLabels)
	return out
}

// ParsePropertyOption converts a label (or its lowercase slug form, e.g.
// "key-bindings") into its flag.
func ParsePropertyOption(s string) (PropertyOptions, error) {
	for _, ol := range optionLabels {
		if s == ol.Label || s == optionSlug(ol.Label) {
			return ol.Flag, nil
		}
	}
	return 0, fmt.Errorf("unknown property option: %q", s)
}

func optionSlug(label string) string {
	out := make([]byte, 0, len(label))
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		case c == ' ':
			out = append(out, '-')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
