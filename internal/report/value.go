package report

import "fmt"

// Value is a displayable plugin-info value. It is a closed sum: either plain
// text or a named server setting with help text. Formatting is decided per
// variant at render time, never by runtime type inspection of foreign types.
type Value interface {
	isValue()
}

// Text is a plain displayable value.
type Text string

func (Text) isValue() {}

// Setting is a named configuration entry with help text and a current value.
// It renders across three lines inside a listing record.
type Setting struct {
	Name    string
	Help    string
	Current string
}

func (Setting) isValue() {}

// formatValue renders a Value for use inside a listing record.
func formatValue(v Value) string {
	switch val := v.(type) {
	case Text:
		return string(val)
	case Setting:
		return fmt.Sprintf("%s:\n\t\t\t%s: %s", val.Name, val.Help, val.Current)
	default:
		// Closed sum; a new variant must add a case here.
		return fmt.Sprintf("%v", v)
	}
}
