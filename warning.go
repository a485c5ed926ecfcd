package sheetzip

import "strings"

// Warning describes a problem that did not stop extraction but may mean
// the result is incomplete.
type Warning struct {
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// FormatWarnings joins warnings into a single line separated by "; ".
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}
