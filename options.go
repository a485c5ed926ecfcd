package sheetzip

// ExtractOptions holds configuration for reading a workbook.
type ExtractOptions struct {
	// Worksheet selection; empty means the first sheet
	sheet string

	// Read deflated parts as well as stored ones
	inflate bool

	// Upper bound for an inflated part; zero selects the container default
	maxEntrySize int64
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		sheet:        "",
		inflate:      false,
		maxEntrySize: 0,
	}
}
