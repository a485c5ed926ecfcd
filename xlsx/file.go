package xlsx

import (
	"fmt"
	"os"
)

// ReadFile reads the workbook at filename and decodes the selected sheet.
func ReadFile(filename string, opts ReadOptions) ([][]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}

	rows, err := DecodeWithOptions(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rows, nil
}

// WriteFile writes rows to filename as a single-sheet workbook.
func WriteFile(filename string, rows [][]Value, opts WriteOptions) error {
	if err := os.WriteFile(filename, WriteWithOptions(rows, opts), 0o644); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
