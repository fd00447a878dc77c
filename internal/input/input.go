package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	ErrNotFound = errors.New("input file not found")
	ErrEmpty    = errors.New("input file has no pincodes")
)

const pincodeHeader = "PINCODE"

// Load reads an ordered pincode list from a delimited file. The file may be
// a headered CSV with a PINCODE column (matched case-insensitively) or a
// plain one-code-per-line list. Duplicates are dropped, keeping the first
// occurrence.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	column := 0
	total := 0
	codes := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		if i == 0 {
			if col, ok := headerColumn(row); ok {
				column = col
				continue
			}
		}
		if column >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[column])
		if code == "" {
			continue
		}
		total++
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	log.Printf("Total pincode entries: %d", total)
	log.Printf("Duplicate pincodes: %d", total-len(codes))
	log.Printf("Unique pincodes: %d", len(codes))

	return codes, nil
}

// headerColumn reports the index of the PINCODE column if the row is a header.
func headerColumn(row []string) (int, bool) {
	for i, cell := range row {
		if strings.EqualFold(strings.TrimSpace(cell), pincodeHeader) {
			return i, true
		}
	}
	return 0, false
}
