// Package sheet reads uploaded spreadsheets into rows of trimmed cells.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrNoWorksheet       = errors.New("no worksheet found")
	ErrMalformedRecord   = errors.New("malformed record")
)

// Sheet is one worksheet, or the whole file for delimited text.
type Sheet struct {
	Name string
	Rows [][]string
	// Malformed lists indexes into Rows of records that could not be parsed.
	// Their rows are nil.
	Malformed []int
}

// Read picks a reader by the filename extension. Workbooks yield one Sheet per
// worksheet in order.
func Read(filename string, data []byte) ([]Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(data)
	case ".csv", ".txt":
		sh, err := readDelimited(data)
		if err != nil {
			return nil, err
		}
		sh.Name = filepath.Base(filename)
		return []Sheet{sh}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadRows returns the rows of the first sheet. Any malformed record is an error.
func ReadRows(filename string, data []byte) ([][]string, error) {
	sheets, err := Read(filename, data)
	if err != nil {
		return nil, err
	}
	first := sheets[0]
	if len(first.Malformed) > 0 {
		return nil, fmt.Errorf("%w at row %d", ErrMalformedRecord, first.Malformed[0]+1)
	}
	return first.Rows, nil
}

func readWorkbook(data []byte) ([]Sheet, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	names := file.GetSheetList()
	if len(names) == 0 {
		return nil, ErrNoWorksheet
	}

	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		sheetRows, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		sh := Sheet{Name: name, Rows: make([][]string, 0, len(sheetRows))}
		for _, row := range sheetRows {
			sh.Rows = append(sh.Rows, trimCells(row))
		}
		sheets = append(sheets, sh)
	}
	return sheets, nil
}

func readDelimited(data []byte) (Sheet, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1

	var sh Sheet
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			sh.Malformed = append(sh.Malformed, len(sh.Rows))
			sh.Rows = append(sh.Rows, nil)
			continue
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("failed to read csv: %w", err)
		}
		sh.Rows = append(sh.Rows, trimCells(row))
	}
	return sh, nil
}

// detectDelimiter prefers whichever of ';', ',' and tab is most common in the first line.
func detectDelimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t'} {
		if n := bytes.Count(first, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
