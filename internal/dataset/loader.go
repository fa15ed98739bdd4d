// Package dataset loads the Storm Events CSV from disk and projects it onto
// the eight columns the analysis consumes. Decompression is chosen by file
// extension; the NOAA distribution is bzip2.
package dataset

import (
	"compress/bzip2"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// consumedColumns names the header columns projected into a RawRecord, in
// struct field order. A source file missing any of them is rejected.
var consumedColumns = []string{
	"BGN_DATE",
	"EVTYPE",
	"FATALITIES",
	"INJURIES",
	"PROPDMG",
	"PROPDMGEXP",
	"CROPDMG",
	"CROPDMGEXP",
}

// Load reads a Storm Events CSV file and returns one RawRecord per data row,
// restricted to the consumed columns. Structural CSV errors abort the load;
// short rows are padded with empty fields by the column lookup.
func Load(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r, closeReader, err := decompress(f, path)
	if err != nil {
		return nil, err
	}
	defer closeReader()

	return Read(r)
}

// Read parses Storm Events CSV from an uncompressed stream.
func Read(r io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // archive rows occasionally carry trailing fields

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		records = append(records, project(row, columns))
	}
	return records, nil
}

// resolveColumns maps each consumed column name to its index in the header.
func resolveColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	columns := make(map[string]int, len(consumedColumns))
	for _, name := range consumedColumns {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("dataset header missing column %q", name)
		}
		columns[name] = i
	}
	return columns, nil
}

func project(row []string, columns map[string]int) domain.RawRecord {
	get := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return domain.RawRecord{
		BeginDate:         get("BGN_DATE"),
		EventType:         get("EVTYPE"),
		Fatalities:        get("FATALITIES"),
		Injuries:          get("INJURIES"),
		PropertyMagnitude: get("PROPDMG"),
		PropertyUnit:      get("PROPDMGEXP"),
		CropMagnitude:     get("CROPDMG"),
		CropUnit:          get("CROPDMGEXP"),
	}
}

// decompress wraps the file reader according to the path extension. The
// returned close function releases any decompressor resources; the caller
// still closes the file itself.
func decompress(f *os.File, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bz2":
		return bzip2.NewReader(f), func() {}, nil
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, func() { zr.Close() }, nil
	default:
		return f, func() {}, nil
	}
}
