package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Columns every import file must declare in its header, in any order.
var requiredColumns = []string{"date", "location", "temperature", "wind"}

// Row is one data line of an import file. Err is set when the line could not
// be parsed as CSV; the field values are then unreliable.
type Row struct {
	Line        int
	Date        string
	Location    string
	Temperature string
	Wind        string
	Err         error
}

// CSVSource reads rows from a CSV file whose first line names the columns.
type CSVSource struct {
	reader  *csv.Reader
	columns map[string]int
	done    bool
}

// NewCSVSource reads the header from r and checks that every required column
// is present. Extra columns are ignored.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv header: file is empty")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header: missing column(s) %s", strings.Join(missing, ", "))
	}

	return &CSVSource{reader: reader, columns: columns}, nil
}

// ExtractBatch returns up to batchSize rows. An empty batch means the file is
// exhausted. Malformed lines come back as rows with Err set rather than
// failing the batch.
func (s *CSVSource) ExtractBatch(ctx context.Context, batchSize int) ([]Row, error) {
	if batchSize <= 0 {
		batchSize = 1
	}

	batch := make([]Row, 0, batchSize)
	for len(batch) < batchSize && !s.done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			s.done = true
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			batch = append(batch, Row{Line: parseErr.StartLine, Err: err})
			continue
		}
		if err != nil {
			return batch, fmt.Errorf("read csv: %w", err)
		}

		line, _ := s.reader.FieldPos(0)
		batch = append(batch, Row{
			Line:        line,
			Date:        s.field(record, "date"),
			Location:    s.field(record, "location"),
			Temperature: s.field(record, "temperature"),
			Wind:        s.field(record, "wind"),
		})
	}
	return batch, nil
}

func (s *CSVSource) field(record []string, name string) string {
	i := s.columns[name]
	if i >= len(record) {
		return ""
	}
	return record[i]
}
