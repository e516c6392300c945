// Package csv reads and writes tables of records, one value map per row.
//
// Output follows the unix dialect: every field is double quoted and rows end
// with '\n'. The header is taken from the keys of the first row.
package csv

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
)

// ErrNoRows is returned when asked to encode an empty table.
var ErrNoRows = errors.New("csv: no rows to encode")

const DefaultDelimiter = ','

// Encode writes rows as CSV. A row holding a field the first row lacks is an
// error. Fields missing from a row are written empty, null values too; nested
// maps and sequences use the canonical text form.
func Encode(rows []*value.Map, delimiter rune) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if delimiter == '"' || delimiter == '\n' || delimiter == '\r' {
		return nil, errors.Errorf("csv: invalid delimiter %q", delimiter)
	}

	header := rows[0].Keys()
	known := make(map[string]bool, len(header))
	for _, key := range header {
		known[key] = true
	}
	var buf bytes.Buffer
	writeRow(&buf, header, delimiter)
	for i, row := range rows {
		for _, key := range row.Keys() {
			if !known[key] {
				return nil, errors.Errorf("csv: row %d has field %q not in header", i, key)
			}
		}
		fields := make([]string, len(header))
		for i, key := range header {
			if n, ok := row.Get(key); ok {
				fields[i] = field(n)
			}
		}
		writeRow(&buf, fields, delimiter)
	}
	return buf.Bytes(), nil
}

func field(n value.Node) string {
	if v, ok := n.(*value.Value); ok && v.Type == value.Kinds.Null {
		return ""
	}
	return value.Text(n)
}

func writeRow(buf *bytes.Buffer, fields []string, delimiter rune) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteRune(delimiter)
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

// Decode reads a CSV table with a header line. Every field decodes to a
// string value; converting it is up to the mapper.
func Decode(data []byte, delimiter rune) ([]*value.Map, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csv: decode")
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]*value.Map, 0, len(records)-1)
	for _, rec := range records[1:] {
		m := value.NewMap()
		for i, key := range header {
			m.Set(key, value.String(rec[i]))
		}
		rows = append(rows, m)
	}
	return rows, nil
}
