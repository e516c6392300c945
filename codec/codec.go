// Package codec selects a format engine by name and exposes every format
// behind the same two interfaces: Codec for single-record documents and
// RowCodec for tables.
//
// Usage:
//
//	c, err := codec.New(codec.FormatTOML)
//	if err != nil {
//		return err
//	}
//	m, err := c.Decode(data)
package codec

import (
	"path/filepath"
	"strings"

	"github.com/dzjyyds666/serde/parse/csv"
	"github.com/dzjyyds666/serde/parse/json"
	"github.com/dzjyyds666/serde/parse/toml"
	"github.com/dzjyyds666/serde/parse/xml"
	"github.com/dzjyyds666/serde/parse/yaml"
	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned for format names no codec is registered for.
var ErrUnknownFormat = errors.New("unknown format")

// Format represents a wire format name.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatXML, FormatCSV:
		return false
	default:
		return true
	}
}

// IsRows reports whether the format holds a table of records rather than a
// single document.
func (f Format) IsRows() bool {
	return f == FormatCSV
}

// SupportedFormats returns every format name accepted by New and NewRows.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTOML),
		string(FormatXML),
		string(FormatCSV),
	}
}

// FormatFromPath determines the format from a file extension, ignoring case.
// Unknown extensions return an empty Format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".xml":
		return FormatXML
	case ".csv", ".tsv":
		return FormatCSV
	default:
		return ""
	}
}

// Codec converts one document to and from an ordered value map.
// Implementations hold no state between calls and are safe for concurrent use.
type Codec interface {
	Format() Format
	Encode(m *value.Map) ([]byte, error)
	Decode(data []byte) (*value.Map, error)
}

// RowCodec converts a table to and from one value map per row.
type RowCodec interface {
	Format() Format
	EncodeRows(rows []*value.Map) ([]byte, error)
	DecodeRows(data []byte) ([]*value.Map, error)
}

// New returns the document codec for format.
func New(format Format, opts ...Option) (Codec, error) {
	o := newOptions(opts)
	switch format {
	case FormatJSON:
		return jsonCodec{indent: o.jsonIndent}, nil
	case FormatYAML:
		return yamlCodec{}, nil
	case FormatTOML:
		if o.tomlEngine == EngineStd {
			return tomlStdCodec{}, nil
		}
		return tomlMiniCodec{}, nil
	case FormatXML:
		return xmlCodec{indent: o.xmlIndent, captureText: o.xmlCaptureText}, nil
	case FormatCSV:
		return nil, errors.Errorf("codec: %s is a row format, use NewRows", format)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "codec: %q", format)
	}
}

// NewRows returns the table codec for format.
func NewRows(format Format, opts ...Option) (RowCodec, error) {
	o := newOptions(opts)
	switch format {
	case FormatCSV:
		return csvCodec{delimiter: o.csvDelimiter}, nil
	default:
		if format.IsUnknown() {
			return nil, errors.Wrapf(ErrUnknownFormat, "codec: %q", format)
		}
		return nil, errors.Errorf("codec: %s is a document format, use New", format)
	}
}

// =========================
// Codecs
// =========================

type jsonCodec struct{ indent string }

func (jsonCodec) Format() Format { return FormatJSON }

func (c jsonCodec) Encode(m *value.Map) ([]byte, error) { return json.Encode(m, c.indent) }

func (jsonCodec) Decode(data []byte) (*value.Map, error) { return json.Decode(data) }

type yamlCodec struct{}

func (yamlCodec) Format() Format { return FormatYAML }

func (yamlCodec) Encode(m *value.Map) ([]byte, error) { return yaml.Encode(m) }

func (yamlCodec) Decode(data []byte) (*value.Map, error) { return yaml.Decode(data) }

type tomlMiniCodec struct{}

func (tomlMiniCodec) Format() Format { return FormatTOML }

func (tomlMiniCodec) Encode(m *value.Map) ([]byte, error) { return toml.Encode(m) }

func (tomlMiniCodec) Decode(data []byte) (*value.Map, error) { return toml.Decode(data), nil }

type tomlStdCodec struct{}

func (tomlStdCodec) Format() Format { return FormatTOML }

func (tomlStdCodec) Encode(m *value.Map) ([]byte, error) { return toml.EncodeStd(m) }

func (tomlStdCodec) Decode(data []byte) (*value.Map, error) { return toml.DecodeStd(data) }

type xmlCodec struct {
	indent      int
	captureText bool
}

func (xmlCodec) Format() Format { return FormatXML }

func (c xmlCodec) Encode(m *value.Map) ([]byte, error) { return xml.Encode(m, c.indent) }

func (c xmlCodec) Decode(data []byte) (*value.Map, error) {
	if c.captureText {
		return xml.Decode(data, xml.CaptureText()), nil
	}
	return xml.Decode(data), nil
}

type csvCodec struct{ delimiter rune }

func (csvCodec) Format() Format { return FormatCSV }

func (c csvCodec) EncodeRows(rows []*value.Map) ([]byte, error) { return csv.Encode(rows, c.delimiter) }

func (c csvCodec) DecodeRows(data []byte) ([]*value.Map, error) { return csv.Decode(data, c.delimiter) }
