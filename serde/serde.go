// Package serde ties a format codec to a record mapper.
//
// A Serializer maps a record into a value map and encodes it; a Deserializer
// decodes bytes and maps the result onto a record. Table formats such as CSV
// use RowSerializer and RowDeserializer, which work on one record per row.
//
//	s, err := serde.NewSerializer[*Person](codec.FormatTOML)
//	if err != nil {
//		return err
//	}
//	data, err := s.Serialize(p, mapper.NewStruct[Person]())
package serde

import (
	"io"

	"github.com/dzjyyds666/serde/codec"
	"github.com/dzjyyds666/serde/mapper"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

type options struct {
	logger    hclog.Logger
	codecOpts []codec.Option
}

type Option func(*options)

// WithLogger sets the logger used for trace output. The default discards
// everything.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCodecOptions passes options through to codec.New or codec.NewRows.
func WithCodecOptions(opts ...codec.Option) Option {
	return func(o *options) {
		o.codecOpts = append(o.codecOpts, opts...)
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// =========================
// Serializer
// =========================

type Serializer[R any] struct {
	codec  codec.Codec
	logger hclog.Logger
}

func NewSerializer[R any](format codec.Format, opts ...Option) (*Serializer[R], error) {
	o := newOptions(opts)
	c, err := codec.New(format, o.codecOpts...)
	if err != nil {
		return nil, err
	}
	return &Serializer[R]{codec: c, logger: o.logger.Named("serializer").With("format", string(format))}, nil
}

func (s *Serializer[R]) Format() codec.Format { return s.codec.Format() }

// Serialize maps record with m and encodes the result.
func (s *Serializer[R]) Serialize(record R, m mapper.Mapper[R]) ([]byte, error) {
	tree, err := m.MapSerialize(record)
	if err != nil {
		return nil, errors.Wrap(err, "serde: map record")
	}
	if tree == nil {
		return nil, errors.New("serde: mapper returned no value")
	}
	data, err := s.codec.Encode(tree)
	if err != nil {
		return nil, errors.Wrapf(err, "serde: encode %s", s.codec.Format())
	}
	s.logger.Trace("serialized record", "keys", tree.Len(), "bytes", len(data))
	return data, nil
}

// SerializeToFile writes the serialized record to w.
func (s *Serializer[R]) SerializeToFile(record R, m mapper.Mapper[R], w io.Writer) error {
	data, err := s.Serialize(record, m)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "serde: write")
	}
	return nil
}

// =========================
// Deserializer
// =========================

type Deserializer[R any] struct {
	codec  codec.Codec
	logger hclog.Logger
}

func NewDeserializer[R any](format codec.Format, opts ...Option) (*Deserializer[R], error) {
	o := newOptions(opts)
	c, err := codec.New(format, o.codecOpts...)
	if err != nil {
		return nil, err
	}
	return &Deserializer[R]{codec: c, logger: o.logger.Named("deserializer").With("format", string(format))}, nil
}

func (d *Deserializer[R]) Format() codec.Format { return d.codec.Format() }

// Deserialize decodes data and maps it onto record. The returned record is
// the one produced by the mapper.
func (d *Deserializer[R]) Deserialize(record R, m mapper.Mapper[R], data []byte) (R, error) {
	tree, err := d.codec.Decode(data)
	if err != nil {
		return record, errors.Wrapf(err, "serde: decode %s", d.codec.Format())
	}
	d.logger.Trace("decoded document", "bytes", len(data), "keys", tree.Len())
	out, err := m.MapDeserialize(record, tree)
	if err != nil {
		return out, errors.Wrap(err, "serde: map record")
	}
	return out, nil
}

// DeserializeFromFile reads r to the end and deserializes its content.
func (d *Deserializer[R]) DeserializeFromFile(record R, m mapper.Mapper[R], r io.Reader) (R, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return record, errors.Wrap(err, "serde: read")
	}
	return d.Deserialize(record, m, data)
}
