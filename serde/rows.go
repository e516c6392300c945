package serde

import (
	"io"

	"github.com/dzjyyds666/serde/codec"
	"github.com/dzjyyds666/serde/mapper"
	"github.com/dzjyyds666/serde/value"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type RowSerializer[R any] struct {
	codec  codec.RowCodec
	logger hclog.Logger
}

func NewRowSerializer[R any](format codec.Format, opts ...Option) (*RowSerializer[R], error) {
	o := newOptions(opts)
	c, err := codec.NewRows(format, o.codecOpts...)
	if err != nil {
		return nil, err
	}
	return &RowSerializer[R]{codec: c, logger: o.logger.Named("row-serializer").With("format", string(format))}, nil
}

// SerializeAll maps every record and encodes them as one table. The first
// mapper error stops the run.
func (s *RowSerializer[R]) SerializeAll(records []R, m mapper.Mapper[R]) ([]byte, error) {
	rows := make([]*value.Map, 0, len(records))
	for i, record := range records {
		row, err := m.MapSerialize(record)
		if err != nil {
			return nil, errors.Wrapf(err, "serde: map record %d", i)
		}
		if row == nil {
			return nil, errors.Errorf("serde: mapper returned no value for record %d", i)
		}
		rows = append(rows, row)
	}
	data, err := s.codec.EncodeRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "serde: encode %s", s.codec.Format())
	}
	s.logger.Trace("serialized rows", "rows", len(rows), "bytes", len(data))
	return data, nil
}

func (s *RowSerializer[R]) SerializeAllToFile(records []R, m mapper.Mapper[R], w io.Writer) error {
	data, err := s.SerializeAll(records, m)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "serde: write")
	}
	return nil
}

type RowDeserializer[R any] struct {
	codec  codec.RowCodec
	logger hclog.Logger
}

func NewRowDeserializer[R any](format codec.Format, opts ...Option) (*RowDeserializer[R], error) {
	o := newOptions(opts)
	c, err := codec.NewRows(format, o.codecOpts...)
	if err != nil {
		return nil, err
	}
	return &RowDeserializer[R]{codec: c, logger: o.logger.Named("row-deserializer").With("format", string(format))}, nil
}

// DeserializeAll decodes a table and maps row i onto records[i]. Every row is
// attempted; mapper failures and rows without a record are collected into a
// single *multierror.Error. Records beyond the last row are returned as they
// were passed in.
func (d *RowDeserializer[R]) DeserializeAll(records []R, m mapper.Mapper[R], data []byte) ([]R, error) {
	rows, err := d.codec.DecodeRows(data)
	if err != nil {
		return records, errors.Wrapf(err, "serde: decode %s", d.codec.Format())
	}

	out := make([]R, len(records))
	copy(out, records)

	var mErr multierror.Error
	for i, row := range rows {
		if i >= len(out) {
			mErr.Errors = append(mErr.Errors, errors.Errorf("serde: row %d has no record", i))
			continue
		}
		rec, err := m.MapDeserialize(out[i], row)
		if err != nil {
			mErr.Errors = append(mErr.Errors, errors.Wrapf(err, "serde: row %d", i))
			continue
		}
		out[i] = rec
	}
	if len(rows) < len(out) {
		d.logger.Debug("fewer rows than records", "rows", len(rows), "records", len(out))
	}
	d.logger.Trace("deserialized rows", "rows", len(rows), "errors", len(mErr.Errors))
	return out, mErr.ErrorOrNil()
}

func (d *RowDeserializer[R]) DeserializeAllFromFile(records []R, m mapper.Mapper[R], r io.Reader) ([]R, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return records, errors.Wrap(err, "serde: read")
	}
	return d.DeserializeAll(records, m, data)
}
