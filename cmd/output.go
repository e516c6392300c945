package cmd

import (
	"bytes"

	"github.com/dzjyyds666/serde/codec"
	"github.com/dzjyyds666/serde/pkg"
	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func documentFormat(name string) (codec.Format, error) {
	f := codec.Format(name)
	if f.IsUnknown() {
		return "", errors.Wrapf(codec.ErrUnknownFormat, "%q (supported: %v)", name, codec.SupportedFormats())
	}
	if f.IsRows() {
		return "", errors.Errorf("%s is a table format, only document formats are supported here", f)
	}
	return f, nil
}

// writeDocument encodes m as format and writes it to path, or to the
// command's stdout when path is empty.
func writeDocument(cmd *cobra.Command, path string, m *value.Map, format codec.Format, opts ...codec.Option) error {
	if format == codec.FormatJSON {
		opts = append(opts, codec.JSONIndent("  "))
	}
	c, err := codec.New(format, opts...)
	if err != nil {
		return err
	}
	data, err := c.Encode(m)
	if err != nil {
		return err
	}
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	logger.Debug("writing output", "format", string(format), "path", path, "bytes", len(data))
	return pkg.WriteFileOrStdout(path, data, cmd.OutOrStdout())
}
