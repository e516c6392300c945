package cmd

import (
	"github.com/dzjyyds666/serde/codec"
	"github.com/dzjyyds666/serde/pkg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type ConvertParams struct {
	Input       string `json:"input"`        // 输入文件路径
	Output      string `json:"output"`       // 输出文件地址, 为空时输出到 stdout
	From        string `json:"from"`         // 输入格式, 为空时按扩展名判断
	To          string `json:"to"`           // 输出格式, 为空时按扩展名判断
	Engine      string `json:"engine"`       // toml 引擎
	CaptureText bool   `json:"capture_text"` // xml 保留文本
}

func newConvertCmd() *cobra.Command {
	params := &ConvertParams{}
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "convert a document from one format to another",
		Example: "  serde convert -i config.toml -o config.yaml\n" +
			"  serde convert -i data.xml --to json --capture-text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertRun(cmd, params)
		},
	}
	convertCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path")
	convertCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path")
	convertCmd.Flags().StringVar(&params.From, "from", "", "input format, guessed from the input extension when empty")
	convertCmd.Flags().StringVar(&params.To, "to", "", "output format, guessed from the output extension when empty")
	convertCmd.Flags().StringVarP(&params.Engine, "engine", "e", string(codec.EngineMini), "toml engine, mini or std")
	convertCmd.Flags().BoolVar(&params.CaptureText, "capture-text", false, "keep xml element text")
	return convertCmd
}

func resolveFormat(name, path, flag string) (codec.Format, error) {
	if len(name) == 0 {
		name = string(codec.FormatFromPath(path))
	}
	if len(name) == 0 {
		return "", errors.Errorf("cannot tell the format of %q, set --%s", path, flag)
	}
	return documentFormat(name)
}

func convertRun(cmd *cobra.Command, params *ConvertParams) error {
	from, err := resolveFormat(params.From, params.Input, "from")
	if err != nil {
		return err
	}
	to, err := resolveFormat(params.To, params.Output, "to")
	if err != nil {
		return err
	}
	data, err := pkg.ReadFile(params.Input)
	if err != nil {
		return err
	}

	opts := []codec.Option{
		codec.TomlEngine(codec.ParseEngine(params.Engine)),
		codec.XMLCaptureText(params.CaptureText),
	}
	c, err := codec.New(from, opts...)
	if err != nil {
		return err
	}
	m, err := c.Decode(data)
	if err != nil {
		return err
	}
	logger.Info("converting", "from", string(from), "to", string(to), "keys", m.Len())
	return writeDocument(cmd, params.Output, m, to, opts...)
}
