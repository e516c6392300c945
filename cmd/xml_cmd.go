package cmd

import (
	"fmt"
	"strings"

	"github.com/dzjyyds666/serde/codec"
	"github.com/dzjyyds666/serde/parse/xml"
	"github.com/dzjyyds666/serde/pkg"
	"github.com/spf13/cobra"
)

type XmlParams struct {
	Input       string `json:"input"`        // 输入文件路径
	Output      string `json:"output"`       // 输出文件地址
	Tokens      bool   `json:"tokens"`       // 只输出分词结果
	CaptureText bool   `json:"capture_text"` // 保留标签内的文本
	To          string `json:"to"`           // 输出格式
}

func newXmlCmd() *cobra.Command {
	params := &XmlParams{}
	xmlCmd := &cobra.Command{
		Use:   "xml",
		Short: "xml parse tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return xmlRun(cmd, params)
		},
	}
	xmlCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path")
	xmlCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path")
	xmlCmd.Flags().BoolVar(&params.Tokens, "tokens", false, "print the token stream instead of the document")
	xmlCmd.Flags().BoolVar(&params.CaptureText, "capture-text", false, "keep element text instead of empty placeholders")
	xmlCmd.Flags().StringVarP(&params.To, "to", "t", string(codec.FormatJSON), "output format")
	return xmlCmd
}

func xmlRun(cmd *cobra.Command, params *XmlParams) error {
	data, err := pkg.ReadFile(params.Input)
	if err != nil {
		return err
	}

	if params.Tokens {
		tokens := xml.Tokenize(string(data))
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.String())
			sb.WriteByte('\n')
		}
		if depth := xml.Depth(tokens); depth > 0 {
			logger.Warn("unclosed elements at end of input", "input", params.Input, "depth", depth)
			fmt.Fprintf(&sb, "unclosed: %d\n", depth)
		}
		return pkg.WriteFileOrStdout(params.Output, []byte(sb.String()), cmd.OutOrStdout())
	}

	to, err := documentFormat(params.To)
	if err != nil {
		return err
	}
	c, err := codec.New(codec.FormatXML, codec.XMLCaptureText(params.CaptureText))
	if err != nil {
		return err
	}
	m, err := c.Decode(data)
	if err != nil {
		return err
	}
	logger.Debug("decoded xml", "input", params.Input, "keys", m.Len())
	return writeDocument(cmd, params.Output, m, to)
}
