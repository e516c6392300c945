package cmd

import (
	"fmt"
	"strings"

	"github.com/dzjyyds666/serde/codec"
	"github.com/dzjyyds666/serde/pkg"
	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type TomlParams struct {
	Find   string `json:"find"`   // 查找的key, 多级用 . 分隔
	Input  string `json:"input"`  // 输入文件路径
	Output string `json:"output"` // 输出文件地址
	Engine string `json:"engine"` // 解析引擎 mini 或 std
	To     string `json:"to"`     // 输出格式
}

func newTomlCmd() *cobra.Command {
	params := &TomlParams{}
	tomlCmd := &cobra.Command{
		Use:   "toml",
		Short: "toml parse tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tomlRun(cmd, params)
		},
	}
	tomlCmd.Flags().StringVarP(&params.Find, "find", "f", "", "find a key, nested keys joined by '.'")
	tomlCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path")
	tomlCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path")
	tomlCmd.Flags().StringVarP(&params.Engine, "engine", "e", string(codec.EngineMini), "toml engine, mini or std")
	tomlCmd.Flags().StringVarP(&params.To, "to", "t", string(codec.FormatJSON), "output format")
	return tomlCmd
}

func tomlRun(cmd *cobra.Command, params *TomlParams) error {
	data, err := pkg.ReadFile(params.Input)
	if err != nil {
		return err
	}
	to, err := documentFormat(params.To)
	if err != nil {
		return err
	}

	engine := codec.ParseEngine(params.Engine)
	c, err := codec.New(codec.FormatTOML, codec.TomlEngine(engine))
	if err != nil {
		return err
	}
	m, err := c.Decode(data)
	if err != nil {
		return err
	}
	logger.Debug("decoded toml", "input", params.Input, "engine", string(engine), "keys", m.Len())

	if len(params.Find) == 0 {
		return writeDocument(cmd, params.Output, m, to)
	}

	n, ok := value.Get(m, strings.Split(params.Find, ".")...)
	if !ok {
		return errors.Errorf("key %q not found", params.Find)
	}
	if sub, isMap := n.(*value.Map); isMap {
		return writeDocument(cmd, params.Output, sub, to)
	}
	return pkg.WriteFileOrStdout(params.Output, []byte(fmt.Sprintln(value.Text(n))), cmd.OutOrStdout())
}
