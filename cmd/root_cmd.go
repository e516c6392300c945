package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const (
	version = "v0.1"

	logLevelEnv     = "SERDE_LOG_LEVEL"
	defaultLogLevel = "warn"
)

type RootParams struct {
	LogLevel string `json:"log_level"` // 日志级别 trace/debug/info/warn/error
}

// logger is rebuilt by the root command before any subcommand runs.
var logger hclog.Logger = hclog.NewNullLogger()

func NewRootCmd() *cobra.Command {
	params := &RootParams{}
	rootCmd := &cobra.Command{
		Use:   "serde",
		Short: "Serde converts records between JSON, YAML, TOML and XML.",
		Long: "Serde is a tool for reading and writing structured data. It decodes TOML and XML " +
			"with small built-in engines and converts documents between JSON, YAML, TOML and XML.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(params.LogLevel, cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&params.LogLevel, "log-level", "",
		"log level, defaults to $"+logLevelEnv+" or "+defaultLogLevel)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTomlCmd())
	rootCmd.AddCommand(newXmlCmd())
	rootCmd.AddCommand(newConvertCmd())
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Serde",
		Long:  `All software has versions. This is Serde's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Serde "+version+" -- HEAD")
		},
	}
}

func newLogger(level string, cmd *cobra.Command) hclog.Logger {
	if len(level) == 0 {
		level = os.Getenv(logLevelEnv)
	}
	if len(level) == 0 {
		level = defaultLogLevel
	}
	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "serde",
		Level:  lvl,
		Output: cmd.ErrOrStderr(),
	})
}
