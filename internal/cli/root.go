// Package cli wires the overtime commands: an HTTP server for the upload
// page and a one-shot report for a workbook on disk.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuji-8024/t-kento/internal/config"
	"github.com/yuji-8024/t-kento/internal/logging"
)

// App 命令间共享的状态，在 PersistentPreRunE 中填充
type App struct {
	Version string
	Config  *config.AppConfig
	Info    config.LoadConfigInfo
	Logger  *slog.Logger

	configPath string
	dataDir    string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates the top-level "overtime" command.
func NewRootCmd(version string) *cobra.Command {
	app := &App{Version: version}

	root := &cobra.Command{
		Use:           "overtime",
		Short:         "オンコール残業ワークブックの集計ツール",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.configPath, "config", "", "config.toml のパス (既定: 実行ファイルと同じディレクトリ)")
	pf.StringVar(&app.dataDir, "data-dir", "", "データディレクトリ (設定ファイルより優先)")
	pf.StringVar(&app.logLevel, "log-level", "", "ログレベル debug/info/warn/error")
	pf.StringVar(&app.logFormat, "log-format", "", "ログ形式 auto/text/json")

	root.AddCommand(
		newServeCmd(app),
		newReportCmd(app),
		newConfigCmd(app),
	)
	return root
}

// load 读取配置并构建 logger；命令行参数优先于配置文件和环境变量
func (a *App) load(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, info, err := config.LoadFile(path)
	if err != nil {
		if cmd.Flags().Changed("config") {
			return fmt.Errorf("設定を読み込めません: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "設定を読み込めないため既定値を使います: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{Path: path}
	}

	if a.dataDir != "" {
		cfg.Data.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	errOut := cmd.ErrOrStderr()
	logger, err := logging.New(errOut, isTerminal(errOut), logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Info = info
	a.Logger = logger
	return nil
}

// isTerminal reports whether w is a terminal; buffers never are.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && logging.IsTerminal(f)
}
