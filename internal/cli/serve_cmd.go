package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yuji-8024/t-kento/internal/config"
	"github.com/yuji-8024/t-kento/internal/server"
	"github.com/yuji-8024/t-kento/internal/util"
)

const shutdownTimeout = 5 * time.Second

type serveFlags struct {
	port   int
	dev    bool
	noOpen bool
}

func newServeCmd(app *App) *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "アップロード画面と API を起動する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyServeFlags(app, cmd.Flags().Changed("port"), flags)
			return runServe(cmd, app, flags)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (f *serveFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.port, "port", 0, "ポート番号 (config.toml より優先)")
	fs.BoolVar(&f.dev, "dev", false, "開発モード")
	fs.BoolVar(&f.noOpen, "no-open", false, "ブラウザを自動で開かない")
}

// applyServeFlags 把命令行参数合并进配置
func applyServeFlags(app *App, portChanged bool, flags serveFlags) {
	cfg := app.Config
	if portChanged && flags.port > 0 {
		if app.Info.PortSpecified && cfg.Server.Port != flags.port {
			app.Logger.Info("port overridden by flag", "config", cfg.Server.Port, "flag", flags.port)
		}
		cfg.Server.Port = flags.port
	}
	if flags.dev {
		cfg.Server.DevMode = true
	}
}

func runServe(cmd *cobra.Command, app *App, flags serveFlags) error {
	cfg := app.Config
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "==========================================")
	fmt.Fprintln(out, "  残業時間集計 "+app.Version)
	fmt.Fprintln(out, "==========================================")
	fmt.Fprintf(out, "データディレクトリ: %s\n", config.ResolveDataDir(cfg))

	srv, err := server.NewServer(cfg, app.Logger, app.Version)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()

	switch {
	case cfg.Server.DevMode:
		fmt.Fprintf(out, "開発モード: %s にアクセスしてください\n", url)
	case flags.noOpen:
		fmt.Fprintf(out, "%s にアクセスしてください\n", url)
	default:
		fmt.Fprintf(out, "ブラウザを開いています: %s\n", url)
		if err := util.OpenReportPage(url); err != nil {
			fmt.Fprintf(out, "ブラウザを開けませんでした。%s に手動でアクセスしてください\n", url)
		}
	}
	fmt.Fprintln(out, "\nCtrl+C で停止します...")

	select {
	case err := <-errCh:
		_ = srv.Close()
		if err != nil {
			return fmt.Errorf("サーバーを起動できません: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(out, "\nサーバーを停止しています...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
