package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuji-8024/t-kento/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "設定ファイルを扱う",
	}
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "現在の設定を config.toml に書き出す",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Info.Path
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s は既に存在します (--force で上書き)", path)
				}
			}
			if err := config.SaveConfig(app.Config, path); err != nil {
				return fmt.Errorf("設定を書き込めません: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "設定を書き出しました: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "既存の config.toml を上書きする")
	return cmd
}
