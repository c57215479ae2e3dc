package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yuji-8024/t-kento/internal/config"
	"github.com/yuji-8024/t-kento/internal/exporter"
	"github.com/yuji-8024/t-kento/internal/report"
	"github.com/yuji-8024/t-kento/internal/store"
	"github.com/yuji-8024/t-kento/internal/util"
	"github.com/yuji-8024/t-kento/internal/workbook"
)

type reportFlags struct {
	view     string
	outDir   string
	noExport bool
	noColor  bool
}

func newReportCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "ワークブックを集計して結果を表示し、CSV を書き出す",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, app, args[0], flags)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (f *reportFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.view, "view", "all", "summary/split/all")
	fs.StringVar(&f.outDir, "out", "", "CSV の出力先 (既定: <data-dir>/exports)")
	fs.BoolVar(&f.noExport, "no-export", false, "CSV を書き出さない")
	fs.BoolVar(&f.noColor, "no-color", false, "色を付けない")
}

// parseView 解析 --view
func parseView(s string) (report.View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "report":
		return report.ViewAll, nil
	case "summary":
		return report.ViewSummary, nil
	case "split":
		return report.ViewSplit, nil
	default:
		return 0, fmt.Errorf("unknown view %q (summary/split/all)", s)
	}
}

func runReport(cmd *cobra.Command, app *App, path string, flags reportFlags) error {
	view, err := parseView(flags.view)
	if err != nil {
		return err
	}
	if !workbook.SupportedExtension(path) {
		return fmt.Errorf("対応していないファイル形式です（.xlsx / .xls のみ）: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg := app.Config
	pipeline := report.NewPipeline(report.Options{
		Reserved:  cfg.Workbook.ReservedSheets,
		RateSheet: cfg.Workbook.RateSheet,
		Logger:    app.Logger,
	})
	rep, err := pipeline.Process(f, filepath.Base(path), view)
	if err != nil {
		return fmt.Errorf("ファイルの読み込み中にエラーが発生しました: %w", err)
	}

	out := cmd.OutOrStdout()
	s := newStyles(!flags.noColor && isTerminal(out))
	fmt.Fprint(out, renderReport(s, rep))

	var dataDir string
	if !flags.noExport || cfg.Data.RunLog {
		if dataDir, err = config.EnsureDataDir(cfg); err != nil {
			return fmt.Errorf("データディレクトリを作成できません: %w", err)
		}
	}

	if !flags.noExport {
		dir := flags.outDir
		if dir == "" {
			dir = filepath.Join(dataDir, config.ExportsDir)
		}
		files, err := exporter.NewExporter(dir).Export(rep, func(ev exporter.ProgressEvent) {
			app.Logger.Debug("export", "percent", ev.Percent, "stage", ev.Stage)
		})
		for _, file := range files {
			fmt.Fprintf(out, "%s %s (%s)\n", s.dim.Render("書き出し:"), file.Path, util.FormatBytes(file.Size))
		}
		if err != nil {
			return err
		}
	}

	if cfg.Data.RunLog {
		recordRun(app, config.GetDataPath(cfg, "", config.RunLogFile), rep)
	}
	return nil
}

// recordRun 写运行日志；失败只记日志，不影响报告结果
func recordRun(app *App, dbPath string, rep *report.Report) {
	st, err := store.New(dbPath)
	if err != nil {
		app.Logger.Error("run log open failed", "path", dbPath, "error", err)
		return
	}
	defer st.Close()
	if err := st.RecordRun(rep.Record(), rep.Sheets); err != nil {
		app.Logger.Error("run log write failed", "run", rep.RunID, "error", err)
	}
}
