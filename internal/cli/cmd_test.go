package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yuji-8024/t-kento/internal/config"
	"github.com/yuji-8024/t-kento/internal/logging"
	"github.com/yuji-8024/t-kento/internal/report"
	"github.com/yuji-8024/t-kento/internal/store"
)

// executeCmd runs the root command and captures stdout/stderr.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// writeWorkbook saves a two-member workbook with a rate sheet.
func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", "まとめ"))
	for _, name := range []string{"山田", "佐藤", "残業代"} {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	timeStyle, err := f.NewStyle(&excelize.Style{NumFmt: 20})
	require.NoError(t, err)

	set := func(sheet, cell string, v any, styled bool) {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
		if styled {
			require.NoError(t, f.SetCellStyle(sheet, cell, cell, timeStyle))
		}
	}
	// 2024-06-02 是周日
	set("山田", "B8", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), false)
	set("山田", "S8", 1.5/24, true)
	set("山田", "S39", 1.5/24, true)
	set("佐藤", "B8", time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC), false)
	set("佐藤", "O8", 2.0/24, true)
	set("佐藤", "O39", 2.0/24, true)

	set("残業代", "C30", "山田 太郎", false)
	set("残業代", "G30", 4000, false)

	path := filepath.Join(dir, "6月.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// exportedFiles lists the CSVs of the single run directory under dir.
func exportedFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	runs, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.True(t, runs[0].IsDir())
	entries, err := os.ReadDir(filepath.Join(dir, runs[0].Name()))
	require.NoError(t, err)
	return entries
}

func TestReportCmd_PrintsViewsAndExports(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir)
	dataDir := filepath.Join(dir, "data")

	out, err := executeCmd(t, "report", path,
		"--config", filepath.Join(dir, "missing.toml"),
		"--data-dir", dataDir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "残業時間集計")
	assert.Contains(t, out, "休日平日仕訳")
	assert.Contains(t, out, "残業代計算")
	assert.Contains(t, out, "山田")
	assert.Contains(t, out, "1:30")
	assert.Contains(t, out, "¥6,000")
	assert.Contains(t, out, "単価が見つからないメンバー: 佐藤")

	assert.Len(t, exportedFiles(t, filepath.Join(dataDir, "exports")), 3)

	st, err := store.New(filepath.Join(dataDir, "overtime.db"))
	require.NoError(t, err)
	defer st.Close()
	n, err := st.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReportCmd_SummaryOnlyWithoutExport(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir)
	outDir := filepath.Join(dir, "csv")

	out, err := executeCmd(t, "report", path,
		"--config", filepath.Join(dir, "missing.toml"),
		"--data-dir", filepath.Join(dir, "data"),
		"--view", "summary",
		"--out", outDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "残業時間集計")
	assert.NotContains(t, out, "残業代計算")

	assert.Len(t, exportedFiles(t, outDir), 1)

	out, err = executeCmd(t, "report", path,
		"--config", filepath.Join(dir, "missing.toml"),
		"--data-dir", filepath.Join(dir, "data"),
		"--no-export")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "書き出し:")
}

func TestReportCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	cfgFlag := []string{"--config", filepath.Join(dir, "missing.toml"), "--data-dir", dir}

	_, err := executeCmd(t, append([]string{"report", filepath.Join(dir, "a.csv")}, cfgFlag...)...)
	assert.ErrorContains(t, err, "対応していないファイル形式")

	broken := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0o644))
	_, err = executeCmd(t, append([]string{"report", broken}, cfgFlag...)...)
	assert.ErrorContains(t, err, "ファイルの読み込み中にエラーが発生しました")

	_, err = executeCmd(t, append([]string{"report", broken, "--view", "weekly"}, cfgFlag...)...)
	assert.ErrorContains(t, err, "unknown view")
}

func TestRootCmd_ExplicitConfigMustLoad(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server\nport = "), 0o644))

	_, err := executeCmd(t, "report", filepath.Join(dir, "x.xlsx"), "--config", bad)
	assert.ErrorContains(t, err, "設定を読み込めません")
}

func TestConfigInitWritesEffectiveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	dataDir := filepath.Join(dir, "data")

	out, err := executeCmd(t, "config", "init", "--config", path, "--data-dir", dataDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "設定を書き出しました")

	cfg, info, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.True(t, info.FileFound)
	assert.Equal(t, dataDir, cfg.Data.DataDir)

	_, err = executeCmd(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "既に存在します")

	_, err = executeCmd(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestParseView(t *testing.T) {
	for in, want := range map[string]report.View{
		"":        report.ViewAll,
		"all":     report.ViewAll,
		"summary": report.ViewSummary,
		"Split":   report.ViewSplit,
	} {
		got, err := parseView(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestApplyServeFlags(t *testing.T) {
	app := &App{Config: config.DefaultConfig(), Logger: logging.Discard()}
	app.Info.PortSpecified = true

	applyServeFlags(app, false, serveFlags{port: 9000})
	assert.Equal(t, 20262, app.Config.Server.Port)

	applyServeFlags(app, true, serveFlags{port: 9000, dev: true})
	assert.Equal(t, 9000, app.Config.Server.Port)
	assert.True(t, app.Config.Server.DevMode)
}

func TestReportFlagsDefaults(t *testing.T) {
	var f reportFlags
	fs := pflag.NewFlagSet("report", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--no-color"}))
	assert.Equal(t, "all", f.view)
	assert.True(t, f.noColor)
	assert.False(t, f.noExport)
}

func TestTableAlignsFullWidthText(t *testing.T) {
	s := newStyles(false)
	out := s.table([]string{"メンバー", "時間"}, [][]string{{"山田", "1:30"}, {"Bob", "12:05"}}, map[int]bool{1: true})
	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "山田       1:30", string(lines[2]))
	assert.Equal(t, "Bob       12:05", string(lines[3]))
}
