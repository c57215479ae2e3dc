// Package exporter writes report views as CSV files (UTF-8 with BOM so that
// Excel opens them with the right encoding).
package exporter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/yuji-8024/t-kento/internal/report"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Kind 导出文件类型，同时也是文件名前缀
type Kind string

const (
	KindSummary Kind = "残業時間集計"
	KindSplit   Kind = "休日平日仕訳"
	KindPay     Kind = "残業代計算"
)

// Kinds 按固定顺序返回全部类型
func Kinds() []Kind {
	return []Kind{KindSummary, KindSplit, KindPay}
}

// FileName 生成带时间戳的文件名，如 "残業代計算_20240602_153000.csv"
func FileName(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", kind, now.Format("20060102_150405"))
}

// WriteSummary 写出残業時間集計
func WriteSummary(w io.Writer, v *report.SummaryView) error {
	return writeCSV(w, summaryRecords(v))
}

// WriteSplit 写出休日平日仕訳
func WriteSplit(w io.Writer, v *report.SplitView) error {
	return writeCSV(w, splitRecords(v))
}

// WritePay 写出残業代計算
func WritePay(w io.Writer, v *report.PayView) error {
	return writeCSV(w, payRecords(v))
}

func writeCSV(w io.Writer, records any) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("CSV を書き込めません: %w", err)
	}
	return nil
}

// Render returns the CSV bytes of one view of rep. ok is false when rep does
// not carry that view.
func Render(rep *report.Report, kind Kind) (data []byte, ok bool, err error) {
	var buf bytes.Buffer
	switch kind {
	case KindSummary:
		if rep.Summary == nil {
			return nil, false, nil
		}
		err = WriteSummary(&buf, rep.Summary)
	case KindSplit:
		if rep.Split == nil {
			return nil, false, nil
		}
		err = WriteSplit(&buf, rep.Split)
	case KindPay:
		if rep.Pay == nil {
			return nil, false, nil
		}
		err = WritePay(&buf, rep.Pay)
	default:
		return nil, false, fmt.Errorf("unknown export kind %q", kind)
	}
	if err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}

// File 已写出的文件
type File struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Exporter 把报告写入导出目录
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter 创建导出器
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Dir 导出目录
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes every view present in rep into a directory of its own,
// <dir>/<RunID>/, and returns the files in Kinds() order. File.Name keeps
// the timestamped name for downloads; concurrent runs never share a path.
func (e *Exporter) Export(rep *report.Report, progress func(ProgressEvent)) ([]File, error) {
	runID := rep.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	runDir := filepath.Join(e.dir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("エクスポート先を作成できません: %w", err)
	}

	now := e.now()
	kinds := Kinds()
	var files []File
	for i, kind := range kinds {
		reportProgress(progress, i*100/len(kinds), string(kind))
		data, ok, err := Render(rep, kind)
		if err != nil {
			return files, err
		}
		if !ok {
			continue
		}
		name := FileName(kind, now)
		path := filepath.Join(runDir, name)
		if err := writeFileAtomic(path, data); err != nil {
			return files, fmt.Errorf("%s を書き込めません: %w", name, err)
		}
		files = append(files, File{Kind: kind, Name: name, Path: path, Size: int64(len(data))})
	}
	reportProgress(progress, 100, "done")
	return files, nil
}

// writeFileAtomic 先写同目录下的临时文件再 rename，下载方不会读到半个文件
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
