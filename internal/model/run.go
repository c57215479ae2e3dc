package model

import "time"

// RunRecord 一次上传处理的运行记录（只记录元信息，不记录计算结果）
type RunRecord struct {
	ID            string        `json:"id"`
	Filename      string        `json:"filename"`
	FileSize      int64         `json:"fileSize"`
	FileHash      string        `json:"fileHash"`
	View          string        `json:"view"` // summary/split/report
	TotalSheets   int           `json:"totalSheets"`
	MemberSheets  int           `json:"memberSheets"`
	SkippedSheets int           `json:"skippedSheets"`
	Warnings      int           `json:"warnings"`
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
	Duration      time.Duration `json:"duration"`
	StartedAt     time.Time     `json:"startedAt"`
}
