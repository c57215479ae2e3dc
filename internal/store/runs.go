package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/yuji-8024/t-kento/internal/model"
)

// RecordRun 写入一次运行及其 sheet 状态
func (s *Store) RecordRun(rec *model.RunRecord, sheets []model.SheetStatus) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (
			id, filename, file_size, file_hash, view,
			total_sheets, member_sheets, skipped_sheets, warnings,
			status, error_message, duration_ms, started_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID, rec.Filename, rec.FileSize, rec.FileHash, rec.View,
		rec.TotalSheets, rec.MemberSheets, rec.SkippedSheets, rec.Warnings,
		rec.Status, rec.ErrorMessage, rec.Duration.Milliseconds(), rec.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, st := range sheets {
		_, err := tx.Exec(`
			INSERT INTO run_sheets (run_id, position, sheet_name, role, status, error_message)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rec.ID, i, st.Sheet, string(st.Role), st.Status, st.Error)
		if err != nil {
			return fmt.Errorf("failed to insert run sheet %s: %w", st.Sheet, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `id, filename, file_size, file_hash, view,
	total_sheets, member_sheets, skipped_sheets, warnings,
	status, error_message, duration_ms, started_at`

func scanRun(row interface{ Scan(...any) error }) (*model.RunRecord, error) {
	var (
		rec        model.RunRecord
		durationMS int64
		startedAt  time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.Filename, &rec.FileSize, &rec.FileHash, &rec.View,
		&rec.TotalSheets, &rec.MemberSheets, &rec.SkippedSheets, &rec.Warnings,
		&rec.Status, &rec.ErrorMessage, &durationMS, &startedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.StartedAt = startedAt
	return &rec, nil
}

// ListRuns 按开始时间倒序返回最近的运行记录
func (s *Store) ListRuns(limit int) ([]*model.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []*model.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetRun 按 ID 查询运行记录，不存在时返回 (nil, nil)
func (s *Store) GetRun(id string) (*model.RunRecord, error) {
	rec, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return rec, nil
}

// ListRunSheets 返回某次运行的 sheet 状态（按工作簿顺序）
func (s *Store) ListRunSheets(runID string) ([]model.SheetStatus, error) {
	rows, err := s.db.Query(`
		SELECT sheet_name, role, status, error_message
		FROM run_sheets WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run sheets: %w", err)
	}
	defer rows.Close()

	var out []model.SheetStatus
	for rows.Next() {
		var (
			st   model.SheetStatus
			role string
		)
		if err := rows.Scan(&st.Sheet, &role, &st.Status, &st.Error); err != nil {
			return nil, err
		}
		st.Role = model.SheetRole(role)
		out = append(out, st)
	}
	return out, rows.Err()
}

// CountRuns 运行总数
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
