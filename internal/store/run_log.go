package store

import "fmt"

// CreateRunLog 创建运行记录，返回 run_log_id
func (s *Store) CreateRunLog(runUUID, outputDir string, rawMode bool, totalFiles int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO run_logs (run_uuid, output_dir, raw_mode, total_files, status)
		VALUES (?, ?, ?, ?, 'running')
	`, runUUID, outputDir, rawMode, totalFiles)
	if err != nil {
		return 0, fmt.Errorf("failed to create run log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run log id: %w", err)
	}
	return id, nil
}

// FinishRunLog 完成运行记录更新
func (s *Store) FinishRunLog(id int64, converted, skipped int, status string) error {
	_, err := s.db.Exec(`
		UPDATE run_logs SET
			converted_files = ?,
			skipped_files = ?,
			status = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, converted, skipped, status, id)
	if err != nil {
		return fmt.Errorf("failed to update run log: %w", err)
	}
	return nil
}

// InsertRunFile 记录单文件处理结果
func (s *Store) InsertRunFile(runID int64, filename, seasonKey, status string, rowCount int, reason string) error {
	_, err := s.db.Exec(`
		INSERT INTO run_files (run_id, filename, season_key, status, row_count, reason)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, filename, seasonKey, status, rowCount, reason)
	if err != nil {
		return fmt.Errorf("failed to insert run file: %w", err)
	}
	return nil
}

// RunLogEntry 运行历史条目
type RunLogEntry struct {
	ID             int64  `json:"id"`
	RunUUID        string `json:"runUuid"`
	OutputDir      string `json:"outputDir"`
	RawMode        bool   `json:"rawMode"`
	TotalFiles     int    `json:"totalFiles"`
	ConvertedFiles int    `json:"convertedFiles"`
	SkippedFiles   int    `json:"skippedFiles"`
	Status         string `json:"status"`
	StartedAt      string `json:"startedAt"`
	CompletedAt    string `json:"completedAt"`
}

// RecentRuns 最近的运行历史，按开始时间倒序
func (s *Store) RecentRuns(limit int) ([]RunLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, run_uuid, output_dir, raw_mode, total_files,
		       converted_files, skipped_files, status,
		       started_at, COALESCE(completed_at, '')
		FROM run_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run logs: %w", err)
	}
	defer rows.Close()

	entries := []RunLogEntry{}
	for rows.Next() {
		var e RunLogEntry
		if err := rows.Scan(&e.ID, &e.RunUUID, &e.OutputDir, &e.RawMode, &e.TotalFiles,
			&e.ConvertedFiles, &e.SkippedFiles, &e.Status, &e.StartedAt, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
