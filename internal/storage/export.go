package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// SessionRow is the columnar form of a journaled session.
type SessionRow struct {
	SessionID  string `parquet:"session_id"`
	Width      int32  `parquet:"width"`
	Height     int32  `parquet:"height"`
	Ticks      int64  `parquet:"ticks"`
	Length     int32  `parquet:"length"`
	FruitEaten int32  `parquet:"fruit_eaten"`
	EndReason  string `parquet:"end_reason,dict"`
	Detail     string `parquet:"detail,optional"`
	StartedAt  int64  `parquet:"started_at_ms"`
	EndedAt    int64  `parquet:"ended_at_ms"`
	DurationMs int64  `parquet:"duration_ms"`
}

// ToRow converts an entry to its parquet row.
func (e SessionEntry) ToRow() SessionRow {
	return SessionRow{
		SessionID:  e.SessionID,
		Width:      int32(e.Width),
		Height:     int32(e.Height),
		Ticks:      e.Ticks,
		Length:     int32(e.Length),
		FruitEaten: int32(e.FruitEaten),
		EndReason:  e.EndReason,
		Detail:     e.Detail,
		StartedAt:  e.StartedAt.UnixMilli(),
		EndedAt:    e.EndedAt.UnixMilli(),
		DurationMs: e.Duration().Milliseconds(),
	}
}

// WriteSessionsParquet writes rows to outPath through a temp file and an
// atomic rename.
func WriteSessionsParquet(outPath string, rows []SessionRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("storage: create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "crowdsnake_sessions_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: rename parquet: %w", err)
	}
	return nil
}

// ExportParquet writes the whole journal to outPath and returns the row count.
func (s *Store) ExportParquet(outPath string) (int, error) {
	entries, err := s.AllSessions()
	if err != nil {
		return 0, err
	}

	rows := make([]SessionRow, len(entries))
	for i, e := range entries {
		rows[i] = e.ToRow()
	}
	if err := WriteSessionsParquet(outPath, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
