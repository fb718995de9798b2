package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/saadjs/gymbro/internal/compress"
	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
)

type BackupInfo struct {
	Path       string    `json:"path"`
	Checksum   string    `json:"checksum"`
	CreatedAt  time.Time `json:"created_at"`
	SizeBytes  int64     `json:"size_bytes"`
	Compressed bool      `json:"compressed"`
}

type DoctorReport struct {
	InvalidValues     int `json:"invalid_values"`
	MalformedRecords  int `json:"malformed_records"`
	OrphanIngredients int `json:"orphan_ingredients"`
	OrphanPlanItems   int `json:"orphan_plan_items"`
	InvalidWaterLogs  int `json:"invalid_water_logs"`
	Fixed             int `json:"fixed,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return r.InvalidValues == 0 && r.MalformedRecords == 0 && r.OrphanIngredients == 0 &&
		r.OrphanPlanItems == 0 && r.InvalidWaterLogs == 0
}

// arrayKeys are the store keys that must hold JSON arrays.
var arrayKeys = []string{
	localstore.KeyWorkouts,
	localstore.KeyNutritionLogs,
	localstore.KeyBodyMetrics,
	localstore.KeyWaterLogs,
	localstore.KeyShoppingLists,
	localstore.KeyFavorites,
}

// CreateBackup snapshots the database to outPath. A .zst suffix writes a
// zstd-compressed copy.
func CreateBackup(db *sql.DB, codec compress.Codec, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	snapshot := filepath.Join(filepath.Dir(outPath), fmt.Sprintf(".snapshot-%d.db", time.Now().UnixNano()))
	if _, err := db.Exec(`VACUUM INTO ?`, snapshot); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}
	defer os.Remove(snapshot)

	raw, err := os.ReadFile(snapshot)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("read snapshot: %w", err)
	}
	compressed := compress.IsCompressedPath(outPath)
	if compressed {
		if raw, err = codec.Compress(raw); err != nil {
			return BackupInfo{}, fmt.Errorf("compress backup: %w", err)
		}
	}
	if err := os.WriteFile(outPath, raw, 0o600); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum := checksumOf(raw)
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size(), Compressed: compressed}, nil
}

func RestoreBackup(codec compress.Codec, backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	raw, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		if strings.TrimSpace(string(expected)) != checksumOf(raw) {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if compress.LooksCompressed(raw) {
		if raw, err = codec.Decompress(raw); err != nil {
			return fmt.Errorf("decompress backup: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	if err := os.WriteFile(dbPath, raw, 0o600); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		compressed := strings.HasSuffix(name, ".db"+compress.Extension)
		if !compressed && !strings.HasSuffix(name, ".db") {
			continue
		}
		full := filepath.Join(dir, name)
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size(), Compressed: compressed})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor checks the local store and the recipe tables. With fix it
// drops unreadable values, orphaned rows and non-positive water logs.
func RunDoctor(ctx context.Context, db *sql.DB, store *localstore.Store, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM kv_store`)
	if err != nil {
		return report, fmt.Errorf("doctor value query: %w", err)
	}
	badKeys := make([]string, 0)
	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor value scan: %w", err)
		}
		if !json.Valid([]byte(value)) {
			report.InvalidValues++
			badKeys = append(badKeys, key)
			continue
		}
		values[key] = value
	}
	_ = rows.Close()

	for _, key := range arrayKeys {
		value, ok := values[key]
		if !ok {
			continue
		}
		var probe []json.RawMessage
		if err := json.Unmarshal([]byte(value), &probe); err != nil {
			report.MalformedRecords++
			badKeys = append(badKeys, key)
		}
	}

	if err := db.QueryRowContext(ctx, `
SELECT COUNT(1) FROM recipe_ingredients i LEFT JOIN recipes r ON r.id = i.recipe_id WHERE r.id IS NULL
`).Scan(&report.OrphanIngredients); err != nil {
		return report, fmt.Errorf("doctor ingredient check: %w", err)
	}
	if err := db.QueryRowContext(ctx, `
SELECT COUNT(1) FROM meal_plan_items m LEFT JOIN recipes r ON r.id = m.recipe_id WHERE r.id IS NULL
`).Scan(&report.OrphanPlanItems); err != nil {
		return report, fmt.Errorf("doctor meal plan check: %w", err)
	}

	water := make([]model.WaterLog, 0)
	validWater := make([]model.WaterLog, 0)
	if value, ok := values[localstore.KeyWaterLogs]; ok {
		_ = json.Unmarshal([]byte(value), &water)
	}
	for _, w := range water {
		if w.Amount <= 0 {
			report.InvalidWaterLogs++
			continue
		}
		validWater = append(validWater, w)
	}

	if !fix {
		return report, nil
	}
	for _, key := range badKeys {
		store.Delete(ctx, key)
		report.Fixed++
	}
	if report.InvalidWaterLogs > 0 {
		if err := store.SetE(ctx, localstore.KeyWaterLogs, validWater); err != nil {
			return report, fmt.Errorf("doctor fix water logs: %w", err)
		}
		report.Fixed += report.InvalidWaterLogs
	}
	for _, stmt := range []string{
		`DELETE FROM recipe_ingredients WHERE recipe_id NOT IN (SELECT id FROM recipes)`,
		`DELETE FROM meal_plan_items WHERE recipe_id NOT IN (SELECT id FROM recipes)`,
	} {
		res, err := db.ExecContext(ctx, stmt)
		if err != nil {
			return report, fmt.Errorf("doctor fix orphans: %w", err)
		}
		n, _ := res.RowsAffected()
		report.Fixed += int(n)
	}
	return report, nil
}

func checksumOf(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
