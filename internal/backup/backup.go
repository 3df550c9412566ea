// Package backup keeps timestamped copies of the tracker's data file.
// Both backends persist to a single file, so backups are file copies:
// SQLite files go through VACUUM INTO when possible, JSON files are
// checked for well-formedness before being trusted.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is the retention cap; older copies are rotated out.
	MaxBackups = 14
	// BackupDirName is created next to the data file.
	BackupDirName = "backups"
	// BackupFilePrefix prefixes every backup file name.
	BackupFilePrefix = "subtrack-"
)

// Info describes one backup file on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for a single data file.
type Manager struct {
	dataPath  string
	backupDir string
	suffix    string
}

func NewManager(dataPath string) *Manager {
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), BackupDirName),
		suffix:    filepath.Ext(dataPath),
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create writes a new backup of the data file and rotates old copies.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	backupPath, err := m.freshBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.copyData(backupPath); err != nil {
		return "", fmt.Errorf("failed to back up data file: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			// Rotation failure should not fail the backup itself.
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// freshBackupPath generates a timestamped file name, escalating from
// minute to second precision to a counter when names collide.
func (m *Manager) freshBackupPath() (string, error) {
	timestamp := time.Now().Format("20060102-1504")
	path := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+m.suffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp = time.Now().Format("20060102-150405")
	path = filepath.Join(m.backupDir, BackupFilePrefix+timestamp+m.suffix)
	counter := 0
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, m.suffix))
	}
}

func (m *Manager) copyData(destPath string) error {
	if m.suffix != ".json" {
		// VACUUM INTO produces a clean, compacted copy. Fall back to a
		// plain file copy on SQLite builds that predate it.
		srcDB, err := sql.Open("sqlite", m.dataPath+"?mode=ro")
		if err != nil {
			return fmt.Errorf("failed to open source database: %w", err)
		}
		defer srcDB.Close()

		var count int
		if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
			return fmt.Errorf("source database appears to be corrupted: %w", err)
		}

		if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
			return copyFile(m.dataPath, destPath)
		}
		return nil
	}

	return copyFile(m.dataPath, destPath)
}

// List returns all available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), m.suffix)
		// Strip a collision counter suffix (all digits after the last
		// hyphen, never 4 or 6 chars which would be a time component).
		if parts := strings.Split(stamp, "-"); len(parts) > 2 {
			last := parts[len(parts)-1]
			if len(last) != 4 && len(last) != 6 && isDigits(last) {
				stamp = strings.Join(parts[:len(parts)-1], "-")
			}
		}

		timestamp, err := time.Parse("20060102-1504", stamp)
		if err != nil {
			timestamp, err = time.Parse("20060102-150405", stamp)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// Restore replaces the data file with a backup, after verifying the
// backup and saving a copy of the current file.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dataPath); err == nil {
		// skipRotation here so the safety copy never gets rotated away
		// by the restore that created it.
		safety, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to back up current data before restore: %w", err)
		}
		fmt.Printf("Created backup of current data: %s\n", filepath.Base(safety))
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore data file: %w", err)
	}

	return nil
}

func (m *Manager) verify(path string) error {
	if m.suffix == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var doc map[string]any
		return json.Unmarshal(data, &doc)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
