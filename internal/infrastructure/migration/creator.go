package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes a freshly created up/down pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty .up.sql/.down.sql pair into migrationsDir.
// The version prefix is the creation timestamp so lexical order matches
// creation order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := filepath.Join(migrationsDir, version+"_"+sanitizeName(name))

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		UpPath:      base + ".up.sql",
		DownPath:    base + ".down.sql",
	}

	upHeader := stubHeader(name, description, now)
	downHeader := stubHeader(name+" (rollback)", "Rollback for "+description, now)

	if err := os.WriteFile(mf.UpPath, []byte(upHeader), 0o644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}
	if err := os.WriteFile(mf.DownPath, []byte(downHeader), 0o644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return mf, nil
}

func stubHeader(name, description string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration: %s\n", name)
	fmt.Fprintf(&b, "-- Created: %s\n", now.Format(time.RFC3339))
	if description != "" {
		fmt.Fprintf(&b, "-- Description: %s\n", description)
	}
	b.WriteString("\n")
	return b.String()
}

// sanitizeName lowercases a migration name and collapses separators and
// non-alphanumerics into single underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if len(s) > 0 && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of the migration pairs found in
// migrationsDir, in lexical (i.e. version) order. A missing directory is
// treated as empty.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			migrations = append(migrations, base)
		}
	}
	return migrations, nil
}
