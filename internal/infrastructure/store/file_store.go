package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type fileEntry struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	ExpiresAt *time.Time
}

func (fileEntry) TableName() string {
	return "store_entries"
}

// FileStore keeps entries in a SQLite file so that one command can pick up
// what an earlier one stored. Expired entries are dropped on read.
type FileStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenFileStore opens the database at path, creating the file and its
// directory when missing. The file is readable by the owner only.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if err := db.AutoMigrate(&fileEntry{}); err != nil {
		return nil, fmt.Errorf("migrate store %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return nil, fmt.Errorf("restrict store permissions: %w", err)
	}

	return &FileStore{db: db, now: time.Now}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	var e fileEntry
	err := s.db.WithContext(ctx).First(&e, "name = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if e.ExpiresAt != nil && !s.now().Before(*e.ExpiresAt) {
		if err := s.Delete(ctx, key); err != nil {
			return "", err
		}
		return "", ErrNotFound
	}
	return e.Value, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	e := fileEntry{Name: key, Value: value}
	if expiration > 0 {
		expiresAt := s.now().Add(expiration).UTC()
		e.ExpiresAt = &expiresAt
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&e).Error
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&fileEntry{}, "name = ?", key).Error
}

func (s *FileStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
