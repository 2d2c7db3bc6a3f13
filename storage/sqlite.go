package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

// document is one stored key-value row. The value column keeps the whole
// JSON document for a key, mirroring a browser local-storage entry.
type document struct {
	Key       string         `gorm:"primaryKey"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLiteStore persists documents in an embedded sqlite database. One file is
// one isolated, single-writer instance of the application state.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (and migrates) the database at path. Use ":memory:"
// for a throwaway instance.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite store at %s", path)
	}

	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate document table")
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Read(ctx context.Context, key string, out interface{}) (bool, error) {
	var doc document
	res := s.db.WithContext(ctx).Where("key = ?", key).First(&doc)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrapf(res.Error, "failed to read key %s", key)
	}

	if err := json.Unmarshal(doc.Value, out); err != nil {
		// Treat an undecodable document the same as an absent one. The
		// caller falls back to its default instead of faulting on state
		// written by an older or foreign build.
		Logger.LogV2.Error(fmt.Sprintf("discarding undecodable document under key %s: %v", key, err))
		return false, nil
	}

	return true, nil
}

func (s *SQLiteStore) Write(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize value for key %s", key)
	}

	doc := document{Key: key, Value: datatypes.JSON(raw)}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&doc)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to write key %s", key)
	}

	return nil
}

var _ Store = (*SQLiteStore)(nil)
