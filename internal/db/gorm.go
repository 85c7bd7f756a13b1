package db

import (
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/config"
)

// Well-known keys. The whole persisted state lives in these four blobs,
// there is no schema version and no migration path.
const (
	KeyUsers       = "users"
	KeyReviews     = "reviews"
	KeyRecipes     = "recipes"
	KeyCurrentUser = "currentUser"
)

type (
	// Record is a single row of the key-value namespace. Values are JSON.
	Record struct {
		Key   string `gorm:"primarykey"`
		Value string `gorm:"not null"`
	}

	// Store gives typed access to the namespace. Writes are atomic per key
	// only; sequences touching several keys are best effort.
	Store struct {
		db     *gorm.DB
		logger *zap.SugaredLogger
	}
)

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.StorePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, errors.Wrap(err, "migrate record")
	}

	return db, nil
}

func NewStore(db *gorm.DB, l *zap.SugaredLogger) *Store {
	return &Store{
		db:     db,
		logger: l,
	}
}

// Get unmarshals the value stored under key into out. A missing key or a
// blob that does not parse leaves out untouched, so the caller's default
// survives; corruption is logged, never returned.
func (s *Store) Get(key string, out interface{}) bool {
	sql, args, err := squirrel.
		Select("value").From("records").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		s.logger.Errorw("build sql", "key", key, "error", err)
		return false
	}

	var value string
	res := s.db.Raw(sql, args...).Scan(&value)
	if res.Error != nil {
		s.logger.Errorw("read record", "key", key, "error", res.Error)
		return false
	}
	if res.RowsAffected == 0 {
		return false
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		s.logger.Warnw("stored value does not parse, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) Set(key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal value")
	}

	record := Record{Key: key, Value: string(b)}
	res := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record)
	if res.Error != nil {
		return errors.Wrap(res.Error, "save record")
	}
	return nil
}

func (s *Store) Delete(key string) error {
	res := s.db.Delete(&Record{}, "key = ?", key)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete record")
	}
	return nil
}
