package storage

import (
	"encoding/json"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sentipost/logger"
)

// KeyValue - строка снапшота в sqlite; значение сериализуется в JSON
type KeyValue struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

func (KeyValue) TableName() string {
	return "key_value"
}

// SqliteStore хранит снапшот в локальном sqlite-файле
type SqliteStore struct {
	db *gorm.DB
}

func OpenSqlite(path string) (*SqliteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&KeyValue{}); err != nil {
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Load() (*Snapshot, error) {
	var row KeyValue
	err := s.db.First(&row, "key = ?", SnapshotKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.First(&row, "key = ?", LegacySnapshotKey).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(row.Value), &snap); err != nil {
		logger.L.Warnf("storage: corrupt snapshot in sqlite: %v", err)
		return nil, nil
	}
	return &snap, nil
}

func (s *SqliteStore) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	row := KeyValue{Key: SnapshotKey, Value: string(data)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
}

func (s *SqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
