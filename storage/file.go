package storage

import (
	"encoding/json"
	"os"

	"sentipost/logger"
)

// FileStore хранит снапшот одним JSON-файлом (аналог localStorage)
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.L.Warnf("storage: corrupt snapshot at %s: %v", s.path, err)
		return nil, nil
	}
	return &snap, nil
}

func (s *FileStore) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) Close() error {
	return nil
}
