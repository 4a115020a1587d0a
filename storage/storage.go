package storage

import (
	"sentipost/config"
	"sentipost/models"
)

const (
	// SnapshotKey - текущий ключ снапшота
	SnapshotKey = "senti-storage"
	// LegacySnapshotKey - ключ из старых версий, читается как фолбэк
	LegacySnapshotKey = "senti-auth"
)

// Snapshot - персистентная часть состояния: обе авторизации и UI-настройка
type Snapshot struct {
	User                *models.User `json:"user"`
	IsAuthenticated     bool         `json:"isAuthenticated"`
	UserInfo            *models.User `json:"userInfo,omitempty"`
	IsUserAuthenticated bool         `json:"isUserAuthenticated,omitempty"`
	SidebarCollapsed    bool         `json:"sidebarCollapsed"`
}

// Store - долговременное хранилище снапшота.
// Load возвращает (nil, nil), если снапшота нет или он поврежден:
// испорченный снапшот никогда не валит старт процесса.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
	Close() error
}

// Open создает хранилище по конфигурации
func Open(conf config.StorageConfig) (Store, error) {
	switch conf.Driver {
	case "redis":
		return OpenRedis(conf.Redis)
	case "sqlite":
		return OpenSqlite(conf.Path)
	default:
		return NewFileStore(conf.Path), nil
	}
}
