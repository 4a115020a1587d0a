package services

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSConnManager - реестр WebSocket-соединений по токену сессии
type WSConnManager struct {
	mu    sync.RWMutex
	conns map[string][]*websocket.Conn
}

func NewWSConnManager() *WSConnManager {
	return &WSConnManager{
		conns: make(map[string][]*websocket.Conn),
	}
}

func (m *WSConnManager) Add(token string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[token] = append(m.conns[token], conn)
}

func (m *WSConnManager) Remove(token string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns := m.conns[token]
	for i, c := range conns {
		if c == conn {
			m.conns[token] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.conns[token]) == 0 {
		delete(m.conns, token)
	}
}

// Broadcast рассылает сообщение всем подключенным клиентам
func (m *WSConnManager) Broadcast(message []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, conns := range m.conns {
		for _, conn := range conns {
			_ = conn.WriteMessage(websocket.TextMessage, message)
		}
	}
}
