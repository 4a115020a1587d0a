package handlers

import (
	"sync"
	"time"

	"sentipost/services"
	"sentipost/store"
)

// API - обработчики обеих поверхностей над общим стором
type API struct {
	Store *store.Store
	Auth  *services.AuthService
	WS    *services.WSConnManager
	Now   func() time.Time

	// окна комментариев по токену сессии
	windowsMu sync.Mutex
	windows   map[string]*services.CommentWindow
}

func New(st *store.Store, auth *services.AuthService, ws *services.WSConnManager) *API {
	return &API{
		Store:   st,
		Auth:    auth,
		WS:      ws,
		Now:     time.Now,
		windows: make(map[string]*services.CommentWindow),
	}
}

func (a *API) today() string {
	return a.Now().Format("2006-01-02")
}

// window возвращает окно комментариев сессии, создавая при первом обращении
func (a *API) window(token string) *services.CommentWindow {
	a.windowsMu.Lock()
	defer a.windowsMu.Unlock()
	w, ok := a.windows[token]
	if !ok {
		w = services.NewCommentWindow()
		a.windows[token] = w
	}
	return w
}

// dropWindow освобождает окно погашенной сессии, иначе карта растет
// с каждым выданным токеном
func (a *API) dropWindow(token string) {
	a.windowsMu.Lock()
	defer a.windowsMu.Unlock()
	delete(a.windows, token)
}
