package store

import (
	"errors"
	"sync"
	"time"

	"sentipost/logger"
	"sentipost/models"
	"sentipost/storage"
)

// ErrDuplicateTagName возвращается мутаторами тегов, когда включена
// проверка уникальности имен
var ErrDuplicateTagName = errors.New("tag name already exists")

// ErrTagNotFound возвращается при обновлении несуществующего тега
var ErrTagNotFound = errors.New("tag not found")

// Event - уведомление подписчикам об изменении состояния
type Event struct {
	Name       string `json:"event"`
	Collection string `json:"collection,omitempty"`
}

type Listener func(Event)

// Store - единый контейнер состояния: пять коллекций, две авторизации
// и UI-настройки. Создается конструктором и передается явно, а не
// глобальной переменной, чтобы тесты могли поднимать изолированные
// экземпляры.
type Store struct {
	mu sync.RWMutex

	users        []models.User
	posts        []models.Post
	tags         []models.Tag
	interactions []models.Interaction
	comments     []models.Comment

	user                *models.User
	isAuthenticated     bool
	userInfo            *models.User
	isUserAuthenticated bool
	sidebarCollapsed    bool

	snapshots     storage.Store
	persistReader bool
	enforceTags   bool
	now           func() time.Time

	listeners []Listener
}

type Option func(*Store)

// WithSnapshots подключает долговременное хранилище снапшота
func WithSnapshots(s storage.Store) Option {
	return func(st *Store) { st.snapshots = s }
}

// WithClock подменяет источник времени (для детерминированных тестов дат)
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

// WithReaderPersistence включает сохранение читательской сессии в снапшот
func WithReaderPersistence(on bool) Option {
	return func(st *Store) { st.persistReader = on }
}

// WithTagUniqueness включает проверку уникальности имен тегов на мутации
func WithTagUniqueness(on bool) Option {
	return func(st *Store) { st.enforceTags = on }
}

func New(opts ...Option) *Store {
	st := &Store{now: time.Now}
	for _, opt := range opts {
		opt(st)
	}
	st.load()
	return st
}

// load восстанавливает персистентную часть состояния. Отсутствующий или
// испорченный снапшот дает нулевые значения и никогда не валит старт.
func (st *Store) load() {
	if st.snapshots == nil {
		return
	}
	snap, err := st.snapshots.Load()
	if err != nil {
		logger.L.Warnf("store: failed to load snapshot: %v", err)
		return
	}
	if snap == nil {
		return
	}
	st.user = snap.User
	st.isAuthenticated = snap.IsAuthenticated
	st.sidebarCollapsed = snap.SidebarCollapsed
	if st.persistReader {
		st.userInfo = snap.UserInfo
		st.isUserAuthenticated = snap.IsUserAuthenticated
	}
}

// persist пишет снапшот best-effort: ошибка логируется и не отдается выше
func (st *Store) persist() {
	if st.snapshots == nil {
		return
	}
	snap := &storage.Snapshot{
		User:             st.user,
		IsAuthenticated:  st.isAuthenticated,
		SidebarCollapsed: st.sidebarCollapsed,
	}
	if st.persistReader {
		snap.UserInfo = st.userInfo
		snap.IsUserAuthenticated = st.isUserAuthenticated
	}
	if err := st.snapshots.Save(snap); err != nil {
		logger.L.Warnf("store: failed to persist snapshot: %v", err)
	}
}

// Subscribe регистрирует слушателя изменений
func (st *Store) Subscribe(fn Listener) {
	st.mu.Lock()
	st.listeners = append(st.listeners, fn)
	st.mu.Unlock()
}

// notify вызывает слушателей вне блокировки, чтобы подписчик мог читать стор
func (st *Store) notify(ev Event) {
	st.mu.RLock()
	listeners := make([]Listener, len(st.listeners))
	copy(listeners, st.listeners)
	st.mu.RUnlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

// SetCollection заменяет именованную коллекцию целиком. Формы записей не
// проверяются: что пришло, то и увидят потребители.
func (st *Store) SetCollection(name string, items interface{}) {
	switch name {
	case "users":
		if v, ok := items.([]models.User); ok {
			st.SetUsers(v)
		}
	case "posts":
		if v, ok := items.([]models.Post); ok {
			st.SetPosts(v)
		}
	case "tags":
		if v, ok := items.([]models.Tag); ok {
			st.SetTags(v)
		}
	case "interactions":
		if v, ok := items.([]models.Interaction); ok {
			st.SetInteractions(v)
		}
	case "comments":
		if v, ok := items.([]models.Comment); ok {
			st.SetComments(v)
		}
	}
}

func (st *Store) SetUsers(users []models.User) {
	st.mu.Lock()
	st.users = users
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "users"})
}

func (st *Store) SetPosts(posts []models.Post) {
	st.mu.Lock()
	st.posts = posts
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "posts"})
}

func (st *Store) SetTags(tags []models.Tag) {
	st.mu.Lock()
	st.tags = tags
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "tags"})
}

func (st *Store) SetInteractions(interactions []models.Interaction) {
	st.mu.Lock()
	st.interactions = interactions
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "interactions"})
}

func (st *Store) SetComments(comments []models.Comment) {
	st.mu.Lock()
	st.comments = comments
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "comments"})
}

func (st *Store) Users() []models.User {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.User, len(st.users))
	copy(out, st.users)
	return out
}

func (st *Store) Posts() []models.Post {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.Post, len(st.posts))
	copy(out, st.posts)
	return out
}

func (st *Store) Tags() []models.Tag {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.Tag, len(st.tags))
	copy(out, st.tags)
	return out
}

func (st *Store) Interactions() []models.Interaction {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.Interaction, len(st.interactions))
	copy(out, st.interactions)
	return out
}

func (st *Store) Comments() []models.Comment {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.Comment, len(st.comments))
	copy(out, st.comments)
	return out
}

// FindPost ищет пост по id; висячие ссылки отдаются как "не найдено"
func (st *Store) FindPost(id int64) (models.Post, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, p := range st.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (st *Store) FindUser(id int64) (models.User, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, u := range st.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (st *Store) FindUserByUsername(username string) (models.User, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, u := range st.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

// Login сохраняет админскую авторизацию; всегда персистится
func (st *Store) Login(user models.User) {
	st.mu.Lock()
	st.user = &user
	st.isAuthenticated = true
	st.persist()
	st.mu.Unlock()
	st.notify(Event{Name: "auth_changed"})
}

func (st *Store) Logout() {
	st.mu.Lock()
	st.user = nil
	st.isAuthenticated = false
	st.persist()
	st.mu.Unlock()
	st.notify(Event{Name: "auth_changed"})
}

// UserLogin сохраняет читательскую авторизацию; персистится только при
// включенной политике persist_reader
func (st *Store) UserLogin(user models.User) {
	st.mu.Lock()
	st.userInfo = &user
	st.isUserAuthenticated = true
	if st.persistReader {
		st.persist()
	}
	st.mu.Unlock()
	st.notify(Event{Name: "user_auth_changed"})
}

func (st *Store) UserLogout() {
	st.mu.Lock()
	st.userInfo = nil
	st.isUserAuthenticated = false
	if st.persistReader {
		st.persist()
	}
	st.mu.Unlock()
	st.notify(Event{Name: "user_auth_changed"})
}

func (st *Store) CurrentAdmin() (*models.User, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.user, st.isAuthenticated
}

func (st *Store) CurrentReader() (*models.User, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.userInfo, st.isUserAuthenticated
}

// ToggleSidebar переключает UI-флаг и возвращает новое значение
func (st *Store) ToggleSidebar() bool {
	st.mu.Lock()
	st.sidebarCollapsed = !st.sidebarCollapsed
	collapsed := st.sidebarCollapsed
	st.persist()
	st.mu.Unlock()
	st.notify(Event{Name: "ui_changed"})
	return collapsed
}

func (st *Store) SidebarCollapsed() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sidebarCollapsed
}
