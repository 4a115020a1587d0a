package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"

	"sentipost/models"
	"sentipost/store"
)

// Surface - какая поверхность выдала сессию
type Surface string

const (
	SurfaceAdmin  Surface = "admin"
	SurfaceReader Surface = "reader"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrUserExists         = errors.New("user already exists")
)

// Session - выданный токен и его владелец
type Session struct {
	Token   string
	UserID  int64
	Surface Surface
}

// AuthService - реестр сессий поверх стора. Аутентификация симулируется:
// у фикстурных пользователей нет хеша пароля, их пускают по одному имени;
// argon2 проверяется только для зарегистрированных на лету.
type AuthService struct {
	mu       sync.RWMutex
	sessions map[string]Session
	store    *store.Store
}

func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{
		sessions: make(map[string]Session),
		store:    st,
	}
}

// HashPassword - argon2id, соль и хеш в hex через "$"
func HashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(hash) == parts[1]
}

// Register добавляет пользователя в коллекцию с хешированным паролем
func (a *AuthService) Register(user models.User, password string) (models.User, error) {
	if _, exists := a.store.FindUserByUsername(user.Username); exists {
		return models.User{}, ErrUserExists
	}
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = hash
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.IsEnabled = true
	return a.store.AddUser(user), nil
}

// Login проверяет учетку и выдает токен; стор получает соответствующую
// авторизацию в зависимости от поверхности
func (a *AuthService) Login(username, password string, surface Surface) (string, models.User, error) {
	user, found := a.store.FindUserByUsername(username)
	if !found {
		return "", models.User{}, ErrInvalidCredentials
	}
	if !user.IsEnabled {
		return "", models.User{}, ErrUserDisabled
	}
	if user.PasswordHash != "" && !verifyPassword(user.PasswordHash, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", models.User{}, err
	}
	token := hex.EncodeToString(tokenBytes)

	a.mu.Lock()
	a.sessions[token] = Session{Token: token, UserID: user.ID, Surface: surface}
	a.mu.Unlock()

	if surface == SurfaceAdmin {
		a.store.Login(user)
	} else {
		a.store.UserLogin(user)
	}
	return token, user, nil
}

// Logout гасит токен и сбрасывает авторизацию соответствующей поверхности
func (a *AuthService) Logout(token string) {
	a.mu.Lock()
	session, found := a.sessions[token]
	delete(a.sessions, token)
	a.mu.Unlock()

	if !found {
		return
	}
	if session.Surface == SurfaceAdmin {
		a.store.Logout()
	} else {
		a.store.UserLogout()
	}
}

// Lookup возвращает сессию по токену
func (a *AuthService) Lookup(token string) (Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	session, found := a.sessions[token]
	return session, found
}
