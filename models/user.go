package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// UserStats - суммарные счетчики активности пользователя
type UserStats struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// User - модель пользователя (админская и публичная поверхность используют одну)
type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	Country        string     `json:"country"`
	Role           Role       `json:"role"`
	IsEnabled      bool       `json:"isEnabled"`
	IsOnline       bool       `json:"isOnline"`
	RegisteredDate string     `json:"registeredDate"`
	LastActive     time.Time  `json:"lastActive"`
	Avatar         string     `json:"avatar,omitempty"`
	Stats          *UserStats `json:"stats,omitempty"`
	PasswordHash   string     `json:"-"`

	// В фикстурах встречается либо разбивка за сегодня, либо усредненная
	TodayActiveHours map[string]int64 `json:"todayActiveHours,omitempty"`
	AvgActiveHours   map[string]int64 `json:"avgActiveHours,omitempty"`
}

// FullName - составное имя, по нему идет поиск
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Status - статус для отображения: disabled имеет приоритет над online/offline
func (u User) Status() string {
	if !u.IsEnabled {
		return "disabled"
	}
	if u.IsOnline {
		return "online"
	}
	return "offline"
}

// ActiveHours возвращает почасовую активность: сегодняшняя разбивка
// предпочтительнее усредненной
func (u User) ActiveHours() map[string]int64 {
	if u.TodayActiveHours != nil {
		return u.TodayActiveHours
	}
	return u.AvgActiveHours
}
