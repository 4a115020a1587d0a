package store

import "strings"

// Stats - агрегаты для дашборда
type Stats struct {
	TotalVisits          int64 `json:"totalVisits"`
	UsersOnline          int64 `json:"usersOnline"`
	UsersRegisteredToday int64 `json:"usersRegisteredToday"`
	TodayInteractions    int64 `json:"todayInteractions"`
	TotalUsers           int64 `json:"totalUsers"`
	TotalPosts           int64 `json:"totalPosts"`
}

// GetStats пересчитывает агрегаты от текущего состояния коллекций при
// каждом вызове, без кеширования. "Сегодня" берется из часов стора один
// раз на вызов; сравнение дат - строковое по календарному дню, как в
// исходной версии.
func (st *Store) GetStats() Stats {
	st.mu.RLock()
	defer st.mu.RUnlock()

	today := st.now().Format("2006-01-02")

	var stats Stats
	stats.TotalUsers = int64(len(st.users))
	stats.TotalPosts = int64(len(st.posts))

	for _, p := range st.posts {
		stats.TotalVisits += p.Views
	}
	for _, u := range st.users {
		if u.IsOnline {
			stats.UsersOnline++
		}
		if u.RegisteredDate == today {
			stats.UsersRegisteredToday++
		}
	}
	for _, i := range st.interactions {
		if strings.HasPrefix(i.CreatedAt, today) {
			stats.TodayInteractions++
		}
	}
	return stats
}
