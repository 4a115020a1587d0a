package services

import (
	"sort"
	"strings"

	"sentipost/models"
)

// Чистые преобразования "полная коллекция + параметры -> видимое
// подмножество". Каждый вызов пересчитывает результат от полного набора,
// порядок исходной коллекции сохраняется (стабильность).

type UserFilter struct {
	Query  string
	Status string // all | enabled | disabled | online | offline
	Role   string // all | user | moderator | admin
}

// FilterUsers ищет без учета регистра по имени, email, телефону и
// локации; статус и роль сверяются точно
func FilterUsers(users []models.User, f UserFilter) []models.User {
	query := strings.ToLower(f.Query)

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if query != "" {
			matches := strings.Contains(strings.ToLower(u.Username), query) ||
				strings.Contains(strings.ToLower(u.Email), query) ||
				strings.Contains(strings.ToLower(u.FullName()), query) ||
				strings.Contains(u.Phone, f.Query) ||
				strings.Contains(strings.ToLower(u.City), query) ||
				strings.Contains(strings.ToLower(u.State), query)
			if !matches {
				continue
			}
		}

		switch f.Status {
		case "", "all":
		case "enabled":
			if !u.IsEnabled {
				continue
			}
		case "disabled":
			if u.IsEnabled {
				continue
			}
		case "online":
			if !u.IsOnline {
				continue
			}
		case "offline":
			if u.IsOnline {
				continue
			}
		default:
			continue
		}

		if f.Role != "" && f.Role != "all" && string(u.Role) != f.Role {
			continue
		}

		out = append(out, u)
	}
	return out
}

type PostFilter struct {
	Query  string
	Status string // all | active | inactive
	Sort   string // newest | oldest | most-liked | most-viewed
}

// FilterPosts фильтрует админский список постов и сортирует стабильно
func FilterPosts(posts []models.Post, f PostFilter) []models.Post {
	query := strings.ToLower(f.Query)

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if query != "" {
			matches := strings.Contains(strings.ToLower(p.Title), query) ||
				strings.Contains(strings.ToLower(p.Description), query)
			if !matches {
				continue
			}
		}

		switch f.Status {
		case "", "all":
		case "active":
			if !p.IsActive {
				continue
			}
		case "inactive":
			if p.IsActive {
				continue
			}
		default:
			continue
		}

		out = append(out, p)
	}

	sortPosts(out, f.Sort)
	return out
}

type PublicPostFilter struct {
	Query string
	Tag   string
	Sort  string // recent | popular
}

// FilterPublicPosts - читательский список: поиск по заголовку и тексту,
// фильтр по тегу
func FilterPublicPosts(posts []models.Post, f PublicPostFilter) []models.Post {
	query := strings.ToLower(f.Query)

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if query != "" {
			matches := strings.Contains(strings.ToLower(p.Title), query) ||
				strings.Contains(strings.ToLower(p.Content), query)
			if !matches {
				continue
			}
		}
		if f.Tag != "" && !p.HasTag(f.Tag) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case "popular":
		sortPosts(out, "most-liked")
	default:
		sortPosts(out, "newest")
	}
	return out
}

func sortPosts(posts []models.Post, by string) {
	switch by {
	case "oldest":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		})
	case "most-liked":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Likes > posts[j].Likes
		})
	case "most-viewed":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Views > posts[j].Views
		})
	default: // newest
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}

// FilterTags подбирает теги для автодополнения в композере: совпадение по
// подстроке имени, уже выбранные исключаются
func FilterTags(tags []models.Tag, query string, selected []string) []models.Tag {
	q := strings.ToLower(query)
	chosen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		chosen[name] = struct{}{}
	}

	out := make([]models.Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := chosen[t.Name]; ok {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Name), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}
