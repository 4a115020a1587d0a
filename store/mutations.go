package store

import (
	"sentipost/models"
)

// Мутации коллекций - локальные, в бэкенд не синхронизируются.

func (st *Store) AddUser(user models.User) models.User {
	st.mu.Lock()
	user.ID = nextID(len(st.users), func(i int) int64 { return st.users[i].ID })
	st.users = append(st.users, user)
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "users"})
	return user
}

// ToggleUserEnabled переключает isEnabled и возвращает обновленную запись
func (st *Store) ToggleUserEnabled(id int64) (models.User, bool) {
	st.mu.Lock()
	var updated models.User
	found := false
	for i := range st.users {
		if st.users[i].ID == id {
			st.users[i].IsEnabled = !st.users[i].IsEnabled
			updated = st.users[i]
			found = true
			break
		}
	}
	st.mu.Unlock()
	if found {
		st.notify(Event{Name: "collection_updated", Collection: "users"})
	}
	return updated, found
}

func (st *Store) AddPost(post models.Post) models.Post {
	st.mu.Lock()
	post.ID = nextID(len(st.posts), func(i int) int64 { return st.posts[i].ID })
	st.posts = append(st.posts, post)
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "posts"})
	return post
}

func (st *Store) TogglePostActive(id int64) (models.Post, bool) {
	st.mu.Lock()
	var updated models.Post
	found := false
	for i := range st.posts {
		if st.posts[i].ID == id {
			st.posts[i].IsActive = !st.posts[i].IsActive
			updated = st.posts[i]
			found = true
			break
		}
	}
	st.mu.Unlock()
	if found {
		st.notify(Event{Name: "collection_updated", Collection: "posts"})
	}
	return updated, found
}

func (st *Store) DeletePost(id int64) bool {
	st.mu.Lock()
	found := false
	for i := range st.posts {
		if st.posts[i].ID == id {
			st.posts = append(st.posts[:i], st.posts[i+1:]...)
			found = true
			break
		}
	}
	st.mu.Unlock()
	if found {
		st.notify(Event{Name: "collection_updated", Collection: "posts"})
	}
	return found
}

// IncPostLikes увеличивает счетчик лайков поста
func (st *Store) IncPostLikes(id int64) (models.Post, bool) {
	st.mu.Lock()
	var updated models.Post
	found := false
	for i := range st.posts {
		if st.posts[i].ID == id {
			st.posts[i].Likes++
			updated = st.posts[i]
			found = true
			break
		}
	}
	st.mu.Unlock()
	if found {
		st.notify(Event{Name: "collection_updated", Collection: "posts"})
	}
	return updated, found
}

// AddTag добавляет тег; при включенной проверке уникальности дубликат
// имени отклоняется
func (st *Store) AddTag(tag models.Tag) (models.Tag, error) {
	st.mu.Lock()
	if st.enforceTags {
		for _, t := range st.tags {
			if t.Name == tag.Name {
				st.mu.Unlock()
				return models.Tag{}, ErrDuplicateTagName
			}
		}
	}
	tag.ID = nextID(len(st.tags), func(i int) int64 { return st.tags[i].ID })
	st.tags = append(st.tags, tag)
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "tags"})
	return tag, nil
}

func (st *Store) UpdateTag(tag models.Tag) (models.Tag, error) {
	st.mu.Lock()
	if st.enforceTags {
		for _, t := range st.tags {
			if t.Name == tag.Name && t.ID != tag.ID {
				st.mu.Unlock()
				return models.Tag{}, ErrDuplicateTagName
			}
		}
	}
	found := false
	for i := range st.tags {
		if st.tags[i].ID == tag.ID {
			st.tags[i] = tag
			found = true
			break
		}
	}
	st.mu.Unlock()
	if !found {
		return models.Tag{}, ErrTagNotFound
	}
	st.notify(Event{Name: "collection_updated", Collection: "tags"})
	return tag, nil
}

func (st *Store) DeleteTag(id int64) bool {
	st.mu.Lock()
	found := false
	for i := range st.tags {
		if st.tags[i].ID == id {
			st.tags = append(st.tags[:i], st.tags[i+1:]...)
			found = true
			break
		}
	}
	st.mu.Unlock()
	if found {
		st.notify(Event{Name: "collection_updated", Collection: "tags"})
	}
	return found
}

func (st *Store) AddInteraction(interaction models.Interaction) models.Interaction {
	st.mu.Lock()
	interaction.ID = nextID(len(st.interactions), func(i int) int64 { return st.interactions[i].ID })
	st.interactions = append(st.interactions, interaction)
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "interactions"})
	return interaction
}

// AddComment добавляет комментарий и увеличивает счетчик комментариев поста
func (st *Store) AddComment(comment models.Comment) models.Comment {
	st.mu.Lock()
	comment.ID = nextID(len(st.comments), func(i int) int64 { return st.comments[i].ID })
	st.comments = append(st.comments, comment)
	for i := range st.posts {
		if st.posts[i].ID == comment.PostID {
			st.posts[i].Comments++
			break
		}
	}
	st.mu.Unlock()
	st.notify(Event{Name: "collection_updated", Collection: "comments"})
	return comment
}

// nextID выдает id на единицу больше максимального в коллекции
func nextID(n int, idAt func(int) int64) int64 {
	var max int64
	for i := 0; i < n; i++ {
		if id := idAt(i); id > max {
			max = id
		}
	}
	return max + 1
}
