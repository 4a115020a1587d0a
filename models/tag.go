package models

// Tag - тег с денормализованными счетчиками
type Tag struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	PostsCount    int64  `json:"postsCount"`
	LikesCount    int64  `json:"likesCount"`
	CommentsCount int64  `json:"commentsCount"`
}
