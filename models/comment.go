package models

import "time"

// Comment - комментарий к посту с проставленным сентиментом
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Comment   string    `json:"comment"`
	Sentiment Sentiment `json:"sentiment"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}
