package models

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Post - модель поста
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Images      []string  `json:"images"`
	Tags        []string  `json:"tags"`
	Likes       int64     `json:"likes"`
	Views       int64     `json:"views"`
	Comments    int64     `json:"comments"`
	IsActive    bool      `json:"isActive"`
	Sentiment   Sentiment `json:"sentiment"`
}

// HasTag - принадлежность поста тегу (по имени)
func (p Post) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t == name {
			return true
		}
	}
	return false
}
