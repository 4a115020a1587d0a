package models

type InteractionType string

const (
	InteractionLike    InteractionType = "like"
	InteractionComment InteractionType = "comment"
	InteractionShare   InteractionType = "share"
)

// Interaction - событие like/comment/share, связывающее пользователя и пост.
// CreatedAt хранится строкой: агрегация сверяет его с датой "сегодня"
// префиксным сравнением, как в исходной версии.
type Interaction struct {
	ID        int64           `json:"id"`
	PostID    int64           `json:"postId"`
	UserID    int64           `json:"userId"`
	Type      InteractionType `json:"type"`
	CreatedAt string          `json:"createdAt"`
}
