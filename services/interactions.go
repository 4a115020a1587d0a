package services

import "sentipost/models"

// InteractionCounts - счетчики like/comment/share для одного поста
type InteractionCounts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// CountForPost считает взаимодействия поста. Висячий postId просто ничего
// не насчитает - это допустимое состояние, а не ошибка.
func CountForPost(interactions []models.Interaction, postID int64) InteractionCounts {
	var counts InteractionCounts
	for _, i := range interactions {
		if i.PostID != postID {
			continue
		}
		switch i.Type {
		case models.InteractionLike:
			counts.Likes++
		case models.InteractionComment:
			counts.Comments++
		case models.InteractionShare:
			counts.Shares++
		}
	}
	return counts
}

// ForUser возвращает взаимодействия пользователя в исходном порядке
func ForUser(interactions []models.Interaction, userID int64) []models.Interaction {
	out := make([]models.Interaction, 0)
	for _, i := range interactions {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out
}
