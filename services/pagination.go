package services

import (
	"sync"

	"sentipost/models"
)

// CommentPageSize - начальный и инкрементный размер окна комментариев
const CommentPageSize = 20

// CommentWindow - окно "load more" для комментариев поста. Видимый размер
// только растет; сбрасывается до начального при смене выбранного поста.
// Окно живет на сессии, а запросы одной сессии могут идти параллельно,
// поэтому все методы берут мьютекс.
type CommentWindow struct {
	mu     sync.Mutex
	postID int64
	size   int
}

func NewCommentWindow() *CommentWindow {
	return &CommentWindow{size: CommentPageSize}
}

// Select выбирает пост; смена id сбрасывает окно до начального размера
func (w *CommentWindow) Select(postID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.postID != postID {
		w.postID = postID
		w.size = CommentPageSize
	}
}

// LoadMore расширяет окно на страницу
func (w *CommentWindow) LoadMore() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size += CommentPageSize
}

func (w *CommentWindow) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Slice возвращает видимый префикс комментариев выбранного поста,
// сохраняя исходный порядок
func (w *CommentWindow) Slice(comments []models.Comment) []models.Comment {
	w.mu.Lock()
	postID, size := w.postID, w.size
	w.mu.Unlock()

	related := make([]models.Comment, 0, size)
	for _, c := range comments {
		if c.PostID == postID {
			related = append(related, c)
		}
	}
	if len(related) > size {
		related = related[:size]
	}
	return related
}

// Remaining - сколько комментариев поста осталось за окном
func (w *CommentWindow) Remaining(comments []models.Comment) int {
	w.mu.Lock()
	postID, size := w.postID, w.size
	w.mu.Unlock()

	total := 0
	for _, c := range comments {
		if c.PostID == postID {
			total++
		}
	}
	if total <= size {
		return 0
	}
	return total - size
}
