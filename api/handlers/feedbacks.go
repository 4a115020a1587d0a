package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sentipost/models"
	"sentipost/services"
)

// GetFeedbackComments отдает окно комментариев поста. Окно живет на
// сессии: load_more=1 расширяет его на страницу, смена поста сбрасывает
// размер до начального.
func (a *API) GetFeedbackComments(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, found := a.Store.FindPost(postID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	window := a.window(c.GetString("token"))
	window.Select(postID)
	if c.Query("load_more") == "1" {
		window.LoadMore()
	}

	comments := a.Store.Comments()
	visible := window.Slice(comments)

	c.JSON(http.StatusOK, gin.H{
		"post":      post,
		"comments":  visible,
		"remaining": window.Remaining(comments),
	})
}

// AnalyzeFeedback - сентимент-сводка и выжимка по комментариям поста.
// Пост без комментариев анализировать нечего - это ошибка пользователю,
// состояние не меняется.
func (a *API) AnalyzeFeedback(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if _, found := a.Store.FindPost(postID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	related := make([]models.Comment, 0)
	for _, comment := range a.Store.Comments() {
		if comment.PostID == postID {
			related = append(related, comment)
		}
	}
	if len(related) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No comments to analyze"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sentiment":  services.Summarize(related),
		"highlights": services.ExtractHighlights(related),
	})
}
