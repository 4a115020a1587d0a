package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats отдает агрегаты дашборда плюс верхушки постов и тегов
func (a *API) GetStats(c *gin.Context) {
	posts := a.Store.Posts()
	tags := a.Store.Tags()

	topPosts := posts
	if len(topPosts) > 5 {
		topPosts = topPosts[:5]
	}
	topTags := tags
	if len(topTags) > 5 {
		topTags = topTags[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":    a.Store.GetStats(),
		"topPosts": topPosts,
		"topTags":  topTags,
	})
}
