package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sentipost/models"
	"sentipost/services"
)

const maxPostImages = 5

// ListPosts - админский список постов с поиском, фильтром и сортировкой
func (a *API) ListPosts(c *gin.Context) {
	filter := services.PostFilter{
		Query:  c.Query("query"),
		Status: c.DefaultQuery("status", "all"),
		Sort:   c.DefaultQuery("sort", "newest"),
	}

	posts := a.Store.Posts()
	filtered := services.FilterPosts(posts, filter)

	c.JSON(http.StatusOK, gin.H{
		"posts": filtered,
		"total": len(posts),
		"shown": len(filtered),
	})
}

func (a *API) GetPost(c *gin.Context) {
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
	c.JSON(http.StatusOK, post)
}

type ComposeRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
}

// CreatePost - композер. Ошибки валидации не меняют состояние.
func (a *API) CreatePost(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
		return
	}
	if len(req.Images) > maxPostImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 images allowed"})
		return
	}

	author := ""
	if admin, ok := a.Store.CurrentAdmin(); ok && admin != nil {
		author = admin.Username
	}

	now := a.Now()
	post := a.Store.AddPost(models.Post{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Author:      author,
		CreatedAt:   now,
		UpdatedAt:   now,
		Images:      req.Images,
		Tags:        req.Tags,
		IsActive:    true,
		Sentiment:   models.SentimentNeutral,
	})
	c.JSON(http.StatusCreated, post)
}

// TogglePostActive переключает isActive
func (a *API) TogglePostActive(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, found := a.Store.TogglePostActive(postID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (a *API) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if !a.Store.DeletePost(postID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// SuggestTags - автодополнение тегов в композере
func (a *API) SuggestTags(c *gin.Context) {
	selected := c.QueryArray("selected")
	tags := services.FilterTags(a.Store.Tags(), c.Query("query"), selected)
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
