package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sentipost/models"
	"sentipost/services"
)

// PublicListPosts - читательский список постов; к каждому посту
// добавляются счетчики взаимодействий
func (a *API) PublicListPosts(c *gin.Context) {
	filter := services.PublicPostFilter{
		Query: c.Query("query"),
		Tag:   c.Query("tag"),
		Sort:  c.DefaultQuery("sort", "recent"),
	}

	filtered := services.FilterPublicPosts(a.Store.Posts(), filter)
	interactions := a.Store.Interactions()

	items := make([]gin.H, 0, len(filtered))
	for _, post := range filtered {
		items = append(items, gin.H{
			"post":         post,
			"interactions": services.CountForPost(interactions, post.ID),
		})
	}

	tags := a.Store.Tags()
	if len(tags) > 10 {
		tags = tags[:10]
	}

	c.JSON(http.StatusOK, gin.H{"posts": items, "tags": tags})
}

// PublicGetPost - страница поста: сам пост, его комментарии и счетчики
func (a *API) PublicGetPost(c *gin.Context) {
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

	comments := make([]models.Comment, 0)
	for _, comment := range a.Store.Comments() {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"comments":     comments,
		"interactions": services.CountForPost(a.Store.Interactions(), postID),
	})
}

// PublicLikePost ставит лайк от имени читателя
func (a *API) PublicLikePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, found := a.Store.IncPostLikes(postID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	a.Store.AddInteraction(models.Interaction{
		PostID:    postID,
		UserID:    c.GetInt64("user_id"),
		Type:      models.InteractionLike,
		CreatedAt: a.Now().Format(time.RFC3339),
	})
	c.JSON(http.StatusOK, gin.H{"message": "Post liked", "likes": post.Likes})
}

type PublicCommentRequest struct {
	Comment string `json:"comment"`
}

// PublicCommentPost добавляет комментарий читателя
func (a *API) PublicCommentPost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req PublicCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Comment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot be empty"})
		return
	}

	if _, found := a.Store.FindPost(postID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	userID := c.GetInt64("user_id")
	userName := ""
	if reader, ok := a.Store.FindUser(userID); ok {
		userName = reader.Username
	}

	now := a.Now()
	comment := a.Store.AddComment(models.Comment{
		PostID:    postID,
		UserID:    userID,
		UserName:  userName,
		Comment:   req.Comment,
		Sentiment: models.SentimentNeutral,
		CreatedAt: now,
	})
	a.Store.AddInteraction(models.Interaction{
		PostID:    postID,
		UserID:    userID,
		Type:      models.InteractionComment,
		CreatedAt: now.Format(time.RFC3339),
	})
	c.JSON(http.StatusCreated, comment)
}

// PublicSharePost регистрирует шаринг поста
func (a *API) PublicSharePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if _, found := a.Store.FindPost(postID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	a.Store.AddInteraction(models.Interaction{
		PostID:    postID,
		UserID:    c.GetInt64("user_id"),
		Type:      models.InteractionShare,
		CreatedAt: a.Now().Format(time.RFC3339),
	})
	c.JSON(http.StatusOK, gin.H{"message": "Sharing post..."})
}
