package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sentipost/services"
)

// ListUsers - админский список пользователей с поиском и фильтрами
func (a *API) ListUsers(c *gin.Context) {
	filter := services.UserFilter{
		Query:  c.Query("query"),
		Status: c.DefaultQuery("status", "all"),
		Role:   c.DefaultQuery("role", "all"),
	}

	users := a.Store.Users()
	filtered := services.FilterUsers(users, filter)

	c.JSON(http.StatusOK, gin.H{
		"users": filtered,
		"total": len(users),
		"shown": len(filtered),
	})
}

// GetUser - карточка пользователя: активность по часам с фолбэком и его
// взаимодействия, развернутые по постам. Висячая ссылка на пост отдается
// плейсхолдером, а не ошибкой.
func (a *API) GetUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, found := a.Store.FindUser(userID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	interactions := services.ForUser(a.Store.Interactions(), userID)
	activity := make([]gin.H, 0, len(interactions))
	for _, i := range interactions {
		postTitle := "Post not found"
		if post, ok := a.Store.FindPost(i.PostID); ok {
			postTitle = post.Title
		}
		activity = append(activity, gin.H{
			"type":      i.Type,
			"postId":    i.PostID,
			"postTitle": postTitle,
			"createdAt": i.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"status":      user.Status(),
		"activeHours": user.ActiveHours(),
		"activity":    activity,
	})
}

// ToggleUserEnabled включает/выключает учетку
func (a *API) ToggleUserEnabled(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, found := a.Store.ToggleUserEnabled(userID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	message := "User enabled successfully"
	if !user.IsEnabled {
		message = "User disabled successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "user": user})
}
