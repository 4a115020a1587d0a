package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sentipost/models"
	"sentipost/store"
)

type TagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (a *API) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": a.Store.Tags()})
}

func (a *API) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tag, err := a.Store.AddTag(models.Tag{Name: req.Name, Color: req.Color})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateTagName) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (a *API) UpdateTag(c *gin.Context) {
	tagID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	current, found := findTag(a.Store.Tags(), tagID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}
	current.Name = req.Name
	if req.Color != "" {
		current.Color = req.Color
	}

	tag, err := a.Store.UpdateTag(current)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateTagName) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag name already exists"})
			return
		}
		if errors.Is(err, store.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (a *API) DeleteTag(c *gin.Context) {
	tagID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	if !a.Store.DeleteTag(tagID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

func findTag(tags []models.Tag, id int64) (models.Tag, bool) {
	for _, t := range tags {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tag{}, false
}
