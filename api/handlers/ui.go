package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ToggleSidebar переключает персистентную UI-настройку
func (a *API) ToggleSidebar(c *gin.Context) {
	collapsed := a.Store.ToggleSidebar()
	c.JSON(http.StatusOK, gin.H{"sidebarCollapsed": collapsed})
}
