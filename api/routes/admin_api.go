package routes

import (
	"github.com/gin-gonic/gin"

	"sentipost/api/handlers"
	"sentipost/api/middleware"
	"sentipost/services"
)

// AdminApi - маршруты админской консоли
func AdminApi(router *gin.Engine, api *handlers.API) *gin.RouterGroup {
	adminEndpoints := router.Group("/api/v1/")
	{
		adminEndpoints.POST("auth/login", api.AdminLogin)
		adminEndpoints.POST("auth/register", api.AdminRegister)
	}

	authed := router.Group("/api/v1/")
	authed.Use(middleware.RequireAuth(api.Auth, services.SurfaceAdmin))
	{
		authed.POST("auth/logout", api.AdminLogout)

		authed.GET("stats", api.GetStats)

		authed.GET("posts", api.ListPosts)
		authed.GET("posts/:id", api.GetPost)
		authed.POST("posts", api.CreatePost)
		authed.POST("posts/:id/toggle", api.TogglePostActive)
		authed.DELETE("posts/:id", api.DeletePost)

		authed.GET("users", api.ListUsers)
		authed.GET("users/:id", api.GetUser)
		authed.POST("users/:id/toggle", api.ToggleUserEnabled)

		authed.GET("tags", api.ListTags)
		authed.POST("tags", api.CreateTag)
		authed.PUT("tags/:id", api.UpdateTag)
		authed.DELETE("tags/:id", api.DeleteTag)
		authed.GET("tags/suggest", api.SuggestTags)

		authed.GET("feedbacks/:id/comments", api.GetFeedbackComments)
		authed.GET("feedbacks/:id/analysis", api.AnalyzeFeedback)

		authed.POST("ui/sidebar", api.ToggleSidebar)
		authed.GET("ws", api.WSEvents)
	}
	return authed
}
