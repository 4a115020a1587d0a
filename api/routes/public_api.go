package routes

import (
	"github.com/gin-gonic/gin"

	"sentipost/api/handlers"
	"sentipost/api/middleware"
	"sentipost/services"
)

// PublicApi - маршруты читательской поверхности
func PublicApi(router *gin.Engine, api *handlers.API) *gin.RouterGroup {
	publicEndpoints := router.Group("/public/")
	{
		publicEndpoints.POST("auth/login", api.UserLogin)
		publicEndpoints.POST("auth/register", api.UserRegister)

		publicEndpoints.GET("posts", api.PublicListPosts)
		publicEndpoints.GET("posts/:id", api.PublicGetPost)
	}

	authed := router.Group("/public/")
	authed.Use(middleware.RequireAuth(api.Auth, services.SurfaceReader))
	{
		authed.POST("auth/logout", api.UserLogout)
		authed.POST("posts/:id/like", api.PublicLikePost)
		authed.POST("posts/:id/comment", api.PublicCommentPost)
		authed.POST("posts/:id/share", api.PublicSharePost)
	}
	return publicEndpoints
}
