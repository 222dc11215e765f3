package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/Pravinale/pantonefrontend/controllers/auth"
)

func SetupSessionRoutes(r *gin.Engine, deps Deps) {
	session := r.Group("/session")
	{
		session.POST("/login", authControllers.Login(deps.API, deps.Session, deps.Cfg.JWTSecret))
		session.POST("/logout", authControllers.Logout(deps.Session))
		session.GET("", authControllers.Session(deps.Session))
	}
}
