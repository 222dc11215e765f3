package routes

import (
	"github.com/gin-gonic/gin"

	checkoutControllers "github.com/Pravinale/pantonefrontend/controllers/checkout"
	"github.com/Pravinale/pantonefrontend/middleware"
)

func SetupCheckoutRoutes(r *gin.Engine, deps Deps) {
	co := r.Group("/checkout")
	co.Use(middleware.ValidateToken(deps.Cfg.JWTSecret))
	{
		co.POST("/place-order", checkoutControllers.PlaceOrder(deps.Flow))
		co.POST("/cancel-order", checkoutControllers.CancelOrder(deps.Flow))
		co.GET("/pay-now", checkoutControllers.PayNow(deps.Flow))
		co.GET("/receipt.xlsx", checkoutControllers.Receipt(deps.Flow))
	}

	// The gateway redirects the browser here; it carries no token.
	r.GET("/thankyou", checkoutControllers.ThankYou(deps.Flow))
}
