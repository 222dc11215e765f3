package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/Pravinale/pantonefrontend/controllers/cart"
)

func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cart := r.Group("/cart")
	{
		cart.GET("", cartControllers.GetCart(deps.Cart))
		cart.DELETE("", cartControllers.ClearCart(deps.Cart))
		cart.POST("/items", cartControllers.AddCartItem(deps.Cart, deps.API))
		cart.DELETE("/items", cartControllers.RemoveCartItem(deps.Cart))
		cart.POST("/items/quantity", cartControllers.UpdateQuantity(deps.Cart))
		cart.GET("/total", cartControllers.CartTotal(deps.Cart, deps.Flow))
	}
}
