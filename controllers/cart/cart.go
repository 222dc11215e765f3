package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pravinale/pantonefrontend/checkout"
	"github.com/Pravinale/pantonefrontend/models"
	"github.com/Pravinale/pantonefrontend/store"
)

// GET /cart
func GetCart(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cart.Items())
	}
}

// POST /cart/items
//
// Performs the product-page admission check before adding: one more unit of
// this variant must fit within live stock, counting what the cart already
// holds. The merge itself is unconditional once admitted.
func AddCartItem(cart *store.CartStore, stock store.StockQuerier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LineItem
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		available, err := stock.Stock(c.Request.Context(), input.ProductID, input.Color, input.Size)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to check stock"})
			return
		}
		if cart.QuantityOf(input.ProductID, input.Color, input.Size)+1 > available {
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock left"})
			return
		}

		cart.Add(input)
		c.JSON(http.StatusCreated, cart.Items())
	}
}

// DELETE /cart/items?product_id=&color=&size=
func RemoveCartItem(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Query("product_id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		cart.Remove(productID, c.Query("color"), c.Query("size"))
		c.JSON(http.StatusOK, cart.Items())
	}
}

type quantityInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

// POST /cart/items/quantity
func UpdateQuantity(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input quantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := cart.UpdateQuantity(c.Request.Context(), input.ProductID, input.Color, input.Size, input.Action)
		switch {
		case errors.Is(err, store.ErrUnknownAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock left"})
		case errors.Is(err, store.ErrStockUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to check stock"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, cart.Items())
		}
	}
}

// GET /cart/total
func CartTotal(cart *store.CartStore, flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subtotal": cart.Subtotal(),
			"total":    flow.Total(cart.Items()),
		})
	}
}

// DELETE /cart
func ClearCart(cart *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
