package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pravinale/pantonefrontend/checkout"
	"github.com/Pravinale/pantonefrontend/models"
)

type placeOrderInput struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

// POST /checkout/place-order
func PlaceOrder(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input placeOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID, _ := c.Get("user_id")
		uid, _ := userID.(string)

		order, err := flow.PlaceOrder(c.Request.Context(), uid, input.PaymentMethod)
		switch {
		case errors.Is(err, checkout.ErrInvalidPaymentMethod),
			errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrMissingProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrPlacementInFlight),
			errors.Is(err, checkout.ErrOrderOutstanding):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrPaymentInitFailed):
			// The order exists upstream; only the payment init failed.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "order": order, "state": flow.State()})
		case err != nil:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusCreated, gin.H{"order": order, "state": flow.State()})
		}
	}
}

// POST /checkout/cancel-order
func CancelOrder(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := flow.CancelOrder(c.Request.Context())
		switch {
		case errors.Is(err, checkout.ErrNoOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "state": flow.State()})
		}
	}
}

// GET /checkout/pay-now
//
// Serves the self-submitting gateway form. This is a one-way navigation;
// the outcome comes back later through the thank-you page's status query.
func PayNow(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		action, fields, err := flow.PayNow()
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := checkout.RenderPayPage(c.Writer, action, fields); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render payment page"})
		}
	}
}

// GET /thankyou?status=success
//
// The gateway return contract: a success status confirms the order and is
// the only place the eSewa branch clears the cart.
func ThankYou(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		if flow.HandleReturn(c.Query("status")) {
			c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully!"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Thank you for shopping with us."})
	}
}
