package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Pravinale/pantonefrontend/checkout"
	"github.com/Pravinale/pantonefrontend/config"
	eventControllers "github.com/Pravinale/pantonefrontend/controllers/events"
	"github.com/Pravinale/pantonefrontend/store"
	"github.com/Pravinale/pantonefrontend/upstream"
)

// Deps carries the explicitly constructed stores and clients; nothing in
// the route tree reaches for ambient globals.
type Deps struct {
	Cfg     *config.Config
	Cart    *store.CartStore
	Session *store.AuthSession
	Flow    *checkout.Flow
	API     *upstream.Client
	Hub     *eventControllers.Hub
}

// SetupRoutes is the single entry-point that wires up the session, cart and
// checkout route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public session routes (login proxy, no middleware)
	SetupSessionRoutes(r, deps)

	// Cart routes (public, like the original cart page)
	SetupCartRoutes(r, deps)

	// Checkout routes (JWT-protected) plus the public gateway return page
	SetupCheckoutRoutes(r, deps)

	// Checkout event stream for the UI
	r.GET("/ws/checkout", deps.Hub.Handler())
}
