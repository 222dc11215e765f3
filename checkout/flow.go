// Package checkout turns the cart session plus a signed-in profile into a
// placed order, routes the eSewa branch through the gateway redirect, and
// supports cancellation while the order is still unfulfilled.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pravinale/pantonefrontend/models"
	"github.com/Pravinale/pantonefrontend/store"
)

type State string

const (
	// StateIdle: no order in progress.
	StateIdle State = "idle"
	// StatePlacing: a placement request is in flight.
	StatePlacing State = "placing"
	// StateAwaitingPayment: order created upstream on the eSewa branch;
	// the cart is intentionally NOT cleared until the gateway return.
	StateAwaitingPayment State = "awaiting_payment"
	// StateConfirmed: cash order placed and cart cleared.
	StateConfirmed State = "confirmed"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingProfile       = errors.New("user details not found")
	ErrOrderPlacementFailed = errors.New("failed to place order")
	ErrPaymentInitFailed    = errors.New("failed to fetch payment details")
	ErrNoPaymentDetails     = errors.New("payment details are not available")
	ErrCancelFailed         = errors.New("failed to cancel order")
	ErrNoOrder              = errors.New("no order has been placed")
	ErrPlacementInFlight    = errors.New("an order placement is already in progress")
	ErrOrderOutstanding     = errors.New("an order is already awaiting payment")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Backend is the slice of the shop API the flow needs.
type Backend interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	UpdateStock(ctx context.Context, products []models.StockAdjustment) error
	InitializeEsewa(ctx context.Context, orderID string, totalPrice float64) (models.EsewaInit, error)
	CancelOrder(ctx context.Context, orderID string) error
	Profile(ctx context.Context, userID string) (models.UserProfile, error)
}

// Notifier receives checkout lifecycle events (order placed, cancelled,
// payment completed) for push to connected UI clients.
type Notifier func(event, orderID string)

// Config carries the gateway and pricing constants.
type Config struct {
	DeliveryCharge   float64 // flat per-line delivery fee
	EsewaFormURL     string
	EsewaProductCode string
	SuccessURL       string
	FailureURL       string
}

type Flow struct {
	cart   *store.CartStore
	api    Backend
	cfg    Config
	notify Notifier

	mu        sync.Mutex
	state     State
	placing   bool
	orderID   string // server-assigned _id of the outstanding order
	lastOrder *models.Order
	payment   *models.EsewaInit
}

func NewFlow(cart *store.CartStore, api Backend, cfg Config, notify Notifier) *Flow {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Flow{cart: cart, api: api, cfg: cfg, notify: notify, state: StateIdle}
}

// Total is the checkout grand total: for every line, the flat delivery
// charge plus price x quantity, accumulated per line.
func (f *Flow) Total(items []models.LineItem) float64 {
	var total float64
	for _, it := range items {
		total += f.cfg.DeliveryCharge + it.Price*float64(it.Quantity)
	}
	return total
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// OrderID returns the server id of the outstanding order, "" when idle.
func (f *Flow) OrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// LastOrder returns the most recently placed order snapshot.
func (f *Flow) LastOrder() (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastOrder == nil {
		return models.Order{}, false
	}
	return *f.lastOrder, true
}

// HasPaymentDetails reports whether PayNow can build the gateway form.
func (f *Flow) HasPaymentDetails() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payment != nil
}

// newOrderRef generates the client-side order reference. Wall-clock alone
// collides under concurrent placements, so a uuid is appended.
func newOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder submits the current cart as an order for the signed-in user.
//
// The empty-cart and missing-profile preconditions short-circuit before any
// order call is made. Re-entry while a placement is outstanding is refused
// rather than firing a second order. On the cash branch the stock decrement
// is best effort: its failure is logged against the order id but not
// surfaced to the shopper, and the confirmation does not wait on it
// semantically (no compensating action is defined upstream).
func (f *Flow) PlaceOrder(ctx context.Context, userID string, method models.PaymentMethod) (models.Order, error) {
	if !method.Valid() {
		return models.Order{}, ErrInvalidPaymentMethod
	}

	f.mu.Lock()
	if f.placing {
		f.mu.Unlock()
		return models.Order{}, ErrPlacementInFlight
	}
	if f.state == StateAwaitingPayment {
		f.mu.Unlock()
		return models.Order{}, ErrOrderOutstanding
	}
	f.placing = true
	prev := f.state
	f.state = StatePlacing
	f.mu.Unlock()

	placed, err := f.placeOrder(ctx, userID, method)

	f.mu.Lock()
	f.placing = false
	switch {
	case err != nil && !errors.Is(err, ErrPaymentInitFailed):
		f.state = prev
	case err != nil: // order exists, payment init failed
		f.state = StateAwaitingPayment
		f.orderID = placed.ID
		f.lastOrder = &placed
		f.payment = nil
	case method == models.PaymentCashInHand:
		f.state = StateConfirmed
		f.orderID = placed.ID
		f.lastOrder = &placed
		f.payment = nil
	default:
		f.state = StateAwaitingPayment
		f.orderID = placed.ID
		f.lastOrder = &placed
	}
	f.mu.Unlock()

	if err == nil || errors.Is(err, ErrPaymentInitFailed) {
		f.notify("order_placed", placed.ID)
	}
	return placed, err
}

func (f *Flow) placeOrder(ctx context.Context, userID string, method models.PaymentMethod) (models.Order, error) {
	items := f.cart.Items()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if userID == "" {
		return models.Order{}, ErrMissingProfile
	}
	profile, err := f.api.Profile(ctx, userID)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", ErrMissingProfile, err)
	}

	products := make([]models.OrderProduct, 0, len(items))
	for _, it := range items {
		products = append(products, models.OrderProduct{
			ProductID: it.ProductID,
			Name:      it.Name,
			Color:     it.Color,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}

	order := models.Order{
		OrderID:       newOrderRef(),
		UserID:        profile.ID,
		Username:      profile.Username,
		PhoneNumber:   profile.PhoneNumber,
		Email:         profile.Email,
		Address:       profile.Address,
		Products:      products,
		Price:         f.Total(items),
		PaymentMethod: method,
	}

	placed, err := f.api.CreateOrder(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", ErrOrderPlacementFailed, err)
	}

	switch method {
	case models.PaymentCashInHand:
		adjustments := make([]models.StockAdjustment, 0, len(items))
		for _, it := range items {
			adjustments = append(adjustments, models.StockAdjustment{
				ProductID: it.ProductID,
				Color:     it.Color,
				Size:      it.Size,
				Quantity:  it.Quantity,
			})
		}
		if err := f.api.UpdateStock(ctx, adjustments); err != nil {
			log.Printf("stock decrement failed for order %s: %v", placed.ID, err)
		}
		f.cart.Clear()
		return placed, nil

	default: // eSewa
		init, err := f.api.InitializeEsewa(ctx, placed.ID, placed.Price)
		if err != nil {
			return placed, fmt.Errorf("%w: %v", ErrPaymentInitFailed, err)
		}
		f.mu.Lock()
		f.payment = &init
		f.mu.Unlock()
		return placed, nil
	}
}

// CancelOrder deletes the outstanding order upstream. On success the flow
// resets to idle and forgets the order id; on failure the order remains
// placed and the state is untouched.
func (f *Flow) CancelOrder(ctx context.Context) error {
	f.mu.Lock()
	orderID := f.orderID
	f.mu.Unlock()
	if orderID == "" {
		return ErrNoOrder
	}

	if err := f.api.CancelOrder(ctx, orderID); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelFailed, err)
	}

	f.mu.Lock()
	f.state = StateIdle
	f.orderID = ""
	f.lastOrder = nil
	f.payment = nil
	f.mu.Unlock()
	f.notify("order_cancelled", orderID)
	return nil
}

// HandleReturn processes the gateway return page's status parameter. A
// "success" status confirms the order and clears the cart; this is the only
// point the eSewa branch clears it. Any other status leaves state alone.
func (f *Flow) HandleReturn(status string) bool {
	if status != "success" {
		return false
	}
	f.cart.Clear()

	f.mu.Lock()
	orderID := f.orderID
	f.state = StateConfirmed
	f.orderID = ""
	f.payment = nil
	f.mu.Unlock()
	f.notify("payment_completed", orderID)
	return true
}
