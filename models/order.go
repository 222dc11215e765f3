package models

type PaymentMethod string

const (
	PaymentCashInHand PaymentMethod = "Cash in hand" // pay on delivery
	PaymentEsewa      PaymentMethod = "esewa"        // redirect gateway
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCashInHand || m == PaymentEsewa
}

// OrderProduct is the per-line snapshot carried inside an order.
type OrderProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// Order is the snapshot submitted to the shop API. OrderID is generated on
// this side; ID, Status and DeliveryStatus are assigned by the server and
// only appear on the echoed-back record.
type Order struct {
	ID             string         `json:"_id,omitempty"`
	OrderID        string         `json:"orderId"`
	UserID         string         `json:"userId"`
	Username       string         `json:"username"`
	PhoneNumber    string         `json:"phoneNumber"`
	Email          string         `json:"email"`
	Address        string         `json:"address"`
	Products       []OrderProduct `json:"products"`
	Price          float64        `json:"price"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	Status         string         `json:"status,omitempty"`
	DeliveryStatus string         `json:"deliveryStatus,omitempty"`
}
