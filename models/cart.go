package models

// LineItem is one purchasable variant in the cart. Two items are the same
// line when product id, color and size all match; adds on a matching line
// merge by bumping the quantity instead of appending a duplicate row.
type LineItem struct {
	ProductID string  `json:"_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Color     string  `json:"color" binding:"required"`
	Size      string  `json:"size" binding:"required"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Matches reports whether the line carries the given variant identity.
func (li LineItem) Matches(productID, color, size string) bool {
	return li.ProductID == productID && li.Color == color && li.Size == size
}

// StockAdjustment is one entry of the post-order stock decrement request.
type StockAdjustment struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}
