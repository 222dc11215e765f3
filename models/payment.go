package models

// EsewaInit is the /api/initialize-esewa response. The signature and
// signed_field_names are opaque and passed to the gateway verbatim.
type EsewaInit struct {
	Success       bool `json:"success"`
	PurchasedItem struct {
		ID    string  `json:"_id"`
		Price float64 `json:"price"`
	} `json:"purchasedItemData"`
	Payment struct {
		Signature        string `json:"signature"`
		SignedFieldNames string `json:"signed_field_names"`
	} `json:"payment"`
}
