package checkout

import (
	"html/template"
	"io"
	"strconv"
)

// FormField is one hidden input of the gateway form. Field order follows
// the gateway's documented form layout and is preserved as submitted.
type FormField struct {
	Name  string
	Value string
}

// PayNow builds the cross-site form POST for the gateway redirect: the
// action URL plus the hidden fields, with the signature and signed field
// list carried verbatim from the init payload. Only valid while payment
// details are held; a failed init leaves none and disables this path.
func (f *Flow) PayNow() (string, []FormField, error) {
	f.mu.Lock()
	payment := f.payment
	f.mu.Unlock()
	if payment == nil {
		return "", nil, ErrNoPaymentDetails
	}

	amount := strconv.FormatFloat(payment.PurchasedItem.Price, 'f', -1, 64)
	fields := []FormField{
		{"amount", amount},
		{"tax_amount", "0"},
		{"total_amount", amount},
		{"transaction_uuid", payment.PurchasedItem.ID},
		{"product_code", f.cfg.EsewaProductCode},
		{"product_service_charge", "0"},
		{"product_delivery_charge", "0"},
		{"success_url", f.cfg.SuccessURL},
		{"failure_url", f.cfg.FailureURL},
		{"signature", payment.Payment.Signature},
		{"signed_field_names", payment.Payment.SignedFieldNames},
	}
	return f.cfg.EsewaFormURL, fields, nil
}

var payPageTemplate = template.Must(template.New("paynow").Parse(`<!DOCTYPE html>
<html>
<head><title>Redirecting to eSewa</title></head>
<body onload="document.forms[0].submit()">
<p>Redirecting to eSewa...</p>
<form action="{{.Action}}" method="POST">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>
`))

// RenderPayPage writes the self-submitting HTML page that performs the
// one-way browser navigation to the gateway.
func RenderPayPage(w io.Writer, action string, fields []FormField) error {
	return payPageTemplate.Execute(w, struct {
		Action string
		Fields []FormField
	}{Action: action, Fields: fields})
}
