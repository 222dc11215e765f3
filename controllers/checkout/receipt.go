package checkoutControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Pravinale/pantonefrontend/checkout"
)

// GET /checkout/receipt.xlsx
//
// Downloads a spreadsheet receipt of the most recently placed order.
func Receipt(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := flow.LastOrder()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no order has been placed"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Receipt")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"OrderRef", "Buyer", "Phone", "Email", "Address", "PaymentMethod", "Total"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}
		row := sheet.AddRow()
		row.AddCell().SetValue(order.OrderID)
		row.AddCell().SetValue(order.Username)
		row.AddCell().SetValue(order.PhoneNumber)
		row.AddCell().SetValue(order.Email)
		row.AddCell().SetValue(order.Address)
		row.AddCell().SetValue(string(order.PaymentMethod))
		row.AddCell().SetValue(order.Price)

		sheet.AddRow()
		itemHeaders := []string{"Product", "Name", "Color", "Size", "Quantity"}
		itemHeaderRow := sheet.AddRow()
		for _, h := range itemHeaders {
			itemHeaderRow.AddCell().SetValue(h)
		}
		for _, p := range order.Products {
			r := sheet.AddRow()
			r.AddCell().SetValue(p.ProductID)
			r.AddCell().SetValue(p.Name)
			r.AddCell().SetValue(p.Color)
			r.AddCell().SetValue(p.Size)
			r.AddCell().SetValue(p.Quantity)
		}

		c.Header("Content-Disposition", "attachment; filename=receipt.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
