package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/models"
	"github.com/tealeg/xlsx"
)

// ExportOrdersToExcel downloads the whole order table as a spreadsheet.
func ExportOrdersToExcel(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.OrderLine
		err := backend.From(store, TableOrders).
			Order("created_at", false).
			Get(c.Request.Context(), &orders)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "অর্ডার লোড করতে ত্রুটি হয়েছে।"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "এক্সপোর্ট ফাইল তৈরি করতে ত্রুটি হয়েছে।"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "Name", "Phone", "Address", "Product",
			"Quantity", "TotalPrice", "CreatedAt",
			"OrderStatus", "DeliveryStatus", "PaymentStatus",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.Name)
			row.AddCell().SetValue(o.Phone)
			row.AddCell().SetValue(o.Address)
			row.AddCell().SetValue(o.ProductName)
			row.AddCell().SetValue(o.Quantity)
			row.AddCell().SetValue(o.TotalPrice)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(string(o.OrderStatus))
			row.AddCell().SetValue(string(o.DeliveryStatus))
			row.AddCell().SetValue(string(o.PaymentStatus))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "এক্সপোর্ট ফাইল লিখতে ত্রুটি হয়েছে।"})
			return
		}
	}
}
