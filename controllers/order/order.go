package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/silluthedon/Zerotreat/backend"
	catalogController "github.com/silluthedon/Zerotreat/controllers/catalog"
	"github.com/silluthedon/Zerotreat/models"
)

const TableOrders = "orders"

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// -------- Request / Response Structs --------

// CartLine is one product+quantity slot of the order form.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Address string     `json:"address"`
	Cart    []CartLine `json:"cart"`
}

type SummaryLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int    `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   int    `json:"line_total"`
}

// OrderSummary is the confirmation shown after a successful submission. It is
// built from the submitted cart and the catalog loaded for this submission,
// never re-fetched.
type OrderSummary struct {
	OrderRef       string        `json:"order_ref"`
	Name           string        `json:"name"`
	Phone          string        `json:"phone"`
	Lines          []SummaryLine `json:"lines"`
	Subtotal       int           `json:"subtotal"`
	DeliveryCharge int           `json:"delivery_charge"`
	Total          int           `json:"total"`
	DeliveryDays   []string      `json:"delivery_days"`
}

// ValidationError is a client-side rejection, reported before any insert.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// -------- Helpers --------

// ClampQuantity forces a slot quantity into [1, 10], as the form does.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// generateOrderRef groups the rows of one submission.
func generateOrderRef(now time.Time) string {
	return now.Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// Compose validates a submission against the loaded catalog and builds one
// OrderLine per cart line. Totals are computed here, from the catalog as
// loaded for this submission: unit price times quantity per line, with the
// delivery charge added once to the first line of the order.
func Compose(req PlaceOrderRequest, products []models.Product, delivery models.DeliveryInfo, orderRef string, now time.Time) ([]models.OrderLine, OrderSummary, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	address := strings.TrimSpace(req.Address)
	if name == "" {
		return nil, OrderSummary{}, &ValidationError{"আপনার নাম লিখুন।"}
	}
	if phone == "" {
		return nil, OrderSummary{}, &ValidationError{"আপনার ফোন নম্বর লিখুন।"}
	}
	if address == "" {
		return nil, OrderSummary{}, &ValidationError{"আপনার ঠিকানা লিখুন।"}
	}
	if len(req.Cart) == 0 {
		return nil, OrderSummary{}, &ValidationError{"অন্তত একটি পণ্য বেছে নিন।"}
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	seen := make(map[string]bool, len(req.Cart))
	var (
		lines    []models.OrderLine
		summary  []SummaryLine
		subtotal int
	)
	for _, slot := range req.Cart {
		if slot.ProductID == "" {
			return nil, OrderSummary{}, &ValidationError{"প্রতিটি লাইনে একটি পণ্য বেছে নিন।"}
		}
		if seen[slot.ProductID] {
			return nil, OrderSummary{}, &ValidationError{"একই পণ্য একাধিক লাইনে নির্বাচন করা যাবে না।"}
		}
		seen[slot.ProductID] = true

		product, ok := byID[slot.ProductID]
		if !ok {
			return nil, OrderSummary{}, &ValidationError{"নির্বাচিত পণ্যটি পাওয়া যায়নি।"}
		}
		if !product.Orderable() {
			return nil, OrderSummary{}, &ValidationError{product.Name + " এখন স্টকে নেই।"}
		}

		qty := ClampQuantity(slot.Quantity)
		lineTotal := product.Price * qty
		subtotal += lineTotal

		lines = append(lines, models.OrderLine{
			OrderRef:       orderRef,
			Name:           name,
			Phone:          phone,
			Address:        address,
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       qty,
			TotalPrice:     lineTotal,
			CreatedAt:      now,
			OrderStatus:    models.OrderStatusPending,
			DeliveryStatus: models.DeliveryNotShipped,
			PaymentStatus:  models.PaymentUnpaid,
		})
		summary = append(summary, SummaryLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    qty,
			LineTotal:   lineTotal,
		})
	}

	// Delivery charge is per order, carried by the first line.
	lines[0].TotalPrice += delivery.Charge

	return lines, OrderSummary{
		OrderRef:       orderRef,
		Name:           name,
		Phone:          phone,
		Lines:          summary,
		Subtotal:       subtotal,
		DeliveryCharge: delivery.Charge,
		Total:          subtotal + delivery.Charge,
		DeliveryDays:   delivery.Days,
	}, nil
}

// PlaceOrder turns a filled order form into persisted order rows: one bulk
// insert, all lines or none.
func PlaceOrder(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অনুরোধটি বোঝা যায়নি।"})
			return
		}

		products, delivery, err := catalogController.LoadCatalog(c.Request.Context(), store)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "পণ্য লোড করতে ত্রুটি হয়েছে।"})
			return
		}

		now := time.Now().UTC()
		lines, summary, err := Compose(req, products, delivery, generateOrderRef(now), now)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "অর্ডার তৈরি করতে ত্রুটি হয়েছে।"})
			return
		}

		if err := store.Insert(c.Request.Context(), TableOrders, lines); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "অর্ডার জমা দিতে ত্রুটি হয়েছে। আবার চেষ্টা করুন।"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "আপনার অর্ডারটি সফলভাবে গ্রহণ করা হয়েছে। আমরা শীঘ্রই আপনার সাথে যোগাযোগ করব।",
			"order":   summary,
		})
	}
}
