package adminController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/backend/backendtest"
	"github.com/silluthedon/Zerotreat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSortToggles(t *testing.T) {
	cur := Sort{Field: "created_at", Ascending: false}

	// Re-selecting the field flips the direction, twice returns to start.
	next, page := NextSort(cur, "created_at")
	assert.Equal(t, Sort{Field: "created_at", Ascending: true}, next)
	assert.Equal(t, 1, page)
	back, _ := NextSort(next, "created_at")
	assert.Equal(t, cur, back)

	// A new field always starts ascending and returns to the first page.
	next, page = NextSort(Sort{Field: "phone", Ascending: false}, "total_price")
	assert.Equal(t, Sort{Field: "total_price", Ascending: true}, next)
	assert.Equal(t, 1, page)
	next, _ = NextSort(cur, "phone")
	assert.Equal(t, Sort{Field: "phone", Ascending: true}, next)

	// Unknown fields leave the sort untouched.
	next, _ = NextSort(cur, "address")
	assert.Equal(t, cur, next)
}

func TestNormalizeListParams(t *testing.T) {
	p := NormalizeListParams("total_price", "asc", 3, 20, "017")
	assert.Equal(t, Sort{Field: "total_price", Ascending: true}, p.Sort)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, "017", p.Phone)

	// Bad values coerce to defaults.
	p = NormalizeListParams("address", "sideways", 0, 17, "")
	assert.Equal(t, Sort{Field: "created_at", Ascending: false}, p.Sort)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PerPage)
}

func TestFilterByPhone(t *testing.T) {
	rows := []models.OrderLine{
		{ID: "1", Phone: "01712345678"},
		{ID: "2", Phone: "01898765432"},
		{ID: "3", Phone: "+8801712000000"},
	}

	filtered := FilterByPhone(rows, "0171")
	require.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)

	// Case-insensitive over the loaded page.
	withLetters := []models.OrderLine{{ID: "4", Phone: "01712-AB"}}
	assert.Len(t, FilterByPhone(withLetters, "ab"), 1)

	// Clearing the query restores exactly the loaded rows.
	assert.Equal(t, rows, FilterByPhone(rows, ""))
	assert.Equal(t, rows, FilterByPhone(rows, "   "))

	// A miss and a nil page both come back as empty slices, never nil.
	assert.NotNil(t, FilterByPhone(rows, "999"))
	assert.Empty(t, FilterByPhone(rows, "999"))
	assert.NotNil(t, FilterByPhone(nil, ""))
}

func TestPageWindow(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 12))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(3, 12))
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageWindow(6, 12))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageWindow(12, 12))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageWindow(11, 12))
	assert.Equal(t, []int{1, 2, 3}, PageWindow(2, 3))
	assert.Equal(t, []int{1}, PageWindow(1, 1))
	assert.Nil(t, PageWindow(1, 0))
}

func seedOrders(fake *backendtest.Fake, n int) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	orders := make([]models.OrderLine, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, models.OrderLine{
			ID:             "o" + string(rune('a'+i)),
			Name:           "Customer",
			Phone:          fmt.Sprintf("0171%07d", i),
			Address:        "Dhaka",
			ProductName:    "চকলেট প্রোটিন ব্রাউনি",
			Quantity:       1,
			TotalPrice:     100 + i,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
			OrderStatus:    models.OrderStatusPending,
			DeliveryStatus: models.DeliveryNotShipped,
			PaymentStatus:  models.PaymentUnpaid,
		})
	}
	fake.Seed(TableOrders, orders)
}

func newAdminRouter(fake *backendtest.Fake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders", ListOrders(fake))
	r.PATCH("/orders/:id/status", UpdateOrderStatus(fake))
	return r
}

type listResponse struct {
	Orders     []models.OrderLine `json:"orders"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
	Pages      []int              `json:"pages"`
}

func getOrders(t *testing.T, r *gin.Engine, query string) listResponse {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders"+query, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListOrdersPagination(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 12)
	r := newAdminRouter(fake)

	resp := getOrders(t, r, "?per_page=5&page=1")
	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Orders, 5)
	assert.Equal(t, []int{1, 2, 3}, resp.Pages)

	// Default sort is created_at descending: newest first.
	newest := resp.Orders[0]
	resp2 := getOrders(t, r, "?per_page=5&page=3")
	assert.Len(t, resp2.Orders, 2)
	assert.True(t, newest.CreatedAt.After(resp2.Orders[0].CreatedAt))
}

func TestListOrdersSortAscending(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 4)
	r := newAdminRouter(fake)

	resp := getOrders(t, r, "?sort=total_price&order=asc")
	require.Len(t, resp.Orders, 4)
	for i := 1; i < len(resp.Orders); i++ {
		assert.LessOrEqual(t, resp.Orders[i-1].TotalPrice, resp.Orders[i].TotalPrice)
	}
}

func TestListOrdersPhoneFilterAppliesToLoadedPage(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 12)
	r := newAdminRouter(fake)

	resp := getOrders(t, r, "?per_page=10&phone=0000003")
	// Filter narrows the page but total still counts every order.
	assert.Equal(t, 12, resp.Total)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "01710000003", resp.Orders[0].Phone)
}

func TestListOrdersSerializesEmptyPageAsArray(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 3)
	r := newAdminRouter(fake)

	// No match on the loaded page, and a page past the end.
	for _, query := range []string{"?phone=999999", "?page=7"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders"+query, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"orders":[]`)
	}
}

func TestListOrdersReadFailureBlocks(t *testing.T) {
	fake := backendtest.New()
	fake.SelectErr[TableOrders] = &backend.Error{Status: 500, Message: "down"}
	r := newAdminRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func patchStatus(t *testing.T, r *gin.Engine, id, field, value string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(UpdateOrderStatusRequest{Field: field, Value: value})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+id+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateOrderStatusChangesOnlyThatRowAndField(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 3)
	r := newAdminRouter(fake)

	w := patchStatus(t, r, "ob", "order_status", "confirmed")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.OrderLine
	fake.Rows(TableOrders, &rows)
	for _, row := range rows {
		if row.ID == "ob" {
			assert.Equal(t, models.OrderStatusConfirmed, row.OrderStatus)
		} else {
			assert.Equal(t, models.OrderStatusPending, row.OrderStatus)
		}
		// Other status fields stay untouched everywhere.
		assert.Equal(t, models.DeliveryNotShipped, row.DeliveryStatus)
		assert.Equal(t, models.PaymentUnpaid, row.PaymentStatus)
	}
}

func TestUpdateOrderStatusRejectsBadFieldOrValue(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 1)
	r := newAdminRouter(fake)

	assert.Equal(t, http.StatusBadRequest, patchStatus(t, r, "oa", "address", "x").Code)
	assert.Equal(t, http.StatusBadRequest, patchStatus(t, r, "oa", "order_status", "shipped").Code)
	assert.Equal(t, http.StatusBadRequest, patchStatus(t, r, "oa", "payment_status", "refunded").Code)
	assert.Equal(t, 0, fake.CallCount("update "+TableOrders))
}

func TestUpdateOrderStatusFailureNamesField(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 1)
	fake.UpdateErr[TableOrders] = &backend.Error{Status: 500, Message: "down"}
	r := newAdminRouter(fake)

	w := patchStatus(t, r, "oa", "payment_status", "paid")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "payment_status")
}
