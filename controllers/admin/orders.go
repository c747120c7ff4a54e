package adminController

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/models"
)

const TableOrders = "orders"

// Sortable order-list fields. Anything else falls back to the default.
var sortFields = map[string]bool{
	"created_at":  true,
	"total_price": true,
	"name":        true,
	"phone":       true,
}

// Selectable page sizes. Anything else is coerced to the default.
var pageSizes = map[int]bool{5: true, 10: true, 20: true, 50: true}

const (
	defaultSortField = "created_at"
	defaultPerPage   = 10
	maxPageButtons   = 5
)

type Sort struct {
	Field     string
	Ascending bool
}

// NextSort applies the header-click rule: re-selecting the current field
// flips the direction, a new field starts ascending. Every click returns
// the list to its first page, so the page to request comes back alongside
// the sort.
func NextSort(cur Sort, field string) (Sort, int) {
	if !sortFields[field] {
		return cur, 1
	}
	if field == cur.Field {
		return Sort{Field: field, Ascending: !cur.Ascending}, 1
	}
	return Sort{Field: field, Ascending: true}, 1
}

type ListParams struct {
	Sort    Sort
	Page    int
	PerPage int
	Phone   string
}

// NormalizeListParams coerces raw query values into a valid page request.
func NormalizeListParams(sortField, order string, page, perPage int, phone string) ListParams {
	if !sortFields[sortField] {
		sortField = defaultSortField
	}
	if !pageSizes[perPage] {
		perPage = defaultPerPage
	}
	if page < 1 {
		page = 1
	}
	return ListParams{
		Sort:    Sort{Field: sortField, Ascending: order == "asc"},
		Page:    page,
		PerPage: perPage,
		Phone:   phone,
	}
}

// FilterByPhone is the case-insensitive substring search over the loaded
// page. An empty query returns the rows untouched. The result is never nil
// so the response always carries a JSON array.
func FilterByPhone(rows []models.OrderLine, query string) []models.OrderLine {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if rows == nil {
			return []models.OrderLine{}
		}
		return rows
	}
	filtered := []models.OrderLine{}
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Phone), query) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// PageWindow returns at most five page numbers centered on current, clamped
// to [1, totalPages].
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	start := current - maxPageButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxPageButtons - 1
	if end > totalPages {
		end = totalPages
		if end-maxPageButtons+1 > 0 {
			start = end - maxPageButtons + 1
		} else {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ListOrders serves one sorted page of the order table plus the pagination
// bookkeeping the admin screen renders.
func ListOrders(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
		params := NormalizeListParams(
			c.DefaultQuery("sort", defaultSortField),
			c.DefaultQuery("order", "desc"),
			page,
			perPage,
			c.Query("phone"),
		)

		total, err := backend.From(store, TableOrders).Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "অর্ডার লোড করতে ত্রুটি হয়েছে।"})
			return
		}

		start := (params.Page - 1) * params.PerPage
		end := start + params.PerPage - 1

		var orders []models.OrderLine
		err = backend.From(store, TableOrders).
			Select("id", "order_ref", "name", "phone", "address", "product_name",
				"quantity", "total_price", "created_at",
				"order_status", "delivery_status", "payment_status").
			Order(params.Sort.Field, params.Sort.Ascending).
			Range(start, end).
			Get(c.Request.Context(), &orders)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "অর্ডার লোড করতে ত্রুটি হয়েছে।"})
			return
		}

		totalPages := (total + params.PerPage - 1) / params.PerPage

		order := "desc"
		if params.Sort.Ascending {
			order = "asc"
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      FilterByPhone(orders, params.Phone),
			"total":       total,
			"page":        params.Page,
			"per_page":    params.PerPage,
			"total_pages": totalPages,
			"pages":       PageWindow(params.Page, totalPages),
			"sort":        params.Sort.Field,
			"order":       order,
		})
	}
}

type UpdateOrderStatusRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UpdateOrderStatus changes exactly one status column of one order row. The
// caller patches its local list only after this succeeds.
func UpdateOrderStatus(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অনুরোধটি বোঝা যায়নি।"})
			return
		}

		value, err := models.ValidateStatusField(req.Field, req.Value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অবৈধ স্ট্যাটাস মান (" + req.Field + ")।"})
			return
		}

		err = store.Update(c.Request.Context(), TableOrders,
			map[string]any{req.Field: value},
			backend.Filter{Column: "id", Value: orderID},
		)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "স্ট্যাটাস আপডেট করতে ত্রুটি (" + req.Field + ")।"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": orderID, "field": req.Field, "value": value})
	}
}
