package adminController

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/backend/backendtest"
	"github.com/silluthedon/Zerotreat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func exportOrders(t *testing.T, fake *backendtest.Fake) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/export", ExportOrdersToExcel(fake))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/export", nil))
	return w
}

func TestExportOrdersSheetShape(t *testing.T) {
	fake := backendtest.New()
	seedOrders(fake, 3)

	w := exportOrders(t, fake)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=orders.xlsx", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	// Header row plus one row per order.
	require.Len(t, sheet.Rows, 4)

	header := sheet.Rows[0]
	require.Len(t, header.Cells, 12)
	assert.Equal(t, "ID", header.Cells[0].String())
	assert.Equal(t, "Phone", header.Cells[3].String())
	assert.Equal(t, "PaymentStatus", header.Cells[11].String())

	// Rows come out newest first.
	newest := sheet.Rows[1]
	assert.Equal(t, "oc", newest.Cells[0].String())
	assert.Equal(t, "01710000002", newest.Cells[3].String())
	assert.Equal(t, "চকলেট প্রোটিন ব্রাউনি", newest.Cells[5].String())
	assert.Equal(t, string(models.OrderStatusPending), newest.Cells[9].String())
	assert.Equal(t, "oa", sheet.Rows[3].Cells[0].String())
}

func TestExportOrdersReadFailure(t *testing.T) {
	fake := backendtest.New()
	fake.SelectErr[TableOrders] = &backend.Error{Status: 500, Message: "down"}

	w := exportOrders(t, fake)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
