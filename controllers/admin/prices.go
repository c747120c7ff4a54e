package adminController

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	catalogController "github.com/silluthedon/Zerotreat/controllers/catalog"
)

// PriceEntry is one row of the price-edit screen as submitted: the raw input
// string, unparsed, so invalid input can be reported per row.
type PriceEntry struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

type PricePatch struct {
	ID    string
	Price int
}

// SplitPriceBatch separates a price batch into the entries that may be saved
// (positive integers) and the ids that must be skipped. Skipped rows keep
// their stored price.
func SplitPriceBatch(entries []PriceEntry) (valid []PricePatch, skipped []string) {
	for _, e := range entries {
		raw := strings.TrimSpace(e.Price)
		if raw == "" {
			skipped = append(skipped, e.ID)
			continue
		}
		price, err := strconv.Atoi(raw)
		if err != nil || price <= 0 {
			skipped = append(skipped, e.ID)
			continue
		}
		valid = append(valid, PricePatch{ID: e.ID, Price: price})
	}
	return valid, skipped
}

// ListProducts serves the catalog to the admin screens, same shape as the
// storefront read.
func ListProducts(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalogController.LoadProducts(c.Request.Context(), store)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "পণ্য লোড করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// SavePrices applies the valid subset of a price batch. The response reports
// success only when every row was valid and every update went through.
func SavePrices(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []PriceEntry
		if err := c.ShouldBindJSON(&entries); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অনুরোধটি বোঝা যায়নি।"})
			return
		}

		valid, skipped := SplitPriceBatch(entries)

		var updated, failed []string
		for _, patch := range valid {
			err := store.Update(c.Request.Context(), catalogController.TableProducts,
				map[string]any{"price": patch.Price},
				backend.Filter{Column: "id", Value: patch.ID},
			)
			if err != nil {
				failed = append(failed, patch.ID)
				continue
			}
			updated = append(updated, patch.ID)
		}

		ok := len(skipped) == 0 && len(failed) == 0
		msg := "মূল্য সফলভাবে আপডেট করা হয়েছে!"
		if !ok {
			msg = "কিছু মূল্য অবৈধ বা সংরক্ষণ করা যায়নি। শুধু সঠিক মূল্যগুলো আপডেট হয়েছে।"
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":      ok,
			"message": msg,
			"updated": updated,
			"skipped": skipped,
			"failed":  failed,
		})
	}
}
