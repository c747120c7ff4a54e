package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	catalogController "github.com/silluthedon/Zerotreat/controllers/catalog"
	"github.com/silluthedon/Zerotreat/models"
)

type UpdateDeliveryRequest struct {
	Days   []string `json:"days"`
	Charge int      `json:"charge"`
}

func deliveryErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrNoDeliveryDays):
		return "অন্তত একটি ডেলিভারি দিন নির্বাচন করুন।"
	case errors.Is(err, models.ErrUnknownDay):
		return "অজানা ডেলিভারি দিন নির্বাচন করা হয়েছে।"
	case errors.Is(err, models.ErrNegativeCharge):
		return "ডেলিভারি চার্জ নেগেটিভ হতে পারে না।"
	default:
		return "ডেলিভারি তথ্য সঠিক নয়।"
	}
}

// GetDeliveryInfo serves the singleton for the delivery-config screen.
func GetDeliveryInfo(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := catalogController.LoadDeliveryInfo(c.Request.Context(), store)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "ডেলিভারি তথ্য লোড করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"delivery": info})
	}
}

// UpdateDeliveryInfo validates the selection and upserts the singleton row.
// An invalid selection is rejected before any backend call.
func UpdateDeliveryInfo(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অনুরোধটি বোঝা যায়নি।"})
			return
		}

		info := models.DeliveryInfo{ID: models.DeliveryInfoID, Days: req.Days, Charge: req.Charge}
		if err := info.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": deliveryErrorMessage(err)})
			return
		}

		if err := store.Upsert(c.Request.Context(), catalogController.TableDeliveryInfo, info); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "ডেলিভারি তথ্য আপডেট করতে ত্রুটি হয়েছে।"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "ডেলিভারি তথ্য সফলভাবে আপডেট করা হয়েছে।", "delivery": info})
	}
}
