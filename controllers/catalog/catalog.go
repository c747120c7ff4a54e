package catalogController

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/models"
)

const (
	TableProducts     = "products"
	TableDeliveryInfo = "delivery_info"
	TableReviews      = "reviews"
)

// LoadProducts returns all products sorted by name, with the status column
// defaulted to available where it was never set.
func LoadProducts(ctx context.Context, store backend.RowStore) ([]models.Product, error) {
	var products []models.Product
	err := backend.From(store, TableProducts).
		Select("id", "name", "features", "calories", "price", "image", "description", "status").
		Order("name", true).
		Get(ctx, &products)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Status = products[i].EffectiveStatus()
	}
	return products, nil
}

// LoadDeliveryInfo returns the delivery_info singleton, falling back to the
// default (Sunday, 50 taka) when the row has never been saved.
func LoadDeliveryInfo(ctx context.Context, store backend.RowStore) (models.DeliveryInfo, error) {
	var info models.DeliveryInfo
	err := backend.From(store, TableDeliveryInfo).
		Select("id", "days", "charge").
		Single().
		Get(ctx, &info)
	if backend.IsNotFound(err) {
		return models.DefaultDeliveryInfo(), nil
	}
	if err != nil {
		return models.DeliveryInfo{}, err
	}
	return info, nil
}

// LoadCatalog issues both reads concurrently and joins them all-or-nothing.
func LoadCatalog(ctx context.Context, store backend.RowStore) ([]models.Product, models.DeliveryInfo, error) {
	var (
		products    []models.Product
		info        models.DeliveryInfo
		prodErr     error
		deliveryErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		info, deliveryErr = LoadDeliveryInfo(ctx, store)
	}()
	products, prodErr = LoadProducts(ctx, store)
	<-done
	if prodErr != nil {
		return nil, models.DeliveryInfo{}, prodErr
	}
	if deliveryErr != nil {
		return nil, models.DeliveryInfo{}, deliveryErr
	}
	return products, info, nil
}

// GetCatalog serves the storefront's product grid and delivery block.
func GetCatalog(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, info, err := LoadCatalog(c.Request.Context(), store)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "পণ্য লোড করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"delivery": info,
		})
	}
}
