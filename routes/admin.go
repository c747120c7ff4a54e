package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/silluthedon/Zerotreat/controllers/admin"
	"github.com/silluthedon/Zerotreat/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints behind the session
// gate.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.RequireSession(deps.Sessions, deps.JWTSecret))
	{
		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminController.ListOrders(deps.Rows))
			orderAdmin.GET("/export", adminController.ExportOrdersToExcel(deps.Rows))
			orderAdmin.PATCH("/:id/status", adminController.UpdateOrderStatus(deps.Rows))
		}

		// ─────────── Catalog Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", adminController.ListProducts(deps.Rows))
			productAdmin.POST("", adminController.CreateProduct(deps.Rows, deps.Blobs))
			productAdmin.PUT("/prices", adminController.SavePrices(deps.Rows))
			productAdmin.PUT("/:id", adminController.UpdateProduct(deps.Rows, deps.Blobs))
			productAdmin.PUT("/:id/status", adminController.UpdateProductStatus(deps.Rows))
		}

		// ─────────── Delivery Configuration ───────────
		deliveryAdmin := adminGroup.Group("/delivery")
		{
			deliveryAdmin.GET("", adminController.GetDeliveryInfo(deps.Rows))
			deliveryAdmin.PUT("", adminController.UpdateDeliveryInfo(deps.Rows))
		}
	}
}
