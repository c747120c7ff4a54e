package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/auth"
	catalogController "github.com/silluthedon/Zerotreat/controllers/catalog"
	orderControllers "github.com/silluthedon/Zerotreat/controllers/order"
)

// SetupPublicRoutes registers everything reachable without a session: the
// storefront reads, order submission, reviews, and login.
func SetupPublicRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")
	{
		api.GET("/catalog", catalogController.GetCatalog(deps.Rows))
		api.GET("/reviews", catalogController.GetReviews(deps.Rows))
		api.POST("/reviews", catalogController.SubmitReview(deps.Rows))
		api.POST("/orders", orderControllers.PlaceOrder(deps.Rows))

		api.POST("/auth/login", auth.Login(deps.Sessions))
		api.POST("/auth/logout", auth.Logout(deps.Sessions))
		api.GET("/auth/session", auth.SessionCheck(deps.Sessions))
	}
}
