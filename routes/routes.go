package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
)

// Deps carries the injected backend surfaces the handlers run on. main wires
// the real client into all three; tests wire the fake.
type Deps struct {
	Rows      backend.RowStore
	Sessions  backend.SessionAuth
	Blobs     backend.BlobStore
	JWTSecret string
}

// SetupRoutes is the single entry point that wires up the public storefront,
// auth, and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupPublicRoutes(r, deps)
	SetupAdminRoutes(r, deps)
}
