package routes

import (
	"marketing-template/handlers"
	"marketing-template/middleware"
	"marketing-template/session"
	"marketing-template/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every page. uploadLimiter may be nil to leave
// uploads unthrottled; staticDir may be empty to skip static assets.
func SetupRoutes(
	r *gin.Engine,
	catalog handlers.CatalogLoader,
	sessions *session.Store,
	templates storage.TemplateStore,
	uploadLimiter *middleware.RateLimiter,
	staticDir string,
) {
	// Initialize handlers
	marketingHandler := &handlers.MarketingHandler{Catalog: catalog, Sessions: sessions}
	uploadHandler := &handlers.UploadHandler{Storage: templates, Policy: handlers.NewTemplatePolicy()}

	r.GET("/", marketingHandler.Home)
	r.GET("/marketing_template_editor", marketingHandler.Editor)
	r.GET("/product", marketingHandler.Products)
	r.GET("/select/:item_code", marketingHandler.Select)
	r.GET("/selected", marketingHandler.Selected)
	r.GET("/listing", marketingHandler.Listing)

	r.GET("/upload_primary_secondary", uploadHandler.UploadForm)
	if uploadLimiter != nil {
		r.POST("/upload_primary_secondary", uploadLimiter.Middleware(), uploadHandler.Upload)
	} else {
		r.POST("/upload_primary_secondary", uploadHandler.Upload)
	}
	r.GET("/show_primary_secondary", uploadHandler.Show)

	if staticDir != "" {
		r.Static("/static", staticDir)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
