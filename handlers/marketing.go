package handlers

import (
	"context"
	"net/http"

	"marketing-template/catalog"
	"marketing-template/session"

	"github.com/gin-gonic/gin"
)

// CatalogLoader abstracts catalog access for dependency injection and testing.
type CatalogLoader interface {
	Load(ctx context.Context) ([]catalog.Product, error)
}

type MarketingHandler struct {
	Catalog  CatalogLoader
	Sessions *session.Store
}

// fail hands err to the error middleware, which logs it and renders a 500.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Status(http.StatusInternalServerError)
	c.Abort()
}

func (h *MarketingHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/marketing_template_editor")
}

func (h *MarketingHandler) Editor(c *gin.Context) {
	products, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	selected, _ := h.Sessions.Selection(c).Get()

	c.HTML(http.StatusOK, "marketing_template_editor.html", gin.H{
		"Data":     gin.H{"data": products},
		"Selected": selected,
	})
}

func (h *MarketingHandler) Products(c *gin.Context) {
	products, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "product.html", gin.H{
		"Data": gin.H{"data": products},
	})
}

// Select stores the product with the given item code as the client's
// selection. Unknown codes leave the existing selection alone; either way
// the client is sent to the selected view.
func (h *MarketingHandler) Select(c *gin.Context) {
	products, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	if product, ok := catalog.Find(products, c.Param("item_code")); ok {
		sel := h.Sessions.Selection(c)
		if err := sel.Set(product); err != nil {
			fail(c, err)
			return
		}
		if err := sel.Save(); err != nil {
			fail(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, "/selected")
}

func (h *MarketingHandler) Selected(c *gin.Context) {
	product, _ := h.Sessions.Selection(c).Get()

	c.HTML(http.StatusOK, "selected.html", gin.H{
		"Product": product,
	})
}

func (h *MarketingHandler) Listing(c *gin.Context) {
	products, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "listing.html", gin.H{
		"Products": products,
	})
}
