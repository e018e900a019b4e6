package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
)

// ShopHandler serves the public storefront catalog surface. Only active
// records are ever visible here.
type ShopHandler struct {
	BaseHandler
	productService  *appcatalog.ProductService
	categoryService *appcatalog.CategoryService
	brandService    *appcatalog.BrandService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(
	productService *appcatalog.ProductService,
	categoryService *appcatalog.CategoryService,
	brandService *appcatalog.BrandService,
) *ShopHandler {
	return &ShopHandler{
		productService:  productService,
		categoryService: categoryService,
		brandService:    brandService,
	}
}

type shopProductFilter struct {
	appcatalog.ListFilter
	CategoryID *uuid.UUID `form:"category_id"`
}

// ListProducts lists storefront-visible products, optionally scoped to a
// category subtree
// GET /api/v1/shop/products
func (h *ShopHandler) ListProducts(c *gin.Context) {
	var filter shopProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	if filter.CategoryID != nil {
		products, err := h.productService.ListByCategoryTree(c.Request.Context(), *filter.CategoryID, filter.ListFilter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, products)
		return
	}

	products, err := h.productService.ListActive(c.Request.Context(), filter.ListFilter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct returns an active product by slug
// GET /api/v1/shop/products/:slug
func (h *ShopHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if product.Status != "active" {
		h.NotFound(c, "Product not found")
		return
	}

	h.Success(c, product)
}

// ListCategories returns the category tree for storefront navigation
// GET /api/v1/shop/categories
func (h *ShopHandler) ListCategories(c *gin.Context) {
	tree, err := h.categoryService.Tree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// ListBrands returns active brands
// GET /api/v1/shop/brands
func (h *ShopHandler) ListBrands(c *gin.Context) {
	var filter appcatalog.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	brands, err := h.brandService.ListActive(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brands)
}
