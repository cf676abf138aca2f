package handler

import (
	"net/http"

	"quotepanel/internal/service"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/categories", h.ListCategories)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts returns the catalog, optionally filtered and sorted
// @Summary      List products
// @Description  Returns built-in entries first, then user creations; filters by text and category, sorts by price
// @Tags         products
// @Produce      json
// @Param        q         query     string  false  "Free text over name, code and category"
// @Param        category  query     string  false  "Exact category"
// @Param        sort      query     string  false  "priceAsc or priceDesc"
// @Success      200       {object}  response.Response{data=[]model.Product}
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := service.ProductFilter{
		Text:     c.Query("q"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.catalogService.Filter(c.Request.Context(), filter)))
}

// ListCategories returns the distinct catalog categories
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /api/products/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.catalogService.Categories(c.Request.Context())))
}

// GetProduct returns one catalog entry
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=model.Product}
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.catalogService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, p))
}

// CreateProduct adds a user product to the catalog
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SaveProductRequest  true  "Product payload"
// @Success      201      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	req.ID = ""
	p, err := h.catalogService.Save(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, p))
}

// UpdateProduct edits a user product
// @Summary      Update product
// @Description  Edits a user-created product; built-in entries are read-only
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Product ID"
// @Param        payload  body      service.SaveProductRequest  true  "Product payload"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req service.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	req.ID = c.Param("id")
	p, err := h.catalogService.Save(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, p))
}

// DeleteProduct removes a user product
// @Summary      Delete product
// @Description  Deletes a user-created product; requires confirm=true, saved quotes keep their lines
// @Tags         products
// @Produce      json
// @Param        id       path      string  true   "Product ID"
// @Param        confirm  query     bool    false  "Must be true to proceed"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.Delete(c.Request.Context(), c.Param("id"), confirmParam(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
