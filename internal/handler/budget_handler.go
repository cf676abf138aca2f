package handler

import (
	"net/http"

	"quotepanel/internal/service"
	"quotepanel/pkg/pagination"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (h *BudgetHandler) RegisterRoutes(router *gin.RouterGroup) {
	budgets := router.Group("/api/budgets")
	{
		budgets.GET("/draft", h.GetDraft)
		budgets.PUT("/draft", h.UpdateDraft)
		budgets.POST("/draft/reset", h.ResetDraft)
		budgets.GET("/draft/totals", h.GetTotals)
		budgets.POST("/draft/items", h.AddProduct)
		budgets.POST("/draft/custom-items", h.AddCustomItem)
		budgets.PUT("/draft/items/:productId/quantity", h.SetQuantity)
		budgets.DELETE("/draft/items/:productId", h.RemoveItem)

		budgets.POST("", h.SaveBudget)
		budgets.GET("", h.ListBudgets)
		budgets.GET("/number", h.GetDocumentNumber)
		budgets.GET("/presets/:kind", h.GetConditionsPreset)
		budgets.GET("/:id", h.GetBudget)
		budgets.POST("/:id/duplicate", h.DuplicateBudget)
		budgets.PUT("/:id/status", h.SetStatus)
		budgets.DELETE("/:id", h.DeleteBudget)
	}
}

// GetDraft returns the in-progress quote
// @Summary      Get draft
// @Description  Returns the current in-progress quote with its recomputed total
// @Tags         budgets
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Budget}
// @Router       /api/budgets/draft [get]
func (h *BudgetHandler) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.budgetService.Draft(c.Request.Context())))
}

// UpdateDraft patches the draft header fields
// @Summary      Update draft
// @Description  Updates the header fields of the in-progress quote; omitted fields stay untouched
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpdateDraftRequest  true  "Draft fields"
// @Success      200      {object}  response.Response{data=model.Budget}
// @Failure      400      {object}  response.Response
// @Router       /api/budgets/draft [put]
func (h *BudgetHandler) UpdateDraft(c *gin.Context) {
	var req service.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.budgetService.UpdateDraft(c.Request.Context(), req)))
}

// ResetDraft discards the draft and starts a fresh one
// @Summary      Reset draft
// @Tags         budgets
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Budget}
// @Router       /api/budgets/draft/reset [post]
func (h *BudgetHandler) ResetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.budgetService.ResetDraft(c.Request.Context())))
}

// GetTotals returns the computed totals for the draft
// @Summary      Draft totals
// @Tags         budgets
// @Produce      json
// @Success      200  {object}  response.Response{data=service.BudgetTotals}
// @Router       /api/budgets/draft/totals [get]
func (h *BudgetHandler) GetTotals(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.budgetService.Totals(c.Request.Context())))
}

// AddProduct adds a catalog product to the draft
// @Summary      Add product to draft
// @Description  Adds the product as a line item, or bumps the quantity when the row already exists
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        payload  body      object{productId=string}  true  "Product reference"
// @Success      200      {object}  response.Response{data=model.Budget}
// @Failure      404      {object}  response.Response
// @Router       /api/budgets/draft/items [post]
func (h *BudgetHandler) AddProduct(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	draft, err := h.budgetService.AddProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// AddCustomItem adds an ad-hoc line item to the draft
// @Summary      Add custom item
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        payload  body      object{name=string,qty=int,price=number}  true  "Custom item"
// @Success      200      {object}  response.Response{data=model.Budget}
// @Failure      400      {object}  response.Response
// @Router       /api/budgets/draft/custom-items [post]
func (h *BudgetHandler) AddCustomItem(c *gin.Context) {
	var req struct {
		Name  string  `json:"name"`
		Qty   int     `json:"qty"`
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	draft, err := h.budgetService.AddCustomItem(c.Request.Context(), req.Name, req.Qty, req.Price)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// SetQuantity updates the quantity of a draft line
// @Summary      Set line quantity
// @Description  Sets the quantity of a line item; values below 1 clamp to 1, unknown lines are a no-op
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        productId  path      string                 true  "Line product ID"
// @Param        payload    body      object{quantity=int}   true  "New quantity"
// @Success      200        {object}  response.Response{data=model.Budget}
// @Router       /api/budgets/draft/items/{productId}/quantity [put]
func (h *BudgetHandler) SetQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	draft := h.budgetService.SetQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// RemoveItem removes a draft line
// @Summary      Remove line item
// @Tags         budgets
// @Produce      json
// @Param        productId  path      string  true  "Line product ID"
// @Success      200        {object}  response.Response{data=model.Budget}
// @Router       /api/budgets/draft/items/{productId} [delete]
func (h *BudgetHandler) RemoveItem(c *gin.Context) {
	draft := h.budgetService.RemoveItem(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// SaveBudget persists the draft into the history
// @Summary      Save budget
// @Description  Validates and stores the draft, advances the document number and starts a fresh draft
// @Tags         budgets
// @Produce      json
// @Success      201  {object}  response.Response{data=model.Budget}
// @Failure      400  {object}  response.Response
// @Router       /api/budgets [post]
func (h *BudgetHandler) SaveBudget(c *gin.Context) {
	saved, err := h.budgetService.Save(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, saved))
}

// ListBudgets returns the filtered history
// @Summary      List budgets
// @Description  Returns saved quotes newest-first, filtered by free text, client, status and date range
// @Tags         budgets
// @Produce      json
// @Param        q         query     string  false  "Free text over client name, id and position"
// @Param        clientId  query     string  false  "Exact client link"
// @Param        status    query     string  false  "Lifecycle status"
// @Param        from      query     string  false  "Start date (YYYY-MM-DD, inclusive)"
// @Param        to        query     string  false  "End date (YYYY-MM-DD, inclusive)"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 50)"
// @Success      200       {object}  response.Response{data=object}
// @Router       /api/budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	p := pagination.Parse(c)

	filter := service.BudgetFilter{
		Text:     c.Query("q"),
		ClientID: c.Query("clientId"),
		Status:   c.Query("status"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Page:     p.Page,
		Limit:    p.Limit,
	}

	budgets, total, err := h.budgetService.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"budgets": budgets,
		"total":   total,
		"page":    p.Page,
		"limit":   p.Limit,
	}))
}

// GetDocumentNumber returns the display number of the next quote
// @Summary      Next document number
// @Tags         budgets
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/budgets/number [get]
func (h *BudgetHandler) GetDocumentNumber(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"number": h.budgetService.DocumentNumber(c.Request.Context()),
	}))
}

// GetConditionsPreset returns a commercial conditions template
// @Summary      Conditions preset
// @Tags         budgets
// @Produce      json
// @Param        kind  path      string  true  "Preset kind (standard, contado, medida)"
// @Success      200   {object}  response.Response{data=service.ConditionsPreset}
// @Failure      400   {object}  response.Response
// @Router       /api/budgets/presets/{kind} [get]
func (h *BudgetHandler) GetConditionsPreset(c *gin.Context) {
	preset, err := h.budgetService.ConditionsPreset(c.Request.Context(), c.Param("kind"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, preset))
}

// GetBudget returns one saved quote
// @Summary      Get budget
// @Tags         budgets
// @Produce      json
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  response.Response{data=model.Budget}
// @Failure      404  {object}  response.Response
// @Router       /api/budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	b, err := h.budgetService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, b))
}

// DuplicateBudget clones a saved quote as a fresh draft-status copy
// @Summary      Duplicate budget
// @Tags         budgets
// @Produce      json
// @Param        id   path      string  true  "Budget ID"
// @Success      201  {object}  response.Response{data=model.Budget}
// @Failure      404  {object}  response.Response
// @Router       /api/budgets/{id}/duplicate [post]
func (h *BudgetHandler) DuplicateBudget(c *gin.Context) {
	dup, err := h.budgetService.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, dup))
}

// SetStatus moves a quote through its lifecycle
// @Summary      Set budget status
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Budget ID"
// @Param        payload  body      object{status=string} true  "New status"
// @Success      200      {object}  response.Response{data=model.Budget}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/budgets/{id}/status [put]
func (h *BudgetHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	b, err := h.budgetService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, b))
}

// DeleteBudget removes a saved quote
// @Summary      Delete budget
// @Description  Deletes a saved quote; requires confirm=true, derived orders are untouched
// @Tags         budgets
// @Produce      json
// @Param        id       path      string  true   "Budget ID"
// @Param        confirm  query     bool    false  "Must be true to proceed"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.Delete(c.Request.Context(), c.Param("id"), confirmParam(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
