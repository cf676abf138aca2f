package handler

import (
	"net/http"

	"quotepanel/internal/service"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/orders")
	{
		orders.POST("/from-budget", h.CreateFromBudget)
		orders.GET("", h.ListOrders)
		orders.GET("/receipts", h.ListReceiptRows)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/items/received", h.SetItemReceived)
		orders.PUT("/:id/delivery-date", h.SetDeliveryDate)
	}
}

// CreateFromBudget snapshots the current draft into a purchase order
// @Summary      Create order from draft
// @Description  Converts the in-progress quote into a purchase order; fails when the draft has no items
// @Tags         orders
// @Produce      json
// @Success      201  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Router       /api/orders/from-budget [post]
func (h *OrderHandler) CreateFromBudget(c *gin.Context) {
	order, err := h.orderService.FromCurrentBudget(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders returns all purchase orders
// @Summary      List orders
// @Description  Returns all orders with status recomputed from item receipt flags
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Order}
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.orderService.List(c.Request.Context())))
}

// ListReceiptRows returns order items flattened for the reception screen
// @Summary      List receipt rows
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ReceiptRow}
// @Router       /api/orders/receipts [get]
func (h *OrderHandler) ListReceiptRows(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.orderService.ReceiptRows(c.Request.Context())))
}

// GetOrder returns one purchase order
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// SetItemReceived toggles the receipt flag of an order item
// @Summary      Set item received
// @Description  Marks an order item as received or pending; the order status is rederived
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path      string                                 true  "Order ID"
// @Param        payload  body      object{itemName=string,received=bool}  true  "Item receipt flag"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{id}/items/received [put]
func (h *OrderHandler) SetItemReceived(c *gin.Context) {
	var req struct {
		ItemName string `json:"itemName" binding:"required"`
		Received bool   `json:"received"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	order, err := h.orderService.SetItemReceived(c.Request.Context(), c.Param("id"), req.ItemName, req.Received)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// SetDeliveryDate sets or clears the estimated delivery date
// @Summary      Set delivery date
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Order ID"
// @Param        payload  body      object{deliveryDate=string}  true  "Delivery date (empty clears)"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{id}/delivery-date [put]
func (h *OrderHandler) SetDeliveryDate(c *gin.Context) {
	var req struct {
		DeliveryDate string `json:"deliveryDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	order, err := h.orderService.SetDeliveryDate(c.Request.Context(), c.Param("id"), req.DeliveryDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}
