package handler

import (
	"net/http"

	"quotepanel/internal/service"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/api/clients")
	{
		clients.GET("", h.ListClients)
		clients.GET("/resolve", h.ResolveByName)
		clients.GET("/:id", h.GetClient)
		clients.POST("", h.CreateClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

// ListClients returns clients with their budget counts
// @Summary      List clients
// @Description  Returns all clients plus how many saved quotes reference each; q filters by name, contact, email and phone
// @Tags         clients
// @Produce      json
// @Param        q    query     string  false  "Free text filter"
// @Success      200  {object}  response.Response{data=[]service.ClientWithStats}
// @Router       /api/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.clientService.Search(c.Request.Context(), c.Query("q"))))
}

// ResolveByName finds the client whose name matches ignoring case and accents
// @Summary      Resolve client by name
// @Tags         clients
// @Produce      json
// @Param        name  query     string  true  "Client name"
// @Success      200   {object}  response.Response{data=model.Client}
// @Failure      404   {object}  response.Response
// @Router       /api/clients/resolve [get]
func (h *ClientHandler) ResolveByName(c *gin.Context) {
	client, ok := h.clientService.ResolveByName(c.Request.Context(), c.Query("name"))
	if !ok {
		writeServiceError(c, service.ErrClientNotFound)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// GetClient returns one client
// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response{data=model.Client}
// @Failure      404  {object}  response.Response
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// CreateClient registers a new client
// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SaveClientRequest  true  "Client payload"
// @Success      201      {object}  response.Response{data=model.Client}
// @Failure      400      {object}  response.Response
// @Router       /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	req.ID = ""
	client, err := h.clientService.Save(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, client))
}

// UpdateClient edits an existing client
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Client ID"
// @Param        payload  body      service.SaveClientRequest  true  "Client payload"
// @Success      200      {object}  response.Response{data=model.Client}
// @Failure      400      {object}  response.Response
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req service.SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	req.ID = c.Param("id")
	client, err := h.clientService.Save(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// DeleteClient removes a client
// @Summary      Delete client
// @Description  Deletes a client; requires confirm=true. Quotes linked to it keep the name but lose the link
// @Tags         clients
// @Produce      json
// @Param        id       path      string  true   "Client ID"
// @Param        confirm  query     bool    false  "Must be true to proceed"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), c.Param("id"), confirmParam(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
