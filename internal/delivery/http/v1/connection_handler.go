package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionUC domain.ConnectionUsecase
}

func NewConnectionHandler(protected *gin.RouterGroup, connectionUC domain.ConnectionUsecase) {
	handler := &ConnectionHandler{connectionUC: connectionUC}

	connections := protected.Group("/connections")
	{
		connections.POST("", handler.Send)
		connections.GET("/incoming", handler.Incoming)
		connections.GET("/outgoing", handler.Outgoing)
		connections.GET("/accepted", handler.Accepted)
		connections.POST("/:id/accept", handler.Accept)
		connections.POST("/:id/decline", handler.Decline)
		connections.DELETE("/:id", handler.Withdraw)
		// gin needs one wildcard name per segment, so :id is the user id here.
		connections.GET("/:id/accepted_requests", handler.AcceptedRequests)
		connections.GET("/:id/accepted_requested", handler.AcceptedRequested)
	}
}

// Send godoc
// @Summary      Send a connection request
// @Description  A previously declined request is re-opened. The recipient is emailed when notifications are on.
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateConnectionRequest  true  "Request"
// @Success      201   {object}  response.Response{data=domain.ConnectionRequest}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /connections [post]
func (h *ConnectionHandler) Send(c *gin.Context) {
	var req domain.CreateConnectionRequest
	if !bindJSON(c, &req) {
		return
	}
	cr, err := h.connectionUC.Send(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Connection request sent", cr)
}

// Accept godoc
// @Summary      Accept a request
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Response{data=domain.ConnectionRequest}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /connections/{id}/accept [post]
func (h *ConnectionHandler) Accept(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	cr, err := h.connectionUC.Accept(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection request accepted", cr)
}

// Decline godoc
// @Summary      Decline a request
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Response{data=domain.ConnectionRequest}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /connections/{id}/decline [post]
func (h *ConnectionHandler) Decline(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	cr, err := h.connectionUC.Decline(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection request declined", cr)
}

// Withdraw godoc
// @Summary      Withdraw a pending request
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /connections/{id} [delete]
func (h *ConnectionHandler) Withdraw(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.connectionUC.Withdraw(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection request withdrawn", nil)
}

// Incoming godoc
// @Summary      Requests sent to me
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, accepted or declined"
// @Success      200     {object}  response.Response{data=[]domain.ConnectionView}
// @Router       /connections/incoming [get]
func (h *ConnectionHandler) Incoming(c *gin.Context) {
	var f domain.ConnectionStatusFilter
	if !bindQuery(c, &f) {
		return
	}
	views, err := h.connectionUC.Incoming(c.Request.Context(), f.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Incoming requests", views)
}

// Outgoing godoc
// @Summary      Requests I sent
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, accepted or declined"
// @Success      200     {object}  response.Response{data=[]domain.ConnectionView}
// @Router       /connections/outgoing [get]
func (h *ConnectionHandler) Outgoing(c *gin.Context) {
	var f domain.ConnectionStatusFilter
	if !bindQuery(c, &f) {
		return
	}
	views, err := h.connectionUC.Outgoing(c.Request.Context(), f.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Outgoing requests", views)
}

// Accepted godoc
// @Summary      My connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.ConnectionView}
// @Router       /connections/accepted [get]
func (h *ConnectionHandler) Accepted(c *gin.Context) {
	views, err := h.connectionUC.Accepted(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connections", views)
}

// AcceptedRequests godoc
// @Summary      Accepted requests the user sent
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID (must be the caller)"
// @Success      200  {object}  response.Response{data=[]domain.ConnectionView}
// @Failure      403  {object}  response.Response
// @Router       /connections/{id}/accepted_requests [get]
func (h *ConnectionHandler) AcceptedRequests(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	views, err := h.connectionUC.AcceptedRequests(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Accepted requests", views)
}

// AcceptedRequested godoc
// @Summary      Accepted requests the user received
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID (must be the caller)"
// @Success      200  {object}  response.Response{data=[]domain.ConnectionView}
// @Failure      403  {object}  response.Response
// @Router       /connections/{id}/accepted_requested [get]
func (h *ConnectionHandler) AcceptedRequested(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	views, err := h.connectionUC.AcceptedRequested(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Accepted requested", views)
}
