package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/middleware"
	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUC domain.EventUsecase
}

func NewEventHandler(protected *gin.RouterGroup, eventUC domain.EventUsecase) {
	handler := &EventHandler{eventUC: eventUC}

	protected.GET("/events", handler.List)
	protected.POST("/events", middleware.RequireAdmin(), handler.Create)
	protected.DELETE("/events/:id", middleware.RequireAdmin(), handler.Delete)
}

// List godoc
// @Summary      Events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        upcoming  query     bool  false  "Only events from now on"
// @Success      200       {object}  response.Response{data=[]domain.Event}
// @Router       /events [get]
func (h *EventHandler) List(c *gin.Context) {
	var f domain.EventFilter
	if !bindQuery(c, &f) {
		return
	}
	events, err := h.eventUC.List(c.Request.Context(), f)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Events", events)
}

// Create godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateEventRequest  true  "Event (date in RFC 3339)"
// @Success      201   {object}  response.Response{data=domain.Event}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req domain.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.eventUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Event created", event)
}

// Delete godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.eventUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Event deleted", nil)
}
