package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EmploymentHandler struct {
	employmentUC domain.EmploymentUsecase
}

func NewEmploymentHandler(protected *gin.RouterGroup, employmentUC domain.EmploymentUsecase) {
	handler := &EmploymentHandler{employmentUC: employmentUC}

	protected.GET("/employment", handler.List)
	protected.POST("/employment", handler.Create)
	protected.DELETE("/employment/:id", handler.Delete)
}

// List godoc
// @Summary      Own employment history
// @Tags         employment
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Employment]}
// @Router       /employment [get]
func (h *EmploymentHandler) List(c *gin.Context) {
	var p domain.Pagination
	if !bindQuery(c, &p) {
		return
	}
	result, err := h.employmentUC.List(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employment", result)
}

// Create godoc
// @Summary      Add employment
// @Description  Type is "full time" or "internship"; dates are YYYY-MM-DD. Without an end date the company becomes the current one.
// @Tags         employment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateEmploymentRequest  true  "Employment"
// @Success      201   {object}  response.Response{data=domain.Employment}
// @Failure      400   {object}  response.Response
// @Router       /employment [post]
func (h *EmploymentHandler) Create(c *gin.Context) {
	var req domain.CreateEmploymentRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.employmentUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Employment created", e)
}

// Delete godoc
// @Summary      Delete employment
// @Tags         employment
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employment ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employment/{id} [delete]
func (h *EmploymentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.employmentUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employment deleted", nil)
}
