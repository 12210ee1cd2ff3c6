package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUC domain.EmailUsecase
}

func NewEmailHandler(protected *gin.RouterGroup, emailUC domain.EmailUsecase) {
	handler := &EmailHandler{emailUC: emailUC}

	emails := protected.Group("/emails")
	{
		emails.POST("/me", handler.Add)
		emails.PATCH("/me/preferred", handler.SetPreferred)
		emails.DELETE("/me/:email", handler.Delete)
		emails.GET("/:id", handler.List)
	}
}

// Add godoc
// @Summary      Add an email address
// @Tags         emails
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.AddEmailRequest  true  "Address"
// @Success      201   {object}  response.Response{data=domain.UserEmail}
// @Failure      409   {object}  response.Response
// @Router       /emails/me [post]
func (h *EmailHandler) Add(c *gin.Context) {
	var req domain.AddEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	email, err := h.emailUC.Add(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Email added", email)
}

// SetPreferred godoc
// @Summary      Choose the preferred address
// @Tags         emails
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.SetPreferredEmailRequest  true  "Address"
// @Success      200   {object}  response.Response{data=domain.UserEmail}
// @Failure      404   {object}  response.Response
// @Router       /emails/me/preferred [patch]
func (h *EmailHandler) SetPreferred(c *gin.Context) {
	var req domain.SetPreferredEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	email, err := h.emailUC.SetPreferred(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Preferred email updated", email)
}

// Delete godoc
// @Summary      Remove an address
// @Tags         emails
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Address"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /emails/me/{email} [delete]
func (h *EmailHandler) Delete(c *gin.Context) {
	if err := h.emailUC.Delete(c.Request.Context(), c.Param("email")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email deleted", nil)
}

// List godoc
// @Summary      A user's addresses
// @Tags         emails
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.EmailList}
// @Router       /emails/{id} [get]
func (h *EmailHandler) List(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	list, err := h.emailUC.List(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Emails", list)
}
