package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/middleware"
	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/stats", handler.GetStats)
		admin.GET("/audit", handler.AuditLogs)

		// User management
		admin.GET("/users", handler.ListUsers)
		admin.PATCH("/users/:id/role", handler.SetRole)
		admin.PATCH("/users/:id/active", handler.SetActive)
		admin.DELETE("/users/:id", handler.DeleteUser)

		// Alumni review
		admin.GET("/alumni/pending", handler.PendingAlumni)
		admin.GET("/alumni/export", handler.ExportAlumni)
		admin.POST("/alumni/:id/approve", handler.ApproveAlumni)
		admin.POST("/alumni/:id/reject", handler.RejectAlumni)
	}
}

// GetStats godoc
// @Summary      Admin dashboard statistics
// @Description  User, alumni and connection totals plus the acceptance rate.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.AdminStats}
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// ListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Name or email substring"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.User]}
// @Failure      403        {object}  response.Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var f domain.AdminUserFilter
	if !bindQuery(c, &f) {
		return
	}
	result, err := h.adminUC.ListUsers(c.Request.Context(), f)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users list", result)
}

// PendingAlumni godoc
// @Summary      Alumni awaiting review
// @Description  Completed, unreviewed profiles that are not yet alumni.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Router       /admin/alumni/pending [get]
func (h *AdminHandler) PendingAlumni(c *gin.Context) {
	users, err := h.adminUC.PendingAlumni(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending alumni", users)
}

// ApproveAlumni godoc
// @Summary      Approve an alumnus
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/alumni/{id}/approve [post]
func (h *AdminHandler) ApproveAlumni(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminUC.ApproveAlumni(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Alumni approved", nil)
}

// RejectAlumni godoc
// @Summary      Reject an alumnus
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/alumni/{id}/reject [post]
func (h *AdminHandler) RejectAlumni(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminUC.RejectAlumni(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Alumni rejected", nil)
}

// SetRole godoc
// @Summary      Grant or revoke admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "User ID"
// @Param        body  body      domain.UpdateRoleRequest  true  "Role"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/users/{id}/role [patch]
func (h *AdminHandler) SetRole(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.adminUC.SetRole(c.Request.Context(), id, req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated", nil)
}

// SetActive godoc
// @Summary      Enable or disable an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "User ID"
// @Param        body  body      domain.UpdateActiveRequest  true  "Active flag"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/users/{id}/active [patch]
func (h *AdminHandler) SetActive(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.adminUC.SetActive(c.Request.Context(), id, req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", nil)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminUC.DeleteUser(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

// ExportAlumni godoc
// @Summary      Export alumni
// @Description  Every approved alumnus as an xlsx (default) or csv download.
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format  query  string  false  "xlsx or csv"
// @Success      200     {file}  file
// @Failure      400     {object}  response.Response
// @Router       /admin/alumni/export [get]
func (h *AdminHandler) ExportAlumni(c *gin.Context) {
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportXLSX)))
	file, err := h.adminUC.ExportAlumni(c.Request.Context(), format)
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// AuditLogs godoc
// @Summary      Admin audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.AuditLog]}
// @Router       /admin/audit [get]
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	var p domain.Pagination
	if !bindQuery(c, &p) {
		return
	}
	result, err := h.adminUC.AuditLogs(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Audit logs", result)
}
