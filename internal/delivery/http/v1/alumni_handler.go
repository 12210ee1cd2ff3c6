package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AlumniHandler struct {
	directoryUC domain.DirectoryUsecase
}

func NewAlumniHandler(protected *gin.RouterGroup, directoryUC domain.DirectoryUsecase) {
	handler := &AlumniHandler{directoryUC: directoryUC}

	protected.GET("/alumni", handler.Search)
	protected.GET("/alumni/:id", handler.Get)
}

// Search godoc
// @Summary      Alumni directory
// @Description  Visible, active profiles matching every supplied filter, ordered by name.
// @Tags         alumni
// @Produce      json
// @Security     BearerAuth
// @Param        search                   query     string  false  "Substring of name, email, company, role or bio"
// @Param        location                 query     string  false  "Location substring"
// @Param        company                  query     string  false  "Current company substring"
// @Param        graduation_year          query     int     false  "Graduation year"
// @Param        open_to_coffee_chats     query     bool    false  "Coffee chats"
// @Param        open_to_mentorship       query     bool    false  "Mentorship"
// @Param        available_for_referrals  query     bool    false  "Referrals"
// @Param        is_alumni                query     bool    false  "Approved alumni only"
// @Param        page                     query     int     false  "Page (default 1)"
// @Param        page_size                query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  response.Response{data=domain.PaginatedResult[domain.PublicProfile]}
// @Router       /alumni [get]
func (h *AlumniHandler) Search(c *gin.Context) {
	var filter domain.AlumniFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.directoryUC.Search(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Alumni", result)
}

// Get godoc
// @Summary      Alumni profile
// @Tags         alumni
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.PublicProfile}
// @Failure      404  {object}  response.Response
// @Router       /alumni/{id} [get]
func (h *AlumniHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.directoryUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Alumnus", profile)
}
