package v1

import (
	"net/http"

	"alumni-network-backend/internal/delivery/http/middleware"
	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := protected.Group("/users")
	{
		users.GET("/me", handler.GetMe)
		users.PATCH("/me", handler.UpdateMe)
		users.DELETE("/me", handler.DeleteMe)
		users.POST("/me/profile-image", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.UploadProfileImage)
		users.GET("/:id", handler.GetProfile)
	}
}

// GetMe godoc
// @Summary      Own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userUC.GetMe(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}

// UpdateMe godoc
// @Summary      Update own profile
// @Description  Partial update; omitted fields are left untouched and empty strings clear optional text.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.UpdateProfileRequest  true  "Profile fields"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userUC.UpdateMe(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// DeleteMe godoc
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.userUC.DeleteMe(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

// UploadProfileImage godoc
// @Summary      Upload profile image
// @Description  jpg, png, gif or webp up to 5 MB. Stored resized as JPEG.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /users/me/profile-image [post]
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	filename, data, ok := readImage(c)
	if !ok {
		return
	}
	user, err := h.userUC.UploadProfileImage(c.Request.Context(), filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile image updated", user)
}

// GetProfile godoc
// @Summary      Read a profile
// @Description  Visible, active profiles for everyone; any profile for its owner or an admin.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.PublicProfile}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.userUC.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}
