package v1

import (
	"net/http"
	"time"

	"alumni-network-backend/config"
	"alumni-network-backend/internal/delivery/http/middleware"
	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	userUC domain.UserUsecase
	config *config.Config
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, userUC domain.UserUsecase, cfg *config.Config) {
	handler := &AuthHandler{
		authUC: authUC,
		userUC: userUC,
		config: cfg,
	}

	publicAuth := public.Group("/auth")
	{
		strict := middleware.StrictRateLimitMiddleware(cfg)
		publicAuth.POST("/register", strict, handler.Register)
		publicAuth.POST("/login", strict, handler.Login)
		publicAuth.POST("/logout", handler.Logout)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.PATCH("/password", handler.ChangePassword)
	}
}

// Register godoc
// @Summary      Register
// @Description  Create an active, non-admin account. The email is stored lower-cased.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterRequest  true  "Registration details"
// @Success      201       {object}  response.Response{data=domain.User}
// @Failure      400       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Failure      429       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Registration successful", user)
}

// Login godoc
// @Summary      Login
// @Description  Exchange email and password for a bearer token. The token is also set as the auth_token cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.Token}
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	meta := domain.ClientMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(middleware.RequestIDKey),
	}
	token, err := h.authUC.Login(c.Request.Context(), req, meta)
	if err != nil {
		c.Error(err)
		return
	}

	maxAge := int(time.Until(time.Unix(token.ExpiresAt, 0)).Seconds())
	h.setAuthCookie(c, token.AccessToken, maxAge)
	response.Success(c, http.StatusOK, "Login successful", token)
}

// Logout godoc
// @Summary      Logout
// @Description  Clear the auth_token cookie. Bearer tokens simply expire.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setAuthCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, value, maxAge, "/", "", h.config.IsProduction(), true)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userUC.GetMe(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Verify the current password and set a different new one.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.UpdatePasswordRequest  true  "Passwords"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/password [patch]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req domain.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authUC.ChangePassword(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated successfully", nil)
}
