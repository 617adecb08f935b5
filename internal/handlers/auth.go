package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookline/api/internal/middleware"
	"bookline/api/internal/models"
	"bookline/api/internal/service"
	"bookline/api/internal/validate"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// publicUser is the only user shape that ever leaves the API; the
// password hash stays out by construction.
func publicUser(user models.User) userResponse {
	resp := userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if user.FullName != nil {
		resp.FullName = *user.FullName
	}
	return resp
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	if errs := validate.Credentials(req.Email, req.Password); len(errs) > 0 {
		h.writeServiceError(c, errs)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": publicUser(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	if errs := validate.Credentials(req.Email, req.Password); len(errs) > 0 {
		h.writeServiceError(c, errs)
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.SID, int(h.cfg.Session.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": publicUser(user)})
}

func (h HandlerSet) Logout(c *gin.Context) {
	sid := c.GetString(middleware.ContextSessionID)
	if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	if !validate.ValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "must be a valid email address"})
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Identical response whether or not the email is registered.
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "if the account exists, reset instructions will follow"})
}

func (h HandlerSet) ValidateSignup(c *gin.Context) {
	var req validate.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	if errs := validate.SignupForm(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": errs})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h HandlerSet) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": publicUser(user)})
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

func (h HandlerSet) DeleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "password is required"})
		return
	}

	err := h.auth.DeleteAccount(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.GetString(middleware.ContextSessionID),
		req.Password,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// setSessionCookie applies environment-dependent cookie attributes:
// strict in production, relaxed for local cross-port development.
func (h HandlerSet) setSessionCookie(c *gin.Context, value string, maxAge int) {
	if h.cfg.Production() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(
		h.cfg.Session.CookieName,
		value,
		maxAge,
		h.cfg.Session.CookiePath,
		h.cfg.Session.CookieDomain,
		h.cfg.Production(),
		true,
	)
}
