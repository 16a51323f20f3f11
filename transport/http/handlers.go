package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/service"
)

// Handlers contains the HTTP handlers for auth and user endpoints
type Handlers struct {
	authService *service.AuthService
	userService *service.UserService
	accessTTL   int64 // seconds, reported to clients as expires_in
}

// NewHandlers creates the handler set
func NewHandlers(authService *service.AuthService, userService *service.UserService, accessTTLSeconds int64) *Handlers {
	return &Handlers{
		authService: authService,
		userService: userService,
		accessTTL:   accessTTLSeconds,
	}
}

// bindPayload decodes the request body into an untyped map for schema
// validation. A body that is not a JSON object is a type mismatch.
func bindPayload(c *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, core.NewError(core.KindTypeMismatch, "request body must be a JSON object"))
		return nil, false
	}
	return payload, true
}

// Register handles account registration
func (h *Handlers) Register(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	data, violations := registerSchema.Load(payload)
	if violations != nil {
		abortWithViolations(c, violations)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		FirstName:   data["first_name"].(string),
		LastName:    data["last_name"].(string),
		PhoneNumber: data["phone_number"].(string),
		Email:       data["email"].(string),
		Password:    data["password"].(string),
		Role:        core.Role(data["role"].(int64)),
		GDPRConsent: data["gdpr_consent"].(bool),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered",
		"user":    dumpUser(user),
	})
}

// Login verifies credentials and issues a token pair
func (h *Handlers) Login(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	data, violations := loginSchema.Load(payload)
	if violations != nil {
		abortWithViolations(c, violations)
		return
	}

	pair, user, err := h.authService.Issue(c.Request.Context(),
		data["email"].(string), data["password"].(string))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    h.accessTTL,
		"user":          dumpUser(user),
	})
}

// Refresh rotates the refresh token and issues a new pair
func (h *Handlers) Refresh(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	data, violations := refreshSchema.Load(payload)
	if violations != nil {
		abortWithViolations(c, violations)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), data["refresh_token"].(string))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    h.accessTTL,
	})
}

// Logout revokes the refresh token
func (h *Handlers) Logout(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	data, violations := refreshSchema.Load(payload)
	if violations != nil {
		abortWithViolations(c, violations)
		return
	}

	if err := h.authService.Revoke(c.Request.Context(), data["refresh_token"].(string)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Profile returns the authenticated user's account
func (h *Handlers) Profile(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dumpUser(user)})
}

// UpdateProfile saves the authenticated user's basic profile fields
func (h *Handlers) UpdateProfile(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	data, violations := updateProfileSchema.Load(payload)
	if violations != nil {
		abortWithViolations(c, violations)
		return
	}

	in := service.UpdateProfileInput{}
	if v, ok := data["first_name"]; ok {
		in.FirstName = v.(string)
	}
	if v, ok := data["last_name"]; ok {
		in.LastName = v.(string)
	}
	if v, ok := data["phone_number"]; ok {
		in.PhoneNumber = v.(string)
	}
	if v, ok := data["email"]; ok {
		in.Email = v.(string)
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), c.GetString(ctxUserID), in)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated",
		"user":    dumpUser(user),
	})
}

// ChangePassword replaces the authenticated user's secret
func (h *Handlers) ChangePassword(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	data, violations := changePasswordSchema.Load(payload)
	if violations != nil {
		abortWithViolations(c, violations)
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(),
		c.GetString(ctxUserID), data["new_password"].(string))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// ListUsers returns all registered accounts. Admin only.
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dumpUsers(users),
		"count": len(users),
	})
}
