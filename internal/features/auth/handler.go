package auth

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
	"github.com/xyz-asif/gocart/internal/pkg/mail"
	"github.com/xyz-asif/gocart/internal/pkg/response"
	"github.com/xyz-asif/gocart/internal/pkg/token"
	"github.com/xyz-asif/gocart/internal/pkg/validator"
	apperrors "github.com/xyz-asif/gocart/pkg/errors"
)

type Handler struct {
	repo   *Repository
	cfg    *config.Config
	jar    *cookie.Jar
	mailer *mail.Sender
}

func NewHandler(repo *Repository, cfg *config.Config, jar *cookie.Jar, mailer *mail.Sender) *Handler {
	return &Handler{
		repo:   repo,
		cfg:    cfg,
		jar:    jar,
		mailer: mailer,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Issue a registration token and mail an activation link. No user row is created until activation.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	exists, err := h.repo.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to check account")
		return
	}
	if exists {
		response.Conflict(c, "Already have an account with this email.")
		return
	}

	// The token carries the whole pending payload so nothing is stored
	// until the email is verified. Changing a field means registering
	// again for a fresh token.
	verifyToken, err := token.Issue(map[string]interface{}{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
		"address":  req.Address,
		"phone":    req.Phone,
		"gender":   req.Gender,
	}, h.cfg.RegisterTokenSecret, h.cfg.RegisterTokenExpiry)
	if err != nil {
		response.InternalServerError(c, "Failed to create verification token")
		return
	}

	if err := h.mailer.SendActivation(req.Email, verifyToken); err != nil {
		log.Printf("activation mail to %s failed: %v", req.Email, err)
		response.InternalServerError(c, "Failed to send verification email")
		return
	}

	response.Created(c,
		fmt.Sprintf("A verification email sent to %s. To create account, please verify.", req.Email),
		gin.H{"verifyToken": verifyToken},
	)
}

// Activate godoc
// @Summary Activate a registered account
// @Description Verify the registration token from the activation mail and create the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ActivateRequest true "Registration token"
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /auth/activate [post]
func (h *Handler) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	claims, err := token.Verify(req.Token, h.cfg.RegisterTokenSecret)
	if err != nil {
		response.Error(c, apperrors.Status(err), "Invalid or expired verification token. Please register again.")
		return
	}

	email := token.Email(claims)

	// Double-activation guard. The unique index still backstops a race
	// between two concurrent activations.
	exists, err := h.repo.EmailExists(c.Request.Context(), email)
	if err != nil {
		response.InternalServerError(c, "Failed to check account")
		return
	}
	if exists {
		response.Conflict(c, "User already verified.")
		return
	}

	plaintext, _ := claims["password"].(string)
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	user := &User{
		Name:     stringClaim(claims, "name"),
		Email:    email,
		Password: string(hashed),
		Address:  stringClaim(claims, "address"),
		Phone:    stringClaim(claims, "phone"),
		Gender:   stringClaim(claims, "gender"),
		Role:     RoleUser,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			response.Conflict(c, "User already verified.")
			return
		}
		response.InternalServerError(c, "Failed to create account")
		return
	}

	response.Created(c, "User account created successfully.", gin.H{"data": user})
}

// Login godoc
// @Summary Login user
// @Description Authenticate with email and password, set access and refresh cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.APIError
// @Failure 403 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to find account")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found. Please register.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Wrong password. Please try again.")
		return
	}

	if user.IsBanned {
		response.Forbidden(c, "Your account is banned. Please contact with admin.")
		return
	}

	accessToken, err := token.Issue(map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	}, h.cfg.AccessTokenSecret, h.cfg.AccessTokenExpiry)
	if err != nil {
		response.InternalServerError(c, "Failed to create access token")
		return
	}

	refreshToken, err := token.Issue(map[string]interface{}{
		"email": user.Email,
	}, h.cfg.RefreshTokenSecret, h.cfg.RefreshTokenExpiry)
	if err != nil {
		response.InternalServerError(c, "Failed to create refresh token")
		return
	}

	h.jar.Set(c, cookie.AccessToken, accessToken, h.cfg.AccessCookieMaxAge)
	h.jar.Set(c, cookie.RefreshToken, refreshToken, h.cfg.RefreshCookieMaxAge)

	response.OK(c, "Successfully Login.", gin.H{"data": user})
}

// Me godoc
// @Summary Get the logged-in user
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		response.NotFound(c, "User not found.")
		return
	}

	response.OK(c, "Login user data.", gin.H{"data": user})
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Verify the refresh cookie, re-read the user's role from storage and set a new access cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.APIError
// @Router /auth/refresh [get]
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(cookie.RefreshToken)
	if err != nil || refreshToken == "" {
		response.Unauthorized(c, "Refresh token not found")
		return
	}

	claims, err := token.Verify(refreshToken, h.cfg.RefreshTokenSecret)
	if err != nil {
		response.Unauthorized(c, "Invalid refresh token. Please login again.")
		return
	}

	// Role comes from storage, not from the old token, so a role change
	// takes effect on the next refresh.
	user, err := h.repo.FindByEmail(c.Request.Context(), token.Email(claims))
	if err != nil {
		response.InternalServerError(c, "Failed to find account")
		return
	}
	if user == nil {
		response.NotFound(c, "Couldn't find any user")
		return
	}

	accessToken, err := token.Issue(map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	}, h.cfg.AccessTokenSecret, h.cfg.AccessTokenExpiry)
	if err != nil {
		response.InternalServerError(c, "Failed to create access token")
		return
	}

	h.jar.Set(c, cookie.AccessToken, accessToken, h.cfg.AccessCookieMaxAge)

	response.OK(c, "Token refreshed", gin.H{"accessToken": accessToken})
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description Mail a reset link carrying a short-lived reset token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /auth/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to find account")
		return
	}
	if user == nil {
		response.NotFound(c, "Couldn't find any user.")
		return
	}

	resetToken, err := token.Issue(map[string]interface{}{
		"email": user.Email,
	}, h.cfg.ResetTokenSecret, h.cfg.ResetTokenExpiry)
	if err != nil {
		response.InternalServerError(c, "Failed to create reset token")
		return
	}

	if err := h.mailer.SendPasswordReset(user.Email, resetToken); err != nil {
		log.Printf("reset mail to %s failed: %v", user.Email, err)
		response.InternalServerError(c, "Failed to send reset email")
		return
	}

	response.OK(c,
		fmt.Sprintf("A password reset email sent to %s.", user.Email),
		gin.H{"resetToken": resetToken},
	)
}

// ResetPassword godoc
// @Summary Reset the password with a mailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 401 {object} response.APIError
// @Router /auth/reset-password [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	claims, err := token.Verify(req.Token, h.cfg.ResetTokenSecret)
	if err != nil {
		response.Error(c, apperrors.Status(err), "Invalid or expired reset token.")
		return
	}

	if !validator.IsStrongPassword(req.Password) {
		response.BadRequest(c, "Password must be at least 7 characters with upper, lower and digit")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	if err := h.repo.UpdatePassword(c.Request.Context(), token.Email(claims), string(hashed)); err != nil {
		response.Error(c, apperrors.Status(err), "Failed to update password")
		return
	}

	response.OK(c, "Password reset successfully. Please login.", nil)
}

// Logout godoc
// @Summary Logout
// @Description Clear both auth cookies. There is no server-side revocation list, a stolen but still-valid access token stays valid until it expires.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.jar.Clear(c, cookie.AccessToken)
	h.jar.Clear(c, cookie.RefreshToken)

	response.OK(c, "Successfully Logout.", nil)
}

func stringClaim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}
