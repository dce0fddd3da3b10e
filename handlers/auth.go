package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vichannnnn/holy-grail-sub001/models"
	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/types"
)

type AuthHandler struct {
	repo      *repository.UsersRepository
	jwtSecret string
}

func NewAuthHandler(repo *repository.UsersRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{repo: repo, jwtSecret: jwtSecret}
}

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = 24 * time.Hour

// AuthMiddleware validates the Bearer token and stores userId/role in the
// gin context for downstream handlers.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				types.NewErrorResponse(types.ErrorCodeUnauthorized, "Authorization header required"))
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				types.NewErrorResponse(types.ErrorCodeUnauthorized, "Invalid authorization header"))
			return
		}
		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				types.NewErrorResponse(types.ErrorCodeInvalidToken, "Invalid token"))
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				types.NewErrorResponse(types.ErrorCodeInvalidToken, "Invalid token claims"))
			return
		}
		userID, ok := claims["userId"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				types.NewErrorResponse(types.ErrorCodeInvalidToken, "userId not found in token"))
			return
		}
		role, _ := claims["role"].(float64)
		c.Set("userId", int(userID))
		c.Set("role", int(role))
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry an admin role.
// Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt("role") < models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				types.NewErrorResponse(types.ErrorCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"role":   user.Role,
		"exp":    time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

// Register handles POST /auth/create.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if len(req.Username) < 3 || len(req.Username) > 50 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"Username must be between 3 and 50 characters"))
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"Password must be at least 8 characters"))
		return
	}
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"Invalid email address"))
		return
	}
	user, err := h.repo.CreateUser(req.Username, req.Email, req.Password)
	if err == repository.ErrDuplicate {
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict,
			"Username or email already in use"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	tokenString, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal,
			"Failed to generate token"))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(gin.H{
		"user":         user,
		"access_token": tokenString,
	}))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	user, err := h.repo.GetUserByUsername(req.Username)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, types.NewErrorResponse(types.ErrorCodeUnauthorized,
			"Invalid username or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, types.NewErrorResponse(types.ErrorCodeUnauthorized,
			"Invalid username or password"))
		return
	}
	tokenString, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal,
			"Failed to generate token"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"user":         user,
		"access_token": tokenString,
	}))
}

// UpdateEmail handles POST /auth/update_email. Changing the address resets
// the verified flag until the new mailbox is confirmed.
func (h *AuthHandler) UpdateEmail(c *gin.Context) {
	var req struct {
		NewEmail string `json:"new_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if !strings.Contains(req.NewEmail, "@") {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"Invalid email address"))
		return
	}
	userID := c.GetInt("userId")
	err := h.repo.UpdateEmail(userID, req.NewEmail)
	if err == repository.ErrDuplicate {
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict,
			"Email already in use"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}

// UpdatePassword handles POST /auth/update_password. The current password
// must be supplied and verified before the new one is stored.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		BeforePassword string `json:"before_password"`
		Password       string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"Password must be at least 8 characters"))
		return
	}
	userID := c.GetInt("userId")
	user, err := h.repo.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal,
			"Failed to load account"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.BeforePassword)); err != nil {
		c.JSON(http.StatusUnauthorized, types.NewErrorResponse(types.ErrorCodeUnauthorized,
			"Current password is incorrect"))
		return
	}
	if err := h.repo.UpdatePassword(userID, req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}

// SendResetPasswordMail handles POST /auth/send_reset_password_mail.
// The response is identical whether or not the email exists, so the endpoint
// cannot be used to probe registered addresses. Actual delivery is owned by
// the mail worker; this endpoint only records the token.
func (h *AuthHandler) SendResetPasswordMail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	user, err := h.repo.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if user != nil {
		token, err := randomToken()
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
			return
		}
		if _, err := h.repo.SetResetToken(req.Email, token); err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
			return
		}
		slog.Info("password reset token issued", "userId", user.ID)
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}

// ResendEmailVerificationToken handles POST /auth/resend_email_verification_token.
func (h *AuthHandler) ResendEmailVerificationToken(c *gin.Context) {
	userID := c.GetInt("userId")
	user, err := h.repo.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal,
			"Failed to load account"))
		return
	}
	if user.Verified {
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict,
			"Email already verified"))
		return
	}
	token, err := randomToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if err := h.repo.SetVerificationToken(userID, token); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	slog.Info("verification token reissued", "userId", userID)
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
