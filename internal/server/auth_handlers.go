package server

import (
	"fmt"
	"time"

	"campusboard/internal/models"
	"campusboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "campusboard-api"
	tokenAudience = "campusboard-client"

	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour

	refreshCookieName = "jwt"
)

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new account with an institutional email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string} true "Signup request"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Signin handles POST /api/auth/signin
// @Summary User signin
// @Description Authenticate and receive an access token plus a refresh cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{accessToken=string,expirationDate=string,user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/signin [post]
func (s *Server) Signin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}

	user, err := s.userService.Authenticate(c.Context(), login, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to generate token", err))
	}

	refresh, err := s.generateRefreshToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to generate refresh token", err))
	}
	s.setRefreshCookie(c, refresh)

	return c.JSON(fiber.Map{
		"accessToken":    token,
		"expirationDate": time.Now().Add(accessTokenTTL),
		"user":           user,
	})
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh access token
// @Description Exchange the refresh cookie for a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} object{accessToken=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	cookie := c.Cookies(refreshCookieName)
	if cookie == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh cookie missing"))
	}

	claims, err := s.parseRefreshToken(c, cookie)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid or expired refresh token"))
	}

	sub, _ := claims["sub"].(string)
	user, err := s.userService.GetUser(c.Context(), sub)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid refresh token subject"))
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to generate token", err))
	}

	return c.JSON(fiber.Map{"accessToken": token})
}

// Logout handles POST /api/auth/logout
// @Summary User logout
// @Description Revoke the refresh token and clear the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	cookie := c.Cookies(refreshCookieName)
	if cookie == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No session cookie"))
	}

	// Best effort revocation: even an expired token clears the cookie.
	if claims, err := s.parseRefreshToken(c, cookie); err == nil {
		s.blacklistToken(c, claims)
	}

	s.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateAccessToken creates a short-lived JWT carrying the user's roles.
func (s *Server) generateAccessToken(user *models.User) (string, error) {
	return s.signToken(user, accessTokenTTL, "access")
}

// generateRefreshToken creates the long-lived token stored in the cookie.
func (s *Server) generateRefreshToken(user *models.User) (string, error) {
	return s.signToken(user, refreshTokenTTL, "refresh")
}

func (s *Server) signToken(user *models.User, ttl time.Duration, typ string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"roles":    user.RoleList(),
		"typ":      typ,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseRefreshToken validates the cookie token and checks it has not been revoked.
func (s *Server) parseRefreshToken(c *fiber.Ctx, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}
	if issuer, _ := claims["iss"].(string); issuer != tokenIssuer {
		return nil, fmt.Errorf("invalid issuer")
	}

	if jti, _ := claims["jti"].(string); jti != "" && s.redis != nil {
		blacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
		if err == nil && blacklisted > 0 {
			return nil, fmt.Errorf("token revoked")
		}
	}

	return claims, nil
}

// blacklistToken marks the token's jti revoked until its natural expiry.
func (s *Server) blacklistToken(c *fiber.Ctx, claims jwt.MapClaims) {
	if s.redis == nil {
		return
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}
	ttl := refreshTokenTTL
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
}

func (s *Server) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Expires:  time.Now().Add(refreshTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		Path:     "/",
	})
}

func (s *Server) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
