package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repairshop/technotes-api/internal/api/metrics"
	"github.com/repairshop/technotes-api/internal/core/domain"
	"github.com/repairshop/technotes-api/internal/core/ports"
)

// HeaderAuthToken is the custom header the API transports bearer tokens in.
// Clients predate the standard Authorization scheme and still send this.
const HeaderAuthToken = "x-auth-token"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new account with the default employee role.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "New account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "rejected").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
		case errors.Is(err, domain.ErrUserExists):
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "rejected").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User already exists"})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Login authenticates by email and password and issues a bearer token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotFound):
			metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User with this email doesn't exist!"})
		case errors.Is(err, domain.ErrInvalidPassword):
			metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid password"})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// VerifyToken answers a bare boolean for token validity, except expiry
// which is a 401 with its own message so clients can prompt a re-login.
//
// @Summary      Verify a bearer token
// @Tags         auth
// @Produce      json
// @Param        x-auth-token  header    string  false  "Bearer token"
// @Success      200           {boolean} boolean
// @Failure      401           {object}  messageResponse
// @Router       /jwt [post]
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	token := c.Request().Header.Get(HeaderAuthToken)

	ok, err := h.authService.VerifyToken(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Token expired"})
		}
		return err
	}
	return c.JSON(http.StatusOK, ok)
}

// Me returns the record of the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Param        x-auth-token  header    string  true  "Bearer token"
// @Success      200           {object}  domain.User
// @Failure      401           {object}  messageResponse
// @Router       /user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "No user found!"})
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Users not found!"})
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}
