package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cadastro/internal/models"
	"cadastro/internal/services"
	"cadastro/internal/validation"
)

// Authenticator issues tokens for valid credentials.
type Authenticator interface {
	Login(username, password string) (*models.LoginResponse, error)
}

type AuthHandler struct {
	authService Authenticator
	validator   *validation.Validator
	log         *logrus.Logger
}

func NewAuthHandler(authService Authenticator, validator *validation.Validator, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, validator: validator, log: log}
}

// @Summary      Realiza login
// @Description  Autentica o administrador e retorna um token JWT
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credenciais"
// @Success      200    {object}  models.LoginResponse
// @Failure      400    {object}  models.ErrorResponse
// @Failure      401    {object}  models.ErrorResponse
// @Failure      500    {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if validationFailed(c, h.validator.Login(req)) {
		return
	}

	res, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: msgInvalidLogin})
			return
		}
		internalError(c, h.log, "Erro ao realizar login", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
