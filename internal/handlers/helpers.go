package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cadastro/internal/middleware"
	"cadastro/internal/models"
)

const (
	msgInvalidBody     = "Corpo da requisição inválido"
	msgValidation      = "Erro de validação"
	msgClientNotFound  = "Cliente não encontrado"
	msgDuplicateEmail  = "Email já cadastrado"
	msgInvalidLogin    = "Credenciais inválidas"
	msgCEPInvalid      = "CEP inválido"
	msgCEPNotFound     = "CEP não encontrado"
	msgCEPLookupFailed = "Erro ao buscar CEP. Tente novamente."
)

// bindJSON decodes the body into dst and answers 400 when it cannot.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
		return false
	}
	return true
}

// validationFailed answers 400 with the per-field messages when details is
// not empty and reports whether it did.
func validationFailed(c *gin.Context, details []models.FieldError) bool {
	if len(details) == 0 {
		return false
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgValidation, Details: details})
	return true
}

// internalError logs err with the request id and answers 500 with msg.
func internalError(c *gin.Context, log *logrus.Logger, msg string, err error) {
	log.WithError(err).WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"path":       c.Request.URL.Path,
	}).Error(msg)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msg})
}

// clientID parses the :id path parameter. Anything that is not a UUID cannot
// name a stored client, so it is answered as not found.
func clientID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgClientNotFound})
		return uuid.Nil, false
	}
	return id, true
}
