package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cadastro/internal/address"
	"cadastro/internal/models"
	"cadastro/internal/pdf"
	"cadastro/internal/services"
	"cadastro/internal/utils"
	"cadastro/internal/validation"
)

// ClientManager is the client use-case surface the handler needs.
type ClientManager interface {
	Create(ctx context.Context, in models.ClientInput) (*models.Client, error)
	FindAll(ctx context.Context) ([]models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, in models.ClientInput) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientHandler struct {
	Service   ClientManager
	validator *validation.Validator
	pdfGen    pdf.Generator
	log       *logrus.Logger
	now       func() time.Time
}

func NewClientHandler(service ClientManager, validator *validation.Validator, pdfGen pdf.Generator, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{Service: service, validator: validator, pdfGen: pdfGen, log: log, now: time.Now}
}

// bindClient decodes and validates a create/update body. A blank address is
// filled from addressDetails and an 11-digit phone is masked before validation.
func (h *ClientHandler) bindClient(c *gin.Context) (models.ClientInput, bool) {
	var in models.ClientInput
	if !bindJSON(c, &in) {
		return in, false
	}
	if strings.TrimSpace(in.Address) == "" && in.AddressDetails != nil {
		in.Address = address.Format(*in.AddressDetails)
	}
	in.Phone = utils.FormatPhone(in.Phone)
	if validationFailed(c, h.validator.Client(in)) {
		return in, false
	}
	return in, true
}

// @Summary      Cria um novo cliente
// @Description  Cria um novo cliente. O email deve ser único.
// @Tags         Clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        client  body      models.ClientInput  true  "Dados do cliente"
// @Success      201     {object}  models.Client
// @Failure      400     {object}  models.ErrorResponse
// @Failure      401     {object}  models.ErrorResponse
// @Failure      409     {object}  models.ErrorResponse
// @Failure      500     {object}  models.ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	in, ok := h.bindClient(c)
	if !ok {
		return
	}

	client, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: msgDuplicateEmail})
			return
		}
		internalError(c, h.log, "Erro ao criar cliente", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// @Summary      Lista todos os clientes
// @Description  Retorna todos os clientes, mais recentes primeiro
// @Tags         Clients
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   models.Client
// @Failure      401  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.Service.FindAll(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "Erro ao listar clientes", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// @Summary      Busca um cliente por ID
// @Tags         Clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "ID do cliente (UUID)"
// @Success      200  {object}  models.Client
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	client, err := h.Service.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgClientNotFound})
			return
		}
		internalError(c, h.log, "Erro ao buscar cliente", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary      Atualiza um cliente existente
// @Description  Substitui todos os campos do cliente. O email deve continuar único.
// @Tags         Clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path      string              true  "ID do cliente (UUID)"
// @Param        client  body      models.ClientInput  true  "Dados do cliente"
// @Success      200     {object}  models.Client
// @Failure      400     {object}  models.ErrorResponse
// @Failure      401     {object}  models.ErrorResponse
// @Failure      404     {object}  models.ErrorResponse
// @Failure      409     {object}  models.ErrorResponse
// @Failure      500     {object}  models.ErrorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	in, ok := h.bindClient(c)
	if !ok {
		return
	}

	client, err := h.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgClientNotFound})
		case errors.Is(err, services.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: msgDuplicateEmail})
		default:
			internalError(c, h.log, "Erro ao atualizar cliente", err)
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary      Deleta um cliente
// @Tags         Clients
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do cliente (UUID)"
// @Success      204
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgClientNotFound})
			return
		}
		internalError(c, h.log, "Erro ao deletar cliente", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Exporta a lista de clientes em PDF
// @Tags         Clients
// @Security     BearerAuth
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /clients/export/pdf [get]
func (h *ClientHandler) ExportPDF(c *gin.Context) {
	clients, err := h.Service.FindAll(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "Erro ao listar clientes", err)
		return
	}

	now := h.now()
	var buf bytes.Buffer
	if err := h.pdfGen.Write(&buf, clients, now); err != nil {
		internalError(c, h.log, "Erro ao gerar PDF", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.Filename(now)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
