package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cadastro/internal/address"
	"cadastro/internal/models"
	"cadastro/internal/services"
)

// CEPResolver resolves a postal code to its address.
type CEPResolver interface {
	Lookup(ctx context.Context, cep string) (address.Data, error)
}

type AddressHandler struct {
	cep CEPResolver
	log *logrus.Logger
}

func NewAddressHandler(cep CEPResolver, log *logrus.Logger) *AddressHandler {
	return &AddressHandler{cep: cep, log: log}
}

// @Summary      Monta o endereço em texto
// @Description  Codifica os campos do endereço no formato armazenado
// @Tags         Address
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        address  body      address.Data  true  "Campos do endereço"
// @Success      200      {object}  models.FormatAddressResponse
// @Failure      400      {object}  models.ErrorResponse
// @Failure      401      {object}  models.ErrorResponse
// @Router       /address/format [post]
func (h *AddressHandler) Format(c *gin.Context) {
	var data address.Data
	if !bindJSON(c, &data) {
		return
	}
	if !address.IsValid(data) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Informe ao menos o logradouro ou o CEP"})
		return
	}
	encoded := address.Format(data)
	c.JSON(http.StatusOK, models.FormatAddressResponse{
		Address: encoded,
		Display: address.FormatForDisplay(encoded),
	})
}

// @Summary      Decompõe um endereço em campos
// @Tags         Address
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        address  body      models.ParseAddressRequest  true  "Endereço em texto"
// @Success      200      {object}  models.ParseAddressResponse
// @Failure      400      {object}  models.ErrorResponse
// @Failure      401      {object}  models.ErrorResponse
// @Router       /address/parse [post]
func (h *AddressHandler) Parse(c *gin.Context) {
	var req models.ParseAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Endereço é obrigatório"})
		return
	}
	data := address.Parse(req.Address)
	c.JSON(http.StatusOK, models.ParseAddressResponse{
		Data:    data,
		Display: address.FormatForDisplay(req.Address),
		Valid:   address.IsValid(data),
	})
}

// @Summary      Busca endereço pelo CEP
// @Description  Consulta o ViaCEP, com cache
// @Tags         Address
// @Security     BearerAuth
// @Produce      json
// @Param        cep  path      string  true  "CEP (8 dígitos, com ou sem hífen)"
// @Success      200  {object}  address.Data
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      502  {object}  models.ErrorResponse
// @Router       /cep/{cep} [get]
func (h *AddressHandler) LookupCEP(c *gin.Context) {
	data, err := h.cep.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCEP):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgCEPInvalid})
		case errors.Is(err, services.ErrCEPNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgCEPNotFound})
		case errors.Is(err, services.ErrCEPLookupFailed):
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: msgCEPLookupFailed})
		default:
			internalError(c, h.log, msgCEPLookupFailed, err)
		}
		return
	}
	c.JSON(http.StatusOK, data)
}
