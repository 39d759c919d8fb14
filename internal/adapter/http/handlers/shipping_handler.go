package handlers

import (
	"ebd_gestao/internal/adapter/http/dto/request"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/pkg"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidShippingPayload = pkg.NewDomainErrorSimple("INVALID_SHIPPING_INPUT", "Invalid shipping payload", http.StatusBadRequest)
)

type ShippingHandler struct {
	usecase usecase.IShippingUseCase
}

func NewShippingHandler(uc usecase.IShippingUseCase) *ShippingHandler {
	return &ShippingHandler{usecase: uc}
}

// QuoteShipping godoc
// @Summary      Resolve shipping options
// @Description  Carrier failures fall back to the fixed table and set a warning.
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        payload  body      request.ShippingQuoteRequest  true  "Destination and cart"
// @Success      200      {object}  entities.ShippingQuote
// @Failure      400      {object}  pkg.HTTPError
// @Router       /shipping/quote [post]
func (h *ShippingHandler) QuoteShipping(c *gin.Context) {
	var payload request.ShippingQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Subtotal < 0 {
		c.JSON(errInvalidShippingPayload.HTTPStatus, errInvalidShippingPayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Resolve(c.Request.Context(), payload.CEP, payload.CartItems(), payload.Subtotal)
	if err != nil {
		appErr := mapShippingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, quote)
}

// ManualShipping godoc
// @Summary      Validate a manual shipping override
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        payload  body      request.ManualShippingRequest  true  "Carrier and cost"
// @Success      200      {object}  entities.ShippingQuote
// @Failure      403      {object}  pkg.HTTPError
// @Router       /shipping/manual [post]
func (h *ShippingHandler) ManualShipping(c *gin.Context) {
	var payload request.ManualShippingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidShippingPayload.HTTPStatus, errInvalidShippingPayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Manual(actorFromRequest(c), payload.ToManual())
	if err != nil {
		appErr := mapShippingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, quote)
}

func mapShippingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidManualShipping):
		return pkg.NewDomainErrorSimple("INVALID_MANUAL_SHIPPING", "Manual shipping requires carrier and a non-negative cost", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed for this role", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
