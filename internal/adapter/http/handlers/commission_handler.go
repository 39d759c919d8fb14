package handlers

import (
	"ebd_gestao/internal/adapter/http/dto/request"
	"ebd_gestao/internal/adapter/http/dto/response"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/pkg"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidCommissionPayload = pkg.NewDomainErrorSimple("INVALID_COMMISSION_INPUT", "Invalid commission payload", http.StatusBadRequest)
)

type CommissionHandler struct {
	usecase usecase.ICommissionUseCase
}

func NewCommissionHandler(uc usecase.ICommissionUseCase) *CommissionHandler {
	return &CommissionHandler{usecase: uc}
}

// ApproveCommission godoc
// @Summary      Approve the commission of a paid order
// @Tags         commissions
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Success      201       {object}  entities.CommissionParcela
// @Failure      409       {object}  pkg.HTTPError
// @Router       /commissions/orders/{order_id}/approve [post]
func (h *CommissionHandler) ApproveCommission(c *gin.Context) {
	parcela, err := h.usecase.Approve(c.Request.Context(), actorFromRequest(c), c.Param("order_id"))
	if err != nil {
		appErr := mapCommissionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, parcela)
}

// ApproveCommissionBatch godoc
// @Summary      Approve commissions of several orders
// @Description  Each order is settled independently; already approved orders are skipped.
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CommissionBatchRequest  true  "Order IDs"
// @Success      200      {object}  response.CommissionBatchResponse
// @Router       /commissions/approve-batch [post]
func (h *CommissionHandler) ApproveCommissionBatch(c *gin.Context) {
	var payload request.CommissionBatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload.OrderIDs) == 0 {
		c.JSON(errInvalidCommissionPayload.HTTPStatus, errInvalidCommissionPayload.ToHTTPError())
		return
	}

	results, err := h.usecase.ApproveBatch(c.Request.Context(), actorFromRequest(c), payload.OrderIDs)
	if err != nil {
		appErr := mapCommissionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCommissionBatch(results))
}

func mapCommissionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed for this role", http.StatusForbidden)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotPayable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_PAID", "Order payment is not confirmed", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderWithoutSeller):
		return pkg.NewDomainErrorSimple("ORDER_WITHOUT_SELLER", "Order has no seller", http.StatusConflict)
	case errors.Is(err, usecase.ErrCommissionAlreadySettled):
		return pkg.NewDomainErrorSimple("COMMISSION_ALREADY_APPROVED", "Commission already approved for this order", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
