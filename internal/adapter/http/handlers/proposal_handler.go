package handlers

import (
	"context"
	"ebd_gestao/internal/adapter/http/dto/request"
	"ebd_gestao/internal/adapter/http/dto/response"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/pkg"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidProposalPayload = pkg.NewDomainErrorSimple("INVALID_PROPOSAL_INPUT", "Invalid proposal payload", http.StatusBadRequest)
	errInvalidProposalStatus  = pkg.NewDomainErrorSimple("INVALID_PROPOSAL_STATUS", "Invalid proposal status filter", http.StatusBadRequest)
)

// ProposalHandler handles the back-office and public proposal routes.
type ProposalHandler struct {
	usecase       usecase.IProposalUseCase
	publicBaseURL string
}

func NewProposalHandler(uc usecase.IProposalUseCase, publicBaseURL string) *ProposalHandler {
	return &ProposalHandler{usecase: uc, publicBaseURL: publicBaseURL}
}

// CreateProposal godoc
// @Summary      Create a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        payload  body      request.ProposalRequest  true  "Proposal"
// @Success      201      {object}  response.ProposalResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /proposals [post]
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	in, ok := bindProposalInput(c)
	if !ok {
		return
	}

	res, err := h.usecase.Create(c.Request.Context(), actorFromRequest(c), in)
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProposalWithWarning(res.Proposal, res.Warning, h.publicBaseURL))
}

// EditProposal godoc
// @Summary      Edit a pending proposal
// @Description  Replaces the content and rotates the public token.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Proposal ID"
// @Param        payload  body      request.ProposalRequest  true  "Proposal"
// @Success      200      {object}  response.ProposalResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /proposals/{id} [put]
func (h *ProposalHandler) EditProposal(c *gin.Context) {
	in, ok := bindProposalInput(c)
	if !ok {
		return
	}

	res, err := h.usecase.Edit(c.Request.Context(), actorFromRequest(c), c.Param("id"), in)
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposalWithWarning(res.Proposal, res.Warning, h.publicBaseURL))
}

// GetProposal godoc
// @Summary      Get a proposal
// @Tags         proposals
// @Produce      json
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  response.ProposalResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /proposals/{id} [get]
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	p, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p, h.publicBaseURL))
}

// ListProposals godoc
// @Summary      List proposals
// @Tags         proposals
// @Produce      json
// @Param        seller_id  query     string  false  "Seller ID"
// @Param        status     query     string  false  "Status"
// @Success      200        {array}   response.ProposalResponse
// @Router       /proposals [get]
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	filter := entities.ProposalFilter{SellerID: strings.TrimSpace(c.Query("seller_id"))}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		filter.Status = entities.ProposalStatus(strings.ToUpper(raw))
		if !filter.Status.Valid() {
			c.JSON(errInvalidProposalStatus.HTTPStatus, errInvalidProposalStatus.ToHTTPError())
			return
		}
	}

	ps, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposals(ps, h.publicBaseURL))
}

// DeleteProposal godoc
// @Summary      Delete a proposal
// @Tags         proposals
// @Param        id   path  string  true  "Proposal ID"
// @Success      204
// @Failure      403  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /proposals/{id} [delete]
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), actorFromRequest(c), c.Param("id")); err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

// GeneratePayment godoc
// @Summary      Generate the payment of an accepted proposal
// @Description  Clients allowed to invoice go to financial approval; the others get an ERP order and a payment link.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Proposal ID"
// @Param        payload  body      request.GeneratePaymentRequest  true  "Payment mode"
// @Success      200      {object}  response.ProposalResponse
// @Failure      502      {object}  pkg.HTTPError
// @Router       /proposals/{id}/payment [post]
func (h *ProposalHandler) GeneratePayment(c *gin.Context) {
	var payload request.GeneratePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.GeneratePayment(c.Request.Context(), actorFromRequest(c), c.Param("id"), payload.ResolveMode())
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposalWithWarning(res.Proposal, res.Warning, h.publicBaseURL))
}

// ApproveFinancial godoc
// @Summary      Approve invoicing of a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id       path      string                            true   "Proposal ID"
// @Param        payload  body      request.FinancialApprovalRequest  false  "Invoicing term override"
// @Success      200      {object}  response.ProposalResponse
// @Failure      403      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /proposals/{id}/financial-approval [post]
func (h *ProposalHandler) ApproveFinancial(c *gin.Context) {
	var payload request.FinancialApprovalRequest
	if !bindOptionalJSON(c, &payload) {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	p, err := h.usecase.ApproveFinancial(c.Request.Context(), actorFromRequest(c), c.Param("id"), payload.InvoicingTerm)
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p, h.publicBaseURL))
}

// RejectFinancial godoc
// @Summary      Reject invoicing of a proposal
// @Tags         proposals
// @Produce      json
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  response.ProposalResponse
// @Router       /proposals/{id}/financial-rejection [post]
func (h *ProposalHandler) RejectFinancial(c *gin.Context) {
	h.transitionByID(c, h.usecase.RejectFinancial)
}

// ReturnToPending godoc
// @Summary      Return a proposal to pending
// @Description  Clears the acceptance and sends a new link to the client.
// @Tags         proposals
// @Produce      json
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  response.ProposalResponse
// @Router       /proposals/{id}/return [post]
func (h *ProposalHandler) ReturnToPending(c *gin.Context) {
	h.transitionByID(c, h.usecase.ReturnToPending)
}

// CancelProposal godoc
// @Summary      Cancel a proposal
// @Tags         proposals
// @Produce      json
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {object}  response.ProposalResponse
// @Router       /proposals/{id}/cancel [post]
func (h *ProposalHandler) CancelProposal(c *gin.Context) {
	h.transitionByID(c, h.usecase.Cancel)
}

func (h *ProposalHandler) transitionByID(
	c *gin.Context,
	apply func(ctx context.Context, actor entities.Actor, id string) (entities.Proposal, error),
) {
	p, err := apply(c.Request.Context(), actorFromRequest(c), c.Param("id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p, h.publicBaseURL))
}

// GetPublicProposal godoc
// @Summary      Open a proposal through its public link
// @Tags         public
// @Produce      json
// @Param        token  path      string  true  "Public token"
// @Success      200    {object}  response.PublicProposalResponse
// @Failure      404    {object}  pkg.HTTPError
// @Router       /public/proposals/{token} [get]
func (h *ProposalHandler) GetPublicProposal(c *gin.Context) {
	p, err := h.usecase.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPublicProposal(p))
}

// AcceptPublicProposal godoc
// @Summary      Accept a proposal through its public link
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        token    path      string                         true   "Public token"
// @Param        payload  body      request.AcceptProposalRequest  false  "Invoicing term"
// @Success      200      {object}  response.PublicProposalResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /public/proposals/{token}/accept [post]
func (h *ProposalHandler) AcceptPublicProposal(c *gin.Context) {
	var payload request.AcceptProposalRequest
	if !bindOptionalJSON(c, &payload) {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	p, err := h.usecase.Accept(c.Request.Context(), c.Param("token"), payload.InvoicingTerm)
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPublicProposal(p))
}

func bindProposalInput(c *gin.Context) (usecase.ProposalInput, bool) {
	var payload request.ProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return usecase.ProposalInput{}, false
	}
	in, err := payload.ToInput()
	if err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return usecase.ProposalInput{}, false
	}
	return in, true
}

// bindOptionalJSON accepts an empty body; a non-empty body must be valid JSON.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	err := c.ShouldBindJSON(dst)
	return err == nil || errors.Is(err, io.EOF)
}

func mapProposalError(err error) *pkg.AppError {
	var rce *usecase.RemoteCallError
	var te *entities.TransitionError
	switch {
	case errors.As(err, &rce):
		return pkg.NewDomainError("REMOTE_CALL_FAILED", rce.Message, err, http.StatusBadGateway)
	case errors.As(err, &te):
		return pkg.NewDomainError("INVALID_STATUS_TRANSITION", "Action not allowed for the current proposal status", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidProposalID), errors.Is(err, usecase.ErrInvalidProposalToken):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProposalInput), errors.Is(err, usecase.ErrInvalidManualShipping):
		return pkg.NewDomainErrorSimple("INVALID_PROPOSAL_INPUT", "Invalid proposal payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDiscount):
		return pkg.NewDomainErrorSimple("INVALID_DISCOUNT", "Discount must be between 0 and 100", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidInvoicingTerm):
		return pkg.NewDomainErrorSimple("INVALID_INVOICING_TERM", "Invoicing term must be 30, 60 or 90 days", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentMode):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_MODE", "Payment mode must be PIX, CARTAO or BOLETO", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrShippingOptionUnavailable):
		return pkg.NewDomainErrorSimple("SHIPPING_OPTION_UNAVAILABLE", "Shipping option unavailable for this destination", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed for this role", http.StatusForbidden)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSellerNotFound):
		return pkg.NewDomainErrorSimple("SELLER_NOT_FOUND", "Seller not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotEditable):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_EDITABLE", "Proposal can only be edited while pending", http.StatusConflict)
	case errors.Is(err, usecase.ErrProposalNotDeletable):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_DELETABLE", "Invoiced or paid proposals cannot be deleted", http.StatusConflict)
	case errors.Is(err, usecase.ErrProposalStatusChanged):
		return pkg.NewDomainErrorSimple("PROPOSAL_STATUS_CHANGED", "Proposal was changed by another request", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
