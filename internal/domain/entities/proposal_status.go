package entities

import "fmt"

// ProposalStatus is the lifecycle of a proposal.
//
//	PROPOSTA_PENDENTE -> PROPOSTA_ACEITA -> AGUARDANDO_APROVACAO_FINANCEIRA -> APROVADA_FATURAMENTO -> FATURADO -> PAGO
//	                                     \-> AGUARDANDO_PAGAMENTO -> PAGO
//
// with REPROVADA_FINANCEIRO, EXPIRADO and CANCELADO as side exits.
type ProposalStatus string

const (
	ProposalStatusPendente                      ProposalStatus = "PROPOSTA_PENDENTE"
	ProposalStatusAceita                        ProposalStatus = "PROPOSTA_ACEITA"
	ProposalStatusAguardandoAprovacaoFinanceira ProposalStatus = "AGUARDANDO_APROVACAO_FINANCEIRA"
	ProposalStatusAguardandoPagamento           ProposalStatus = "AGUARDANDO_PAGAMENTO"
	ProposalStatusAprovadaFaturamento           ProposalStatus = "APROVADA_FATURAMENTO"
	ProposalStatusReprovadaFinanceiro           ProposalStatus = "REPROVADA_FINANCEIRO"
	ProposalStatusFaturado                      ProposalStatus = "FATURADO"
	ProposalStatusPago                          ProposalStatus = "PAGO"
	ProposalStatusExpirado                      ProposalStatus = "EXPIRADO"
	ProposalStatusCancelado                     ProposalStatus = "CANCELADO"
)

// ProposalEvent is an action applied to a proposal.
type ProposalEvent string

const (
	ProposalEventAccept           ProposalEvent = "accept"
	ProposalEventRequestInvoicing ProposalEvent = "request_invoicing"
	ProposalEventGeneratePayment  ProposalEvent = "generate_payment"
	ProposalEventApproveFinancial ProposalEvent = "approve_financial"
	ProposalEventInvoice          ProposalEvent = "invoice"
	ProposalEventRejectFinancial  ProposalEvent = "reject_financial"
	ProposalEventConfirmPayment   ProposalEvent = "confirm_payment"
	ProposalEventExpire           ProposalEvent = "expire"
	ProposalEventCancel           ProposalEvent = "cancel"
	ProposalEventReturnToPending  ProposalEvent = "return_to_pending"
)

var proposalTransitions = map[ProposalStatus]map[ProposalEvent]ProposalStatus{
	ProposalStatusPendente: {
		ProposalEventAccept: ProposalStatusAceita,
		ProposalEventExpire: ProposalStatusExpirado,
		ProposalEventCancel: ProposalStatusCancelado,
	},
	ProposalStatusAceita: {
		ProposalEventRequestInvoicing: ProposalStatusAguardandoAprovacaoFinanceira,
		ProposalEventGeneratePayment:  ProposalStatusAguardandoPagamento,
		ProposalEventReturnToPending:  ProposalStatusPendente,
		ProposalEventExpire:           ProposalStatusExpirado,
		ProposalEventCancel:           ProposalStatusCancelado,
	},
	ProposalStatusAguardandoAprovacaoFinanceira: {
		ProposalEventApproveFinancial: ProposalStatusAprovadaFaturamento,
		ProposalEventRejectFinancial:  ProposalStatusReprovadaFinanceiro,
		ProposalEventReturnToPending:  ProposalStatusPendente,
		ProposalEventCancel:           ProposalStatusCancelado,
	},
	ProposalStatusAprovadaFaturamento: {
		ProposalEventInvoice: ProposalStatusFaturado,
		ProposalEventCancel:  ProposalStatusCancelado,
	},
	ProposalStatusAguardandoPagamento: {
		ProposalEventConfirmPayment: ProposalStatusPago,
		ProposalEventExpire:         ProposalStatusExpirado,
		ProposalEventCancel:         ProposalStatusCancelado,
	},
	ProposalStatusFaturado: {
		ProposalEventConfirmPayment: ProposalStatusPago,
	},
}

// TransitionError is returned when an event is not allowed from a status.
type TransitionError struct {
	From  ProposalStatus
	Event ProposalEvent
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %q not allowed from status %s", e.Event, e.From)
}

// NextProposalStatus is the single transition function of the proposal lifecycle.
func NextProposalStatus(from ProposalStatus, event ProposalEvent) (ProposalStatus, error) {
	if next, ok := proposalTransitions[from][event]; ok {
		return next, nil
	}
	return from, &TransitionError{From: from, Event: event}
}

// Valid reports whether s is a known status.
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPendente, ProposalStatusAceita, ProposalStatusAguardandoAprovacaoFinanceira,
		ProposalStatusAguardandoPagamento, ProposalStatusAprovadaFaturamento, ProposalStatusReprovadaFinanceiro,
		ProposalStatusFaturado, ProposalStatusPago, ProposalStatusExpirado, ProposalStatusCancelado:
		return true
	}
	return false
}

// Terminal reports whether no event can leave s.
func (s ProposalStatus) Terminal() bool {
	return len(proposalTransitions[s]) == 0
}

// Deletable reports whether a proposal in s may be removed. Invoiced or paid
// proposals are kept for the ERP trail.
func (s ProposalStatus) Deletable() bool {
	return s != ProposalStatusFaturado && s != ProposalStatusPago
}

// Editable reports whether the proposal content may still change.
func (s ProposalStatus) Editable() bool {
	return s == ProposalStatusPendente
}

// ExpirableStatuses lists the statuses swept by the expiry job.
func ExpirableStatuses() []ProposalStatus {
	return []ProposalStatus{ProposalStatusPendente, ProposalStatusAceita, ProposalStatusAguardandoPagamento}
}
