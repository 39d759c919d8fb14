package entities

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PaymentStatus is the canonical payment status. Raw upstream strings
// (ERP, Mercado Pago, online store, manual imports) must go through
// CanonicalPaymentStatus before any comparison.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRefused  PaymentStatus = "refused"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusUnknown  PaymentStatus = "unknown"
)

var paymentStatusAliases = map[string]PaymentStatus{
	"paid":       PaymentStatusPaid,
	"pago":       PaymentStatusPaid,
	"paga":       PaymentStatusPaid,
	"aprovado":   PaymentStatusPaid,
	"aprovada":   PaymentStatusPaid,
	"approved":   PaymentStatusPaid,
	"faturado":   PaymentStatusPaid,
	"accredited": PaymentStatusPaid,
	"confirmado": PaymentStatusPaid,
	"confirmed":  PaymentStatusPaid,

	"pending":              PaymentStatusPending,
	"pendente":             PaymentStatusPending,
	"aguardando":           PaymentStatusPending,
	"aguardando_pagamento": PaymentStatusPending,
	"in_process":           PaymentStatusPending,
	"in_mediation":         PaymentStatusPending,
	"authorized":           PaymentStatusPending,
	"em_analise":           PaymentStatusPending,

	"rejected":  PaymentStatusRefused,
	"recusado":  PaymentStatusRefused,
	"reprovado": PaymentStatusRefused,
	"negado":    PaymentStatusRefused,
	"cancelled": PaymentStatusRefused,
	"canceled":  PaymentStatusRefused,
	"cancelado": PaymentStatusRefused,
	"expired":   PaymentStatusRefused,
	"expirado":  PaymentStatusRefused,

	"refunded":     PaymentStatusRefunded,
	"reembolsado":  PaymentStatusRefunded,
	"estornado":    PaymentStatusRefunded,
	"charged_back": PaymentStatusRefunded,
	"chargeback":   PaymentStatusRefunded,
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalPaymentStatus maps a raw payment status to the closed enum.
// Unrecognized values map to PaymentStatusUnknown, which is never payable.
func CanonicalPaymentStatus(raw string) PaymentStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return PaymentStatusUnknown
	}
	if stripped, _, err := transform.String(accentStripper, key); err == nil {
		key = stripped
	}
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if st, ok := paymentStatusAliases[key]; ok {
		return st
	}
	return PaymentStatusUnknown
}

// Paid reports whether s allows settlement.
func (s PaymentStatus) Paid() bool {
	return s == PaymentStatusPaid
}
