package request

import (
	"bytes"
	"encoding/json"
	"strings"
)

const notificationTypePayment = "payment"

// NotificationID accepts the id as a JSON string or number.
type NotificationID string

func (n *NotificationID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NotificationID(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NotificationID(num.String())
	return nil
}

// PaymentNotificationRequest is the Mercado Pago webhook body.
//
// Mercado Pago also sends the ids in the query string (`data.id` and `type`, or
// the legacy `id` and `topic`), sometimes with an empty body.
type PaymentNotificationRequest struct {
	Type   string `json:"type"`
	Topic  string `json:"topic"`
	Action string `json:"action"`
	Data   struct {
		ID NotificationID `json:"id"`
	} `json:"data"`
}

// NotificationQuery carries the query string fields of a webhook call.
type NotificationQuery struct {
	DataID string
	ID     string
	Type   string
	Topic  string
}

// IsPayment reports whether the notification is about a payment. Calls that
// carry no type at all are treated as payments.
func (r PaymentNotificationRequest) IsPayment(q NotificationQuery) bool {
	for _, t := range []string{r.Type, r.Topic, q.Type, q.Topic} {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			return t == notificationTypePayment
		}
	}
	return true
}

// ResolvePaymentID prefers the body id, then `data.id`, then the legacy `id`.
func (r PaymentNotificationRequest) ResolvePaymentID(q NotificationQuery) string {
	for _, v := range []string{string(r.Data.ID), q.DataID, q.ID} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
