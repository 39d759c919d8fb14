package entities

import "time"

const ChangeEntityProposal = "proposal"

// ChangeEvent is pushed to subscribers after a successful write.
type ChangeEvent struct {
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Status     string    `json:"status,omitempty"`
	PaymentURL string    `json:"payment_url,omitempty"`
	At         time.Time `json:"at"`
}
