package request

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ebd_gestao/internal/domain/entities"
)

func TestProposalRequest_ToInput(t *testing.T) {
	r := ProposalRequest{
		Client:   ProposalClientRequest{ID: " cli-1 ", Name: " Igreja Central ", CEP: "01310-100"},
		SellerID: " seller-1 ",
		Items: []ProposalItemRequest{
			{VariantID: "v1", Title: " Revista Adultos ", Category: " base ", Quantity: 2, UnitPrice: 25.5},
		},
		DiscountPercent: 10,
		Shipping:        ShippingSelectionRequest{Method: " PAC "},
	}

	in, err := r.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.SellerID != "seller-1" || in.Client.ID != "cli-1" || in.Client.Name != "Igreja Central" {
		t.Fatalf("unexpected trimmed fields: %+v", in)
	}
	if len(in.Items) != 1 || in.Items[0].Category != "BASE" || in.Items[0].Title != "Revista Adultos" {
		t.Fatalf("unexpected items: %+v", in.Items)
	}
	if in.Shipping.Method != entities.ShippingMethodStandard || in.Shipping.Manual != nil {
		t.Fatalf("unexpected shipping: %+v", in.Shipping)
	}
}

func TestProposalRequest_ToInputManualShipping(t *testing.T) {
	r := ProposalRequest{
		SellerID: "seller-1",
		Items:    []ProposalItemRequest{{VariantID: "v1", Title: "Kit", Quantity: 1, UnitPrice: 10}},
		Shipping: ShippingSelectionRequest{Method: "pac", Manual: &ManualShippingRequest{Carrier: " Jadlog ", Cost: 18}},
	}

	in, err := r.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Shipping.Method != entities.ShippingMethodManual {
		t.Fatalf("expected manual method, got %q", in.Shipping.Method)
	}
	if in.Shipping.Manual == nil || in.Shipping.Manual.Carrier != "Jadlog" || in.Shipping.Manual.Cost != 18 {
		t.Fatalf("unexpected manual shipping: %+v", in.Shipping.Manual)
	}
}

func TestProposalRequest_ToInputInvalidItems(t *testing.T) {
	cases := map[string][]ProposalItemRequest{
		"empty":          nil,
		"zero quantity":  {{VariantID: "v1", Title: "Kit", Quantity: 0, UnitPrice: 10}},
		"negative price": {{VariantID: "v1", Title: "Kit", Quantity: 1, UnitPrice: -1}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ProposalRequest{SellerID: "s", Items: items}.ToInput()
			if !errors.Is(err, ErrInvalidProposalItems) {
				t.Fatalf("expected ErrInvalidProposalItems, got %v", err)
			}
		})
	}
}

func TestGeneratePaymentRequest_ResolveMode(t *testing.T) {
	if got := (GeneratePaymentRequest{Mode: " pix "}).ResolveMode(); got != entities.PaymentModePix {
		t.Fatalf("expected PIX, got %q", got)
	}
}

func TestPhaseCompleteRequest_ResolveBirthday(t *testing.T) {
	d, err := PhaseCompleteRequest{}.ResolveBirthday()
	if err != nil || d != nil {
		t.Fatalf("expected nil date, got %v %v", d, err)
	}

	d, err = PhaseCompleteRequest{BirthdayDate: "1985-03-02"}.ResolveBirthday()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(time.Date(1985, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", d)
	}

	if _, err := (PhaseCompleteRequest{BirthdayDate: "02/03/1985"}).ResolveBirthday(); !errors.Is(err, ErrInvalidBirthdayDate) {
		t.Fatalf("expected ErrInvalidBirthdayDate, got %v", err)
	}
}

func TestShippingQuoteRequest_CartItems(t *testing.T) {
	r := ShippingQuoteRequest{Items: []ShippingQuoteItemRequest{{Quantity: 2}, {Quantity: 0}, {Quantity: -1}, {Quantity: 1}}}
	items := r.CartItems()
	if len(items) != 2 || items[0].Quantity != 2 || items[1].Quantity != 1 {
		t.Fatalf("unexpected cart items: %+v", items)
	}
}

func TestPaymentNotificationRequest(t *testing.T) {
	t.Run("numeric body id", func(t *testing.T) {
		var r PaymentNotificationRequest
		if err := json.Unmarshal([]byte(`{"type":"payment","action":"payment.updated","data":{"id":1234567}}`), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := r.ResolvePaymentID(NotificationQuery{}); got != "1234567" {
			t.Fatalf("expected 1234567, got %q", got)
		}
		if !r.IsPayment(NotificationQuery{}) {
			t.Fatalf("expected payment notification")
		}
	})

	t.Run("string body id", func(t *testing.T) {
		var r PaymentNotificationRequest
		if err := json.Unmarshal([]byte(`{"type":"payment","data":{"id":" 987 "}}`), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := r.ResolvePaymentID(NotificationQuery{}); got != "987" {
			t.Fatalf("expected 987, got %q", got)
		}
	})

	t.Run("query fallbacks", func(t *testing.T) {
		r := PaymentNotificationRequest{}
		if got := r.ResolvePaymentID(NotificationQuery{DataID: "11", ID: "22"}); got != "11" {
			t.Fatalf("expected data.id, got %q", got)
		}
		if got := r.ResolvePaymentID(NotificationQuery{ID: "22"}); got != "22" {
			t.Fatalf("expected legacy id, got %q", got)
		}
		if !r.IsPayment(NotificationQuery{Topic: "payment"}) {
			t.Fatalf("expected legacy topic to be a payment")
		}
	})

	t.Run("other topics are ignored", func(t *testing.T) {
		r := PaymentNotificationRequest{Type: "merchant_order"}
		if r.IsPayment(NotificationQuery{}) {
			t.Fatalf("expected merchant_order to be ignored")
		}
	})
}
