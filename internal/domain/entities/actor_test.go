package entities

import "testing"

func TestActor_Can(t *testing.T) {
	tests := []struct {
		role       Role
		capability Capability
		want       bool
	}{
		{RoleVendedor, CapabilityManualShipping, true},
		{RoleVendedor, CapabilityDeleteProposal, false},
		{RoleVendedor, CapabilityFinancialApproval, false},
		{RoleGerente, CapabilityDeleteProposal, true},
		{RoleGerente, CapabilityFinancialApproval, false},
		{RoleFinanceiro, CapabilityFinancialApproval, true},
		{RoleFinanceiro, CapabilityManualShipping, false},
		{RoleAdmin, CapabilityApproveCommission, true},
		{Role(""), CapabilityManualShipping, false},
	}
	for _, tt := range tests {
		if got := (Actor{ID: "u1", Role: tt.role}).Can(tt.capability); got != tt.want {
			t.Fatalf("%q can %s: expected %v, got %v", tt.role, tt.capability, tt.want, got)
		}
	}
}

func TestSeller_CommissionPercentOrDefault(t *testing.T) {
	if got := (Seller{}).CommissionPercentOrDefault(); got != DefaultCommissionPercent {
		t.Fatalf("expected default percent, got %v", got)
	}
	pct := 7.5
	if got := (Seller{CommissionPercent: &pct}).CommissionPercentOrDefault(); got != 7.5 {
		t.Fatalf("expected 7.5, got %v", got)
	}
	if ParcelaID("o1", 1) != "o1#1" {
		t.Fatalf("unexpected parcela id %q", ParcelaID("o1", 1))
	}
}
