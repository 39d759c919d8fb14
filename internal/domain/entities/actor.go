package entities

// Role is the back-office role of the operator performing an action.
type Role string

const (
	RoleVendedor   Role = "vendedor"
	RoleGerente    Role = "gerente"
	RoleFinanceiro Role = "financeiro"
	RoleAdmin      Role = "admin"
)

// Capability is an action gated by role.
type Capability string

const (
	CapabilityManualShipping    Capability = "manual_shipping"
	CapabilityFinancialApproval Capability = "financial_approval"
	CapabilityDeleteProposal    Capability = "delete_proposal"
	CapabilityApproveCommission Capability = "approve_commission"
)

var roleCapabilities = map[Role][]Capability{
	RoleVendedor:   {CapabilityManualShipping},
	RoleGerente:    {CapabilityManualShipping, CapabilityDeleteProposal, CapabilityApproveCommission},
	RoleFinanceiro: {CapabilityFinancialApproval, CapabilityApproveCommission},
	RoleAdmin:      {CapabilityManualShipping, CapabilityFinancialApproval, CapabilityDeleteProposal, CapabilityApproveCommission},
}

// Actor is who triggers an operation.
type Actor struct {
	ID   string
	Role Role
}

// Can reports whether the actor's role grants c.
func (a Actor) Can(c Capability) bool {
	for _, granted := range roleCapabilities[a.Role] {
		if granted == c {
			return true
		}
	}
	return false
}
