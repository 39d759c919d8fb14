package interfaces

import (
	"context"
	"ebd_gestao/internal/domain/entities"
)

//go:generate mockgen -source=proposal_repository_interface.go -destination=mocks/mock_proposal_repository.go -package=mock_interfaces

// IProposalRepository abstracts persistence for Proposal.
//
// Lookups return a zero Proposal (empty ID) when nothing matches.
// UpdateContent is last-write-wins but only while the proposal is still pending;
// UpdateStatus writes only when the stored status equals change.From and reports
// ErrConditionFailed otherwise.
type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	GetByToken(ctx context.Context, token string) (entities.Proposal, error)
	List(ctx context.Context, filter entities.ProposalFilter) ([]entities.Proposal, error)
	UpdateContent(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	UpdateStatus(ctx context.Context, id string, change entities.ProposalStatusChange) (entities.Proposal, error)
	Delete(ctx context.Context, id string) error
}
