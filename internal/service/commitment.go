package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fluxur/backend/internal/db"
	"github.com/fluxur/backend/internal/model"
)

type CommitmentStore interface {
	UpsertCommitment(ctx context.Context, c model.Commitment) error
	GetCommitment(ctx context.Context, mint string) (*model.Commitment, error)
}

type CommitmentService struct {
	repo CommitmentStore
}

func NewCommitmentService(repo CommitmentStore) *CommitmentService {
	return &CommitmentService{repo: repo}
}

func (s *CommitmentService) Get(ctx context.Context, mint string) (*model.Commitment, error) {
	mint = strings.TrimSpace(mint)
	if mint == "" {
		return nil, &ValidationError{Detail: "mint required"}
	}
	c, err := s.repo.GetCommitment(ctx, mint)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, &UserError{Kind: ErrNotFound, Message: "Commitment not found"}
		}
		return nil, fmt.Errorf("get commitment: %w", err)
	}
	return c, nil
}
