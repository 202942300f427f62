// Package services – PointService
//
// PointService manages point claims and the append-only point ledger. Every
// ledger row applies its amount to the user's balance and snapshots the
// result in the same transaction.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/repo"
)

// PointService provides claim and ledger operations.
type PointService struct {
	DB *gorm.DB

	now func() time.Time
}

// NewPointService constructs a PointService.
func NewPointService(db *gorm.DB) *PointService {
	return &PointService{DB: db, now: time.Now}
}

// CreateClaim files a pending claim for the actor.
func (s *PointService) CreateClaim(ctx context.Context, actor Actor, amount int, reason string, requestID *uint) (*domain.PointClaim, error) {
	if amount <= 0 {
		return nil, invalid(CodeInvalidAmount, map[string]any{"amount": amount}, "amount must be positive")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid(CodeInvalidInput, nil, "reason is required")
	}
	if requestID != nil && *requestID == 0 {
		requestID = nil
	}
	if requestID != nil {
		ok, err := repo.EntityExists[domain.Request](ctx, s.DB, *requestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRequestNotFound
		}
	}
	c := &domain.PointClaim{
		UserID:    actor.ID,
		RequestID: requestID,
		Amount:    amount,
		Reason:    reason,
		Status:    domain.ClaimPending,
	}
	if err := repo.CreatePointClaim(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListClaims returns claims. Non-admins only see their own.
func (s *PointService) ListClaims(ctx context.Context, actor Actor, userID uint, status string) ([]domain.PointClaim, error) {
	if !actor.IsAdmin() {
		userID = actor.ID
	}
	return repo.ListPointClaims(ctx, s.DB, userID, status)
}

// Review approves or rejects a pending claim. Approval credits the claim
// amount to the user through a ledger row.
func (s *PointService) Review(ctx context.Context, actor Actor, id uint, approve bool, note string) (*domain.PointClaim, error) {
	tr := otel.Tracer("services/PointService")
	ctx, span := tr.Start(ctx, "Review",
		trace.WithAttributes(attribute.Int64("claim.id", int64(id)), attribute.Bool("approve", approve)),
	)
	defer span.End()

	status := domain.ClaimRejected
	if approve {
		status = domain.ClaimApproved
	}
	now := s.now().UTC()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim, err := repo.GetPointClaim(ctx, tx, id)
		if err != nil {
			return notFound(err, ErrClaimNotFound)
		}
		ok, err := repo.ReviewPointClaim(ctx, tx, id, status, actor.ID, strings.TrimSpace(note), now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrClaimAlreadyReviewed
		}
		if !approve {
			return nil
		}
		_, err = s.apply(ctx, tx, actor, claim.UserID, claim.Amount,
			fmt.Sprintf("claim #%d: %s", claim.ID, claim.Reason), &claim.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	c, err := repo.GetPointClaim(ctx, s.DB, id)
	return c, notFound(err, ErrClaimNotFound)
}

// Award writes a direct ledger entry for userID. Amount may be negative.
func (s *PointService) Award(ctx context.Context, actor Actor, userID uint, amount int, reason string) (*domain.PointTransaction, error) {
	if amount == 0 {
		return nil, invalid(CodeInvalidAmount, map[string]any{"amount": amount}, "amount must not be zero")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid(CodeInvalidInput, nil, "reason is required")
	}
	var out *domain.PointTransaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.apply(ctx, tx, actor, userID, amount, reason, nil)
		out = t
		return err
	})
	return out, err
}

// apply credits amount to userID and appends the matching ledger row.
func (s *PointService) apply(ctx context.Context, tx *gorm.DB, actor Actor, userID uint, amount int, reason string, claimID *uint) (*domain.PointTransaction, error) {
	balance, err := repo.AddUserPoints(ctx, tx, userID, amount)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	by := actor.ID
	t := &domain.PointTransaction{
		UserID:       userID,
		Amount:       amount,
		Reason:       reason,
		BalanceAfter: balance,
		CreatedBy:    &by,
		PointClaimID: claimID,
	}
	if err := repo.CreatePointTransaction(ctx, tx, t); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrClaimAlreadyReviewed
		}
		return nil, err
	}
	return t, nil
}

// ListTransactions returns ledger rows. Non-admins only see their own.
func (s *PointService) ListTransactions(ctx context.Context, actor Actor, userID uint) ([]domain.PointTransaction, error) {
	if !actor.IsAdmin() {
		userID = actor.ID
	}
	return repo.ListPointTransactions(ctx, s.DB, userID)
}
