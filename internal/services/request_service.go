// Package services – RequestService
//
// RequestService implements the hunting request lifecycle:
//
//   - Create validates the party, resolves every member to a local or
//     externally verified character and persists the request and its party
//     in one transaction.
//   - UpdateStatus writes the new status and, on approval, rejects every other
//     pending request for the same (server, respawn, slot, period). Owners are
//     notified through the Notifier; delivery is best-effort and never fails
//     the call.
//
// The status update is deliberately not transactional and not guarded
// against repeats: approving twice runs the conflict sweep twice.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/notify"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/tibia"
)

// ScopeCreateRequest namespaces Idempotency-Key records of request creation.
const ScopeCreateRequest = "requests.create"

// fallbackPendingStatusID is used when no "pending" status row exists.
const fallbackPendingStatusID = 1

var (
	requestsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "huntschedule_requests_created_total",
		Help: "Hunting requests created.",
	})
	conflictsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "huntschedule_conflicts_rejected_total",
		Help: "Pending requests rejected because a competing request was approved.",
	})
)

func init() {
	prometheus.MustRegister(requestsCreated, conflictsRejected)
}

// Notifier accepts outbound notifications without blocking.
type Notifier interface {
	Enqueue(m notify.Message) bool
}

// PartyEntry references one party member, by id or by name.
type PartyEntry struct {
	CharacterID   uint
	CharacterName string
	RoleInParty   string
	IsLeader      bool
}

// CreateRequestInput carries the fields of POST /requests.
type CreateRequestInput struct {
	ServerID          uint
	RespawnID         uint
	SlotID            uint
	PeriodID          uint
	LeaderCharacterID uint
	Party             []PartyEntry
}

// RequestService provides request operations.
type RequestService struct {
	DB        *gorm.DB
	Validator CharacterValidator
	Notifier  Notifier

	// DefaultLanguage is used for owners without a supported preference.
	DefaultLanguage string
	// IdempotencyTTL bounds how long an Idempotency-Key replays.
	IdempotencyTTL time.Duration

	now func() time.Time
}

// NewRequestService constructs a RequestService. n may be nil.
func NewRequestService(db *gorm.DB, v CharacterValidator, n Notifier) *RequestService {
	return &RequestService{
		DB:              db,
		Validator:       v,
		Notifier:        n,
		DefaultLanguage: "en",
		IdempotencyTTL:  24 * time.Hour,
		now:             time.Now,
	}
}

// Get returns a request with its full graph.
func (s *RequestService) Get(ctx context.Context, id uint) (*domain.Request, error) {
	r, err := repo.GetRequest(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	return r, err
}

// ListPage returns a page of requests matching f and the total count.
func (s *RequestService) ListPage(ctx context.Context, f repo.RequestFilter, page, pageSize int) ([]domain.Request, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total, err := repo.CountRequests(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Request{}, 0, nil
	}
	items, err := repo.ListRequestsPage(ctx, s.DB, f, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Stats returns the count and latest update time of requests matching f.
func (s *RequestService) Stats(ctx context.Context, f repo.RequestFilter) (int64, *time.Time, error) {
	return repo.RequestsStats(ctx, s.DB, f)
}

// Create runs the request creation flow for the actor.
func (s *RequestService) Create(ctx context.Context, actor Actor, in CreateRequestInput) (*domain.Request, error) {
	r, _, err := s.CreateIdempotent(ctx, actor, "", in)
	return r, err
}

// errReplay aborts a creation whose Idempotency-Key was taken concurrently.
var errReplay = errors.New("idempotency key already used")

// CreateIdempotent runs the creation flow once per (actor, key). A repeated
// key returns the request created by the first call and replayed=true. An
// empty key disables replay.
func (s *RequestService) CreateIdempotent(ctx context.Context, actor Actor, key string, in CreateRequestInput) (r *domain.Request, replayed bool, err error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(actor.ID)),
			attribute.Int64("respawn.id", int64(in.RespawnID)),
			attribute.Int("party.size", len(in.Party)),
		),
	)
	defer span.End()

	key = strings.TrimSpace(key)
	if key != "" {
		if r, ok, err := s.replay(ctx, actor, key); ok || err != nil {
			return r, ok, err
		}
	}

	var id uint
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := s.build(ctx, tx, actor, in)
		if err != nil {
			return err
		}
		id = req.ID
		if key == "" {
			return nil
		}
		_, err = repo.CreateIdempotency(ctx, tx, actor.ID, ScopeCreateRequest, key, req.ID, http.StatusCreated, s.IdempotencyTTL)
		if errors.Is(err, repo.ErrDuplicate) {
			return errReplay
		}
		return err
	})
	if errors.Is(err, errReplay) {
		r, ok, err := s.replay(ctx, actor, key)
		if err == nil && !ok {
			err = errReplay
		}
		return r, ok, err
	}
	if err != nil {
		return nil, false, err
	}
	requestsCreated.Inc()
	span.SetAttributes(attribute.Int64("request.id", int64(id)))

	r, err = s.Get(ctx, id)
	return r, false, err
}

// replay returns the request recorded for key, if any.
func (s *RequestService) replay(ctx context.Context, actor Actor, key string) (*domain.Request, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, actor.ID, ScopeCreateRequest, key, s.now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	r, err := s.Get(ctx, rec.ResourceID)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

// build validates in and writes the request and its party through tx.
func (s *RequestService) build(ctx context.Context, tx *gorm.DB, actor Actor, in CreateRequestInput) (*domain.Request, error) {
	if len(in.Party) == 0 {
		return nil, invalid(CodePartyEmpty, nil, "party must have at least one member")
	}
	server, err := repo.GetEntity[domain.Server](ctx, tx, in.ServerID)
	if err != nil {
		return nil, notFound(err, ErrServerNotFound)
	}
	respawn, err := repo.GetEntity[domain.Respawn](ctx, tx, in.RespawnID)
	if err != nil {
		return nil, notFound(err, ErrRespawnNotFound)
	}
	if respawn.ServerID != server.ID {
		return nil, invalid(CodeRespawnServer,
			map[string]any{"respawn": respawn.Name, "server": server.Name},
			"respawn %q does not belong to server %q", respawn.Name, server.Name)
	}
	if _, err := repo.GetEntity[domain.Slot](ctx, tx, in.SlotID); err != nil {
		return nil, notFound(err, ErrSlotNotFound)
	}
	if _, err := repo.GetEntity[domain.SchedulePeriod](ctx, tx, in.PeriodID); err != nil {
		return nil, notFound(err, ErrPeriodNotFound)
	}

	n := len(in.Party)
	if n < respawn.MinPlayers {
		return nil, invalid(CodePartyTooSmall,
			map[string]any{"respawn": respawn.Name, "required": respawn.MinPlayers, "provided": n},
			"respawn %q requires at least %d players, %d provided", respawn.Name, respawn.MinPlayers, n)
	}
	if respawn.MaxPlayers > 0 && n > respawn.MaxPlayers {
		return nil, invalid(CodePartyTooLarge,
			map[string]any{"respawn": respawn.Name, "allowed": respawn.MaxPlayers, "provided": n},
			"respawn %q allows at most %d players, %d provided", respawn.Name, respawn.MaxPlayers, n)
	}

	members := make([]domain.RequestPartyMember, 0, n)
	seen := make(map[uint]bool, n)
	var flagged uint
	for i, e := range in.Party {
		c, err := s.resolve(ctx, tx, server, i, e)
		if err != nil {
			return nil, err
		}
		if seen[c.ID] {
			return nil, invalid(CodeDuplicatePartyMember, map[string]any{"name": c.Name},
				"character %q is listed more than once", c.Name)
		}
		seen[c.ID] = true

		cid, name := c.ID, c.Name
		m := domain.RequestPartyMember{CharacterID: &cid, CharacterName: &name}
		if role := strings.TrimSpace(e.RoleInParty); role != "" {
			m.RoleInParty = &role
		}
		if e.IsLeader && flagged == 0 {
			flagged = c.ID
		}
		members = append(members, m)
	}

	leader := in.LeaderCharacterID
	if leader != 0 {
		if !seen[leader] {
			ok, err := repo.EntityExists[domain.Character](ctx, tx, leader)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrCharacterNotFound
			}
		}
	} else {
		leader = flagged
	}

	statusID, err := repo.StatusIDByName(ctx, tx, domain.StatusPending)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		statusID = fallbackPendingStatusID
	} else if err != nil {
		return nil, err
	}

	req := &domain.Request{
		UserID:    actor.ID,
		ServerID:  server.ID,
		RespawnID: respawn.ID,
		SlotID:    in.SlotID,
		PeriodID:  in.PeriodID,
		StatusID:  statusID,
	}
	if leader != 0 {
		req.LeaderCharacterID = &leader
		for i := range members {
			members[i].IsLeader = *members[i].CharacterID == leader
		}
	}
	if err := repo.CreateRequest(ctx, tx, req); err != nil {
		return nil, err
	}
	if err := repo.CreatePartyMembers(ctx, tx, req.ID, members); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, invalid(CodeDuplicatePartyMember, nil, "a character is listed more than once")
		}
		return nil, err
	}
	return req, nil
}

// resolve maps one party entry to a character row on server, creating an
// externally verified row when the name is only known to the validator.
func (s *RequestService) resolve(ctx context.Context, tx *gorm.DB, server *domain.Server, idx int, e PartyEntry) (*domain.Character, error) {
	if e.CharacterID != 0 {
		c, err := repo.GetCharacter(ctx, tx, e.CharacterID)
		if err != nil {
			return nil, notFound(err, ErrCharacterNotFound)
		}
		if c.ServerID != server.ID {
			return nil, invalid(CodeCharacterServer,
				map[string]any{"name": c.Name, "server": server.Name},
				"character %q is not on server %q", c.Name, server.Name)
		}
		return c, nil
	}

	name := strings.TrimSpace(e.CharacterName)
	if name == "" {
		return nil, invalid(CodeInvalidPartyMember, map[string]any{"index": idx},
			"party member %d needs a character id or name", idx+1)
	}
	c, err := repo.FindCharacterByName(ctx, tx, server.ID, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	info := s.lookup(ctx, name)
	if err := checkExternal(name, server, info); err != nil {
		return nil, err
	}
	verified := s.now().UTC()
	c = &domain.Character{
		ServerID:           server.ID,
		Name:               info.Name,
		Vocation:           info.Vocation,
		Level:              info.Level,
		IsExternal:         true,
		ExternalVerifiedAt: &verified,
	}
	if err := repo.CreateCharacter(ctx, tx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *RequestService) lookup(ctx context.Context, name string) *tibia.CharacterInfo {
	if s.Validator == nil {
		return nil
	}
	return s.Validator.ValidateCharacter(ctx, name)
}

// UpdateStatus sets the request's status and reason. Approval rejects every
// other pending request on the same tuple. It returns the reloaded request.
func (s *RequestService) UpdateStatus(ctx context.Context, id, statusID uint, reason *string) (*domain.Request, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "UpdateStatus",
		trace.WithAttributes(attribute.Int64("request.id", int64(id)), attribute.Int64("status.id", int64(statusID))),
	)
	defer span.End()

	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := repo.GetEntity[domain.RequestStatus](ctx, s.DB, statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid(CodeInvalidStatus, map[string]any{"statusId": statusID}, "status %d does not exist", statusID)
		}
		return nil, err
	}
	if reason != nil {
		if t := strings.TrimSpace(*reason); t == "" {
			reason = nil
		} else {
			reason = &t
		}
	}

	previous := r.StatusID
	if err := repo.SetRequestStatus(ctx, s.DB, id, statusID, reason); err != nil {
		return nil, notFound(err, ErrRequestNotFound)
	}

	if status.Name == domain.StatusApproved {
		n, err := s.rejectConflicts(ctx, r)
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.Int("conflicts.rejected", n))
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if previous != statusID {
		switch status.Name {
		case domain.StatusApproved:
			s.notify(notify.TypeApproval, updated, nil)
		case domain.StatusRejected:
			s.notify(notify.TypeRejection, updated, updated.RejectionReason)
		}
	}
	return updated, nil
}

// rejectConflicts rejects the other pending requests sharing approved's tuple
// and notifies their owners. It is a no-op when the pending or rejected
// status rows are missing.
func (s *RequestService) rejectConflicts(ctx context.Context, approved *domain.Request) (int, error) {
	pendingID, err := repo.StatusIDByName(ctx, s.DB, domain.StatusPending)
	if err != nil {
		return 0, ignoreNotFound(err)
	}
	rejectedID, err := repo.StatusIDByName(ctx, s.DB, domain.StatusRejected)
	if err != nil {
		return 0, ignoreNotFound(err)
	}

	conflicts, err := repo.FindConflicts(ctx, s.DB, approved, pendingID)
	if err != nil {
		return 0, err
	}
	reason := fmt.Sprintf("Slot already assigned to request #%d", approved.ID)
	for i := range conflicts {
		c := &conflicts[i]
		if err := repo.SetRequestStatus(ctx, s.DB, c.ID, rejectedID, &reason); err != nil {
			return i, err
		}
		conflictsRejected.Inc()
		s.notify(notify.TypeRejection, c, &reason)
	}
	return len(conflicts), nil
}

// Cancel moves a pending or approved request to "cancelled".
func (s *RequestService) Cancel(ctx context.Context, actor Actor, id uint) (*domain.Request, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canTouch(&r.UserID) {
		return nil, ErrForbidden
	}
	current := ""
	if r.Status != nil {
		current = r.Status.Name
	}
	if current != domain.StatusPending && current != domain.StatusApproved {
		return nil, invalid(CodeNotCancellable, map[string]any{"status": current},
			"request in status %q cannot be cancelled", current)
	}
	cancelledID, err := repo.StatusIDByName(ctx, s.DB, domain.StatusCancelled)
	if err != nil {
		return nil, notFound(err, ErrStatusNotFound)
	}
	return s.UpdateStatus(ctx, id, cancelledID, nil)
}

// Delete removes a request and its party.
func (s *RequestService) Delete(ctx context.Context, actor Actor, id uint) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canTouch(&r.UserID) {
		return ErrForbidden
	}
	return notFound(repo.DeleteRequest(ctx, s.DB, id), ErrRequestNotFound)
}

// notify enqueues a message for r's owner. Missing relations or a full
// queue only cost the notification.
func (s *RequestService) notify(kind string, r *domain.Request, reason *string) {
	if s.Notifier == nil {
		return
	}
	if r.User == nil {
		log.Warn().Str("component", "requests").Uint("request_id", r.ID).Msg("notification skipped: owner not loaded")
		return
	}
	m := notify.Message{
		Type:     kind,
		Email:    r.User.Email,
		WhatsApp: r.User.WhatsApp,
		UserName: r.User.Username,
		Language: notify.ResolveLanguage(r.User.Language, s.DefaultLanguage),
	}
	if r.Respawn != nil {
		m.RespawnName = r.Respawn.Name
	}
	if r.Slot != nil {
		m.SlotTime = r.Slot.Label()
	}
	if r.Period != nil {
		m.PeriodName = r.Period.Name
	}
	if kind == notify.TypeRejection {
		m.RejectionReason = reason
	}
	s.Notifier.Enqueue(m)
}

// notFound maps gorm.ErrRecordNotFound to target and passes other errors on.
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
