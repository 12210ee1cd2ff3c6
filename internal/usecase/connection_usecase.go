package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type connectionUsecase struct {
	repo      domain.ConnectionRepository
	userRepo  domain.UserRepository
	emailRepo domain.EmailRepository
	notifier  domain.Notifier
	now       func() time.Time
}

// NewConnectionUsecase builds the request lifecycle. notifier may be nil.
func NewConnectionUsecase(
	repo domain.ConnectionRepository,
	userRepo domain.UserRepository,
	emailRepo domain.EmailRepository,
	notifier domain.Notifier,
) domain.ConnectionUsecase {
	return &connectionUsecase{
		repo:      repo,
		userRepo:  userRepo,
		emailRepo: emailRepo,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (u *connectionUsecase) Send(ctx context.Context, req domain.CreateConnectionRequest) (*domain.ConnectionRequest, error) {
	requesterID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if req.RequestedID == requesterID {
		return nil, apperror.BadRequest("You cannot send a connection request to yourself")
	}

	var message *string
	if req.Message != nil {
		if m := strings.TrimSpace(*req.Message); m != "" {
			if utf8.RuneCountInString(m) > domain.MaxConnectionMessageLength {
				return nil, apperror.BadRequest(fmt.Sprintf("Message must be at most %d characters", domain.MaxConnectionMessageLength))
			}
			message = &m
		}
	}

	target, err := u.userRepo.GetByID(ctx, req.RequestedID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if target == nil || !target.IsActive {
		return nil, apperror.NotFound("User not found")
	}

	reverse, err := u.repo.GetByPair(ctx, req.RequestedID, requesterID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if reverse != nil {
		return nil, apperror.BadRequest("The user has already requested you")
	}

	existing, err := u.repo.GetByPair(ctx, requesterID, req.RequestedID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var cr *domain.ConnectionRequest
	switch {
	case existing == nil:
		cr = &domain.ConnectionRequest{
			RequesterID: requesterID,
			RequestedID: req.RequestedID,
			Status:      domain.ConnectionPending,
			Message:     message,
		}
		if err := u.repo.Create(ctx, cr); err != nil {
			return nil, err
		}
	case existing.Status == domain.ConnectionDeclined:
		cr, err = u.repo.Reopen(ctx, existing.ID, message)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperror.Conflict("Connection request already exists")
	}

	u.notifyRequest(ctx, requesterID, target, message)
	return cr, nil
}

func (u *connectionUsecase) notifyRequest(ctx context.Context, requesterID int64, target *domain.User, message *string) {
	if u.notifier == nil {
		return
	}
	requester, err := u.userRepo.GetByID(ctx, requesterID)
	if err != nil || requester == nil {
		logger.Log.Warn("connection notice skipped", "reason", "requester lookup failed", "error", err)
		return
	}
	to := u.preferredEmail(ctx, target.ID, target.Email)
	notice := domain.ConnectionRequestNotice{RequesterName: requester.DisplayName()}
	if message != nil {
		notice.Message = *message
	}
	if err := u.notifier.NotifyConnectionRequest(ctx, to, notice); err != nil {
		logger.Log.Error("failed to send connection request email", "error", err)
	}
}

func (u *connectionUsecase) preferredEmail(ctx context.Context, userID int64, fallback string) string {
	email, err := u.emailRepo.Preferred(ctx, userID)
	if err != nil || email == "" {
		return fallback
	}
	return email
}

// respond moves a pending request addressed to the caller into to.
func (u *connectionUsecase) respond(ctx context.Context, id int64, to domain.ConnectionStatus) (*domain.ConnectionRequest, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	cr, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if cr == nil {
		return nil, apperror.NotFound("Connection request not found")
	}
	if cr.RequestedID != userID {
		return nil, apperror.Forbidden("Only the requested user can respond to this request")
	}
	if !cr.Status.CanTransition(to) {
		return nil, apperror.BadRequest(fmt.Sprintf("Cannot change a %s request to %s", cr.Status, to))
	}

	at := u.now().UTC()
	ok, err := u.repo.Transition(ctx, cr.ID, domain.ConnectionPending, to, at)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.BadRequest("Connection request is no longer pending")
	}

	cr.Status = to
	cr.RespondedAt = &at
	cr.UpdatedAt = at
	return cr, nil
}

func (u *connectionUsecase) Accept(ctx context.Context, id int64) (*domain.ConnectionRequest, error) {
	cr, err := u.respond(ctx, id, domain.ConnectionAccepted)
	if err != nil {
		return nil, err
	}
	u.notifyAccepted(ctx, cr)
	return cr, nil
}

// notifyAccepted sends the accepter's contact details to the requester.
func (u *connectionUsecase) notifyAccepted(ctx context.Context, cr *domain.ConnectionRequest) {
	if u.notifier == nil {
		return
	}

	var requester, accepter *domain.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requester, err = u.userRepo.GetByID(gctx, cr.RequesterID)
		return err
	})
	g.Go(func() error {
		var err error
		accepter, err = u.userRepo.GetByID(gctx, cr.RequestedID)
		return err
	})
	if err := g.Wait(); err != nil || requester == nil || accepter == nil {
		logger.Log.Warn("acceptance notice skipped", "reason", "user lookup failed", "error", err)
		return
	}

	notice := domain.ConnectionAcceptedNotice{
		AccepterName: accepter.DisplayName(),
		ContactEmail: u.preferredEmail(ctx, accepter.ID, accepter.Email),
	}
	if accepter.LinkedInURL != nil {
		notice.LinkedInURL = *accepter.LinkedInURL
	}
	to := u.preferredEmail(ctx, requester.ID, requester.Email)
	if err := u.notifier.NotifyConnectionAccepted(ctx, to, notice); err != nil {
		logger.Log.Error("failed to send connection accepted email", "error", err)
	}
}

func (u *connectionUsecase) Decline(ctx context.Context, id int64) (*domain.ConnectionRequest, error) {
	return u.respond(ctx, id, domain.ConnectionDeclined)
}

func (u *connectionUsecase) Withdraw(ctx context.Context, id int64) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	cr, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if cr == nil {
		return apperror.NotFound("Connection request not found")
	}
	if cr.RequesterID != userID {
		return apperror.Forbidden("Only the requester can withdraw this request")
	}
	if cr.Status != domain.ConnectionPending {
		return apperror.BadRequest("Only pending requests can be withdrawn")
	}

	deleted, err := u.repo.DeletePending(ctx, cr.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.BadRequest("Only pending requests can be withdrawn")
	}
	return nil
}

func parseStatusFilter(status string) (*domain.ConnectionStatus, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return nil, nil
	}
	s := domain.ConnectionStatus(status)
	if !s.Valid() {
		return nil, apperror.BadRequest("Status must be one of pending, accepted or declined")
	}
	return &s, nil
}

func (u *connectionUsecase) Incoming(ctx context.Context, status string) ([]domain.ConnectionView, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	s, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	views, err := u.repo.ListIncoming(ctx, userID, s)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (u *connectionUsecase) Outgoing(ctx context.Context, status string) ([]domain.ConnectionView, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	s, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	views, err := u.repo.ListOutgoing(ctx, userID, s)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (u *connectionUsecase) Accepted(ctx context.Context) ([]domain.ConnectionView, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	views, err := u.repo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (u *connectionUsecase) requireSelf(ctx context.Context, userID int64) error {
	callerID, err := actorID(ctx)
	if err != nil {
		return err
	}
	if callerID != userID {
		return apperror.Forbidden("You can only view your own connections")
	}
	return nil
}

func (u *connectionUsecase) AcceptedRequests(ctx context.Context, userID int64) ([]domain.ConnectionView, error) {
	if err := u.requireSelf(ctx, userID); err != nil {
		return nil, err
	}
	accepted := domain.ConnectionAccepted
	views, err := u.repo.ListOutgoing(ctx, userID, &accepted)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (u *connectionUsecase) AcceptedRequested(ctx context.Context, userID int64) ([]domain.ConnectionView, error) {
	if err := u.requireSelf(ctx, userID); err != nil {
		return nil, err
	}
	accepted := domain.ConnectionAccepted
	views, err := u.repo.ListIncoming(ctx, userID, &accepted)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}
