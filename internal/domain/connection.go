package domain

import (
	"context"
	"time"
)

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

func (s ConnectionStatus) Valid() bool {
	return s == ConnectionPending || s == ConnectionAccepted || s == ConnectionDeclined
}

// CanTransition encodes the lifecycle: pending may become accepted or declined.
func (s ConnectionStatus) CanTransition(to ConnectionStatus) bool {
	return s == ConnectionPending && (to == ConnectionAccepted || to == ConnectionDeclined)
}

const MaxConnectionMessageLength = 1000

type ConnectionRequest struct {
	ID          int64            `json:"id"`
	RequesterID int64            `json:"requester_id"`
	RequestedID int64            `json:"requested_id"`
	Status      ConnectionStatus `json:"status"`
	Message     *string          `json:"message"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	RespondedAt *time.Time       `json:"responded_at"`
}

// ConnectionView pairs a request with the other party's profile.
type ConnectionView struct {
	ConnectionRequest
	Counterpart PublicProfile `json:"counterpart"`
}

type CreateConnectionRequest struct {
	RequestedID int64   `json:"requested_id" binding:"required,gt=0"`
	Message     *string `json:"message" binding:"omitempty,max=1000"`
}

type ConnectionStatusFilter struct {
	Status string `form:"status"`
}

type ConnectionRepository interface {
	Create(ctx context.Context, cr *ConnectionRequest) error
	GetByID(ctx context.Context, id int64) (*ConnectionRequest, error)
	GetByPair(ctx context.Context, requesterID, requestedID int64) (*ConnectionRequest, error)
	// Reopen sets a declined request back to pending with a new message.
	Reopen(ctx context.Context, id int64, message *string) (*ConnectionRequest, error)
	// Transition moves a request from one status to another and reports
	// false when the row was no longer in the from status.
	Transition(ctx context.Context, id int64, from, to ConnectionStatus, at time.Time) (bool, error)
	DeletePending(ctx context.Context, id int64) (bool, error)
	ListIncoming(ctx context.Context, userID int64, status *ConnectionStatus) ([]ConnectionView, error)
	ListOutgoing(ctx context.Context, userID int64, status *ConnectionStatus) ([]ConnectionView, error)
	ListAccepted(ctx context.Context, userID int64) ([]ConnectionView, error)
}

// Notice payloads for the notifier
type ConnectionRequestNotice struct {
	RequesterName string
	Message       string
}

type ConnectionAcceptedNotice struct {
	AccepterName string
	ContactEmail string
	LinkedInURL  string
}

type Notifier interface {
	NotifyConnectionRequest(ctx context.Context, to string, n ConnectionRequestNotice) error
	NotifyConnectionAccepted(ctx context.Context, to string, n ConnectionAcceptedNotice) error
}

type ConnectionUsecase interface {
	Send(ctx context.Context, req CreateConnectionRequest) (*ConnectionRequest, error)
	Accept(ctx context.Context, id int64) (*ConnectionRequest, error)
	Decline(ctx context.Context, id int64) (*ConnectionRequest, error)
	Withdraw(ctx context.Context, id int64) error
	Incoming(ctx context.Context, status string) ([]ConnectionView, error)
	Outgoing(ctx context.Context, status string) ([]ConnectionView, error)
	Accepted(ctx context.Context) ([]ConnectionView, error)
	// AcceptedRequests lists accepted requests userID sent.
	AcceptedRequests(ctx context.Context, userID int64) ([]ConnectionView, error)
	// AcceptedRequested lists accepted requests userID received.
	AcceptedRequested(ctx context.Context, userID int64) ([]ConnectionView, error)
}
