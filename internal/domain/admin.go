package domain

import (
	"context"
	"time"
)

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers       int64   `json:"total_users"`
	TotalAlumni      int64   `json:"total_alumni"`
	PendingAlumni    int64   `json:"pending_alumni"`
	TotalConnections int64   `json:"total_connections"`
	PendingRequests  int64   `json:"pending_requests"`
	DeclinedRequests int64   `json:"declined_requests"`
	AcceptanceRate   float64 `json:"acceptance_rate"`
}

// ComputeAcceptanceRate sets accepted / (accepted + declined), or 0 when
// nothing has been answered yet.
func (s *AdminStats) ComputeAcceptanceRate() {
	answered := s.TotalConnections + s.DeclinedRequests
	if answered == 0 {
		s.AcceptanceRate = 0
		return
	}
	s.AcceptanceRate = float64(s.TotalConnections) / float64(answered)
}

// Audit actions
const (
	AuditApproveAlumni = "approve_alumni"
	AuditRejectAlumni  = "reject_alumni"
	AuditUpdateRole    = "update_role"
	AuditUpdateActive  = "update_active"
	AuditDeleteUser    = "delete_user"
	AuditExportAlumni  = "export_alumni"
	AuditCreateEvent   = "create_event"
	AuditDeleteEvent   = "delete_event"
	AuditUpdateLogo    = "update_company_logo"
)

type AuditLog struct {
	ID        int64                  `json:"id"`
	ActorID   int64                  `json:"actor_id"`
	Action    string                 `json:"action"`
	TargetID  *int64                 `json:"target_id"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}

type AdminUserFilter struct {
	Search string `form:"search"`
	Pagination
}

type UpdateRoleRequest struct {
	IsSuperuser *bool `json:"is_superuser" binding:"required"`
}

type UpdateActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ExportFile is a rendered spreadsheet download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AdminRepository defines admin-specific data access
type AdminRepository interface {
	ListUsers(ctx context.Context, search string, p Pagination) ([]User, int64, error)
	ListPendingAlumni(ctx context.Context) ([]User, error)
	SetAlumniStatus(ctx context.Context, userID int64, isAlumni bool, status AlumniStatus) (bool, error)
	SetSuperuser(ctx context.Context, userID int64, isSuperuser bool) (bool, error)
	SetActive(ctx context.Context, userID int64, isActive bool) (bool, error)
	DeleteUser(ctx context.Context, userID int64) (bool, error)
	ListAlumni(ctx context.Context) ([]User, error)

	// Counters for the stats dashboard, run concurrently
	CountUsers(ctx context.Context) (int64, error)
	CountAlumni(ctx context.Context) (int64, error)
	CountPendingAlumni(ctx context.Context) (int64, error)
	CountConnections(ctx context.Context, status ConnectionStatus) (int64, error)

	WriteAudit(ctx context.Context, entry AuditLog) error
	ListAudit(ctx context.Context, p Pagination) ([]AuditLog, int64, error)
}

// AdminUsecase defines admin business logic
type AdminUsecase interface {
	Stats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, f AdminUserFilter) (*PaginatedResult[User], error)
	PendingAlumni(ctx context.Context) ([]User, error)
	ApproveAlumni(ctx context.Context, userID int64) error
	RejectAlumni(ctx context.Context, userID int64) error
	SetRole(ctx context.Context, userID int64, req UpdateRoleRequest) error
	SetActive(ctx context.Context, userID int64, req UpdateActiveRequest) error
	DeleteUser(ctx context.Context, userID int64) error
	ExportAlumni(ctx context.Context, format ExportFormat) (*ExportFile, error)
	AuditLogs(ctx context.Context, p Pagination) (*PaginatedResult[AuditLog], error)
}
