package usecase

import (
	"context"
	"strings"
	"time"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"

	"golang.org/x/sync/errgroup"
)

type adminUsecase struct {
	repo  domain.AdminRepository
	audit *AuditTrail
	cache domain.Cache
	now   func() time.Time
}

func NewAdminUsecase(repo domain.AdminRepository, audit *AuditTrail, cache domain.Cache) domain.AdminUsecase {
	return &adminUsecase{repo: repo, audit: audit, cache: cache, now: time.Now}
}

// Stats runs the dashboard counters concurrently
func (u *adminUsecase) Stats(ctx context.Context) (*domain.AdminStats, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	stats := &domain.AdminStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = u.repo.CountUsers(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.TotalAlumni, err = u.repo.CountAlumni(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.PendingAlumni, err = u.repo.CountPendingAlumni(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.TotalConnections, err = u.repo.CountConnections(gctx, domain.ConnectionAccepted)
		return
	})
	g.Go(func() (err error) {
		stats.PendingRequests, err = u.repo.CountConnections(gctx, domain.ConnectionPending)
		return
	})
	g.Go(func() (err error) {
		stats.DeclinedRequests, err = u.repo.CountConnections(gctx, domain.ConnectionDeclined)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}

	stats.ComputeAcceptanceRate()
	return stats, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, f domain.AdminUserFilter) (*domain.PaginatedResult[domain.User], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	f.Pagination.Normalize()
	users, total, err := u.repo.ListUsers(ctx, strings.TrimSpace(f.Search), f.Pagination)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(users, total, f.Pagination), nil
}

func (u *adminUsecase) PendingAlumni(ctx context.Context) ([]domain.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := u.repo.ListPendingAlumni(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (u *adminUsecase) ApproveAlumni(ctx context.Context, userID int64) error {
	return u.setAlumniStatus(ctx, userID, true, domain.AlumniStatusApproved, domain.AuditApproveAlumni)
}

// RejectAlumni keeps the account and only takes it out of the pending queue.
func (u *adminUsecase) RejectAlumni(ctx context.Context, userID int64) error {
	return u.setAlumniStatus(ctx, userID, false, domain.AlumniStatusRejected, domain.AuditRejectAlumni)
}

func (u *adminUsecase) setAlumniStatus(ctx context.Context, userID int64, isAlumni bool, status domain.AlumniStatus, action string) error {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	ok, err := u.repo.SetAlumniStatus(ctx, userID, isAlumni, status)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("User not found")
	}
	u.audit.Record(ctx, adminID, action, userID, map[string]interface{}{"alumni_status": string(status)})
	return nil
}

func (u *adminUsecase) SetRole(ctx context.Context, userID int64, req domain.UpdateRoleRequest) error {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if req.IsSuperuser == nil {
		return apperror.BadRequest("is_superuser is required")
	}
	if userID == adminID && !*req.IsSuperuser {
		return apperror.BadRequest("Admins cannot remove their own admin role")
	}

	ok, err := u.repo.SetSuperuser(ctx, userID, *req.IsSuperuser)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("User not found")
	}
	u.audit.Record(ctx, adminID, domain.AuditUpdateRole, userID, map[string]interface{}{"is_superuser": *req.IsSuperuser})
	return nil
}

func (u *adminUsecase) SetActive(ctx context.Context, userID int64, req domain.UpdateActiveRequest) error {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if req.IsActive == nil {
		return apperror.BadRequest("is_active is required")
	}
	if userID == adminID && !*req.IsActive {
		return apperror.BadRequest("Admins cannot deactivate themselves")
	}

	ok, err := u.repo.SetActive(ctx, userID, *req.IsActive)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("User not found")
	}
	u.audit.Record(ctx, adminID, domain.AuditUpdateActive, userID, map[string]interface{}{"is_active": *req.IsActive})
	return nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, userID int64) error {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if userID == adminID {
		return apperror.Forbidden("Super users are not allowed to delete themselves")
	}

	ok, err := u.repo.DeleteUser(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("User not found")
	}
	// Employment rows go with the user.
	invalidateEmployeeCounts(ctx, u.cache)
	u.audit.Record(ctx, adminID, domain.AuditDeleteUser, userID, nil)
	return nil
}

func (u *adminUsecase) ExportAlumni(ctx context.Context, format domain.ExportFormat) (*domain.ExportFile, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if format != domain.ExportXLSX && format != domain.ExportCSV && format != "" {
		return nil, apperror.BadRequest("Format must be xlsx or csv")
	}

	users, err := u.repo.ListAlumni(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	file, err := renderAlumniExport(users, format, u.now())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Record(ctx, adminID, domain.AuditExportAlumni, 0, map[string]interface{}{
		"format": file.Filename[strings.LastIndex(file.Filename, ".")+1:],
		"rows":   len(users),
	})
	return file, nil
}

func (u *adminUsecase) AuditLogs(ctx context.Context, p domain.Pagination) (*domain.PaginatedResult[domain.AuditLog], error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	p.Normalize()
	logs, total, err := u.repo.ListAudit(ctx, p)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(logs, total, p), nil
}
