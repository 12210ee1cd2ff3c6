package usecase

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/logger"
)

// AuditTrail persists admin mutations to audit_logs and mirrors them to the
// security log. Either sink may be nil.
type AuditTrail struct {
	repo domain.AdminRepository
	log  domain.AuditLogger
}

func NewAuditTrail(repo domain.AdminRepository, log domain.AuditLogger) *AuditTrail {
	return &AuditTrail{repo: repo, log: log}
}

// Record never fails the calling operation; write errors are logged.
func (a *AuditTrail) Record(ctx context.Context, actorID int64, action string, targetID int64, details map[string]interface{}) {
	if a == nil {
		return
	}
	if a.repo != nil {
		entry := domain.AuditLog{ActorID: actorID, Action: action, Details: details}
		if targetID != 0 {
			entry.TargetID = &targetID
		}
		if err := a.repo.WriteAudit(ctx, entry); err != nil {
			logger.Log.Error("failed to write audit log", "action", action, "error", err)
		}
	}
	if a.log != nil {
		a.log.LogAdminAction(ctx, actorID, action, targetID, details)
	}
}
