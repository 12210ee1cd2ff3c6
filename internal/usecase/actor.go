package usecase

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
)

// actorID reads the authenticated user id placed on the context by the auth middleware.
func actorID(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(domain.KeyUserID).(int64)
	if !ok || id == 0 {
		return 0, apperror.Unauthorized("User not authenticated")
	}
	return id, nil
}

func isAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	return role == domain.RoleAdmin
}

func requireAdmin(ctx context.Context) (int64, error) {
	id, err := actorID(ctx)
	if err != nil {
		return 0, err
	}
	if !isAdmin(ctx) {
		return 0, apperror.Forbidden("The user doesn't have enough privileges")
	}
	return id, nil
}
