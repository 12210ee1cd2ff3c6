package usecase

import (
	"context"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/logger"
)

func invalidateEmployeeCounts(ctx context.Context, cache domain.Cache) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, domain.EmployeeCountsCacheKey); err != nil {
		logger.Log.Warn("failed to invalidate employee counts", "error", err)
	}
}
