package domain

import (
	"context"
	"time"
)

// Cache is a JSON value cache. Implementations may be no-ops.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ImageStore persists processed images and returns their public URL.
type ImageStore interface {
	PutImage(ctx context.Context, prefix string, data []byte) (string, error)
}

// UploadLimiter throttles image uploads per user.
type UploadLimiter interface {
	Allow(ctx context.Context, userID int64) (bool, error)
}

// MalwareScanner inspects an upload before it is decoded.
type MalwareScanner interface {
	Scan(ctx context.Context, filename string, data []byte) error
}

// AuditLogger mirrors admin mutations to the security log.
type AuditLogger interface {
	LogAdminAction(ctx context.Context, actorID int64, action string, targetID int64, details map[string]interface{})
}

type HealthStatus struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func (h HealthStatus) Healthy() bool {
	return h.Database == "ok"
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}
