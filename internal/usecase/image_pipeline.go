package usecase

import (
	"context"
	"errors"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/imaging"
	"alumni-network-backend/pkg/logger"
	"alumni-network-backend/pkg/security"
	"alumni-network-backend/pkg/security/antivirus"
	"alumni-network-backend/pkg/storage"
)

// ImageUploads bundles the optional collaborators of image uploads. A nil
// Store disables uploads; nil Limiter or Scanner skips that step.
type ImageUploads struct {
	Store   domain.ImageStore
	Limiter domain.UploadLimiter
	Scanner domain.MalwareScanner
}

// imagePipeline validates, throttles, scans, shrinks and stores uploaded images.
type imagePipeline struct {
	store   domain.ImageStore
	limiter domain.UploadLimiter
	scanner domain.MalwareScanner
}

func newImagePipeline(deps ImageUploads) *imagePipeline {
	return &imagePipeline{store: deps.Store, limiter: deps.Limiter, scanner: deps.Scanner}
}

func (p *imagePipeline) upload(ctx context.Context, userID int64, prefix, filename string, data []byte) (string, error) {
	if p.store == nil {
		return "", apperror.ServiceUnavailable("Image storage is not configured")
	}

	if _, err := security.ValidateImage(filename, data); err != nil {
		return "", apperror.BadRequest(err.Error())
	}

	if p.limiter != nil {
		allowed, err := p.limiter.Allow(ctx, userID)
		if err != nil {
			logger.Log.Warn("upload limiter unavailable", "error", err)
		} else if !allowed {
			return "", apperror.TooManyRequests("Upload limit reached, please try again later")
		}
	}

	if p.scanner != nil {
		if err := p.scanner.Scan(ctx, filename, data); err != nil {
			if threat, ok := antivirus.IsThreat(err); ok {
				security.DefaultLogger().LogMalwareDetected(ctx, userID, filename, threat)
				return "", apperror.BadRequest("File was rejected by the virus scanner")
			}
			logger.Log.Error("virus scan failed", "error", err)
			return "", apperror.ServiceUnavailable("File scanning is unavailable, please try again later")
		}
	}

	compressed, err := imaging.Compress(data, imaging.ProfileMaxDimension, imaging.DefaultQuality)
	if err != nil {
		if errors.Is(err, imaging.ErrTooManyPixels) {
			return "", apperror.BadRequest("Image dimensions are too large")
		}
		return "", apperror.BadRequest("Could not process image")
	}

	url, err := p.store.PutImage(ctx, prefix, compressed)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return "", apperror.ServiceUnavailable("Image storage is not configured")
		}
		return "", apperror.Internal(err)
	}
	return url, nil
}
