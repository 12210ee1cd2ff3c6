package usecase_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"
	"time"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/internal/usecase"
	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// hugePNGBytes is a small file whose header claims 12000x12000 pixels.
func hugePNGBytes(t *testing.T) []byte {
	out := pngBytes(t)
	binary.BigEndian.PutUint32(out[16:20], 12000)
	binary.BigEndian.PutUint32(out[20:24], 12000)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestUpdateMe(t *testing.T) {
	t.Run("Should reject an email owned by another account", func(t *testing.T) {
		users, emails := new(MockUserRepo), new(MockEmailRepo)
		uc := usecase.NewUserUsecase(users, emails, nil, nil, usecase.ImageUploads{})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "a@example.com"}, nil)
		users.On("GetByEmail", mock.Anything, "b@example.com").Return(nil, nil)
		emails.On("Get", mock.Anything, "b@example.com").Return(&domain.UserEmail{Email: "b@example.com", UserID: 2}, nil)

		_, err := uc.UpdateMe(userCtx(1), domain.UpdateProfileRequest{Email: strPtr(" B@example.com ")})
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should invalidate employee counts when company changes", func(t *testing.T) {
		users, cache := new(MockUserRepo), new(MockCache)
		uc := usecase.NewUserUsecase(users, new(MockEmailRepo), nil, cache, usecase.ImageUploads{})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "a@example.com"}, nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.CurrentCompany != nil && *u.CurrentCompany == "Acme"
		})).Return(nil)
		cache.On("Delete", mock.Anything, []string{domain.EmployeeCountsCacheKey}).Return(nil)

		user, err := uc.UpdateMe(userCtx(1), domain.UpdateProfileRequest{CurrentCompany: strPtr("Acme")})
		require.NoError(t, err)
		assert.Equal(t, "Acme", *user.CurrentCompany)
		cache.AssertExpectations(t)
	})

	t.Run("Should leave cache alone when company is unchanged", func(t *testing.T) {
		users, cache := new(MockUserRepo), new(MockCache)
		uc := usecase.NewUserUsecase(users, new(MockEmailRepo), nil, cache, usecase.ImageUploads{})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "a@example.com"}, nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.UpdateMe(userCtx(1), domain.UpdateProfileRequest{Location: strPtr("Seattle")})
		require.NoError(t, err)
		cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("Should show own hidden profile", func(t *testing.T) {
		users, dir := new(MockUserRepo), new(MockDirectoryRepo)
		uc := usecase.NewUserUsecase(users, nil, dir, nil, usecase.ImageUploads{})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, ProfileVisible: false}, nil)

		p, err := uc.GetProfile(userCtx(1), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		dir.AssertNotCalled(t, "GetVisible", mock.Anything, mock.Anything)
	})

	t.Run("Should hide invisible profile from others", func(t *testing.T) {
		dir := new(MockDirectoryRepo)
		uc := usecase.NewUserUsecase(new(MockUserRepo), nil, dir, nil, usecase.ImageUploads{})
		dir.On("GetVisible", mock.Anything, int64(2)).Return(nil, nil)

		_, err := uc.GetProfile(userCtx(1), 2)
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})

	t.Run("Should let admins read any profile", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewUserUsecase(users, nil, new(MockDirectoryRepo), nil, usecase.ImageUploads{})
		users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)

		_, err := uc.GetProfile(adminCtx(1), 2)
		assert.NoError(t, err)
	})
}

func TestDeleteMe(t *testing.T) {
	t.Run("Should invalidate employee counts after deleting the account", func(t *testing.T) {
		users, cache := new(MockUserRepo), new(MockCache)
		uc := usecase.NewUserUsecase(users, nil, nil, cache, usecase.ImageUploads{})
		users.On("Delete", mock.Anything, int64(1)).Return(nil)
		cache.On("Delete", mock.Anything, []string{domain.EmployeeCountsCacheKey}).Return(nil)

		require.NoError(t, uc.DeleteMe(userCtx(1)))
		users.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("Should keep the cache when deletion fails", func(t *testing.T) {
		users, cache := new(MockUserRepo), new(MockCache)
		uc := usecase.NewUserUsecase(users, nil, nil, cache, usecase.ImageUploads{})
		users.On("Delete", mock.Anything, int64(1)).Return(errors.New("db down"))

		err := uc.DeleteMe(userCtx(1))
		assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(err))
		cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUploadProfileImage(t *testing.T) {
	t.Run("Should return 503 without storage", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewUserUsecase(users, nil, nil, nil, usecase.ImageUploads{})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)

		_, err := uc.UploadProfileImage(userCtx(1), "me.png", pngBytes(t))
		assert.Equal(t, http.StatusServiceUnavailable, apperror.CodeOf(err))
	})

	t.Run("Should reject spoofed content", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewUserUsecase(users, nil, nil, nil, usecase.ImageUploads{Store: new(MockImageStore)})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)

		_, err := uc.UploadProfileImage(userCtx(1), "me.png", []byte("<script>alert(1)</script>"))
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should reject images with oversized dimensions", func(t *testing.T) {
		users, store := new(MockUserRepo), new(MockImageStore)
		uc := usecase.NewUserUsecase(users, nil, nil, nil, usecase.ImageUploads{Store: store})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)

		_, err := uc.UploadProfileImage(userCtx(1), "me.png", hugePNGBytes(t))
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		store.AssertNotCalled(t, "PutImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should enforce the upload limit", func(t *testing.T) {
		users, limiter := new(MockUserRepo), new(MockLimiter)
		uc := usecase.NewUserUsecase(users, nil, nil, nil, usecase.ImageUploads{Store: new(MockImageStore), Limiter: limiter})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
		limiter.On("Allow", mock.Anything, int64(1)).Return(false, nil)

		_, err := uc.UploadProfileImage(userCtx(1), "me.png", pngBytes(t))
		assert.Equal(t, http.StatusTooManyRequests, apperror.CodeOf(err))
	})

	t.Run("Should reject infected uploads", func(t *testing.T) {
		users, scanner := new(MockUserRepo), new(MockScanner)
		uc := usecase.NewUserUsecase(users, nil, nil, nil, usecase.ImageUploads{Store: new(MockImageStore), Scanner: scanner})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
		scanner.On("Scan", mock.Anything, "me.png", mock.Anything).Return(&antivirus.ThreatError{Threat: "Eicar-Test-Signature"})

		_, err := uc.UploadProfileImage(userCtx(1), "me.png", pngBytes(t))
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should fail closed when the scanner is down", func(t *testing.T) {
		users, scanner := new(MockUserRepo), new(MockScanner)
		uc := usecase.NewUserUsecase(users, nil, nil, nil, usecase.ImageUploads{Store: new(MockImageStore), Scanner: scanner})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
		scanner.On("Scan", mock.Anything, "me.png", mock.Anything).Return(antivirus.ErrScannerUnavailable)

		_, err := uc.UploadProfileImage(userCtx(1), "me.png", pngBytes(t))
		assert.Equal(t, http.StatusServiceUnavailable, apperror.CodeOf(err))
	})

	t.Run("Should store compressed image and save url", func(t *testing.T) {
		users, store, limiter := new(MockUserRepo), new(MockImageStore), new(MockLimiter)
		uc := usecase.NewUserUsecase(users, nil, nil, nil, usecase.ImageUploads{Store: store, Limiter: limiter})
		users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
		limiter.On("Allow", mock.Anything, int64(1)).Return(true, nil)
		store.On("PutImage", mock.Anything, "profile-images/1", mock.Anything).Return("https://cdn.example.com/p.jpg", nil)
		users.On("UpdateProfileImage", mock.Anything, int64(1), "https://cdn.example.com/p.jpg").Return(nil)

		user, err := uc.UploadProfileImage(userCtx(1), "me.png", pngBytes(t))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/p.jpg", *user.ProfileImage)
	})
}

func TestEmailUsecase(t *testing.T) {
	t.Run("Should reject a taken address", func(t *testing.T) {
		repo := new(MockEmailRepo)
		uc := usecase.NewEmailUsecase(repo)
		repo.On("Get", mock.Anything, "x@example.com").Return(&domain.UserEmail{Email: "x@example.com", UserID: 2}, nil)

		_, err := uc.Add(userCtx(1), domain.AddEmailRequest{Email: "X@example.com"})
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	})

	t.Run("Should not reveal other users' addresses", func(t *testing.T) {
		repo := new(MockEmailRepo)
		uc := usecase.NewEmailUsecase(repo)
		repo.On("Get", mock.Anything, "x@example.com").Return(&domain.UserEmail{Email: "x@example.com", UserID: 2}, nil)

		_, err := uc.SetPreferred(userCtx(1), domain.SetPreferredEmailRequest{Email: "x@example.com"})
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(uc.Delete(userCtx(1), "x@example.com")))
	})

	t.Run("Should refuse to delete the preferred address", func(t *testing.T) {
		repo := new(MockEmailRepo)
		uc := usecase.NewEmailUsecase(repo)
		repo.On("Get", mock.Anything, "x@example.com").Return(&domain.UserEmail{Email: "x@example.com", UserID: 1, Preferred: true}, nil)

		err := uc.Delete(userCtx(1), "x@example.com")
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should switch preferred address", func(t *testing.T) {
		repo := new(MockEmailRepo)
		uc := usecase.NewEmailUsecase(repo)
		repo.On("Get", mock.Anything, "x@example.com").Return(&domain.UserEmail{Email: "x@example.com", UserID: 1}, nil)
		repo.On("SetPreferred", mock.Anything, int64(1), "x@example.com").Return(nil)

		e, err := uc.SetPreferred(userCtx(1), domain.SetPreferredEmailRequest{Email: "x@example.com"})
		require.NoError(t, err)
		assert.True(t, e.Preferred)
	})

	t.Run("Should count listed addresses", func(t *testing.T) {
		repo := new(MockEmailRepo)
		uc := usecase.NewEmailUsecase(repo)
		repo.On("ListByUser", mock.Anything, int64(3)).Return([]domain.UserEmail{{Email: "a@x.io"}, {Email: "b@x.io"}}, nil)

		list, err := uc.List(userCtx(1), 3)
		require.NoError(t, err)
		assert.Equal(t, 2, list.Count)
	})
}

func TestEventUsecase(t *testing.T) {
	t.Run("Should require admin to create", func(t *testing.T) {
		uc := usecase.NewEventUsecase(new(MockEventRepo), nil)
		_, err := uc.Create(userCtx(1), domain.CreateEventRequest{Title: "Mixer"})
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("Should create and audit", func(t *testing.T) {
		repo, admin := new(MockEventRepo), new(MockAdminRepo)
		uc := usecase.NewEventUsecase(repo, usecase.NewAuditTrail(admin, nil))
		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Event) bool {
			return e.Title == "Mixer" && e.Date.Equal(time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC))
		})).Return(nil)
		admin.On("WriteAudit", mock.Anything, mock.MatchedBy(func(a domain.AuditLog) bool {
			return a.Action == domain.AuditCreateEvent && a.ActorID == 1
		})).Return(nil)

		_, err := uc.Create(adminCtx(1), domain.CreateEventRequest{
			Title: " Mixer ", Description: "Drinks", Date: "2026-11-01T10:00:00-08:00", Location: "Seattle",
		})
		require.NoError(t, err)
		admin.AssertExpectations(t)
	})

	t.Run("Should reject a bad date", func(t *testing.T) {
		uc := usecase.NewEventUsecase(new(MockEventRepo), nil)
		_, err := uc.Create(adminCtx(1), domain.CreateEventRequest{Title: "Mixer", Description: "d", Date: "tomorrow", Location: "x"})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should list upcoming only when asked", func(t *testing.T) {
		repo := new(MockEventRepo)
		uc := usecase.NewEventUsecase(repo, nil)
		repo.On("List", mock.Anything, (*time.Time)(nil)).Return([]domain.Event{}, nil).Once()
		repo.On("List", mock.Anything, mock.MatchedBy(func(ts *time.Time) bool { return ts != nil })).Return([]domain.Event{}, nil).Once()

		_, err := uc.List(context.Background(), domain.EventFilter{})
		require.NoError(t, err)
		_, err = uc.List(context.Background(), domain.EventFilter{Upcoming: true})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should return 404 for unknown event", func(t *testing.T) {
		repo := new(MockEventRepo)
		uc := usecase.NewEventUsecase(repo, nil)
		repo.On("Delete", mock.Anything, int64(5)).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(uc.Delete(adminCtx(1), 5)))
	})
}

func TestDirectorySearch(t *testing.T) {
	repo := new(MockDirectoryRepo)
	uc := usecase.NewDirectoryUsecase(repo)
	repo.On("Search", mock.Anything, mock.MatchedBy(func(f domain.AlumniFilter) bool {
		return f.Search == "acme" && f.Page == 1 && f.PageSize == domain.DefaultPageSize
	})).Return([]domain.PublicProfile{{ID: 1}}, int64(41), nil)

	res, err := uc.Search(context.Background(), domain.AlumniFilter{Search: "  acme "})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Data, 1)
}
