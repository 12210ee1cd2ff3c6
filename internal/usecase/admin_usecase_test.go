package usecase_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"testing"
	"time"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/internal/usecase"
	"alumni-network-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newAdminFixture() (domain.AdminUsecase, *MockAdminRepo) {
	repo := new(MockAdminRepo)
	return usecase.NewAdminUsecase(repo, usecase.NewAuditTrail(repo, nil), nil), repo
}

func TestAdminRequiresAdminRole(t *testing.T) {
	uc, repo := newAdminFixture()

	_, err := uc.Stats(userCtx(1))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	err = uc.ApproveAlumni(userCtx(1), 2)
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	repo.AssertNotCalled(t, "SetAlumniStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminStats(t *testing.T) {
	t.Run("Should compute acceptance rate from concurrent counts", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("CountUsers", mock.Anything).Return(int64(10), nil)
		repo.On("CountAlumni", mock.Anything).Return(int64(6), nil)
		repo.On("CountPendingAlumni", mock.Anything).Return(int64(2), nil)
		repo.On("CountConnections", mock.Anything, domain.ConnectionAccepted).Return(int64(3), nil)
		repo.On("CountConnections", mock.Anything, domain.ConnectionPending).Return(int64(4), nil)
		repo.On("CountConnections", mock.Anything, domain.ConnectionDeclined).Return(int64(1), nil)

		stats, err := uc.Stats(adminCtx(1))
		require.NoError(t, err)
		assert.Equal(t, int64(10), stats.TotalUsers)
		assert.Equal(t, int64(6), stats.TotalAlumni)
		assert.Equal(t, int64(2), stats.PendingAlumni)
		assert.Equal(t, int64(3), stats.TotalConnections)
		assert.Equal(t, int64(4), stats.PendingRequests)
		assert.InDelta(t, 0.75, stats.AcceptanceRate, 1e-9)
	})

	t.Run("Should fail when any counter fails", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("CountUsers", mock.Anything).Return(int64(0), errors.New("db down"))
		repo.On("CountAlumni", mock.Anything).Return(int64(0), nil)
		repo.On("CountPendingAlumni", mock.Anything).Return(int64(0), nil)
		repo.On("CountConnections", mock.Anything, mock.Anything).Return(int64(0), nil)

		_, err := uc.Stats(adminCtx(1))
		assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(err))
	})
}

func TestAdminAlumniReview(t *testing.T) {
	t.Run("Should approve and write audit row", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("SetAlumniStatus", mock.Anything, int64(5), true, domain.AlumniStatusApproved).Return(true, nil)
		repo.On("WriteAudit", mock.Anything, mock.MatchedBy(func(e domain.AuditLog) bool {
			return e.ActorID == 1 && e.Action == domain.AuditApproveAlumni && e.TargetID != nil && *e.TargetID == 5
		})).Return(nil)

		require.NoError(t, uc.ApproveAlumni(adminCtx(1), 5))
		repo.AssertExpectations(t)
	})

	t.Run("Should keep user on reject", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("SetAlumniStatus", mock.Anything, int64(5), false, domain.AlumniStatusRejected).Return(true, nil)
		repo.On("WriteAudit", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, uc.RejectAlumni(adminCtx(1), 5))
		repo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("Should return 404 for unknown user", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("SetAlumniStatus", mock.Anything, int64(99), true, domain.AlumniStatusApproved).Return(false, nil)

		err := uc.ApproveAlumni(adminCtx(1), 99)
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})

	t.Run("Should not fail when audit write fails", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("SetAlumniStatus", mock.Anything, int64(5), true, domain.AlumniStatusApproved).Return(true, nil)
		repo.On("WriteAudit", mock.Anything, mock.Anything).Return(errors.New("audit table missing"))

		assert.NoError(t, uc.ApproveAlumni(adminCtx(1), 5))
	})
}

func TestAdminSelfProtection(t *testing.T) {
	uc, repo := newAdminFixture()

	err := uc.SetRole(adminCtx(1), 1, domain.UpdateRoleRequest{IsSuperuser: boolPtr(false)})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))

	err = uc.SetActive(adminCtx(1), 1, domain.UpdateActiveRequest{IsActive: boolPtr(false)})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))

	err = uc.DeleteUser(adminCtx(1), 1)
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	repo.AssertNotCalled(t, "SetSuperuser", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestAdminDeleteUser(t *testing.T) {
	t.Run("Should invalidate employee counts", func(t *testing.T) {
		repo, cache := new(MockAdminRepo), new(MockCache)
		uc := usecase.NewAdminUsecase(repo, usecase.NewAuditTrail(repo, nil), cache)
		repo.On("DeleteUser", mock.Anything, int64(5)).Return(true, nil)
		repo.On("WriteAudit", mock.Anything, mock.Anything).Return(nil)
		cache.On("Delete", mock.Anything, []string{domain.EmployeeCountsCacheKey}).Return(nil)

		require.NoError(t, uc.DeleteUser(adminCtx(1), 5))
		cache.AssertExpectations(t)
	})

	t.Run("Should return 404 for unknown user without touching the cache", func(t *testing.T) {
		repo, cache := new(MockAdminRepo), new(MockCache)
		uc := usecase.NewAdminUsecase(repo, usecase.NewAuditTrail(repo, nil), cache)
		repo.On("DeleteUser", mock.Anything, int64(5)).Return(false, nil)

		err := uc.DeleteUser(adminCtx(1), 5)
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
		cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAdminSetRole(t *testing.T) {
	uc, repo := newAdminFixture()
	repo.On("SetSuperuser", mock.Anything, int64(2), true).Return(true, nil)
	repo.On("WriteAudit", mock.Anything, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Action == domain.AuditUpdateRole && e.Details["is_superuser"] == true
	})).Return(nil)

	require.NoError(t, uc.SetRole(adminCtx(1), 2, domain.UpdateRoleRequest{IsSuperuser: boolPtr(true)}))
	repo.AssertExpectations(t)
}

func exportUsers() []domain.User {
	return []domain.User{
		{
			ID:             7,
			Email:          "ada@example.com",
			FullName:       strPtr("Ada, Countess"),
			GraduationYear: intPtr(2015),
			Majors:         []string{"Math", "CS"},
			ProfileVisible: true,
			CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestAdminExport(t *testing.T) {
	t.Run("Should render CSV with quoted fields", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("ListAlumni", mock.Anything).Return(exportUsers(), nil)
		repo.On("WriteAudit", mock.Anything, mock.Anything).Return(nil)

		file, err := uc.ExportAlumni(adminCtx(1), domain.ExportCSV)
		require.NoError(t, err)
		assert.Contains(t, file.Filename, ".csv")

		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "FULL NAME", records[0][1])
		assert.Equal(t, "Ada, Countess", records[1][1])
		assert.Equal(t, "2015", records[1][3])
		assert.Equal(t, "Math; CS", records[1][4])
	})

	t.Run("Should render XLSX readable by excelize", func(t *testing.T) {
		uc, repo := newAdminFixture()
		repo.On("ListAlumni", mock.Anything).Return(exportUsers(), nil)
		repo.On("WriteAudit", mock.Anything, mock.Anything).Return(nil)

		file, err := uc.ExportAlumni(adminCtx(1), domain.ExportXLSX)
		require.NoError(t, err)

		wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		defer wb.Close()

		v, err := wb.GetCellValue("Alumni", "C2")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", v)
	})

	t.Run("Should reject unknown format", func(t *testing.T) {
		uc, _ := newAdminFixture()
		_, err := uc.ExportAlumni(adminCtx(1), domain.ExportFormat("pdf"))
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})
}
