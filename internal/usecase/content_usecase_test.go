package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"alumni-network-backend/internal/domain"
	"alumni-network-backend/internal/usecase"
	"alumni-network-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessTree(t *testing.T) {
	t.Run("Should return 404 for unknown company", func(t *testing.T) {
		repo, companies := new(MockProcessRepo), new(MockCompanyRepo)
		uc := usecase.NewProcessUsecase(repo, companies)
		companies.On("Get", mock.Anything, "Nowhere").Return(nil, nil)

		_, err := uc.CompanyProcess(context.Background(), "Nowhere")
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})

	t.Run("Should return empty positions for company without process", func(t *testing.T) {
		repo, companies := new(MockProcessRepo), new(MockCompanyRepo)
		uc := usecase.NewProcessUsecase(repo, companies)
		companies.On("Get", mock.Anything, "Acme").Return(&domain.Company{Name: "Acme"}, nil)
		repo.On("ListPositions", mock.Anything, "Acme").Return([]domain.InterviewPosition{}, nil)
		repo.On("ListRounds", mock.Anything, []int64{}).Return([]domain.InterviewRound{}, nil)
		repo.On("ListTips", mock.Anything, []int64{}).Return([]domain.InterviewTip{}, nil)

		cp, err := uc.CompanyProcess(context.Background(), "Acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme", cp.CompanyName)
		assert.NotNil(t, cp.Positions)
		assert.Empty(t, cp.Positions)
	})

	t.Run("Should nest rounds and tips", func(t *testing.T) {
		repo, companies := new(MockProcessRepo), new(MockCompanyRepo)
		uc := usecase.NewProcessUsecase(repo, companies)
		companies.On("Get", mock.Anything, "Acme").Return(&domain.Company{Name: "Acme"}, nil)
		repo.On("ListPositions", mock.Anything, "Acme").Return([]domain.InterviewPosition{{ID: 1, CompanyName: "Acme", Title: "SWE"}}, nil)
		repo.On("ListRounds", mock.Anything, []int64{1}).Return([]domain.InterviewRound{
			{ID: 11, PositionID: 1, Sequence: 2, RoundName: "Onsite"},
			{ID: 10, PositionID: 1, Sequence: 1, RoundName: "Phone"},
		}, nil)
		repo.On("ListTips", mock.Anything, []int64{11, 10}).Return([]domain.InterviewTip{{ID: 100, RoundID: 10, Tip: "Practice"}}, nil)

		cp, err := uc.CompanyProcess(context.Background(), "Acme")
		require.NoError(t, err)
		require.Len(t, cp.Positions, 1)
		rounds := cp.Positions[0].Rounds
		require.Len(t, rounds, 2)
		assert.Equal(t, "Phone", rounds[0].RoundName)
		assert.Len(t, rounds[0].Tips, 1)
		assert.Empty(t, rounds[1].Tips)
	})
}

func TestProcessCreate(t *testing.T) {
	t.Run("Should default difficulty to Medium", func(t *testing.T) {
		repo := new(MockProcessRepo)
		uc := usecase.NewProcessUsecase(repo, new(MockCompanyRepo))
		repo.On("GetPosition", mock.Anything, int64(1)).Return(&domain.InterviewPosition{ID: 1}, nil)
		repo.On("CreateRound", mock.Anything, mock.MatchedBy(func(r *domain.InterviewRound) bool {
			return r.Difficulty == domain.DifficultyMedium && r.PositionID == 1 && *r.CreatedBy == 3
		})).Return(nil)

		_, err := uc.CreateRound(userCtx(3), 1, domain.CreateRoundRequest{RoundName: "Phone screen"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject unknown difficulty", func(t *testing.T) {
		uc := usecase.NewProcessUsecase(new(MockProcessRepo), new(MockCompanyRepo))
		_, err := uc.CreateRound(userCtx(3), 1, domain.CreateRoundRequest{RoundName: "X", Difficulty: "Brutal"})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should enforce tip length", func(t *testing.T) {
		uc := usecase.NewProcessUsecase(new(MockProcessRepo), new(MockCompanyRepo))

		_, err := uc.CreateTip(userCtx(3), 1, domain.CreateTipRequest{Tip: "   "})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))

		_, err = uc.CreateTip(userCtx(3), 1, domain.CreateTipRequest{Tip: strings.Repeat("é", domain.MaxTipLength+1)})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should accept tip at exactly the limit", func(t *testing.T) {
		repo := new(MockProcessRepo)
		uc := usecase.NewProcessUsecase(repo, new(MockCompanyRepo))
		repo.On("GetRound", mock.Anything, int64(1)).Return(&domain.InterviewRound{ID: 1}, nil)
		repo.On("CreateTip", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.CreateTip(userCtx(3), 1, domain.CreateTipRequest{Tip: strings.Repeat("é", domain.MaxTipLength)})
		assert.NoError(t, err)
	})
}

func TestProcessDeleteTip(t *testing.T) {
	author := int64(3)

	t.Run("Should forbid other users", func(t *testing.T) {
		repo := new(MockProcessRepo)
		uc := usecase.NewProcessUsecase(repo, new(MockCompanyRepo))
		repo.On("GetTip", mock.Anything, int64(9)).Return(&domain.InterviewTip{ID: 9, CreatedBy: &author}, nil)

		err := uc.DeleteTip(userCtx(4), 9)
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("Should allow admins", func(t *testing.T) {
		repo := new(MockProcessRepo)
		uc := usecase.NewProcessUsecase(repo, new(MockCompanyRepo))
		repo.On("GetTip", mock.Anything, int64(9)).Return(&domain.InterviewTip{ID: 9, CreatedBy: &author}, nil)
		repo.On("DeleteTip", mock.Anything, int64(9)).Return(nil)

		assert.NoError(t, uc.DeleteTip(adminCtx(1), 9))
	})
}

func TestEmploymentCreate(t *testing.T) {
	t.Run("Should reject unknown type", func(t *testing.T) {
		uc := usecase.NewEmploymentUsecase(new(MockEmploymentRepo), nil)
		_, err := uc.Create(userCtx(1), domain.CreateEmploymentRequest{CompanyName: "Acme", Role: "SWE", Type: "contract", Start: "2020-01-01"})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should reject end before start", func(t *testing.T) {
		uc := usecase.NewEmploymentUsecase(new(MockEmploymentRepo), nil)
		_, err := uc.Create(userCtx(1), domain.CreateEmploymentRequest{
			CompanyName: "Acme", Role: "SWE", Type: "full time", Start: "2020-01-01", End: strPtr("2019-12-31"),
		})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should invalidate employee counts for current job", func(t *testing.T) {
		repo, cache := new(MockEmploymentRepo), new(MockCache)
		uc := usecase.NewEmploymentUsecase(repo, cache)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Employment) bool {
			return e.UserID == 1 && e.Type == domain.EmploymentInternship && e.Current()
		})).Return(nil)
		cache.On("Delete", mock.Anything, []string{domain.EmployeeCountsCacheKey}).Return(nil)

		e, err := uc.Create(userCtx(1), domain.CreateEmploymentRequest{CompanyName: " Acme ", Role: "Intern", Type: "Internship", Start: "2024-06-01"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", e.CompanyName)
		cache.AssertExpectations(t)
	})
}

func TestEmploymentDelete(t *testing.T) {
	t.Run("Should forbid deleting someone else's record", func(t *testing.T) {
		repo := new(MockEmploymentRepo)
		uc := usecase.NewEmploymentUsecase(repo, nil)
		repo.On("Get", mock.Anything, int64(4)).Return(&domain.Employment{ID: 4, UserID: 2}, nil)

		err := uc.Delete(userCtx(1), 4)
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("Should return 404 when missing", func(t *testing.T) {
		repo := new(MockEmploymentRepo)
		uc := usecase.NewEmploymentUsecase(repo, nil)
		repo.On("Get", mock.Anything, int64(4)).Return(nil, nil)

		err := uc.Delete(userCtx(1), 4)
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})
}

func TestInterviewBulk(t *testing.T) {
	valid := domain.CreateInterviewRequest{CompanyName: "Acme", Role: "SWE", Season: "Fall 2024"}

	t.Run("Should name the failing index", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, nil)

		bad := valid
		bad.Season = ""
		_, err := uc.CreateBulk(userCtx(1), []domain.CreateInterviewRequest{valid, bad})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Contains(t, appErr.Message, "index 1")
		repo.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a blank company name", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, nil)

		blank := valid
		blank.CompanyName = "   "
		_, err := uc.CreateBulk(userCtx(1), []domain.CreateInterviewRequest{blank})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))

		_, err = uc.Create(userCtx(1), blank)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		repo.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should insert all rows and report total", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, nil)
		repo.On("CreateBulk", mock.Anything, mock.MatchedBy(func(ivs []*domain.Interview) bool {
			return len(ivs) == 2 && ivs[0].UserID == 1 && ivs[1].UserID == 1
		})).Return(int64(42), nil)

		batch, err := uc.CreateBulk(userCtx(1), []domain.CreateInterviewRequest{valid, valid})
		require.NoError(t, err)
		assert.Len(t, batch.Data, 2)
		assert.Equal(t, int64(42), batch.Count)
	})
}

func TestCompanyEmployeeCounts(t *testing.T) {
	t.Run("Should serve from cache", func(t *testing.T) {
		repo, cache := new(MockCompanyRepo), new(MockCache)
		uc := usecase.NewCompanyUsecase(repo, cache, usecase.ImageUploads{}, nil)
		cache.On("Get", mock.Anything, domain.EmployeeCountsCacheKey, mock.Anything).Return(true, nil)

		_, err := uc.EmployeeCounts(context.Background())
		require.NoError(t, err)
		repo.AssertNotCalled(t, "EmployeeCounts", mock.Anything)
	})

	t.Run("Should fill cache on miss", func(t *testing.T) {
		repo, cache := new(MockCompanyRepo), new(MockCache)
		uc := usecase.NewCompanyUsecase(repo, cache, usecase.ImageUploads{}, nil)
		counts := []domain.EmployeeCount{{CompanyName: "Acme", EmployeeCount: 3}}
		cache.On("Get", mock.Anything, domain.EmployeeCountsCacheKey, mock.Anything).Return(false, nil)
		repo.On("EmployeeCounts", mock.Anything).Return(counts, nil)
		cache.On("Set", mock.Anything, domain.EmployeeCountsCacheKey, counts, mock.Anything).Return(nil)

		got, err := uc.EmployeeCounts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, counts, got)
		cache.AssertExpectations(t)
	})

	t.Run("Should exclude the caller from current employees", func(t *testing.T) {
		repo := new(MockCompanyRepo)
		uc := usecase.NewCompanyUsecase(repo, nil, usecase.ImageUploads{}, nil)
		repo.On("CurrentEmployees", mock.Anything, "Acme", int64(5), domain.Pagination{Page: 1, PageSize: 20}).
			Return([]domain.PublicProfile{}, int64(0), nil)

		res, err := uc.CurrentEmployees(userCtx(5), "Acme", domain.Pagination{})
		require.NoError(t, err)
		assert.Equal(t, 0, res.TotalPages)
		repo.AssertExpectations(t)
	})
}

func TestCompanyLogoRequiresAdmin(t *testing.T) {
	uc := usecase.NewCompanyUsecase(new(MockCompanyRepo), nil, usecase.ImageUploads{}, nil)
	_, err := uc.UploadLogo(userCtx(1), "Acme", "logo.png", []byte("x"))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
}
