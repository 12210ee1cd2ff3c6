package usecase_test

import (
	"context"
	"time"

	"alumni-network-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}
func (m *MockUserRepo) UpdateProfileImage(ctx context.Context, id int64, url string) error {
	return m.Called(ctx, id, url).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockEmailRepo struct {
	mock.Mock
}

func (m *MockEmailRepo) Add(ctx context.Context, e *domain.UserEmail) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEmailRepo) Get(ctx context.Context, email string) (*domain.UserEmail, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserEmail), args.Error(1)
}
func (m *MockEmailRepo) ListByUser(ctx context.Context, userID int64) ([]domain.UserEmail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.UserEmail), args.Error(1)
}
func (m *MockEmailRepo) SetPreferred(ctx context.Context, userID int64, email string) error {
	return m.Called(ctx, userID, email).Error(0)
}
func (m *MockEmailRepo) Delete(ctx context.Context, userID int64, email string) (bool, error) {
	args := m.Called(ctx, userID, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockEmailRepo) Preferred(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockDirectoryRepo struct {
	mock.Mock
}

func (m *MockDirectoryRepo) Search(ctx context.Context, f domain.AlumniFilter) ([]domain.PublicProfile, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.PublicProfile), args.Get(1).(int64), args.Error(2)
}
func (m *MockDirectoryRepo) GetVisible(ctx context.Context, id int64) (*domain.PublicProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicProfile), args.Error(1)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) List(ctx context.Context, p domain.Pagination) ([]domain.Company, int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]domain.Company), args.Get(1).(int64), args.Error(2)
}
func (m *MockCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCompanyRepo) Get(ctx context.Context, name string) (*domain.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyRepo) UpdateLogo(ctx context.Context, name, url string) error {
	return m.Called(ctx, name, url).Error(0)
}
func (m *MockCompanyRepo) EmployeeCounts(ctx context.Context) ([]domain.EmployeeCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EmployeeCount), args.Error(1)
}
func (m *MockCompanyRepo) CurrentEmployees(ctx context.Context, name string, excludeUserID int64, p domain.Pagination) ([]domain.PublicProfile, int64, error) {
	args := m.Called(ctx, name, excludeUserID, p)
	return args.Get(0).([]domain.PublicProfile), args.Get(1).(int64), args.Error(2)
}
func (m *MockCompanyRepo) AllEmployees(ctx context.Context, name string, p domain.Pagination) ([]domain.PublicProfile, int64, error) {
	args := m.Called(ctx, name, p)
	return args.Get(0).([]domain.PublicProfile), args.Get(1).(int64), args.Error(2)
}

type MockEmploymentRepo struct {
	mock.Mock
}

func (m *MockEmploymentRepo) Create(ctx context.Context, e *domain.Employment) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEmploymentRepo) Get(ctx context.Context, id int64) (*domain.Employment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employment), args.Error(1)
}
func (m *MockEmploymentRepo) Delete(ctx context.Context, e *domain.Employment) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEmploymentRepo) ListByUser(ctx context.Context, userID int64, p domain.Pagination) ([]domain.Employment, int64, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).([]domain.Employment), args.Get(1).(int64), args.Error(2)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}
func (m *MockInterviewRepo) CreateBulk(ctx context.Context, ivs []*domain.Interview) (int64, error) {
	args := m.Called(ctx, ivs)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockInterviewRepo) List(ctx context.Context, company string, p domain.Pagination) ([]domain.Interview, int64, error) {
	args := m.Called(ctx, company, p)
	return args.Get(0).([]domain.Interview), args.Get(1).(int64), args.Error(2)
}

type MockProcessRepo struct {
	mock.Mock
}

func (m *MockProcessRepo) ListPositions(ctx context.Context, company string) ([]domain.InterviewPosition, error) {
	args := m.Called(ctx, company)
	return args.Get(0).([]domain.InterviewPosition), args.Error(1)
}
func (m *MockProcessRepo) ListRounds(ctx context.Context, positionIDs []int64) ([]domain.InterviewRound, error) {
	args := m.Called(ctx, positionIDs)
	return args.Get(0).([]domain.InterviewRound), args.Error(1)
}
func (m *MockProcessRepo) ListTips(ctx context.Context, roundIDs []int64) ([]domain.InterviewTip, error) {
	args := m.Called(ctx, roundIDs)
	return args.Get(0).([]domain.InterviewTip), args.Error(1)
}
func (m *MockProcessRepo) CreatePosition(ctx context.Context, p *domain.InterviewPosition) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProcessRepo) GetPosition(ctx context.Context, id int64) (*domain.InterviewPosition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewPosition), args.Error(1)
}
func (m *MockProcessRepo) CreateRound(ctx context.Context, r *domain.InterviewRound) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockProcessRepo) GetRound(ctx context.Context, id int64) (*domain.InterviewRound, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRound), args.Error(1)
}
func (m *MockProcessRepo) CreateTip(ctx context.Context, t *domain.InterviewTip) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockProcessRepo) GetTip(ctx context.Context, id int64) (*domain.InterviewTip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewTip), args.Error(1)
}
func (m *MockProcessRepo) DeleteTip(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockConnectionRepo struct {
	mock.Mock
}

func (m *MockConnectionRepo) Create(ctx context.Context, cr *domain.ConnectionRequest) error {
	return m.Called(ctx, cr).Error(0)
}
func (m *MockConnectionRepo) GetByID(ctx context.Context, id int64) (*domain.ConnectionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConnectionRequest), args.Error(1)
}
func (m *MockConnectionRepo) GetByPair(ctx context.Context, requesterID, requestedID int64) (*domain.ConnectionRequest, error) {
	args := m.Called(ctx, requesterID, requestedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConnectionRequest), args.Error(1)
}
func (m *MockConnectionRepo) Reopen(ctx context.Context, id int64, message *string) (*domain.ConnectionRequest, error) {
	args := m.Called(ctx, id, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConnectionRequest), args.Error(1)
}
func (m *MockConnectionRepo) Transition(ctx context.Context, id int64, from, to domain.ConnectionStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockConnectionRepo) DeletePending(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockConnectionRepo) ListIncoming(ctx context.Context, userID int64, status *domain.ConnectionStatus) ([]domain.ConnectionView, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).([]domain.ConnectionView), args.Error(1)
}
func (m *MockConnectionRepo) ListOutgoing(ctx context.Context, userID int64, status *domain.ConnectionStatus) ([]domain.ConnectionView, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).([]domain.ConnectionView), args.Error(1)
}
func (m *MockConnectionRepo) ListAccepted(ctx context.Context, userID int64) ([]domain.ConnectionView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ConnectionView), args.Error(1)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) ListUsers(ctx context.Context, search string, p domain.Pagination) ([]domain.User, int64, error) {
	args := m.Called(ctx, search, p)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}
func (m *MockAdminRepo) ListPendingAlumni(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockAdminRepo) SetAlumniStatus(ctx context.Context, userID int64, isAlumni bool, status domain.AlumniStatus) (bool, error) {
	args := m.Called(ctx, userID, isAlumni, status)
	return args.Bool(0), args.Error(1)
}
func (m *MockAdminRepo) SetSuperuser(ctx context.Context, userID int64, isSuperuser bool) (bool, error) {
	args := m.Called(ctx, userID, isSuperuser)
	return args.Bool(0), args.Error(1)
}
func (m *MockAdminRepo) SetActive(ctx context.Context, userID int64, isActive bool) (bool, error) {
	args := m.Called(ctx, userID, isActive)
	return args.Bool(0), args.Error(1)
}
func (m *MockAdminRepo) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockAdminRepo) ListAlumni(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockAdminRepo) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAdminRepo) CountAlumni(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAdminRepo) CountPendingAlumni(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAdminRepo) CountConnections(ctx context.Context, status domain.ConnectionStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAdminRepo) WriteAudit(ctx context.Context, entry domain.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockAdminRepo) ListAudit(ctx context.Context, p domain.Pagination) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int64), args.Error(2)
}

type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) List(ctx context.Context, after *time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, after)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEventRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Mock ports
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}
func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}
func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyConnectionRequest(ctx context.Context, to string, n domain.ConnectionRequestNotice) error {
	return m.Called(ctx, to, n).Error(0)
}
func (m *MockNotifier) NotifyConnectionAccepted(ctx context.Context, to string, n domain.ConnectionAcceptedNotice) error {
	return m.Called(ctx, to, n).Error(0)
}

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(userID int64) (string, time.Time, error) {
	args := m.Called(userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokens) Verify(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	args := m.Called(ctx, email, ip)
	return args.Bool(0), args.Error(1)
}
func (m *MockGuard) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	args := m.Called(ctx, email, ip, userAgent, requestID)
	return args.Bool(0), args.Int(1), args.Error(2)
}
func (m *MockGuard) ClearAttempts(ctx context.Context, email, ip string) error {
	return m.Called(ctx, email, ip).Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) PutImage(ctx context.Context, prefix string, data []byte) (string, error) {
	args := m.Called(ctx, prefix, data)
	return args.String(0), args.Error(1)
}

// Context helpers
func userCtx(id int64) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, id)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleUser)
}

func adminCtx(id int64) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, id)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context, filename string, data []byte) error {
	args := m.Called(ctx, filename, data)
	return args.Error(0)
}
