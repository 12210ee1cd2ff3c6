package usecase_test

import (
	"errors"
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

type connectionFixture struct {
	uc       domain.ConnectionUsecase
	repo     *MockConnectionRepo
	users    *MockUserRepo
	emails   *MockEmailRepo
	notifier *MockNotifier
}

func newConnectionFixture() *connectionFixture {
	f := &connectionFixture{
		repo:     new(MockConnectionRepo),
		users:    new(MockUserRepo),
		emails:   new(MockEmailRepo),
		notifier: new(MockNotifier),
	}
	f.uc = usecase.NewConnectionUsecase(f.repo, f.users, f.emails, f.notifier)
	return f
}

func TestConnectionSend(t *testing.T) {
	t.Run("Should reject requesting yourself", func(t *testing.T) {
		f := newConnectionFixture()
		_, err := f.uc.Send(userCtx(1), domain.CreateConnectionRequest{RequestedID: 1})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should reject overlong message", func(t *testing.T) {
		f := newConnectionFixture()
		msg := strings.Repeat("a", domain.MaxConnectionMessageLength+1)
		_, err := f.uc.Send(userCtx(1), domain.CreateConnectionRequest{RequestedID: 2, Message: &msg})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should return 404 for inactive target", func(t *testing.T) {
		f := newConnectionFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, IsActive: false}, nil)

		_, err := f.uc.Send(userCtx(1), domain.CreateConnectionRequest{RequestedID: 2})
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})

	t.Run("Should reject when the other user already requested", func(t *testing.T) {
		f := newConnectionFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, IsActive: true}, nil)
		f.repo.On("GetByPair", mock.Anything, int64(2), int64(1)).Return(&domain.ConnectionRequest{ID: 7, Status: domain.ConnectionPending}, nil)

		_, err := f.uc.Send(userCtx(1), domain.CreateConnectionRequest{RequestedID: 2})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "already requested you")
	})

	t.Run("Should reject duplicate pending request with 409", func(t *testing.T) {
		f := newConnectionFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, IsActive: true}, nil)
		f.repo.On("GetByPair", mock.Anything, int64(2), int64(1)).Return(nil, nil)
		f.repo.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(&domain.ConnectionRequest{ID: 8, Status: domain.ConnectionPending}, nil)

		_, err := f.uc.Send(userCtx(1), domain.CreateConnectionRequest{RequestedID: 2})
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	})

	t.Run("Should reopen a declined request", func(t *testing.T) {
		f := newConnectionFixture()
		msg := "second try"
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Email: "b@example.com", IsActive: true}, nil)
		f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "a@example.com", FullName: strPtr("Ada")}, nil)
		f.repo.On("GetByPair", mock.Anything, int64(2), int64(1)).Return(nil, nil)
		f.repo.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(&domain.ConnectionRequest{ID: 8, Status: domain.ConnectionDeclined}, nil)
		f.repo.On("Reopen", mock.Anything, int64(8), mock.MatchedBy(func(m *string) bool { return m != nil && *m == msg })).
			Return(&domain.ConnectionRequest{ID: 8, RequesterID: 1, RequestedID: 2, Status: domain.ConnectionPending, Message: &msg}, nil)
		f.emails.On("Preferred", mock.Anything, int64(2)).Return("", nil)
		f.notifier.On("NotifyConnectionRequest", mock.Anything, "b@example.com", domain.ConnectionRequestNotice{RequesterName: "Ada", Message: msg}).Return(nil)

		cr, err := f.uc.Send(userCtx(1), domain.CreateConnectionRequest{RequestedID: 2, Message: &msg})
		require.NoError(t, err)
		assert.Equal(t, domain.ConnectionPending, cr.Status)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Should create request even if the email fails", func(t *testing.T) {
		f := newConnectionFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Email: "b@example.com", IsActive: true}, nil)
		f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "a@example.com"}, nil)
		f.repo.On("GetByPair", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(cr *domain.ConnectionRequest) bool {
			return cr.RequesterID == 1 && cr.RequestedID == 2 && cr.Status == domain.ConnectionPending && cr.Message == nil
		})).Return(nil)
		f.emails.On("Preferred", mock.Anything, int64(2)).Return("b.pref@example.com", nil)
		f.notifier.On("NotifyConnectionRequest", mock.Anything, "b.pref@example.com", mock.Anything).Return(errors.New("smtp down"))

		cr, err := f.uc.Send(userCtx(1), domain.CreateConnectionRequest{RequestedID: 2, Message: strPtr("   ")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), cr.RequesterID)
		f.repo.AssertExpectations(t)
	})
}

func TestConnectionRespond(t *testing.T) {
	pending := func() *domain.ConnectionRequest {
		return &domain.ConnectionRequest{ID: 5, RequesterID: 1, RequestedID: 2, Status: domain.ConnectionPending}
	}

	t.Run("Should forbid accept by someone other than the requested user", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(pending(), nil)

		_, err := f.uc.Accept(userCtx(1), 5)
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("Should reject answering a declined request", func(t *testing.T) {
		f := newConnectionFixture()
		cr := pending()
		cr.Status = domain.ConnectionDeclined
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(cr, nil)

		_, err := f.uc.Accept(userCtx(2), 5)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should accept and notify requester", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(pending(), nil)
		f.repo.On("Transition", mock.Anything, int64(5), domain.ConnectionPending, domain.ConnectionAccepted, mock.Anything).Return(true, nil)
		f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "a@example.com"}, nil)
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Email: "b@example.com", FullName: strPtr("Bea"), LinkedInURL: strPtr("https://linkedin.com/in/bea")}, nil)
		f.emails.On("Preferred", mock.Anything, int64(1)).Return("", nil)
		f.emails.On("Preferred", mock.Anything, int64(2)).Return("bea@work.example.com", nil)
		f.notifier.On("NotifyConnectionAccepted", mock.Anything, "a@example.com", domain.ConnectionAcceptedNotice{
			AccepterName: "Bea",
			ContactEmail: "bea@work.example.com",
			LinkedInURL:  "https://linkedin.com/in/bea",
		}).Return(nil)

		cr, err := f.uc.Accept(userCtx(2), 5)
		require.NoError(t, err)
		assert.Equal(t, domain.ConnectionAccepted, cr.Status)
		assert.NotNil(t, cr.RespondedAt)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Should report lost race on decline", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(pending(), nil)
		f.repo.On("Transition", mock.Anything, int64(5), domain.ConnectionPending, domain.ConnectionDeclined, mock.Anything).Return(false, nil)

		_, err := f.uc.Decline(userCtx(2), 5)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})
}

func TestConnectionWithdraw(t *testing.T) {
	t.Run("Should only let the requester withdraw", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.ConnectionRequest{ID: 5, RequesterID: 1, RequestedID: 2, Status: domain.ConnectionPending}, nil)

		err := f.uc.Withdraw(userCtx(2), 5)
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("Should refuse to withdraw an accepted request", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.ConnectionRequest{ID: 5, RequesterID: 1, RequestedID: 2, Status: domain.ConnectionAccepted}, nil)

		err := f.uc.Withdraw(userCtx(1), 5)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should delete pending request", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.ConnectionRequest{ID: 5, RequesterID: 1, RequestedID: 2, Status: domain.ConnectionPending}, nil)
		f.repo.On("DeletePending", mock.Anything, int64(5)).Return(true, nil)

		assert.NoError(t, f.uc.Withdraw(userCtx(1), 5))
	})
}

func TestConnectionLists(t *testing.T) {
	t.Run("Should reject unknown status filter", func(t *testing.T) {
		f := newConnectionFixture()
		_, err := f.uc.Incoming(userCtx(1), "maybe")
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should pass status filter through", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("ListOutgoing", mock.Anything, int64(1), mock.MatchedBy(func(s *domain.ConnectionStatus) bool {
			return s != nil && *s == domain.ConnectionPending
		})).Return([]domain.ConnectionView{{ConnectionRequest: domain.ConnectionRequest{ID: 3}}}, nil)

		views, err := f.uc.Outgoing(userCtx(1), "Pending")
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("Should forbid reading another user's accepted requests", func(t *testing.T) {
		f := newConnectionFixture()
		_, err := f.uc.AcceptedRequests(userCtx(1), 2)
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("Should list accepted requests received", func(t *testing.T) {
		f := newConnectionFixture()
		f.repo.On("ListIncoming", mock.Anything, int64(1), mock.MatchedBy(func(s *domain.ConnectionStatus) bool {
			return s != nil && *s == domain.ConnectionAccepted
		})).Return([]domain.ConnectionView{}, nil)

		views, err := f.uc.AcceptedRequested(userCtx(1), 1)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
