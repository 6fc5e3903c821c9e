package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cargobridge/internal/config"
	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
	"cargobridge/internal/service/auth"
	"cargobridge/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func newAuthService(users *mocks.UserRepository, sessions *mocks.SessionRepository, emails *mocks.EmailService) auth.Service {
	return auth.NewService(users, sessions, emails, testConfig(), zap.NewNop())
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateUserInput{
		Email:    "budi@example.com",
		Password: "correct-horse",
		FullName: "Budi Santoso",
	}

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockEmails := new(mocks.EmailService)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), mockEmails)

		mockUsers.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email &&
				u.Role == string(domain.RoleCustomer) &&
				u.IsActive && !u.IsEmailVerified &&
				u.PasswordHash != input.Password
		})).Return(nil).Once()
		mockUsers.On("SetEmailVerificationToken", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
		mockEmails.On("SendEmailVerification", mock.Anything, input.Email, input.FullName, mock.AnythingOfType("string")).Return(nil).Maybe()

		user, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, string(domain.RoleCustomer), user.Role)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		mockUsers.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		_, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})

	t.Run("Elevated role ignored", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockEmails := new(mocks.EmailService)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), mockEmails)

		adminInput := input
		adminInput.Role = string(domain.RoleAdmin)

		mockUsers.On("ExistsByEmail", ctx, adminInput.Email).Return(false, nil).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == string(domain.RoleCustomer)
		})).Return(nil).Once()
		mockUsers.On("SetEmailVerificationToken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		mockEmails.On("SendEmailVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		user, err := svc.Register(ctx, adminInput)

		assert.NoError(t, err)
		assert.Equal(t, string(domain.RoleCustomer), user.Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	password := "correct-horse"

	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:              uuid.New(),
			Email:           "budi@example.com",
			PasswordHash:    hashedPassword(t, password),
			FullName:        "Budi Santoso",
			Role:            string(domain.RoleCustomer),
			IsActive:        true,
			IsEmailVerified: true,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := newAuthService(mockUsers, mockSessions, new(mocks.EmailService))

		user := activeUser(t)
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		mockSessions.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: password})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Role, claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		user := activeUser(t)
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		mockUsers.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: password})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unverified email", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		user := activeUser(t)
		user.IsEmailVerified = false
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: password})

		assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
	})

	t.Run("Disabled account", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		user := activeUser(t)
		user.IsActive = false
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: password})

		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Rotates the session", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := newAuthService(mockUsers, mockSessions, new(mocks.EmailService))

		user := &domain.User{
			ID:              uuid.New(),
			Email:           "budi@example.com",
			Role:            string(domain.RoleCustomer),
			IsActive:        true,
			IsEmailVerified: true,
		}
		session := &repository.Session{ID: uuid.New(), UserID: user.ID}

		mockSessions.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(session, nil).Once()
		mockUsers.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		mockSessions.On("Revoke", ctx, session.ID).Return(nil).Once()
		mockSessions.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "old-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		mockSessions.AssertExpectations(t)
	})

	t.Run("Unknown token", func(t *testing.T) {
		mockSessions := new(mocks.SessionRepository)
		svc := newAuthService(new(mocks.UserRepository), mockSessions, new(mocks.EmailService))

		mockSessions.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "bogus")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success revokes sessions", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := newAuthService(mockUsers, mockSessions, new(mocks.EmailService))

		expires := time.Now().Add(time.Hour)
		user := &domain.User{ID: uuid.New(), PasswordResetExpiresAt: &expires}

		mockUsers.On("GetUserByResetToken", ctx, "reset-token").Return(user, nil).Once()
		mockUsers.On("Update", ctx, user).Return(nil).Once()
		mockUsers.On("ClearPasswordResetToken", ctx, user.ID).Return(nil).Once()
		mockSessions.On("RevokeAllForUser", ctx, user.ID).Return(nil).Once()

		assert.NoError(t, svc.ResetPassword(ctx, "reset-token", "new-password"))
		mockSessions.AssertExpectations(t)
	})

	t.Run("Expired token", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		expired := time.Now().Add(-time.Hour)
		user := &domain.User{ID: uuid.New(), PasswordResetExpiresAt: &expired}
		mockUsers.On("GetUserByResetToken", ctx, "stale").Return(user, nil).Once()

		assert.ErrorIs(t, svc.ResetPassword(ctx, "stale", "new-password"), auth.ErrTokenExpired)
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		sentAt := time.Now().Add(-time.Hour)
		user := &domain.User{ID: uuid.New(), EmailVerificationSentAt: &sentAt}
		mockUsers.On("GetUserByEmailVerificationToken", ctx, "verify-token").Return(user, nil).Once()
		mockUsers.On("VerifyEmail", ctx, user.ID).Return(nil).Once()

		assert.NoError(t, svc.VerifyEmail(ctx, "verify-token"))
	})

	t.Run("Expired token", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := newAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService))

		sentAt := time.Now().Add(-25 * time.Hour)
		user := &domain.User{ID: uuid.New(), EmailVerificationSentAt: &sentAt}
		mockUsers.On("GetUserByEmailVerificationToken", ctx, "stale").Return(user, nil).Once()

		assert.ErrorIs(t, svc.VerifyEmail(ctx, "stale"), auth.ErrVerificationTokenExpired)
	})
}
