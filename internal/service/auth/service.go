package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cargobridge/internal/config"
	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
	"cargobridge/internal/service/email"
)

var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrEmailExists              = errors.New("email already registered")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrUserNotFound             = errors.New("user not found")
	ErrTokenExpired             = errors.New("password reset token has expired")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrAccountDisabled          = errors.New("account is disabled")
	ErrVerificationTokenExpired = errors.New("email verification token has expired")
)

type Service interface {
	Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerificationEmail(ctx context.Context, email string) error
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	emailService email.Service
	cfg          *config.Config
	log          *zap.Logger
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, emailService email.Service, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		emailService: emailService,
		cfg:          cfg,
		log:          logger,
	}
}

// Register always creates a customer; elevated roles are assigned by an
// admin afterwards.
func (s *service) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:              uuid.New(),
		Email:           input.Email,
		PasswordHash:    string(hashedPassword),
		FullName:        input.FullName,
		Phone:           input.Phone,
		Company:         input.Company,
		Role:            string(domain.RoleCustomer),
		IsActive:        true,
		IsEmailVerified: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	verificationToken, err := randomToken()
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetEmailVerificationToken(ctx, user.ID, verificationToken, time.Now()); err != nil {
		return nil, err
	}

	go func() {
		if err := s.emailService.SendEmailVerification(context.Background(), user.Email, user.FullName, verificationToken); err != nil {
			s.log.Error("send verification email", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return user, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	if !user.IsEmailVerified {
		return nil, nil, ErrEmailNotVerified
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	tokenHash := hashToken(refreshToken)

	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	// Rotate: the old refresh token is single use.
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, user)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, session.ID)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) generateTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessClaims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw := uuid.New().String()

	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshTokenRaw),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		// No account enumeration: a missing email succeeds silently.
		return nil
	}

	resetToken, err := randomToken()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, resetToken, time.Now().Add(time.Hour)); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendPasswordResetEmail(context.Background(), user.Email, user.FullName, resetToken); err != nil {
			s.log.Error("send password reset email", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	if user.PasswordResetExpiresAt != nil && time.Now().After(*user.PasswordResetExpiresAt) {
		return ErrTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.userRepo.ClearPasswordResetToken(ctx, user.ID); err != nil {
		return err
	}

	// A password reset invalidates every open session.
	return s.sessionRepo.RevokeAllForUser(ctx, user.ID)
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.GetUserByEmailVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	if user.EmailVerificationSentAt != nil && time.Now().After(user.EmailVerificationSentAt.Add(24*time.Hour)) {
		return ErrVerificationTokenExpired
	}

	return s.userRepo.VerifyEmail(ctx, user.ID)
}

func (s *service) ResendVerificationEmail(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil || user.IsEmailVerified {
		return nil
	}

	verificationToken, err := randomToken()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetEmailVerificationToken(ctx, user.ID, verificationToken, time.Now()); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendEmailVerification(context.Background(), user.Email, user.FullName, verificationToken); err != nil {
			s.log.Error("send verification email", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return nil
}

func randomToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
