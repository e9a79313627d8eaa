package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"yamdb/internal/apperr"
	"yamdb/internal/config"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/validation"
	"yamdb/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAccess = "access"

var (
	ErrEmailMismatch      = apperr.Validation("email", "email does not match the registered user")
	ErrInvalidCode        = apperr.Validation("confirmation_code", "invalid confirmation code")
	ErrExpiredCode        = apperr.Validation("confirmation_code", "confirmation code has expired")
	ErrInvalidToken       = apperr.Authentication("invalid or expired token")
	ErrInactiveUser       = apperr.Authentication("user account is not active")
	ErrCodeDeliveryFailed = errors.New("confirmation code delivery failed")
)

// Claims is the payload of an access token.
type Claims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Type     string      `json:"type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Signup registers username/email or re-sends a code to an existing
	// account with the same email.
	Signup(ctx context.Context, req dto.SignupRequest) (*models.User, error)
	// IssueToken exchanges a confirmation code for an access token.
	IssueToken(ctx context.Context, req dto.TokenRequest) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	// Authenticate resolves a bearer token to the current user record.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codes          *auth.CodeGenerator
	sender         mailer.Sender
	jwtSecret      []byte
	accessTokenTTL time.Duration
	mailFrom       string
	now            func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes *auth.CodeGenerator,
	sender mailer.Sender,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          codes,
		sender:         sender,
		jwtSecret:      []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
		mailFrom:       cfg.MailFrom,
		now:            time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*models.User, error) {
	if err := validation.Account(req.Username, req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if user.Email != req.Email {
			return nil, ErrEmailMismatch
		}
	case errors.Is(err, repository.ErrUserNotFound):
		if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
			return nil, repository.ErrEmailTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		user = &models.User{
			Username: req.Username,
			Email:    req.Email,
			Role:     models.RoleUser,
			IsActive: false,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.sendCode(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) sendCode(ctx context.Context, user *models.User) error {
	now := s.now()
	code := s.codes.Make(stateOf(user), now)
	msg := mailer.ConfirmationMessage(s.mailFrom, user.Email, user.Username, code, now)
	if err := s.sender.Send(ctx, msg); err != nil {
		return apperr.Internal("could not send confirmation code", fmt.Errorf("%w: %v", ErrCodeDeliveryFailed, err))
	}
	slog.DebugContext(ctx, "confirmation code queued", "username", user.Username, "message_id", msg.ID)
	return nil
}

func (s *authService) IssueToken(ctx context.Context, req dto.TokenRequest) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}

	now := s.now()
	if err := s.codes.Check(stateOf(user), req.ConfirmationCode, now); err != nil {
		if errors.Is(err, auth.ErrExpiredCode) {
			return "", ErrExpiredCode
		}
		return "", ErrInvalidCode
	}

	// postgres keeps microseconds; truncate so the stored value matches the
	// one future codes are bound to
	loginAt := now.UTC().Truncate(time.Microsecond)
	ok, err := s.userRepo.Activate(ctx, user.ID, user.LastLogin, loginAt)
	if err != nil {
		return "", err
	}
	if !ok {
		// a concurrent exchange consumed this code first
		return "", ErrInvalidCode
	}
	user.IsActive = true
	user.LastLogin = &loginAt

	return s.generateAccessToken(user, now)
}

func (s *authService) generateAccessToken(user *models.User, now time.Time) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Type:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Internal("could not issue token", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenTypeAccess || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

func stateOf(user *models.User) auth.State {
	return auth.State{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
	}
}
