package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aburtocampos/taskmanager/internal/auth/domain"
	"github.com/aburtocampos/taskmanager/internal/auth/repository"
	"github.com/aburtocampos/taskmanager/internal/common/clock"
	commoncrypto "github.com/aburtocampos/taskmanager/internal/common/crypto"
	commonerrors "github.com/aburtocampos/taskmanager/internal/common/errors"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
	"github.com/aburtocampos/taskmanager/internal/observability/metrics"
)

type AuthService struct {
	repo        repository.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	jwtSecret   []byte
	tokenTTL    time.Duration
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	repo repository.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	jwtSecret string,
	tokenTTL time.Duration,
	clk clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		clock:       clk,
		log:         log,
	}
}

type Credentials struct {
	Username string
	Password string
}

// Register persists a new user with a hashed password. No token is issued;
// the caller is expected to log in afterwards.
func (s *AuthService) Register(ctx context.Context, input Credentials) error {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if input.Username == "" || input.Password == "" {
		return ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return err
	}

	user := domain.User{
		ID:           domain.ID(id),
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, commonerrors.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			return ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return nil
}

// Login checks the credentials against the stored hash and returns a signed
// token carrying the user's identity, valid for the configured window.
func (s *AuthService) Login(ctx context.Context, input Credentials) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if input.Username == "" || input.Password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return "", ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		return "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return token, nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"usr": user.Username,
		"exp": now.Add(s.tokenTTL).Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.AccessTokensIssued.Inc()
	return token, nil
}
