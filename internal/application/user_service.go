package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/soundem/soundem/internal/domain/entity"
	repo "github.com/soundem/soundem/internal/domain/repository"
	"github.com/soundem/soundem/pkg/helpers"
	"github.com/soundem/soundem/pkg/mailer"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService is the identity store: registration, credential checks, token
// issuance and resolution.
type UserService struct {
	Repo        repo.UserRepository
	Codec       *helpers.TokenCodec
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewUserService(r repo.UserRepository, codec *helpers.TokenCodec, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *UserService {
	return &UserService{Repo: r, Codec: codec, Pub: pub, Logger: logger, MailEnabled: mailEnabled}
}

// Register hashes the password and persists the user. A taken email fails
// with ErrDuplicateEmail; the existing user is untouched.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	digest, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, PasswordDigest: digest}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	// Welcome email is queued best-effort; registration never fails on it.
	if s.Pub != nil && s.MailEnabled {
		if err := s.Pub.PublishJSON(ctx, mailer.WelcomeJob(u.Email)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue welcome email")
		}
	}
	return u, nil
}

// Authenticate validates email/password without issuing a token.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.PasswordDigest, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken signs an auth token carrying the user id.
func (s *UserService) IssueToken(u *entity.User) (string, error) {
	return s.Codec.Encode(u.ID)
}

// Login authenticates and issues a token in one step.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.IssueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ResolveToken maps a token to its user. Bad tokens and tokens whose user no
// longer exists both come back as (nil, nil): anonymous, not an error.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.Codec.Decode(token)
	if err != nil || claims == nil {
		return nil, nil
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// GetProfile loads a user by id.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword is the only path that mutates a stored digest.
func (s *UserService) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	digest, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, id, digest); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
