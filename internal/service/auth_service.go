package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"bookline/api/internal/config"
	"bookline/api/internal/ids"
	"bookline/api/internal/models"
	"bookline/api/internal/repository"
	"bookline/api/internal/security"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRegistrationClosed = errors.New("registration limit reached")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	users    UserStore
	sessions SessionStore
	bookings BookingStore
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	bookings BookingStore,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		bookings: bookings,
		cfg:      cfg,
		log:      log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	email := NormalizeEmail(input.Email)

	count, err := s.users.Count(ctx)
	if err != nil {
		return models.User{}, err
	}
	if count >= s.cfg.Security.RegistrationCap {
		return models.User{}, ErrRegistrationClosed
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.UserRoleUser,
		CreatedAt:    time.Now(),
	}
	if name := strings.TrimSpace(input.FullName); name != "" {
		user.FullName = &name
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and establishes a session row. The caller
// is responsible for turning the returned session into a cookie.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (models.User, models.Session, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, models.Session{}, ErrInvalidCredentials
		}
		return models.User{}, models.Session{}, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return models.User{}, models.Session{}, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	return user, session, nil
}

func (s *AuthService) createSession(ctx context.Context, user models.User) (models.Session, error) {
	sid, err := security.GenerateSessionID(32)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		SID: sid,
		Data: models.SessionData{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
		ExpiresAt: time.Now().Add(s.cfg.Session.TTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Logout destroys the server-side session. A missing or already-removed
// session is not an error; logout is idempotent from the client's view.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

// RequestPasswordReset reports success no matter what so responses
// cannot reveal whether an email is registered. No token is issued and
// no mail is sent; the reset flow past this point does not exist yet.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.log.Error().Err(err).Msg("password reset lookup failed")
	}
	s.log.Debug().Bool("known_email", err == nil).Msg("password reset requested")
	return nil
}

// CurrentUser resolves the user behind an authenticated session.
// Returns ErrUserNotFound when the session outlived its user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteAccount requires the current password to be re-entered, then
// removes the user's bookings, the user row and the session.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string, sid string, password string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	if err := s.bookings.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		s.log.Warn().Err(err).Msg("session cleanup after account deletion failed")
	}

	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
