package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookline/api/internal/config"
	"bookline/api/internal/models"
)

type authEnv struct {
	users    *memUserStore
	sessions *memSessionStore
	bookings *memBookingStore
	auth     *AuthService
}

func newAuthEnv(registrationCap int) authEnv {
	cfg := &config.AppConfig{
		Environment: "test",
		Session:     config.SessionConfig{TTL: time.Hour},
		Security:    config.SecurityConfig{RegistrationCap: registrationCap},
	}
	users := newMemUserStore()
	sessions := newMemSessionStore()
	bookings := newMemBookingStore()
	return authEnv{
		users:    users,
		sessions: sessions,
		bookings: bookings,
		auth:     NewAuthService(users, sessions, bookings, cfg, zerolog.Nop()),
	}
}

func TestRegisterAndDuplicateEmail(t *testing.T) {
	env := newAuthEnv(5)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterInput{
		Email:    "User@Example.com",
		Password: "Sup3rsecret",
		FullName: "Test User",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.NotEmpty(t, user.ID)

	_, err = env.auth.Register(ctx, RegisterInput{
		Email:    "user@example.com",
		Password: "Sup3rsecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterCapAppliesBeforeUniqueness(t *testing.T) {
	env := newAuthEnv(1)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Email: "first@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)

	// A brand new email still fails once the cap is reached.
	_, err = env.auth.Register(ctx, RegisterInput{Email: "second@example.com", Password: "Sup3rsecret"})
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestLoginEstablishesSession(t *testing.T) {
	env := newAuthEnv(5)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)

	user, session, err := env.auth.Login(ctx, LoginInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, session.SID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	stored, err := env.sessions.GetValid(ctx, session.SID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, stored.Data.UserID)
	assert.Equal(t, "user@example.com", stored.Data.Email)
	assert.Equal(t, models.UserRoleUser, stored.Data.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newAuthEnv(5)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)

	_, _, errUnknown := env.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "Sup3rsecret"})
	_, _, errWrongPw := env.auth.Login(ctx, LoginInput{Email: "user@example.com", Password: "wrongpassword"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newAuthEnv(5)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)
	_, session, err := env.auth.Login(ctx, LoginInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, session.SID))
	require.NoError(t, env.auth.Logout(ctx, session.SID))
	require.NoError(t, env.auth.Logout(ctx, ""))

	_, err = env.sessions.GetValid(ctx, session.SID)
	assert.Error(t, err)
}

func TestRequestPasswordResetNeverFails(t *testing.T) {
	env := newAuthEnv(5)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)

	assert.NoError(t, env.auth.RequestPasswordReset(ctx, "user@example.com"))
	assert.NoError(t, env.auth.RequestPasswordReset(ctx, "unknown@example.com"))
}

func TestCurrentUserStaleSession(t *testing.T) {
	env := newAuthEnv(5)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)

	got, err := env.auth.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	require.NoError(t, env.users.Delete(ctx, user.ID))

	_, err = env.auth.CurrentUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newAuthEnv(5)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)
	_, session, err := env.auth.Login(ctx, LoginInput{Email: "user@example.com", Password: "Sup3rsecret"})
	require.NoError(t, err)

	bookingSvc := NewBookingService(env.bookings, zerolog.Nop())
	_, err = bookingSvc.Create(ctx, user.ID, CreateBookingInput{
		Date:          time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		TimeSlot:      "10:00-11:00",
		City:          "tampere",
		Address:       "X",
		PhoneNumber:   "+358401234567",
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	t.Run("wrong password rejected", func(t *testing.T) {
		err := env.auth.DeleteAccount(ctx, user.ID, session.SID, "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	require.NoError(t, env.auth.DeleteAccount(ctx, user.ID, session.SID, "Sup3rsecret"))

	_, err = env.users.FindByEmail(ctx, "user@example.com")
	assert.Error(t, err)

	bookings, err := env.bookings.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	_, err = env.sessions.GetValid(ctx, session.SID)
	assert.Error(t, err)
}
