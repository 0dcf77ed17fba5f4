package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tasknotes/internal/cache"
	"tasknotes/internal/storage/memory"
)

func newAuthFixture(t *testing.T, refreshTTL time.Duration) (AuthService, CaptchaService) {
	t.Helper()

	c := cache.NewMemory()
	captcha := NewCaptchaService(zerolog.Nop(), c, time.Minute)
	auth := NewAuthService(
		zerolog.Nop(),
		memory.New(),
		captcha,
		"tasknotes-test",
		[]byte("test-signing-key"),
		time.Minute,
		refreshTTL,
	)
	return auth, captcha
}

// solveCaptcha issues a challenge and computes the answer to its
// "a + b" question.
func solveCaptcha(t *testing.T, captcha CaptchaService) (string, string) {
	t.Helper()

	challenge, err := captcha.Issue(context.Background())
	if err != nil {
		t.Fatalf("issue captcha: %v", err)
	}

	fields := strings.Fields(challenge.Question)
	if len(fields) != 3 || fields[1] != "+" {
		t.Fatalf("unexpected captcha question %q", challenge.Question)
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		t.Fatalf("parse operand: %v", err)
	}
	b, err := strconv.Atoi(fields[2])
	if err != nil {
		t.Fatalf("parse operand: %v", err)
	}
	return challenge.ID, strconv.Itoa(a + b)
}

func TestLoginRejectsThenAuthenticates(t *testing.T) {
	auth, captcha := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, RegisterParams{
		Username:    "alice",
		Password:    "correct-horse",
		Fingerprint: "fp",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Three consecutive failures must reject without ever
	// producing a session.
	for i := 0; i < 3; i++ {
		captchaID, answer := solveCaptcha(t, captcha)
		_, err = auth.Login(ctx, LoginParams{
			Username:      "alice",
			Password:      "wrong-password",
			Fingerprint:   "fp",
			CaptchaID:     captchaID,
			CaptchaAnswer: answer,
		})
		if !errors.Is(err, ErrUserPasswordMismatch) {
			t.Fatalf("attempt %d: expected ErrUserPasswordMismatch, got %v", i+1, err)
		}
	}

	captchaID, answer := solveCaptcha(t, captcha)
	result, err := auth.Login(ctx, LoginParams{
		Username:      "alice",
		Password:      "correct-horse",
		Fingerprint:   "fp",
		CaptchaID:     captchaID,
		CaptchaAnswer: answer,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	claims, err := auth.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Subject != result.SessionID {
		t.Fatalf("expected subject %q, got %q", result.SessionID, claims.Subject)
	}
}

func TestLoginDistinguishesCaptchaFromCredentials(t *testing.T) {
	auth, captcha := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	if _, err := auth.Register(ctx, RegisterParams{
		Username:    "alice",
		Password:    "correct-horse",
		Fingerprint: "fp",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	captchaID, _ := solveCaptcha(t, captcha)
	_, err := auth.Login(ctx, LoginParams{
		Username:      "alice",
		Password:      "correct-horse",
		Fingerprint:   "fp",
		CaptchaID:     captchaID,
		CaptchaAnswer: "not a number",
	})
	if !errors.Is(err, ErrCaptchaMismatch) {
		t.Fatalf("expected ErrCaptchaMismatch, got %v", err)
	}

	captchaID, answer := solveCaptcha(t, captcha)
	_, err = auth.Login(ctx, LoginParams{
		Username:      "nobody",
		Password:      "whatever-pass",
		Fingerprint:   "fp",
		CaptchaID:     captchaID,
		CaptchaAnswer: answer,
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCaptchaSingleUse(t *testing.T) {
	_, captcha := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	captchaID, answer := solveCaptcha(t, captcha)
	if err := captcha.Verify(ctx, captchaID, answer); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := captcha.Verify(ctx, captchaID, answer); !errors.Is(err, ErrCaptchaMismatch) {
		t.Fatalf("expected ErrCaptchaMismatch on reuse, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth, _ := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	params := RegisterParams{
		Username:    "alice",
		Password:    "correct-horse",
		Fingerprint: "fp",
	}
	if _, err := auth.Register(ctx, params); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := auth.Register(ctx, params); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLoginKeepsSingleActiveSession(t *testing.T) {
	auth, captcha := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	first, err := auth.Register(ctx, RegisterParams{
		Username:    "alice",
		Password:    "correct-horse",
		Fingerprint: "fp",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	captchaID, answer := solveCaptcha(t, captcha)
	second, err := auth.Login(ctx, LoginParams{
		Username:      "alice",
		Password:      "correct-horse",
		Fingerprint:   "fp",
		CaptchaID:     captchaID,
		CaptchaAnswer: answer,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := auth.GetSessionByID(ctx, second.SessionID); err != nil {
		t.Fatalf("expected the new session to exist, got %v", err)
	}
	if _, err := auth.GetSessionByID(ctx, first.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected the old session to be invalidated, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	auth, _ := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterParams{
		Username:    "alice",
		Password:    "correct-horse",
		Fingerprint: "fp",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := auth.Refresh(ctx, RefreshParams{
		RefreshToken: registered.RefreshToken,
		Fingerprint:  "fp",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Fatal("expected a rotated refresh token")
	}

	// The old token is gone after rotation.
	if _, err := auth.Refresh(ctx, RefreshParams{
		RefreshToken: registered.RefreshToken,
		Fingerprint:  "fp",
	}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRefreshExpiredSession(t *testing.T) {
	auth, _ := newAuthFixture(t, -time.Minute)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterParams{
		Username:    "alice",
		Password:    "correct-horse",
		Fingerprint: "fp",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Refresh(ctx, RefreshParams{
		RefreshToken: registered.RefreshToken,
		Fingerprint:  "fp",
	}); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestLogoutInvalidatesSessions(t *testing.T) {
	auth, _ := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterParams{
		Username:    "alice",
		Password:    "correct-horse",
		Fingerprint: "fp",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := auth.Logout(ctx, registered.UserID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.GetSessionByID(ctx, registered.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}
