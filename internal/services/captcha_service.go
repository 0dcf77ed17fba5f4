package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tasknotes/internal/cache"
)

type captchaServiceImpl struct {
	logger zerolog.Logger
	cache  cache.Cache
	ttl    time.Duration
}

func NewCaptchaService(
	logger zerolog.Logger,
	c cache.Cache,
	ttl time.Duration,
) CaptchaService {
	return &captchaServiceImpl{
		logger: logger,
		cache:  c,
		ttl:    ttl,
	}
}

func (s *captchaServiceImpl) Issue(ctx context.Context) (*CaptchaChallenge, error) {
	a, err := randomInt(20)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate captcha operand")
		return nil, err
	}
	b, err := randomInt(20)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate captcha operand")
		return nil, err
	}

	challengeUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate captcha uuid")
		return nil, err
	}

	challenge := &CaptchaChallenge{
		ID:       challengeUUID.String(),
		Question: fmt.Sprintf("%d + %d", a, b),
	}
	answer := strconv.Itoa(a + b)
	s.cache.Set(ctx, cache.CaptchaKey(challenge.ID), []byte(answer), s.ttl)

	s.logger.Debug().
		Str("captcha_id", challenge.ID).
		Msg("issued captcha challenge")
	return challenge, nil
}

func (s *captchaServiceImpl) Verify(ctx context.Context, id, answer string) error {
	key := cache.CaptchaKey(id)
	expected, ok := s.cache.Get(ctx, key)
	if !ok {
		s.logger.Error().
			Str("captcha_id", id).
			Msg("captcha challenge not found or expired")
		return ErrCaptchaMismatch
	}
	// Single use: a challenge never survives its first verification.
	s.cache.Delete(ctx, key)

	if strings.TrimSpace(answer) != string(expected) {
		s.logger.Error().
			Str("captcha_id", id).
			Msg("captcha answer mismatch")
		return ErrCaptchaMismatch
	}

	s.logger.Debug().
		Str("captcha_id", id).
		Msg("verified captcha challenge")
	return nil
}

// randomInt returns a number in [1, max].
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return int(n.Int64()) + 1, nil
}
