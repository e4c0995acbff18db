// Package otp issues and checks the one-time codes that gate session creation.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CodeLength matches the four-box OTP input of the client.
const CodeLength = 4

const DefaultTTL = 5 * time.Minute

// MaxAttempts is how many wrong codes a phone may submit before its pending code is
// discarded. The lock lasts for the code TTL.
const MaxAttempts = 5

type Issuer interface {
	Issue(ctx context.Context, phone string) error
}

// Verifier checks a code without spending it. Consume spends it once the caller
// has finished authenticating.
type Verifier interface {
	Check(ctx context.Context, phone, code string) (bool, error)
	Consume(ctx context.Context, phone string) error
}

// Service issues and verifies codes.
type Service interface {
	Issuer
	Verifier
}

// Sender delivers a code to the phone owner.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log. Only for setups without an SMS gateway.
type LogSender struct {
	Log zerolog.Logger
}

func (s LogSender) Send(_ context.Context, phone, code string) error {
	s.Log.Info().Str("phone", phone).Str("otp", code).Msg("otp issued")
	return nil
}

// PhoneSuffix accepts the last four digits of the phone number as the code.
// Development only: anyone who knows the number knows the code.
type PhoneSuffix struct{}

func (PhoneSuffix) Issue(context.Context, string) error { return nil }

func (PhoneSuffix) Check(_ context.Context, phone, code string) (bool, error) {
	if len(phone) < CodeLength || code == "" {
		return false, nil
	}
	return code == phone[len(phone)-CodeLength:], nil
}

func (PhoneSuffix) Consume(context.Context, string) error { return nil }

// RedisStore keeps one pending code per phone with a TTL. Wrong guesses are counted
// per phone; after MaxAttempts the code is dropped and the phone stays locked until
// the counter expires.
type RedisStore struct {
	client redis.Cmdable
	sender Sender
	ttl    time.Duration
	gen    func() (string, error)
}

func NewRedisStore(client redis.Cmdable, sender Sender, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, sender: sender, ttl: ttl, gen: generateCode}
}

func key(phone string) string {
	return "otp:" + phone
}

func attemptsKey(phone string) string {
	return "otp:attempts:" + phone
}

func (s *RedisStore) Issue(ctx context.Context, phone string) error {
	code, err := s.gen()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.client.Set(ctx, key(phone), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return s.sender.Send(ctx, phone, code)
}

func (s *RedisStore) Check(ctx context.Context, phone, code string) (bool, error) {
	attempts, err := s.client.Get(ctx, attemptsKey(phone)).Int()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("load otp attempts: %w", err)
	}
	if attempts >= MaxAttempts {
		return false, nil
	}

	stored, err := s.client.Get(ctx, key(phone)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load otp: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
		return true, nil
	}
	return false, s.fail(ctx, phone)
}

func (s *RedisStore) fail(ctx context.Context, phone string) error {
	n, err := s.client.Incr(ctx, attemptsKey(phone)).Result()
	if err != nil {
		return fmt.Errorf("count otp attempt: %w", err)
	}
	if n == 1 {
		if err := s.client.Expire(ctx, attemptsKey(phone), s.ttl).Err(); err != nil {
			return fmt.Errorf("expire otp attempts: %w", err)
		}
	}
	if n >= MaxAttempts {
		if err := s.client.Del(ctx, key(phone)).Err(); err != nil {
			return fmt.Errorf("discard otp: %w", err)
		}
	}
	return nil
}

// Consume deletes the pending code and the attempt counter.
func (s *RedisStore) Consume(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, key(phone), attemptsKey(phone)).Err(); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}

func generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
