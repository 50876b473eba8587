package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestTokensConsumeIsSingleUse(t *testing.T) {
	s := NewTokens()
	s.Set("otp:user:a@b.com", "123456", time.Minute)

	v, ok := s.Peek("otp:user:a@b.com")
	assert.True(t, ok)
	assert.Equal(t, "123456", v)

	assert.Equal(t, "123456", s.Consume("otp:user:a@b.com"))
	assert.Equal(t, "", s.Consume("otp:user:a@b.com"))
	assert.Equal(t, "", s.Consume("missing"))
}

func TestTokensExpiry(t *testing.T) {
	now := time.Now()
	s := NewTokens()
	s.now = func() time.Time { return now }

	s.Set("a", "1", time.Minute)
	s.Set("b", "2", time.Hour)

	now = now.Add(2 * time.Minute)

	_, ok := s.Peek("a")
	assert.False(t, ok)
	assert.Equal(t, "", s.Consume("a"))

	s.Set("c", "3", time.Second)
	now = now.Add(time.Minute)
	s.Sweep()
	assert.Equal(t, 1, s.Len())
	v, ok := s.Peek("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestTokensJanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewTokens()
	s.StartJanitor(time.Millisecond)
	s.Set("gone", "x", time.Nanosecond)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
}

func TestAccountSessionRevoked(t *testing.T) {
	s := NewTokens()
	at := time.Unix(1_700_000_000, 0)

	assert.False(t, AccountSessionRevoked(s, 4, at))

	RevokeAccountSessions(s, 4, at, time.Hour)
	assert.True(t, AccountSessionRevoked(s, 4, at.Add(-time.Minute)))
	assert.True(t, AccountSessionRevoked(s, 4, at))
	assert.False(t, AccountSessionRevoked(s, 4, at.Add(time.Second)))
	assert.False(t, AccountSessionRevoked(s, 5, at))
}
