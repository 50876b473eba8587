package mem

import (
	"strconv"
	"sync"
	"time"
)

// TokenStore is a short-lived key/value store. It backs revoked session ids
// and password-reset codes.
type TokenStore interface {
	Set(key string, value string, ttl time.Duration)

	// Consume returns the value for key if not expired and removes it
	// (single-use). Returns "" if missing/expired.
	Consume(key string) string

	Peek(key string) (string, bool)
}

type entry struct {
	value     string
	expiresAt time.Time
}

type Tokens struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewTokens() *Tokens {
	return &Tokens{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *Tokens) Set(key string, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *Tokens) Consume(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return ""
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return ""
	}
	return e.value
}

func (s *Tokens) Peek(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (s *Tokens) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep drops every expired entry.
func (s *Tokens) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}

// StartJanitor sweeps every interval until Stop is called.
func (s *Tokens) StartJanitor(interval time.Duration) {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Tokens) Stop() {
	if s.stop == nil {
		return
	}
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// RevokedSessionKey marks a session id as logged out.
func RevokedSessionKey(tokenID string) string {
	return "revoked:" + tokenID
}

// AccountRevokedKey holds the unix second up to which every session of an
// account is void.
func AccountRevokedKey(accountID uint) string {
	return "revoked-account:" + strconv.FormatUint(uint64(accountID), 10)
}

// RevokeAccountSessions voids every session of accountID issued at or
// before at. ttl should cover the longest session lifetime.
func RevokeAccountSessions(store TokenStore, accountID uint, at time.Time, ttl time.Duration) {
	store.Set(AccountRevokedKey(accountID), strconv.FormatInt(at.Unix(), 10), ttl)
}

// AccountSessionRevoked reports whether a session of accountID issued at
// issuedAt has been voided by RevokeAccountSessions.
func AccountSessionRevoked(store TokenStore, accountID uint, issuedAt time.Time) bool {
	v, ok := store.Peek(AccountRevokedKey(accountID))
	if !ok {
		return false
	}
	cutoff, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return true
	}
	return issuedAt.Unix() <= cutoff
}

// OtpKey holds the pending password-reset code for an email within a role.
func OtpKey(role, email string) string {
	return "otp:" + role + ":" + email
}
