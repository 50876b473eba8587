package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodbridge/internal/repositories"
	"foodbridge/internal/testutil"
	mem "foodbridge/pkg/memcache"
	"foodbridge/pkg/utils"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
	Otp     string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendMailToNotifyUser(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return f.err
}

func (f *fakeMailer) SendMailWithOtp(to, otp string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Otp: otp})
	return f.err
}

func (f *fakeMailer) Sent() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMail, len(f.sent))
	copy(out, f.sent)
	return out
}

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Model() string { return "fake-embedding" }

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	f.calls++
	if f.err != nil {
		return pgvector.Vector{}, f.err
	}
	return pgvector.NewVector([]float32{float32(len(text)), 1}), nil
}

type accountFixture struct {
	db     *gorm.DB
	svc    AccountServiceInterface
	tokens *mem.Tokens
	mailer *fakeMailer
	issuer *utils.TokenIssuer
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	db := testutil.NewDB(t)
	tokens := mem.NewTokens()
	mailer := &fakeMailer{}
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)

	return &accountFixture{
		db:     db,
		svc:    NewAccountService(repositories.NewAccountRepository(db), issuer, tokens, mailer, zap.NewNop()),
		tokens: tokens,
		mailer: mailer,
		issuer: issuer,
	}
}
