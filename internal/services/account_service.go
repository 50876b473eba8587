package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/models/response_models"
	"foodbridge/internal/repositories"
	mem "foodbridge/pkg/memcache"
	"foodbridge/pkg/utils"
)

const otpTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Authenticate(ctx context.Context, email, password, role string) (*db_models.Account, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time)
	Me(ctx context.Context, accountID uint) (*db_models.Account, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*db_models.Account, error)
	CreateAdmin(ctx context.Context, name, email, password string) (*db_models.Account, error)
	UpdateProfile(ctx context.Context, accountID uint, request request_models.UpdateProfileRequest) (*db_models.Account, error)
	ForgotPassword(ctx context.Context, request request_models.RequestForgotPassword) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	issuer      *utils.TokenIssuer
	tokens      mem.TokenStore
	mail        IMailService
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	issuer *utils.TokenIssuer,
	tokens mem.TokenStore,
	mail IMailService,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		issuer:      issuer,
		tokens:      tokens,
		mail:        mail,
		logger:      logger,
	}
}

func dbError(err error) error {
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate resolves the account for (email, password) within the claimed
// role. Every account sharing the email is checked, so an older duplicate
// row never shadows the one whose password actually matches.
func (a *AccountService) Authenticate(ctx context.Context, email, password, role string) (*db_models.Account, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, utils.NewValidationError("Email and password are required")
	}
	r, ok := db_models.ParseRole(role)
	if !ok {
		return nil, utils.ErrInvalidRole
	}

	candidates, err := a.accountRepo.FindByRoleAndEmail(ctx, r, email)
	if err != nil {
		return nil, dbError(err)
	}

	for i := range candidates {
		if utils.ComparePasswords(candidates[i].PasswordHash, password) == nil {
			return &candidates[i], nil
		}
	}
	return nil, utils.ErrInvalidCredentials
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.Authenticate(ctx, request.Email, request.Password, request.Role)
	if err != nil {
		return nil, err
	}

	token, claims, err := a.issuer.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	a.logger.Info("login",
		zap.Uint("account_id", account.ID),
		zap.String("role", string(account.Role)),
		zap.Duration("took", time.Since(startTime)))

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: utils.FormatRFC3339(claims.ExpiresAt.Time),
		Account:   response_models.NewAccountResponse(account),
	}, nil
}

// Logout revokes the session id until the token would have expired anyway.
func (a *AccountService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return
	}
	a.tokens.Set(mem.RevokedSessionKey(tokenID), "1", ttl)
}

func (a *AccountService) Me(ctx context.Context, accountID uint) (*db_models.Account, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, dbError(err)
	}
	if account == nil {
		// The token outlived its account.
		return nil, utils.ErrUnauthorized
	}
	return account, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*db_models.Account, error) {
	role, ok := db_models.ParseRole(request.Role)
	if !ok || !role.SelfRegistrable() {
		return nil, utils.ErrInvalidRole
	}

	account := &db_models.Account{
		Name:    strings.TrimSpace(request.DisplayName),
		Email:   normalizeEmail(request.Email),
		Phone:   strings.TrimSpace(request.Phone),
		Address: strings.TrimSpace(request.Address),
		Role:    role,
	}
	if err := a.insertAccount(ctx, account, request.Password); err != nil {
		return nil, err
	}
	return account, nil
}

// CreateAdmin is only reachable from the command line.
func (a *AccountService) CreateAdmin(ctx context.Context, name, email, password string) (*db_models.Account, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || len(password) < 6 {
		return nil, utils.NewValidationError("name, email and a password of at least 6 characters are required")
	}

	account := &db_models.Account{
		Name:  strings.TrimSpace(name),
		Email: normalizeEmail(email),
		Role:  db_models.RoleAdmin,
	}
	if err := a.insertAccount(ctx, account, password); err != nil {
		return nil, err
	}
	return account, nil
}

func (a *AccountService) insertAccount(ctx context.Context, account *db_models.Account, password string) error {
	existing, err := a.accountRepo.FindByRoleAndEmail(ctx, account.Role, account.Email)
	if err != nil {
		return dbError(err)
	}
	if len(existing) > 0 {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hashedPassword

	if err := a.accountRepo.InsertTx(ctx, account); err != nil {
		return dbError(err)
	}
	return nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, accountID uint, request request_models.UpdateProfileRequest) (*db_models.Account, error) {
	account, err := a.Me(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if request.DisplayName != nil {
		account.Name = strings.TrimSpace(*request.DisplayName)
	}
	if request.Phone != nil {
		account.Phone = strings.TrimSpace(*request.Phone)
	}
	if request.Address != nil {
		account.Address = strings.TrimSpace(*request.Address)
	}
	if request.Password != nil {
		hashedPassword, err := utils.HashPassword(*request.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hashedPassword
	}

	if err := a.accountRepo.Update(ctx, account); err != nil {
		return nil, dbError(err)
	}
	return account, nil
}

// ForgotPassword mails a one-time code to every account registered with the
// email in that role, one code per account, so each one can be reset on its
// own. Callers get the same answer either way.
func (a *AccountService) ForgotPassword(ctx context.Context, request request_models.RequestForgotPassword) error {
	role, ok := db_models.ParseRole(request.Role)
	if !ok {
		return utils.ErrInvalidRole
	}

	candidates, err := a.accountRepo.FindByRoleAndEmail(ctx, role, request.Email)
	if err != nil {
		return dbError(err)
	}
	if len(candidates) == 0 {
		return nil
	}

	codes := make([]string, 0, len(candidates))
	entries := make([]string, 0, len(candidates))
	for _, account := range candidates {
		otp, err := a.uniqueOtp(codes)
		if err != nil {
			return fmt.Errorf("generate otp: %w", err)
		}
		codes = append(codes, otp)
		entries = append(entries, otp+"|"+strconv.FormatUint(uint64(account.ID), 10))
	}
	a.tokens.Set(mem.OtpKey(string(role), normalizeEmail(request.Email)), strings.Join(entries, ","), otpTTL)

	for i, account := range candidates {
		if err := a.mail.SendMailWithOtp(account.Email, codes[i], otpTTL); err != nil {
			a.logger.Error("failed to send otp mail", zap.Uint("account_id", account.ID), zap.Error(err))
		}
	}
	return nil
}

func (a *AccountService) uniqueOtp(taken []string) (string, error) {
	for {
		otp, err := utils.GenerateOtpCode(6)
		if err != nil {
			return "", err
		}
		if !slices.Contains(taken, otp) {
			return otp, nil
		}
	}
}

// ResetPassword consumes every pending code for the email on the first
// attempt, right or wrong. The matching code picks the account.
func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	role, ok := db_models.ParseRole(request.Role)
	if !ok {
		return utils.ErrInvalidRole
	}

	stored := a.tokens.Consume(mem.OtpKey(string(role), normalizeEmail(request.Email)))
	var idStr string
	for _, entry := range strings.Split(stored, ",") {
		otp, id, found := strings.Cut(entry, "|")
		if found && subtle.ConstantTimeCompare([]byte(otp), []byte(request.Otp)) == 1 {
			idStr = id
		}
	}
	if idStr == "" {
		return utils.ErrInvalidOtp
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return utils.ErrInvalidOtp
	}

	account, err := a.accountRepo.FindById(ctx, uint(id))
	if err != nil {
		return dbError(err)
	}
	if account == nil {
		return utils.ErrInvalidOtp
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hashedPassword
	if err := a.accountRepo.Update(ctx, account); err != nil {
		return dbError(err)
	}
	return nil
}
