package service

import (
	"context"
	"errors"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/otp"
	"go-shopkeeper/internal/repository"
	"go-shopkeeper/pkg/jwt"
	"go-shopkeeper/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const msgPhoneRequired = "A valid 10-digit phone number is required"

type AuthService interface {
	CheckUser(ctx context.Context, phone string) (bool, error)
	IssueOTP(ctx context.Context, phone string) error
	CreateSession(ctx context.Context, req *SessionRequest) (*SessionResponse, error)
	ResetPassword(ctx context.Context, phone, newPassword string) error
}

type SessionRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,phone10"`
	Password    string `json:"password" validate:"required,min=6"`
	OTP         string `json:"otp" validate:"required"`
}

type SessionResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	HasShop   bool      `json:"has_shop"`
	AccountID uuid.UUID `json:"-"`
	Created   bool      `json:"-"`
}

type authService struct {
	accountRepo repository.AccountRepository
	shopRepo    repository.ShopRepository
	otp         otp.Service
	tokens      *jwt.Manager
	log         zerolog.Logger
}

func NewAuthService(accountRepo repository.AccountRepository, shopRepo repository.ShopRepository, otpService otp.Service, tokens *jwt.Manager, log zerolog.Logger) AuthService {
	return &authService{
		accountRepo: accountRepo,
		shopRepo:    shopRepo,
		otp:         otpService,
		tokens:      tokens,
		log:         log,
	}
}

func (s *authService) CheckUser(ctx context.Context, phone string) (bool, error) {
	if !validator.IsPhone(phone) {
		return false, apperr.Validation(msgPhoneRequired)
	}
	exists, err := s.accountRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return false, apperr.Internal(err, "check account")
	}
	return exists, nil
}

func (s *authService) IssueOTP(ctx context.Context, phone string) error {
	if !validator.IsPhone(phone) {
		return apperr.Validation(msgPhoneRequired)
	}
	if err := s.otp.Issue(ctx, phone); err != nil {
		return apperr.Internal(err, "issue otp")
	}
	return nil
}

// CreateSession logs an existing account in, or registers the phone number on first use.
func (s *authService) CreateSession(ctx context.Context, req *SessionRequest) (*SessionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ok, err := s.otp.Check(ctx, req.PhoneNumber, req.OTP)
	if err != nil {
		return nil, apperr.Internal(err, "verify otp")
	}
	if !ok {
		return nil, apperr.Authentication("Invalid OTP")
	}

	created := false
	account, err := s.accountRepo.FindByPhone(ctx, req.PhoneNumber)
	switch {
	case err == nil:
		if !account.CheckPassword(req.Password) {
			return nil, apperr.Authentication("Invalid password")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		account = &model.Account{PhoneNumber: req.PhoneNumber}
		if err := account.SetPassword(req.Password); err != nil {
			return nil, apperr.Internal(err, "hash password")
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return nil, apperr.FromDB(err, "")
		}
		created = true
		s.log.Info().Str("account_id", account.ID.String()).Msg("account registered")
	default:
		return nil, apperr.Internal(err, "load account")
	}

	// The code is spent only once the caller is authenticated.
	if err := s.otp.Consume(ctx, req.PhoneNumber); err != nil {
		return nil, apperr.Internal(err, "consume otp")
	}

	hasShop, err := s.shopRepo.ExistsForAccount(ctx, account.ID)
	if err != nil {
		return nil, apperr.Internal(err, "check shop")
	}

	token, err := s.tokens.GenerateToken(account.ID)
	if err != nil {
		return nil, apperr.Internal(err, "generate token")
	}

	return &SessionResponse{
		Message:   "Session created successfully",
		Token:     token,
		HasShop:   hasShop,
		AccountID: account.ID,
		Created:   created,
	}, nil
}

// ResetPassword is an operator action; it skips the OTP and old-password checks.
func (s *authService) ResetPassword(ctx context.Context, phone, newPassword string) error {
	if !validator.IsPhone(phone) {
		return apperr.Validation(msgPhoneRequired)
	}
	if len(newPassword) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}

	account, err := s.accountRepo.FindByPhone(ctx, phone)
	if err != nil {
		return apperr.FromDB(err, "Account not found")
	}
	if err := account.SetPassword(newPassword); err != nil {
		return apperr.Internal(err, "hash password")
	}
	if err := s.accountRepo.UpdatePassword(ctx, account.ID, account.PasswordHash); err != nil {
		return apperr.FromDB(err, "Account not found")
	}
	return nil
}
