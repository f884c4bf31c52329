package usecase

import (
	"time"

	"github.com/piresc/darsyar/internal/pkg/jwt"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/internal/utils"
	"github.com/piresc/darsyar/services/auth"
)

// AuthUC implements auth.AuthUC
type AuthUC struct {
	codeStore auth.CodeStore
	userRepo  auth.UserRepo
	authGW    auth.AuthGW
	issuer    *jwt.Issuer
	cfg       *models.Config

	validator    *utils.RequestValidator
	now          func() time.Time
	generateCode utils.CodeGenerator
}

// Option customizes an AuthUC
type Option func(*AuthUC)

// WithClock replaces time.Now, mostly for tests
func WithClock(clock func() time.Time) Option {
	return func(uc *AuthUC) {
		uc.now = clock
	}
}

// WithCodeGenerator replaces the random code generator
func WithCodeGenerator(gen utils.CodeGenerator) Option {
	return func(uc *AuthUC) {
		uc.generateCode = gen
	}
}

// NewAuthUC creates a new auth usecase instance
func NewAuthUC(
	codeStore auth.CodeStore,
	userRepo auth.UserRepo,
	authGW auth.AuthGW,
	issuer *jwt.Issuer,
	cfg *models.Config,
	opts ...Option,
) *AuthUC {
	uc := &AuthUC{
		codeStore:    codeStore,
		userRepo:     userRepo,
		authGW:       authGW,
		issuer:       issuer,
		cfg:          cfg,
		validator:    utils.NewValidator(),
		now:          time.Now,
		generateCode: utils.GenerateCode,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (u *AuthUC) codeTTL() time.Duration {
	if u.cfg.OTP.TTL > 0 {
		return u.cfg.OTP.TTL
	}
	return 5 * time.Minute
}
