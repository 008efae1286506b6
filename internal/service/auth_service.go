package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/botanical-decor/shop-api/internal/cache"
	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/logger"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/queue"
	"github.com/botanical-decor/shop-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns registration, login, tokens and the password reset flow.
type AuthService struct {
	cfg          *config.Config
	profileRepo  repository.ProfileRepository
	emailService *EmailService
	queueClient  *queue.Client
}

// NewAuthService creates an auth service.
func NewAuthService(cfg *config.Config, profileRepo repository.ProfileRepository, emailService *EmailService, queueClient *queue.Client) *AuthService {
	return &AuthService{
		cfg:          cfg,
		profileRepo:  profileRepo,
		emailService: emailService,
		queueClient:  queueClient,
	}
}

// JWTClaims is the access token payload.
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its bcrypt hash.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GenerateJWT issues an HS256 token for the profile. A non-positive
// expireHours falls back to the configured default.
func (s *AuthService) GenerateJWT(profile *models.Profile, expireHours int) (string, time.Time, error) {
	resolved := expireHours
	if resolved <= 0 {
		resolved = resolveJWTExpireHours(s.cfg.JWT)
	}
	expiresAt := time.Now().Add(time.Duration(resolved) * time.Hour)
	claims := JWTClaims{
		UserID: profile.ID,
		Email:  profile.Email,
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates a token and returns its claims.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register creates a customer account and signs it in. A soft-deleted
// profile keeps its email reserved, so re-registration is rejected too.
func (s *AuthService) Register(email, password, fullName string) (*models.Profile, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hashed, err := s.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	profile := &models.Profile{
		Email:        normalized,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(fullName),
		Role:         constants.RoleUser,
		LastLoginAt:  &now,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateJWT(profile, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAccountState(context.Background(), cache.BuildAccountState(profile))

	s.deliverWelcomeEmail(profile)
	return profile, token, expiresAt, nil
}

// deliverWelcomeEmail hands the welcome mail to the queue, falling back to
// a direct send when no worker is running.
func (s *AuthService) deliverWelcomeEmail(profile *models.Profile) {
	payload := queue.WelcomeEmailPayload{Email: profile.Email, FullName: profile.FullName}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueWelcomeEmail(payload); err != nil {
			logger.Warnw("auth_enqueue_welcome_email_failed",
				"email", profile.Email,
				"error", err,
			)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	go func() {
		if err := s.emailService.SendWelcomeEmail(payload.Email, payload.FullName); err != nil {
			logger.Warnw("auth_send_welcome_email_failed",
				"email", payload.Email,
				"error", err,
			)
		}
	}()
}

// Login authenticates a customer. Blocked and deleted accounts are told
// apart from bad credentials so the storefront can explain itself.
func (s *AuthService) Login(email, password string, rememberMe bool) (*models.Profile, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	profile, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if profile == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if profile.IsDeleted {
		return nil, "", time.Time{}, ErrAccountDeleted
	}
	if profile.IsBlocked {
		return nil, "", time.Time{}, ErrAccountBlocked
	}
	if err := s.VerifyPassword(profile.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	expireHours := resolveJWTExpireHours(s.cfg.JWT)
	if rememberMe {
		expireHours = resolveRememberMeExpireHours(s.cfg.JWT)
	}
	token, expiresAt, err := s.GenerateJWT(profile, expireHours)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	profile.LastLoginAt = &now
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAccountState(context.Background(), cache.BuildAccountState(profile))

	return profile, token, expiresAt, nil
}

// ForgotPassword issues a reset code and emails it. An unknown email gets
// the same nil response so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	profile, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if profile == nil || profile.IsDeleted {
		return nil
	}
	if s.emailService == nil {
		return ErrEmailServiceNotConfigured
	}

	code := randNumeric(6)
	ttl := time.Duration(resolveResetCodeExpireMins(s.cfg.Shop)) * time.Minute
	if err := cache.SetResetCode(context.Background(), normalized, code, ttl); err != nil {
		return err
	}
	return s.emailService.SendPasswordResetEmail(normalized, profile.FullName, code, ttl)
}

// ResetPassword redeems a reset code and sets a new password.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	profile, err := s.profileRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if profile == nil || profile.IsDeleted {
		return ErrResetCodeInvalid
	}

	stored, ok, err := cache.GetResetCode(context.Background(), normalized)
	if err != nil {
		return err
	}
	if !ok || strings.TrimSpace(code) == "" || stored != strings.TrimSpace(code) {
		return ErrResetCodeInvalid
	}

	hashed, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.profileRepo.UpdatePassword(profile.ID, hashed); err != nil {
		return err
	}
	_ = cache.DelResetCode(context.Background(), normalized)
	_ = cache.DelAccountState(context.Background(), profile.ID)
	return nil
}

// GetProfileByID fetches a profile or ErrNotFound.
func (s *AuthService) GetProfileByID(id uint) (*models.Profile, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

func resolveRememberMeExpireHours(cfg config.JWTConfig) int {
	if cfg.RememberMeExpireHours <= 0 {
		return resolveJWTExpireHours(cfg)
	}
	return cfg.RememberMeExpireHours
}

func resolveResetCodeExpireMins(cfg config.ShopConfig) int {
	if cfg.ResetCodeExpireMins <= 0 {
		return 15
	}
	return cfg.ResetCodeExpireMins
}
