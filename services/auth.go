package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"vlady-store/models"
	"vlady-store/store"
	"vlady-store/utils"
)

const (
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 3
)

// Indian mobile numbers with country code, as the frontend submits them.
var mobilePattern = regexp.MustCompile(`^\+91[1-9]\d{9}$`)

// AuthService implements OTP login and server-side sessions.
// Verification for one phone number is serialized so concurrent
// attempts cannot slip past the attempt counter.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	sms        utils.SMSSender // nil when SMS delivery is not configured
	locks      *utils.KeyedMutex
	sessionTTL time.Duration
	production bool
	log        *slog.Logger
}

// NewAuthService creates an AuthService. sms may be nil; in that case
// SendCode falls back to returning the code directly, but only when
// production is false.
func NewAuthService(users UserStore, sessions SessionStore, sms utils.SMSSender, sessionTTL time.Duration, production bool, log *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sms:        sms,
		locks:      &utils.KeyedMutex{},
		sessionTTL: sessionTTL,
		production: production,
		log:        log,
	}
}

// SendCode generates a 6-digit code for the mobile number, stores its
// hash with a fresh attempt counter, and dispatches it by SMS. The
// returned string is empty unless the dev fallback handed the code
// back for local testing.
func (s *AuthService) SendCode(ctx context.Context, mobile string) (string, error) {
	if !mobilePattern.MatchString(mobile) {
		return "", ErrInvalidMobile
	}

	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", 100000+n.Int64())
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	if err := s.users.UpsertOTP(ctx, mobile, string(hash), time.Now()); err != nil {
		return "", err
	}

	if s.sms != nil {
		if err := s.sms.Send(mobile, "Your V Lady verification code is: "+code); err != nil {
			return "", fmt.Errorf("dispatch code: %w", err)
		}
		return "", nil
	}

	s.log.Warn("sms delivery not configured", "mobile", mobile)
	if s.production {
		return "", nil
	}
	// Dev-only escape hatch, mirrors what local testing needs.
	return code, nil
}

// VerifyCode checks the submitted code. On success the user is marked
// verified, the pending code is cleared and a new session is created.
func (s *AuthService) VerifyCode(ctx context.Context, mobile, code string) (*models.Session, error) {
	defer s.locks.Lock(mobile)()

	user, err := s.users.FindByMobile(ctx, mobile)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !user.OTP.Pending() {
		return nil, ErrOTPNotFound
	}
	if time.Since(user.OTP.GeneratedAt) > otpTTL {
		return nil, ErrOTPExpired
	}
	if user.OTP.Attempts >= otpMaxAttempts {
		return nil, ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(user.OTP.CodeHash), []byte(code)) != nil {
		if err := s.users.IncrementOTPAttempts(ctx, user.ID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidOTP
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.createSession(ctx, user)
}

// Logout revokes the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// UpdateProfile sets the user's display name and email.
func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, email string) (*models.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, name, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) createSession(ctx context.Context, user *models.User) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
