package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/airxelerate/flightboard/internal/hash"
	"github.com/airxelerate/flightboard/internal/logging"
	"github.com/airxelerate/flightboard/internal/models"
	"github.com/airxelerate/flightboard/internal/mykafka"
	"github.com/airxelerate/flightboard/internal/token"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password. Callers must not tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrAccountDisabled = errors.New("account disabled")

type AuthService struct {
	DB        *gorm.DB
	Codec     *token.Codec
	Blacklist *token.Blacklist
	Producer  *mykafka.Producer
}

type LoginResult struct {
	Token    string
	Username string
	Role     token.Role
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login failed", "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		l.Warn("login failed", "reason", "account disabled")
		return nil, ErrAccountDisabled
	}

	role, ok := token.ParseRole(user.Role)
	if !ok {
		return nil, fmt.Errorf("login: user %q has unknown role %q", user.Username, user.Role)
	}

	tok, err := s.Codec.Issue(user.Username, role)
	if err != nil {
		return nil, fmt.Errorf("login issue token: %w", err)
	}

	s.publish(ctx, "user_events", user.Username, map[string]any{
		"type":     "user_logged_in",
		"username": user.Username,
	})
	l.Info("login successful", "role", role)

	return &LoginResult{Token: tok, Username: user.Username, Role: role}, nil
}

// Logout revokes by raw value without re-verifying the signature: an
// invalid token is already inert, so blacklisting it changes nothing.
// The registry entry expires with the token; if the expiry cannot be
// read, one full TTL from now is an upper bound.
func (s *AuthService) Logout(ctx context.Context, raw string) {
	exp, ok := s.Codec.ExpiryOf(raw)
	if !ok {
		exp = time.Now().Add(s.Codec.TTL)
	}
	s.Blacklist.Revoke(raw, exp)

	s.publish(ctx, "user_events", "logout", map[string]any{
		"type": "user_logged_out",
	})
	logging.FromContext(ctx).Info("token revoked", "svc", "auth.logout")
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
