package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/vibecart/internal/client/broadcast"
	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/client/validation"
	"github.com/dmitrijs2005/vibecart/internal/common"
	"github.com/dmitrijs2005/vibecart/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	msgSignupFailed  = "Signup failed"
	msgLoginFailed   = "Login failed"
	msgUpdateFailed  = "Update failed"
	msgProfileNoAuth = "Please login to update your profile"
)

// CredentialStorage is the durable, origin-scoped slot the credential is
// kept in. *storage.LocalStorage satisfies it.
type CredentialStorage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Origin() string
}

// CredentialSource is what the other services need from the session.
type CredentialSource interface {
	Credential() string
	// Invalidate drops the session if token is still the current credential.
	Invalidate(ctx context.Context, token string)
}

// CredentialInfo is what the credential says about itself. It is read
// without verifying the signature and is for display only.
type CredentialInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionStore owns the credential and identity.
//
// Invariants: the identity is non-nil only while a credential is held; the
// persisted credential and the in-memory one change together.
type SessionStore struct {
	client  client.Client
	storage CredentialStorage
	channel broadcast.Channel
	log     logging.Logger

	mu         sync.RWMutex
	credential string
	user       *models.User
	loading    bool

	unsubscribe func()
}

// NewSessionStore builds the store and subscribes it to logout events. The
// session must subscribe before anything that depends on its credential.
func NewSessionStore(c client.Client, st CredentialStorage, ch broadcast.Channel, log logging.Logger) *SessionStore {
	s := &SessionStore{
		client:  c,
		storage: st,
		channel: ch,
		log:     log.With("component", "session"),
	}
	s.unsubscribe = ch.Subscribe(broadcast.KindLogout, s.onLogout)
	return s
}

// Close detaches the store from the broadcast channel.
func (s *SessionStore) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Init restores the session from storage. When a credential is found the
// identity is refetched; any failure ends the session.
func (s *SessionStore) Init(ctx context.Context) error {
	token, ok, err := s.storage.GetItem(ctx, common.TokenStorageKey)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	if !ok || token == "" {
		return nil
	}

	s.mu.Lock()
	s.credential = token
	s.loading = true
	s.mu.Unlock()

	user, err := s.client.Me(ctx, token)

	s.mu.Lock()
	s.loading = false
	current := s.credential
	if err == nil && current == token {
		s.user = user
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "restoring session failed", "error", err)
		if current == token {
			s.endSession(ctx)
		}
		return nil
	}
	s.log.Info(ctx, "session restored", "user", user.ID)
	return nil
}

func (s *SessionStore) Signup(ctx context.Context, form validation.SignupForm) AuthResult {
	if err := validation.Signup(form); err != nil {
		return AuthResult{Message: err.Error()}
	}
	payload, err := s.client.Signup(ctx, form.Name, form.Email, form.Password)
	if err != nil {
		s.log.Warn(ctx, "signup rejected", "error", err)
		return authFailure(err, msgSignupFailed)
	}
	return s.begin(ctx, payload, msgSignupFailed)
}

func (s *SessionStore) Login(ctx context.Context, email, password string) AuthResult {
	if err := validation.Login(validation.LoginForm{Email: email, Password: password}); err != nil {
		return AuthResult{Message: err.Error()}
	}
	payload, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.Warn(ctx, "login rejected", "error", err)
		return authFailure(err, msgLoginFailed)
	}
	return s.begin(ctx, payload, msgLoginFailed)
}

// begin installs the credential and identity of a successful auth response.
func (s *SessionStore) begin(ctx context.Context, payload *models.AuthPayload, fallback string) AuthResult {
	if payload == nil || payload.Token == "" {
		return AuthResult{Message: fallback}
	}
	if err := s.storage.SetItem(ctx, common.TokenStorageKey, payload.Token); err != nil {
		s.log.Error(ctx, "persisting credential failed", "error", err)
		return AuthResult{Message: fallback}
	}

	user := payload.User.Clone()
	s.mu.Lock()
	s.credential = payload.Token
	s.user = user
	s.mu.Unlock()

	s.log.Info(ctx, "signed in", "user", user.ID)
	return AuthResult{Success: true}
}

// Logout ends the session and tells every listener, in this process and
// in peers sharing the data directory.
func (s *SessionStore) Logout(ctx context.Context) error {
	err := s.endSession(ctx)
	s.log.Info(ctx, "signed out")
	return err
}

func (s *SessionStore) endSession(ctx context.Context) error {
	var errs []error
	if err := s.storage.RemoveItem(ctx, common.TokenStorageKey); err != nil {
		errs = append(errs, fmt.Errorf("remove credential: %w", err))
	}

	s.mu.Lock()
	s.credential = ""
	s.user = nil
	s.mu.Unlock()

	ev := broadcast.Event{Kind: broadcast.KindLogout, Origin: s.storage.Origin()}
	if err := s.channel.Publish(ctx, ev); err != nil {
		errs = append(errs, fmt.Errorf("publish logout: %w", err))
	}
	return errors.Join(errs...)
}

// Invalidate ends the session after the server rejected token. A token that
// has already been replaced is ignored.
func (s *SessionStore) Invalidate(ctx context.Context, token string) {
	s.mu.RLock()
	current := s.credential
	s.mu.RUnlock()
	if token == "" || current != token {
		return
	}
	s.log.Info(ctx, "credential rejected, signing out")
	if err := s.endSession(ctx); err != nil {
		s.log.Warn(ctx, "ending session", "error", err)
	}
}

func (s *SessionStore) UpdateProfile(ctx context.Context, name, email string) AuthResult {
	if err := validation.Profile(validation.ProfileForm{Name: name, Email: email}); err != nil {
		return AuthResult{Message: err.Error()}
	}
	token := s.Credential()
	if token == "" {
		return AuthResult{Message: msgProfileNoAuth}
	}

	user, err := s.client.UpdateProfile(ctx, token, name, email)
	if err != nil {
		s.log.Warn(ctx, "profile update rejected", "error", err)
		if errors.Is(err, client.ErrUnauthorized) {
			s.Invalidate(ctx, token)
		}
		return authFailure(err, msgUpdateFailed)
	}

	s.mu.Lock()
	if s.credential == token {
		s.user = user.Clone()
	}
	s.mu.Unlock()
	return AuthResult{Success: true}
}

// onLogout reconciles with storage when another process signed out.
func (s *SessionStore) onLogout(ctx context.Context, ev broadcast.Event) {
	if !ev.Remote || ev.Origin != s.storage.Origin() {
		return
	}
	token, ok, err := s.storage.GetItem(ctx, common.TokenStorageKey)
	if err != nil {
		s.log.Warn(ctx, "re-reading credential", "error", err)
		return
	}
	if ok && token != "" {
		return
	}

	s.mu.Lock()
	had := s.credential != ""
	s.credential = ""
	s.user = nil
	s.mu.Unlock()

	if had {
		s.log.Info(ctx, "signed out by another session", "sender", ev.Sender)
	}
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the identity, or nil.
func (s *SessionStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *SessionStore) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Loading is true while Init is refetching the identity.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// CredentialInfo decodes the held credential as a JWT. ok is false when
// there is none or it is not a JWT.
func (s *SessionStore) CredentialInfo() (CredentialInfo, bool) {
	token := s.Credential()
	if token == "" {
		return CredentialInfo{}, false
	}
	return inspectCredential(token)
}

// CredentialExpiry is the credential's exp claim, if any.
func (s *SessionStore) CredentialExpiry() (time.Time, bool) {
	info, ok := s.CredentialInfo()
	if !ok || info.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return info.ExpiresAt, true
}

func inspectCredential(token string) (CredentialInfo, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return CredentialInfo{}, false
	}

	var info CredentialInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if info.Subject == "" {
		if id, ok := claims["id"].(string); ok {
			info.Subject = id
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info, true
}
