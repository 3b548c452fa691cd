// Package session holds the client's authentication state. Identity is
// always derived from the persisted bearer token; there is no independent
// mutable identity field.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/gamestore/storefront/internal/client/storage"
	"github.com/gamestore/storefront/internal/models"
)

// AuthAPI defines the remote authentication operations required by the
// session holder.
type AuthAPI interface {
	// Login submits credentials and returns the server's auth envelope.
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)
	// Register forwards a registration profile.
	Register(ctx context.Context, profile models.RegisterRequest) (models.APIResponse, error)
}

// Session derives authentication and authorization state from the stored
// token and mediates login, registration, and logout against the API.
// One instance exists per process.
type Session struct {
	api   AuthAPI
	store *storage.Store
	log   *zap.Logger

	mu      sync.Mutex
	user    *models.User
	subs    map[int]func(*models.User)
	nextSub int
}

// New constructs the session holder. If a token is already persisted it is
// decoded synchronously so the initial state is never observably unknown.
func New(api AuthAPI, store *storage.Store, log *zap.Logger) *Session {
	s := &Session{
		api:   api,
		store: store,
		log:   log,
		subs:  make(map[int]func(*models.User)),
	}
	if tok, ok := store.Get(storage.TokenKey); ok {
		s.user = DecodeIdentity(tok)
	}
	return s
}

// Login submits credentials. On success the token is persisted and the
// decoded identity published. A structured failure publishes an anonymous
// session and returns the server's response with a nil error. A transport
// failure publishes an anonymous session and returns the error; the caller
// decides on a generic connectivity message.
func (s *Session) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.publish(nil)
		s.log.Error("login request failed", zap.Error(err))
		return models.AuthResponse{}, err
	}

	if resp.Success && resp.Token != "" {
		s.store.Set(storage.TokenKey, resp.Token)
		s.publish(DecodeIdentity(resp.Token))
	} else {
		s.publish(nil)
	}
	return resp, nil
}

// Register forwards the profile to the API. Success and failure pass
// straight through; no local validation.
func (s *Session) Register(ctx context.Context, profile models.RegisterRequest) (models.APIResponse, error) {
	return s.api.Register(ctx, profile)
}

// Logout deletes the persisted token and publishes an anonymous session.
// No server round trip: the token goes stale server-side on its own.
func (s *Session) Logout() {
	s.store.Remove(storage.TokenKey)
	s.publish(nil)
}

// Token returns the currently persisted token, or "" when storage is
// unavailable or empty.
func (s *Session) Token() string {
	tok, _ := s.store.Get(storage.TokenKey)
	return tok
}

// CurrentUser returns the identity decoded from the current token, or nil
// for an anonymous session.
func (s *Session) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a decodable token is present.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// IsAdmin reports whether the current identity carries the admin role.
// Client-side convenience only; the server remains authoritative.
func (s *Session) IsAdmin() bool {
	u := s.CurrentUser()
	return u != nil && u.Role == models.RoleAdmin
}

// Subscribe registers fn to be called with every published identity
// snapshot. The returned function removes the subscription.
func (s *Session) Subscribe(fn func(*models.User)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// publish replaces the identity snapshot and notifies subscribers outside
// the lock.
func (s *Session) publish(u *models.User) {
	s.mu.Lock()
	s.user = u
	fns := make([]func(*models.User), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}

// DecodeIdentity extracts the identity payload from a bearer token without
// verifying its signature; verification belongs to the server. Any
// malformed segment, decode error, or parse error yields nil, identical to
// "not logged in". The token's expiry is deliberately not checked here: the
// server rejects stale tokens on the next request.
func DecodeIdentity(token string) *models.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	data, ok := claims["data"]
	if !ok || data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}
