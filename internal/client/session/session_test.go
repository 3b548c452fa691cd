package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gamestore/storefront/internal/client/storage"
	"github.com/gamestore/storefront/internal/models"
)

type fakeAuthAPI struct {
	loginFunc    func(ctx context.Context, email, password string) (models.AuthResponse, error)
	registerFunc func(ctx context.Context, profile models.RegisterRequest) (models.APIResponse, error)
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	return f.loginFunc(ctx, email, password)
}

func (f *fakeAuthAPI) Register(ctx context.Context, profile models.RegisterRequest) (models.APIResponse, error) {
	return f.registerFunc(ctx, profile)
}

// makeToken builds a three-segment token whose middle segment carries the
// given claims. The signature segment is garbage; the client never checks it.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".c2lnbmF0dXJl"
}

func adminToken(t *testing.T) string {
	return makeToken(t, map[string]any{
		"data": map[string]any{
			"id":           "u1",
			"nombre":       "Ana",
			"apellido":     "García",
			"correo":       "ana@example.com",
			"tipo_usuario": "admin",
		},
	})
}

func buyerToken(t *testing.T) string {
	return makeToken(t, map[string]any{
		"data": map[string]any{
			"id":           "u2",
			"nombre":       "Luis",
			"correo":       "luis@example.com",
			"tipo_usuario": "comprador",
		},
	})
}

func newStore(t *testing.T) *storage.Store {
	return storage.New(t.TempDir(), zap.NewNop())
}

func TestDecodeIdentity(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantNil  bool
		wantID   string
		wantRole string
	}{
		{
			name:     "admin token",
			token:    makeToken(t, map[string]any{"data": map[string]any{"id": "u1", "tipo_usuario": "admin"}}),
			wantID:   "u1",
			wantRole: "admin",
		},
		{
			name:     "buyer token",
			token:    makeToken(t, map[string]any{"data": map[string]any{"id": "u2", "tipo_usuario": "comprador"}}),
			wantID:   "u2",
			wantRole: "comprador",
		},
		{name: "empty token", token: "", wantNil: true},
		{name: "two segments", token: "abc.def", wantNil: true},
		{name: "garbage segments", token: "not.a.token", wantNil: true},
		{
			name:    "payload without data claim",
			token:   makeToken(t, map[string]any{"exp": 9999999999}),
			wantNil: true,
		},
		{
			name:    "null data claim",
			token:   makeToken(t, map[string]any{"data": nil}),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := DecodeIdentity(tt.token)
			if tt.wantNil {
				assert.Nil(t, u)
				return
			}
			require.NotNil(t, u)
			assert.Equal(t, tt.wantID, u.ID)
			assert.Equal(t, tt.wantRole, u.Role)
		})
	}
}

func TestNew_SeedsIdentityFromStoredToken(t *testing.T) {
	store := newStore(t)
	store.Set(storage.TokenKey, adminToken(t))

	s := New(&fakeAuthAPI{}, store, zap.NewNop())

	require.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "ana@example.com", s.CurrentUser().Email)
}

func TestNew_MalformedStoredTokenIsAnonymous(t *testing.T) {
	store := newStore(t)
	store.Set(storage.TokenKey, "legacy-garbage")

	s := New(&fakeAuthAPI{}, store, zap.NewNop())

	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.Nil(t, s.CurrentUser())
}

func TestNew_NoStoredTokenIsAnonymous(t *testing.T) {
	s := New(&fakeAuthAPI{}, newStore(t), zap.NewNop())
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
}

func TestLogin_SuccessPersistsTokenAndPublishesIdentity(t *testing.T) {
	store := newStore(t)
	token := buyerToken(t)
	api := &fakeAuthAPI{
		loginFunc: func(ctx context.Context, email, password string) (models.AuthResponse, error) {
			assert.Equal(t, "luis@example.com", email)
			assert.Equal(t, "secret", password)
			return models.AuthResponse{Success: true, Message: "Bienvenido", Token: token}, nil
		},
	}
	s := New(api, store, zap.NewNop())

	var published []*models.User
	s.Subscribe(func(u *models.User) { published = append(published, u) })

	resp, err := s.Login(context.Background(), "luis@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, resp.Success)

	require.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, token, s.Token())

	stored, ok := store.Get(storage.TokenKey)
	require.True(t, ok)
	assert.Equal(t, token, stored)

	require.Len(t, published, 1)
	assert.Equal(t, "u2", published[0].ID)
}

func TestLogin_StructuredFailureIsAnonymousWithMessage(t *testing.T) {
	store := newStore(t)
	store.Set(storage.TokenKey, buyerToken(t))
	api := &fakeAuthAPI{
		loginFunc: func(ctx context.Context, email, password string) (models.AuthResponse, error) {
			return models.AuthResponse{Success: false, Message: "Credenciales incorrectas"}, nil
		},
	}
	s := New(api, store, zap.NewNop())
	require.True(t, s.IsAuthenticated())

	resp, err := s.Login(context.Background(), "luis@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Credenciales incorrectas", resp.Message)
	assert.False(t, s.IsAuthenticated())
}

func TestLogin_TransportFailureReturnsError(t *testing.T) {
	wantErr := errors.New("connection refused")
	api := &fakeAuthAPI{
		loginFunc: func(ctx context.Context, email, password string) (models.AuthResponse, error) {
			return models.AuthResponse{}, wantErr
		},
	}
	s := New(api, newStore(t), zap.NewNop())

	_, err := s.Login(context.Background(), "luis@example.com", "secret")
	require.ErrorIs(t, err, wantErr)
	assert.False(t, s.IsAuthenticated())
}

func TestLogout_RemovesTokenAndPublishesAnonymous(t *testing.T) {
	store := newStore(t)
	store.Set(storage.TokenKey, adminToken(t))
	s := New(&fakeAuthAPI{}, store, zap.NewNop())
	require.True(t, s.IsAdmin())

	var last *models.User = &models.User{ID: "sentinel"}
	s.Subscribe(func(u *models.User) { last = u })

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	_, ok := store.Get(storage.TokenKey)
	assert.False(t, ok)
	assert.Nil(t, last)
}

func TestRegister_PassesThrough(t *testing.T) {
	var got models.RegisterRequest
	api := &fakeAuthAPI{
		registerFunc: func(ctx context.Context, profile models.RegisterRequest) (models.APIResponse, error) {
			got = profile
			return models.APIResponse{Success: true, Message: "Usuario registrado"}, nil
		},
	}
	s := New(api, newStore(t), zap.NewNop())

	resp, err := s.Register(context.Background(), models.RegisterRequest{
		FirstName: "Ana", LastName: "García", Email: "ana@example.com", Password: "pw",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "ana@example.com", got.Email)

	// Registration alone does not log anyone in.
	assert.False(t, s.IsAuthenticated())
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := New(&fakeAuthAPI{}, newStore(t), zap.NewNop())

	calls := 0
	cancel := s.Subscribe(func(*models.User) { calls++ })

	s.Logout()
	assert.Equal(t, 1, calls)

	cancel()
	s.Logout()
	assert.Equal(t, 1, calls)
}
