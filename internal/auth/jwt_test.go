package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIssuerDisabled(t *testing.T) {
	assert.Nil(t, NewTokenIssuer(""))
}

func TestGenerateAndValidate(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef0123456789abcdef")

	token, err := issuer.Generate("alice")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	_, err = NewTokenIssuer("another-secret").Validate(token)
	assert.Error(t, err)
	_, err = issuer.Validate("garbage")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef0123456789abcdef")
	token, err := issuer.Generate("alice")
	require.NoError(t, err)

	var seen *Claims
	handler := issuer.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/get_tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, "alice", seen.Username)
				return
			}
			assert.Nil(t, seen)
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.EqualValues(t, 401, body["code"])
		})
	}
}
