package handlers

import (
	"net/http"

	"github.com/isdelr/todo-sync-be/internal/auth"
	"github.com/isdelr/todo-sync-be/internal/services"
	"github.com/rs/zerolog"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenIssuer
}

// NewUserHandler creates a new UserHandler. tokens may be nil, in which case
// Login does not issue a token.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenIssuer) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// CredentialsPayload is the body of register, login and delete_user.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordPayload is the body of change_password.
type ChangePasswordPayload struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangeAvatarPayload is the body of change_avatar.
type ChangeAvatarPayload struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Register(r.Context(), payload.Username, payload.Password); err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("username", payload.Username).Msg("User registered")
	writeOK(w, map[string]interface{}{"msg": services.MsgRegistered})
}

// Login checks the credentials and returns the stored avatar, plus a token
// when token issuing is enabled.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := map[string]interface{}{"msg": services.MsgLoggedIn, "avatar": user.Avatar}
	if h.tokens != nil {
		token, err := h.tokens.Generate(user.Username)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("username", user.Username).Msg("Failed to generate JWT")
			writeError(w, r, err)
			return
		}
		body["token"] = token
	}
	writeOK(w, body)
}

// ChangePassword handles changing a user's password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload ChangePasswordPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := checkOwner(r, payload.Username); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), payload.Username, payload.OldPassword, payload.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{"msg": services.MsgPasswordChanged})
}

// ChangeAvatar handles replacing a user's avatar.
func (h *UserHandler) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	var payload ChangeAvatarPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := checkOwner(r, payload.Username); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.ChangeAvatar(r.Context(), payload.Username, payload.Avatar); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{"msg": services.MsgAvatarChanged})
}

// Delete handles the permanent deletion of a user account and its tasks.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := checkOwner(r, payload.Username); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), payload.Username, payload.Password); err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("username", payload.Username).Msg("User deleted")
	writeOK(w, map[string]interface{}{"msg": services.MsgUserDeleted})
}
