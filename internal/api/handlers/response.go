package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/isdelr/todo-sync-be/internal/auth"
	"github.com/isdelr/todo-sync-be/internal/services"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies; avatars may be inline base64 images.
const maxBodyBytes = 8 << 20

// decodeJSON reads the request body into dst. Numbers inside free-form
// values are kept as json.Number. Any failure is reported to the client as
// a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty request body")
		}
		return &services.Error{Kind: services.KindValidation, Msg: services.MsgBadRequest, Err: err}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, body map[string]interface{}) {
	body["code"] = http.StatusOK
	writeJSON(w, http.StatusOK, body)
}

// writeError maps a service error to the {code, msg} envelope. Relay
// failures keep HTTP 200 and carry 500 in the body only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	msg := services.MsgInternal
	var se *services.Error
	if errors.As(err, &se) {
		msg = se.Msg
	}

	var status, code int
	switch services.KindOf(err) {
	case services.KindValidation:
		status, code = http.StatusBadRequest, http.StatusBadRequest
		logger.Info().Err(err).Msg("Rejected invalid request")
	case services.KindConflict:
		status, code = http.StatusConflict, http.StatusConflict
		logger.Info().Err(err).Msg("Request conflicts with existing data")
	case services.KindAuth:
		status, code = http.StatusUnauthorized, http.StatusUnauthorized
		logger.Warn().Err(err).Msg("Authentication failed")
	case services.KindRelay:
		status, code = http.StatusOK, http.StatusInternalServerError
	default:
		status, code = http.StatusInternalServerError, http.StatusInternalServerError
		logger.Error().Err(err).Msg("Request failed")
	}

	writeJSON(w, status, map[string]interface{}{"code": code, "msg": msg})
}

// checkOwner enforces that a token-authenticated caller only acts on their
// own account. Without token middleware there are no claims and the
// asserted username is trusted.
func checkOwner(r *http.Request, username string) error {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.Username == username {
		return nil
	}
	return &services.Error{Kind: services.KindAuth, Msg: services.MsgTokenMismatch}
}
