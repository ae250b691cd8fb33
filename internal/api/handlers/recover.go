package handlers

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/isdelr/todo-sync-be/internal/services"
	"github.com/rs/zerolog"
)

// Recoverer turns a handler panic into the usual {code:500,msg} response
// and logs the stack. http.ErrAbortHandler is re-raised for net/http.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			zerolog.Ctx(r.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from handler panic")

			writeError(w, r, &services.Error{
				Kind: services.KindInternal,
				Msg:  services.MsgInternal,
				Err:  fmt.Errorf("panic: %v", rec),
			})
		}()

		next.ServeHTTP(w, r)
	})
}
