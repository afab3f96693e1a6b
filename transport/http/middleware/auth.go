package middleware

import (
	"context"
	"hotelier/shared/constant"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const maxStaffIDLength = 64

// Staff puts the acting staff member, taken from X-Staff-ID, into the request context.
// Requests without the header act as the system user. The value is recorded, not verified.
func (a *appMiddleware) Staff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staff := strings.TrimSpace(r.Header.Get(constant.RequestHeaderStaffID))

		switch {
		case staff == "":
			staff = constant.ContextSystem
		case len(staff) > maxStaffIDLength:
			log.Warn().Int("length", len(staff)).Msg("staff id too long, truncating")

			staff = staff[:maxStaffIDLength]
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, staff)))
	})
}
