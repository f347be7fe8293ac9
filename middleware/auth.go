package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
	"vlady-store/utils"
)

// SessionCookie is the name of the cookie carrying the signed session
// token.
const SessionCookie = "vlady_session"

// Key type for context
type contextKey string

const identityKey = contextKey("identity")

// Identity is the resolved caller of a request.
type Identity struct {
	UserID    primitive.ObjectID
	SessionID string
	IsAdmin   bool
}

// SessionStore is the session lookup the middleware needs.
type SessionStore interface {
	Find(ctx context.Context, id string) (*models.Session, error)
}

// SessionMiddleware resolves the session cookie to an identity and is
// the single gate in front of every cart, order, address and wishlist
// operation.
type SessionMiddleware struct {
	sessions SessionStore
	tokens   *utils.TokenManager
	log      *slog.Logger
}

// NewSessionMiddleware creates a SessionMiddleware.
func NewSessionMiddleware(sessions SessionStore, tokens *utils.TokenManager, log *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, tokens: tokens, log: log}
}

// Attach resolves the cookie, verifies the token, loads the session
// and puts the identity on the request context. Requests without a
// valid session pass through anonymous; RequireAuth decides whether
// that matters.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, err := m.tokens.Parse(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.sessions.Find(r.Context(), sessionID)
		if err != nil || session.Expired(time.Now()) {
			next.ServeHTTP(w, r)
			return
		}

		identity := Identity{
			UserID:    session.UserID,
			SessionID: session.ID,
			IsAdmin:   session.IsAdmin,
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session lacks the admin flag.
// It never implicitly authenticates: a missing session is also a 403
// here, not a 401.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok || !identity.IsAdmin {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFrom returns the authenticated identity attached to the
// context, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the identity. Exposed for
// handler tests.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
