package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tokengate/internal/session"
	"tokengate/pkg/platform/httputil"
)

// SessionService defines the wallet session operations the transport needs.
type SessionService interface {
	Connect(ctx context.Context) error
	Disconnect()
	SwitchNetwork(ctx context.Context) error
	Snapshot() session.Session
}

// SessionHandler exposes the wallet session state machine.
type SessionHandler struct {
	sessions SessionService
	logger   *slog.Logger
}

func NewSessionHandler(sessions SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// Register mounts the session endpoints on the router.
func (h *SessionHandler) Register(r chi.Router) {
	r.Get("/session", h.handleGet)
	r.Post("/session/connect", h.handleConnect)
	r.Post("/session/disconnect", h.handleDisconnect)
	r.Post("/session/network", h.handleSwitchNetwork)
}

// sessionView is the wire shape of a session snapshot.
type sessionView struct {
	State   string  `json:"state"`
	Account *string `json:"account,omitempty"`
	ChainID *uint64 `json:"chainId,omitempty"`
}

func viewOf(sess session.Session) sessionView {
	view := sessionView{State: string(sess.State), ChainID: sess.ChainID}
	if sess.Account != nil {
		account := sess.Account.Hex()
		view.Account = &account
	}
	return view
}

func (h *SessionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, viewOf(h.sessions.Snapshot()))
}

func (h *SessionHandler) handleConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.sessions.Connect(ctx); err != nil {
		h.logger.WarnContext(ctx, "wallet connect failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(h.sessions.Snapshot()))
}

func (h *SessionHandler) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	h.sessions.Disconnect()
	httputil.WriteJSON(w, http.StatusOK, viewOf(h.sessions.Snapshot()))
}

func (h *SessionHandler) handleSwitchNetwork(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.sessions.SwitchNetwork(ctx); err != nil {
		h.logger.WarnContext(ctx, "network switch failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(h.sessions.Snapshot()))
}
