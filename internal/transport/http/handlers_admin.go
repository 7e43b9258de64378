package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tokengate/internal/dashboard"
	"tokengate/internal/txflow"
	"tokengate/pkg/platform/audit"
	"tokengate/pkg/platform/httputil"
)

// AdminService defines the privileged dashboard operations.
type AdminService interface {
	Roles() dashboard.RolesView
	Issue(ctx context.Context, to, amount string) (txflow.Operation, error)
	Redeem(ctx context.Context, amount string) (txflow.Operation, error)
	RegisterIdentity(ctx context.Context, account, country string, accredited bool) (txflow.Operation, error)
	SetRestriction(ctx context.Context, country string, allowed bool) (txflow.Operation, error)
	Restriction(ctx context.Context, country string) (bool, error)
	AuditTrail(ctx context.Context) ([]audit.Event, error)
}

// AdminHandler exposes the privileged dashboard.
type AdminHandler struct {
	admin  AdminService
	logger *slog.Logger
}

func NewAdminHandler(admin AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// Register mounts the admin endpoints on the router.
func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/admin/roles", h.handleRoles)
	r.Post("/admin/issue", h.handleIssue)
	r.Post("/admin/redeem", h.handleRedeem)
	r.Post("/admin/identity", h.handleRegisterIdentity)
	r.Post("/admin/restriction", h.handleSetRestriction)
	r.Get("/admin/restriction/{country}", h.handleGetRestriction)
	r.Get("/admin/audit", h.handleAuditTrail)
}

func (h *AdminHandler) handleRoles(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.admin.Roles())
}

// IssueRequest is the issuance body.
type IssueRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (h *AdminHandler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[IssueRequest](w, r, h.logger)
	if !ok {
		return
	}

	op, err := h.admin.Issue(ctx, req.To, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "issuance rejected", "to", req.To, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, op)
}

// RedeemRequest is the redemption body.
type RedeemRequest struct {
	Amount string `json:"amount"`
}

func (h *AdminHandler) handleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[RedeemRequest](w, r, h.logger)
	if !ok {
		return
	}

	op, err := h.admin.Redeem(ctx, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "redemption rejected", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, op)
}

// RegisterIdentityRequest is the identity registration body.
type RegisterIdentityRequest struct {
	Account    string `json:"account"`
	Country    string `json:"country"`
	Accredited bool   `json:"accredited"`
}

func (h *AdminHandler) handleRegisterIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[RegisterIdentityRequest](w, r, h.logger)
	if !ok {
		return
	}

	op, err := h.admin.RegisterIdentity(ctx, req.Account, req.Country, req.Accredited)
	if err != nil {
		h.logger.WarnContext(ctx, "identity registration rejected",
			"account", req.Account, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, op)
}

// SetRestrictionRequest is the restriction update body.
type SetRestrictionRequest struct {
	Country string `json:"country"`
	Allowed bool   `json:"allowed"`
}

func (h *AdminHandler) handleSetRestriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[SetRestrictionRequest](w, r, h.logger)
	if !ok {
		return
	}

	op, err := h.admin.SetRestriction(ctx, req.Country, req.Allowed)
	if err != nil {
		h.logger.WarnContext(ctx, "restriction update rejected",
			"country", req.Country, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, op)
}

// RestrictionResponse reports the allowed flag for one country.
type RestrictionResponse struct {
	Country string `json:"country"`
	Allowed bool   `json:"allowed"`
}

func (h *AdminHandler) handleGetRestriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	country := chi.URLParam(r, "country")

	allowed, err := h.admin.Restriction(ctx, country)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RestrictionResponse{Country: country, Allowed: allowed})
}

func (h *AdminHandler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	events, err := h.admin.AuditTrail(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}
