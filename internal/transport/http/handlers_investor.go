package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tokengate/internal/dashboard"
	"tokengate/internal/txflow"
	"tokengate/pkg/platform/httputil"
)

// InvestorService defines the investor dashboard operations.
type InvestorService interface {
	Overview(ctx context.Context) (dashboard.Overview, error)
	Transfer(ctx context.Context, to, amount string) (txflow.Operation, error)
}

// InvestorHandler exposes the investor dashboard.
type InvestorHandler struct {
	investor InvestorService
	logger   *slog.Logger
}

func NewInvestorHandler(investor InvestorService, logger *slog.Logger) *InvestorHandler {
	return &InvestorHandler{investor: investor, logger: logger}
}

// Register mounts the investor endpoints on the router.
func (h *InvestorHandler) Register(r chi.Router) {
	r.Get("/investor/overview", h.handleOverview)
	r.Post("/investor/transfer", h.handleTransfer)
}

func (h *InvestorHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overview, err := h.investor.Overview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "overview assembly failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overview)
}

// TransferRequest is the transfer submission body.
type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (h *InvestorHandler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[TransferRequest](w, r, h.logger)
	if !ok {
		return
	}

	op, err := h.investor.Transfer(ctx, req.To, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer rejected",
			"to", req.To, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, op)
}
