package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tokengate/internal/txflow"
	"tokengate/pkg/platform/httputil"
)

// OperationStore reads transaction workflow records.
type OperationStore interface {
	Get(id txflow.OpID) (txflow.Operation, bool)
	All() []txflow.Operation
}

// OperationsHandler exposes keyed operation status.
type OperationsHandler struct {
	ops OperationStore
}

func NewOperationsHandler(ops OperationStore) *OperationsHandler {
	return &OperationsHandler{ops: ops}
}

// Register mounts the operation status endpoints on the router.
func (h *OperationsHandler) Register(r chi.Router) {
	r.Get("/operations", h.handleList)
	r.Get("/operations/{id}", h.handleGet)
}

func (h *OperationsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ops := h.ops.All()
	if ops == nil {
		ops = []txflow.Operation{}
	}
	httputil.WriteJSON(w, http.StatusOK, ops)
}

// handleGet reports the record for one operation kind. Unknown kinds report
// idle rather than 404; idempotent status is the whole point of the store.
func (h *OperationsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	op, _ := h.ops.Get(txflow.OpID(chi.URLParam(r, "id")))
	httputil.WriteJSON(w, http.StatusOK, op)
}
