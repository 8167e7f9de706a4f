package http

import (
	"net/http"

	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3"
)

// renderLedgerErr maps ledger rejections to client problems and
// everything else to an internal error.
func renderLedgerErr(w http.ResponseWriter, logger *logan.Entry, err error) {
	switch {
	case errors.Is(err, types.ErrPermissionDenied), errors.Is(err, types.ErrInvalidSignature):
		ape.RenderErr(w, problems.Forbidden())
	case types.IsReplay(err):
		ape.RenderErr(w, problems.Conflict())
	case types.IsRejection(err):
		ape.RenderErr(w, problems.BadRequest(err)...)
	default:
		logger.WithError(err).Error("ledger operation failed")
		ape.RenderErr(w, problems.InternalError())
	}
}
