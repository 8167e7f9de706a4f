package http

import (
	"net/http"

	"github.com/Bridgeless-Project/treasury-svc/internal/api/ctx"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/requests"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/resources"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3"
)

// SubmitWithdrawal executes a signed withdrawal authorization on behalf of
// the service executor account.
func SubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	var (
		ledger   = ctx.Ledger(r.Context())
		executor = ctx.Executor(r.Context()).Address()
		policy   = ledger.Authorizer().Policy()
	)

	request, err := requests.NewSubmitWithdrawal(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	withdrawal, sig, err := request.Parse(policy)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	logger := ctx.Logger(r.Context()).WithFields(logan.F{
		"user":   withdrawal.User.Hex(),
		"to":     withdrawal.To.Hex(),
		"amount": withdrawal.Amount.Dec(),
	})

	if err = ledger.Withdraw(executor, withdrawal, sig); err != nil {
		renderLedgerErr(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	ape.Render(w, resources.NewWithdrawalResponse(executor, withdrawal, policy))
}
