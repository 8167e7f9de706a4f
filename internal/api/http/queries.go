package http

import (
	"net/http"

	"github.com/Bridgeless-Project/treasury-svc/internal/api/ctx"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/requests"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/resources"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
)

func Domain(w http.ResponseWriter, r *http.Request) {
	var (
		ledger = ctx.Ledger(r.Context())
		logger = ctx.Logger(r.Context())
	)

	separator, err := ledger.Authorizer().DomainSeparator()
	if err != nil {
		logger.WithError(err).Error("failed to compute domain separator")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	ape.Render(w, resources.NewDomainResponse(ledger, separator))
}

func Supply(w http.ResponseWriter, r *http.Request) {
	supply, err := ctx.Ledger(r.Context()).TotalSupply()
	if err != nil {
		renderLedgerErr(w, ctx.Logger(r.Context()), err)
		return
	}

	ape.Render(w, resources.SupplyResponse{TotalSupply: supply.Dec()})
}

func Balance(w http.ResponseWriter, r *http.Request) {
	account, err := requests.AddressParam(r, requests.ParamAddress)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	balance, err := ctx.Ledger(r.Context()).BalanceOf(account)
	if err != nil {
		renderLedgerErr(w, ctx.Logger(r.Context()), err)
		return
	}

	ape.Render(w, resources.NewBalanceResponse(account, balance))
}

func Allowance(w http.ResponseWriter, r *http.Request) {
	owner, err := requests.AddressParam(r, requests.ParamOwner)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}
	spender, err := requests.AddressParam(r, requests.ParamSpender)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	allowance, err := ctx.Ledger(r.Context()).Allowance(owner, spender)
	if err != nil {
		renderLedgerErr(w, ctx.Logger(r.Context()), err)
		return
	}

	ape.Render(w, resources.AllowanceResponse{
		Owner:     owner.Hex(),
		Spender:   spender.Hex(),
		Allowance: allowance.Dec(),
	})
}

func Role(w http.ResponseWriter, r *http.Request) {
	role, err := requests.RoleParam(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}
	account, err := requests.AddressParam(r, requests.ParamAddress)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	has, err := ctx.Ledger(r.Context()).HasRole(role, account)
	if err != nil {
		renderLedgerErr(w, ctx.Logger(r.Context()), err)
		return
	}

	ape.Render(w, resources.NewRoleResponse(role, account, has))
}

func RoleMembers(w http.ResponseWriter, r *http.Request) {
	var (
		ledger = ctx.Ledger(r.Context())
		logger = ctx.Logger(r.Context())
	)

	role, err := requests.RoleParam(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	admin, err := ledger.RoleAdmin(role)
	if err != nil {
		renderLedgerErr(w, logger, err)
		return
	}
	members, err := ledger.Members(role)
	if err != nil {
		renderLedgerErr(w, logger, err)
		return
	}

	ape.Render(w, resources.NewRoleMembersResponse(role, admin, members))
}

func Nonce(w http.ResponseWriter, r *http.Request) {
	account, err := requests.AddressParam(r, requests.ParamAddress)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	nonce, err := ctx.Ledger(r.Context()).Nonce(account)
	if err != nil {
		renderLedgerErr(w, ctx.Logger(r.Context()), err)
		return
	}

	ape.Render(w, resources.NonceResponse{Address: account.Hex(), Nonce: nonce})
}

func Request(w http.ResponseWriter, r *http.Request) {
	id, err := requests.RequestIdParam(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	consumed, err := ctx.Ledger(r.Context()).ConsumedRequest(id)
	if err != nil {
		renderLedgerErr(w, ctx.Logger(r.Context()), err)
		return
	}

	ape.Render(w, resources.NewRequestResponse(id, consumed))
}

func Events(w http.ResponseWriter, r *http.Request) {
	selector, err := requests.EventsSelector(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	events, err := ctx.Ledger(r.Context()).Events(selector)
	if err != nil {
		renderLedgerErr(w, ctx.Logger(r.Context()), err)
		return
	}

	ape.Render(w, resources.NewEventsResponse(events))
}
