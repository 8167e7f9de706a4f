package requests

import (
	"net/http"
	"strconv"

	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

const (
	ParamAddress   = "address"
	ParamOwner     = "owner"
	ParamSpender   = "spender"
	ParamRole      = "role"
	ParamRequestId = "request_id"

	QueryAfterId = "after_id"
	QueryType    = "type"
	QueryLimit   = "limit"

	maxEventsLimit = 500
)

var eventTypes = []interface{}{
	types.EventRoleGranted.String(),
	types.EventRoleRevoked.String(),
	types.EventRoleAdminChanged.String(),
	types.EventDeposited.String(),
	types.EventMinted.String(),
	types.EventWithdrawn.String(),
	types.EventTransfer.String(),
	types.EventApproval.String(),
}

func AddressParam(r *http.Request, name string) (common.Address, error) {
	addr, err := core.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		return common.Address{}, validation.Errors{name: err}
	}

	return addr, nil
}

func RoleParam(r *http.Request) (common.Hash, error) {
	role, err := access.ParseRole(chi.URLParam(r, ParamRole))
	if err != nil {
		return common.Hash{}, validation.Errors{ParamRole: err}
	}

	return role, nil
}

// RequestIdParam accepts either a 32-byte hex request id or a request reference.
func RequestIdParam(r *http.Request) (common.Hash, error) {
	raw := chi.URLParam(r, ParamRequestId)
	if hash32Pattern.MatchString(raw) {
		return common.HexToHash(raw), nil
	}
	if raw == "" {
		return common.Hash{}, validation.Errors{ParamRequestId: validation.ErrRequired}
	}

	id, err := signature.RequestIdFromReference(raw)
	if err != nil {
		return common.Hash{}, validation.Errors{ParamRequestId: err}
	}

	return id, nil
}

func EventsSelector(r *http.Request) (db.EventsSelector, error) {
	var (
		query    = r.URL.Query()
		selector db.EventsSelector
		errs     = validation.Errors{}
	)

	if raw := query.Get(QueryAfterId); raw != "" {
		afterId, err := strconv.ParseInt(raw, 10, 64)
		errs[QueryAfterId] = validation.Validate(afterId, validation.Min(int64(0)))
		if err != nil {
			errs[QueryAfterId] = errors.New("must be an integer")
		}
		selector.AfterId = afterId
	}

	if raw := query.Get(QueryLimit); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		errs[QueryLimit] = validation.Validate(limit, validation.Required, validation.Max(uint64(maxEventsLimit)))
		if err != nil {
			errs[QueryLimit] = errors.New("must be a positive integer")
		}
		selector.Limit = limit
	}

	if raw := query.Get(QueryType); raw != "" {
		errs[QueryType] = validation.Validate(raw, validation.In(eventTypes...))
		selector.Type = &raw
	}

	if err := errs.Filter(); err != nil {
		return db.EventsSelector{}, err
	}

	return selector, nil
}
