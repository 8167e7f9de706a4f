package resources

import (
	"encoding/json"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type DomainResponse struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	ChainId           string `json:"chain_id"`
	VerifyingContract string `json:"verifying_contract"`
	Separator         string `json:"separator"`
	ReplayPolicy      string `json:"replay_policy"`
	Variant           string `json:"variant"`
}

type SupplyResponse struct {
	TotalSupply string `json:"total_supply"`
}

type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type AllowanceResponse struct {
	Owner     string `json:"owner"`
	Spender   string `json:"spender"`
	Allowance string `json:"allowance"`
}

type RoleResponse struct {
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
	HasRole bool   `json:"has_role"`
}

type RoleMembersResponse struct {
	Role      string   `json:"role"`
	Name      string   `json:"name,omitempty"`
	AdminRole string   `json:"admin_role"`
	Members   []string `json:"members"`
}

type NonceResponse struct {
	Address string `json:"address"`
	Nonce   uint64 `json:"nonce"`
}

type RequestResponse struct {
	RequestId  string  `json:"request_id"`
	Consumed   bool    `json:"consumed"`
	Account    *string `json:"account,omitempty"`
	ConsumedAt *int64  `json:"consumed_at,omitempty"`
}

type Event struct {
	Id        int64           `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt int64           `json:"created_at"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type WithdrawalResponse struct {
	Executor  string  `json:"executor"`
	User      string  `json:"user"`
	To        string  `json:"to"`
	Amount    string  `json:"amount"`
	Nonce     *string `json:"nonce,omitempty"`
	RequestId *string `json:"request_id,omitempty"`
}

func NewDomainResponse(l *ledger.Ledger, separator common.Hash) DomainResponse {
	domain := l.Domain()

	return DomainResponse{
		Name:              domain.Name,
		Version:           domain.Version,
		ChainId:           domain.ChainId.String(),
		VerifyingContract: domain.VerifyingContract.Hex(),
		Separator:         separator.Hex(),
		ReplayPolicy:      l.Authorizer().Policy().String(),
		Variant:           string(l.Variant()),
	}
}

func NewBalanceResponse(account common.Address, balance *uint256.Int) BalanceResponse {
	return BalanceResponse{Address: account.Hex(), Balance: balance.Dec()}
}

func NewRoleResponse(role common.Hash, account common.Address, has bool) RoleResponse {
	return RoleResponse{
		Role:    role.Hex(),
		Name:    access.RoleName(role),
		Address: account.Hex(),
		HasRole: has,
	}
}

func NewRoleMembersResponse(role, admin common.Hash, members []common.Address) RoleMembersResponse {
	response := RoleMembersResponse{
		Role:      role.Hex(),
		Name:      access.RoleName(role),
		AdminRole: admin.Hex(),
		Members:   make([]string, len(members)),
	}
	for i, member := range members {
		response.Members[i] = member.Hex()
	}

	return response
}

func NewRequestResponse(id common.Hash, consumed *db.ConsumedRequest) RequestResponse {
	response := RequestResponse{RequestId: id.Hex()}
	if consumed == nil {
		return response
	}

	consumedAt := consumed.ConsumedAt.Unix()
	response.Consumed = true
	response.Account = &consumed.Account
	response.ConsumedAt = &consumedAt

	return response
}

func NewEvent(event db.Event) Event {
	return Event{
		Id:        event.Id,
		Type:      event.Type,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt.Unix(),
	}
}

func NewEventsResponse(events []db.Event) EventsResponse {
	response := EventsResponse{Events: make([]Event, len(events))}
	for i, event := range events {
		response.Events[i] = NewEvent(event)
	}

	return response
}

func NewWithdrawalResponse(executor common.Address, request signature.WithdrawRequest, policy types.ReplayPolicy) WithdrawalResponse {
	response := WithdrawalResponse{
		Executor: executor.Hex(),
		User:     request.User.Hex(),
		To:       request.To.Hex(),
		Amount:   request.Amount.Dec(),
	}

	switch policy {
	case types.ReplayPolicyNonce:
		nonce := request.Nonce.Dec()
		response.Nonce = &nonce
	default:
		id := request.RequestId.Hex()
		response.RequestId = &id
	}

	return response
}
