package types

type EventType string

const (
	EventRoleGranted      EventType = "role_granted"
	EventRoleRevoked      EventType = "role_revoked"
	EventRoleAdminChanged EventType = "role_admin_changed"
	EventDeposited        EventType = "deposited"
	EventMinted           EventType = "minted"
	EventWithdrawn        EventType = "withdrawn"
	EventTransfer         EventType = "transfer"
	EventApproval         EventType = "approval"
)

func (t EventType) String() string {
	return string(t)
}

type RoleEvent struct {
	Role    string `json:"role"`
	Account string `json:"account"`
	Sender  string `json:"sender"`
}

type RoleAdminEvent struct {
	Role          string `json:"role"`
	PreviousAdmin string `json:"previous_admin"`
	NewAdmin      string `json:"new_admin"`
}

type DepositEvent struct {
	Depositor string `json:"depositor"`
	Amount    string `json:"amount"`
}

type MintEvent struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type WithdrawalEvent struct {
	Executor  string  `json:"executor"`
	User      string  `json:"user"`
	To        string  `json:"to"`
	Amount    string  `json:"amount"`
	RequestId *string `json:"request_id,omitempty"`
	Nonce     *string `json:"nonce,omitempty"`
}

type TransferEvent struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type ApprovalEvent struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}
