package domain

// Action names one permission-checked operation on the service.
type Action string

const (
	ActionViewAccounts   Action = "accounts.view"
	ActionManageAccounts Action = "accounts.manage"
	ActionMoveMoney      Action = "ledger.move"
	ActionViewAnalytics  Action = "analytics.view"
)

// Actor is the authenticated admin on whose behalf an operation runs.
// It is supplied explicitly by the boundary layer; the core never reads
// session state on its own.
type Actor struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
