package order

// Source tags which store a record came from. Kept for diagnostics
// only; business logic never branches on it after merge.
type Source string

const (
	SourceLedger Source = "ledger"
	SourceLive   Source = "live"
)

// Record is the unified order entity produced by reconciliation. It is
// a view over the two stores, recomputed on every read; this engine
// never persists it.
type Record struct {
	OrderID       string `json:"orderId"`
	CreatedAt     string `json:"createdAt"`
	ProductName   string `json:"productName"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Address       string `json:"address"`
	AddressDetail string `json:"addressDetail"`
	PostalCode    string `json:"postalCode"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentKey    string `json:"paymentKey"`
	Status        Status `json:"status"`

	ApprovedAt        string `json:"approvedAt,omitempty"`
	CancelRequestedAt string `json:"cancelRequestedAt,omitempty"`
	CanceledAt        string `json:"canceledAt,omitempty"`
	CancelReason      string `json:"cancelReason"`

	// UserID is only known to the live store; spreadsheet rows predate
	// user accounts.
	UserID string `json:"userId,omitempty"`
	Source Source `json:"source"`
}
