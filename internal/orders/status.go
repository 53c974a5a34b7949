package orders

// Status tokens for the order-card select menu. The enumeration is open:
// the ledger stores whatever token the control carried, without validating
// transitions.
const (
	StatusPending        = "pending"
	StatusPaid           = "paid"
	StatusProcessing     = "processing"
	StatusWaitingVoucher = "w4v"
	StatusDone           = "done"
)

// StatusOption is one entry of the status select menu.
type StatusOption struct {
	Value       string
	Description string
}

func StatusOptions() []StatusOption {
	return []StatusOption{
		{StatusPending, "pending"},
		{StatusPaid, "paid"},
		{StatusProcessing, "processing"},
		{StatusWaitingVoucher, "waiting for vch"},
		{StatusDone, "done"},
	}
}
