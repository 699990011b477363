package sim

// Rejection reasons reported by CombinedCapacity.
const (
	RejectNoServers    = "no servers"
	RejectCapacityFull = "capacity full"
)

// CombinedCapacity implements the admission rule of a finite-capacity queue where
// customers in service and customers waiting share one bound of Servers+MaxQueue.
// There is no separate limit on the waiting line alone.
type CombinedCapacity struct {
	Servers  int
	MaxQueue int
}

// Limit returns the maximum number of customers allowed in the system.
func (c CombinedCapacity) Limit() int {
	return c.Servers + c.MaxQueue
}

// Admit decides whether an arrival that finds inSystem customers present may enter.
// With no servers every arrival is rejected, whatever the queue size.
func (c CombinedCapacity) Admit(inSystem int) (admitted bool, reason string) {
	if c.Servers <= 0 {
		return false, RejectNoServers
	}
	if inSystem >= c.Limit() {
		return false, RejectCapacityFull
	}
	return true, ""
}
