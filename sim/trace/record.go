// Package trace provides decision-trace recording for a queue simulation run.
// This package has no dependencies on sim/; it stores plain data types.
package trace

// AdmissionRecord captures a single admission control decision.
type AdmissionRecord struct {
	ArrivalIndex int     // position of the arrival in the sorted timeline
	Clock        float64 // arrival timestamp in seconds
	InSystem     int     // customers present after departures were evicted
	Capacity     int     // servers + max queue
	Admitted     bool
	Reason       string
}

// AssignmentRecord captures the server chosen for an admitted customer.
type AssignmentRecord struct {
	ArrivalIndex int
	Server       int
	Clock        float64 // arrival timestamp in seconds
	ServiceStart float64 // seconds
	ServiceEnd   float64 // seconds
	WaitMinutes  float64
}
