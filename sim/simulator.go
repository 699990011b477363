// sim/simulator.go
package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/capacity-sim/capacity-sim/sim/trace"
	"github.com/capacity-sim/capacity-sim/sim/workload"
)

// RunOutcome is the raw output of one QueueSimulator run, before aggregation.
type RunOutcome struct {
	WaitsMinutes []float64 // one entry per served customer, in arrival order
	Served       int
	Rejected     int
	BusySeconds  float64 // server-seconds spent serving, clipped to the horizon
	PeakInSystem int     // highest number of customers present after an admission
}

// QueueSimulator replays a sorted arrival timeline through a fixed number of servers
// that share a single queue, with a combined in-service + waiting capacity bound.
type QueueSimulator struct {
	Servers   int
	Config    SimulationConfig
	Admission CombinedCapacity
	// Service draws service durations; defaults to exponential with the configured mean.
	Service workload.ServiceSampler
	// Trace receives admission and assignment records; nil disables tracing.
	Trace *trace.SimulationTrace
}

// NewQueueSimulator creates a simulator for the given number of servers.
func NewQueueSimulator(servers int, cfg SimulationConfig) *QueueSimulator {
	return &QueueSimulator{
		Servers:   servers,
		Config:    cfg,
		Admission: CombinedCapacity{Servers: servers, MaxQueue: cfg.MaxQueue},
		Service:   workload.ExponentialService{MeanMinutes: cfg.MeanServiceMinutes},
	}
}

// Run processes arrivals (seconds, ascending) and returns the per-customer waits and
// counters. The rng is consumed for service draws only, one draw per admitted customer.
func (qs *QueueSimulator) Run(arrivals []float64, rng *rand.Rand) RunOutcome {
	pool := NewServerPool(qs.Servers)
	inSystem := &DepartureQueue{}
	horizon := qs.Config.HorizonSeconds()

	out := RunOutcome{WaitsMinutes: make([]float64, 0, len(arrivals))}

	for idx, arrival := range arrivals {
		// customers whose service completed by now have left
		inSystem.EvictThrough(arrival)

		admitted, reason := qs.Admission.Admit(inSystem.Len())
		if qs.Trace != nil {
			qs.Trace.RecordAdmission(trace.AdmissionRecord{
				ArrivalIndex: idx,
				Clock:        arrival,
				InSystem:     inSystem.Len(),
				Capacity:     qs.Admission.Limit(),
				Admitted:     admitted,
				Reason:       reason,
			})
		}
		if !admitted {
			logrus.Tracef("[t=%.1fs] rejected arrival %d: %s (in system %d)", arrival, idx, reason, inSystem.Len())
			out.Rejected++
			continue
		}

		server := pool.Earliest()
		serviceStart := max(arrival, pool.FreeAt(server))
		waitMinutes := (serviceStart - arrival) / 60.0
		serviceEnd := serviceStart + qs.Service.Sample(rng)

		pool.Assign(server, serviceEnd)
		inSystem.Push(serviceEnd)
		out.PeakInSystem = max(out.PeakInSystem, inSystem.Len())

		// only the part of the service inside the observation horizon counts as busy time
		out.BusySeconds += max(0.0, min(serviceEnd, horizon)-max(0.0, serviceStart))

		if qs.Trace != nil {
			qs.Trace.RecordAssignment(trace.AssignmentRecord{
				ArrivalIndex: idx,
				Server:       server,
				Clock:        arrival,
				ServiceStart: serviceStart,
				ServiceEnd:   serviceEnd,
				WaitMinutes:  waitMinutes,
			})
		}

		out.WaitsMinutes = append(out.WaitsMinutes, waitMinutes)
		out.Served++
	}

	logrus.Debugf("[servers=%d] replayed %d arrivals: served=%d rejected=%d peak in system=%d",
		qs.Servers, len(arrivals), out.Served, out.Rejected, out.PeakInSystem)
	return out
}
