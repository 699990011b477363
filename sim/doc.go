// Package sim provides the discrete-event queueing core for capacity planning.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - config.go: SimulationConfig, the immutable per-run parameters
//   - simulator.go: QueueSimulator, which replays a sorted arrival timeline through a
//     fixed number of servers with a combined queue+service capacity bound
//   - metrics.go: ScenarioResult and the aggregation of one run into it
//   - evaluator.go / recommend.go: the capacity sweep and the choice of the best candidate
//
// # Architecture
//
// Data flows strictly downward:
//
//	workload.GenerateArrivals → QueueSimulator.Run → Summarize → EvaluateCapacities → Recommend
//
// Sub-packages:
//   - sim/workload/: arrival rate profiles, the Poisson arrival generator, service samplers
//   - sim/trace/: optional admission and server-assignment decision records
//   - sim/scenario/: scenario specs (YAML files, loosely-typed request values) and validation
//   - sim/report/: CSV, JSON, Markdown and SVG renderers for evaluation results
//
// # Reproducibility
//
// Every candidate server count c gets its own *rand.Rand seeded with seed+c (see rng.go).
// Nothing random is shared between candidates, so candidates may run concurrently and
// a fixed seed always reproduces the same ScenarioResult values bit for bit.
package sim
