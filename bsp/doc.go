// Package bsp simulates a bulk-synchronous-parallel machine: a p×p grid of
// processing elements (PEs), each with private memory, advancing in lock step
// through a fixed sequence of stages separated by global barriers.
//
// A run executes
//
//	Initialise
//	for phase := 0; phase < phases; phase++ {
//	    CommunicationBefore → flush → Computation → CommunicationAfter → flush
//	}
//
// Each stage is one task per PE, dispatched on a bounded pool. The manager
// waits for every task of a stage before flushing the channels or starting
// the next stage, so a value sent in a communication stage is visible to its
// receiver only in the following stage.
//
// Algorithms plug in through the Worker interface and a Factory closure that
// builds one Worker per PE. Workers talk to their memory and to the channels
// exclusively through the *PE handle they receive.
//
// Failure policy: the first failing task cancels the rest of its stage (tasks
// not yet started are skipped), every failure of that stage is reported via
// errors.Join, and no later stage runs. Results are only readable after a
// fully successful run.
//
// Errors (sentinel):
//
//	– ErrConfiguration  invalid n, p, phases, initial matrices or factory.
//	– ErrWorkerFailure  a Worker callback failed or panicked.
//	– ErrChannelMisuse  a channel operation outside a communication stage.
//	– ErrAlreadyRun     Run called twice on one Manager.
//	– ErrNotRun         Result requested before a successful Run.
//
// Channel errors remain matchable as comm.ErrChannelCongestion and
// comm.ErrInconsistentChannelUsage.
package bsp
