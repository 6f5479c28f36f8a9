// Package comm arbitrates the communication channels of a simulated p×p
// processing-element grid during one bulk-synchronous superstep.
//
// Three channel kinds exist:
//
//   - point-to-point: one channel per destination element;
//   - row highway: one broadcast bus per grid row;
//   - column highway: one broadcast bus per grid column.
//
// Within a superstep a channel may be claimed by a single source. A second
// distinct source on the same channel fails immediately with
// ErrChannelCongestion. Receivers declare where incoming values go (Target)
// and Flush pairs queued values with declared intents in declaration order.
//
// Flush is atomic: every channel is checked first, and if any of them has a
// mismatch between values sent and receives declared nothing is delivered
// and ErrInconsistentChannelUsage is returned. Claims, queues and intents are
// cleared by every Flush.
//
// All methods are safe for concurrent use.
package comm
