// Package matmul implements matrix algorithms as bsp.Worker factories.
//
// FoxOtto and GeneralisedFoxOtto compute one (min, +) squaring round of a
// distance matrix together with its predecessor matrix; BroadcastMultiply
// computes an ordinary product and serves as an engine sanity check.
//
// Memory contract, per PE and local offset (r, c):
//
//	inputs   "A", "B"          distance blocks (both hold D initially)
//	         "P"               predecessor block
//	outputs  "dist", "pred"    squaring result (FoxOtto variants)
//	         "C"               product (BroadcastMultiply)
//
// "A" is overwritten by the row broadcast of every phase, so each PE keeps
// its own block in "A_CONST". "B" and "P" rotate one PE north after each
// phase (row 0 wraps to row p-1), which is safe because the engine delivers
// values only after every PE has finished the stage.
//
// Ties: a candidate replaces the running distance only when strictly
// smaller; when the intermediate k equals the destination column the stored
// predecessor is kept.
package matmul
