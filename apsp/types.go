package apsp

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/sirupsen/logrus"
)

// Sentinel errors for the solver.
var (
	// ErrConfiguration indicates an invalid graph, grid size or variant.
	ErrConfiguration = errors.New("apsp: invalid configuration")
	// ErrNotSolved indicates a query before a successful Solve.
	ErrNotSolved = errors.New("apsp: not solved")
	// ErrVertexOutOfRange indicates a query id outside [0, n).
	ErrVertexOutOfRange = errors.New("apsp: vertex out of range")
	// ErrNoPath indicates that the destination is unreachable from the source.
	ErrNoPath = errors.New("apsp: no path between vertices")
	// ErrCycleDetected indicates a predecessor walk that revisits a vertex or never ends.
	ErrCycleDetected = errors.New("apsp: cycle in predecessor matrix")
	// ErrSnapshot indicates a malformed snapshot.
	ErrSnapshot = errors.New("apsp: malformed snapshot")
)

// Variant selects the squaring algorithm.
type Variant int

const (
	// VariantAuto uses FoxOtto when every PE owns one entry and GeneralisedFoxOtto otherwise.
	VariantAuto Variant = iota
	// VariantFoxOtto is the element-wise algorithm; requires p == n.
	VariantFoxOtto
	// VariantGeneralised is the block algorithm; requires p | n.
	VariantGeneralised
)

// String returns the variant name accepted by ParseVariant.
func (v Variant) String() string {
	switch v {
	case VariantAuto:
		return "auto"
	case VariantFoxOtto:
		return "fox-otto"
	case VariantGeneralised:
		return "generalised"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps a variant name to its Variant.
func ParseVariant(s string) (Variant, error) {
	for _, v := range []Variant{VariantAuto, VariantFoxOtto, VariantGeneralised} {
		if v.String() == s {
			return v, nil
		}
	}

	return VariantAuto, fmt.Errorf("unknown variant %q: %w", s, ErrConfiguration)
}

// Options configures a Solver.
//
// GridSize – PEs per grid side; 0 means one PE per vertex.
// Padding  – round n up to a multiple of GridSize with isolated vertices.
// PoolSize – concurrent PE tasks per stage (default runtime.GOMAXPROCS(0)).
// Variant  – squaring algorithm (default VariantAuto).
// Logger   – structured logger (default discards).
// Observer – engine observer forwarded to every round (default none).
type Options struct {
	GridSize int
	Padding  bool
	PoolSize int
	Variant  Variant
	Logger   logrus.FieldLogger
	Observer bsp.Observer
}

// Option represents a functional option for configuring a Solver.
type Option func(*Options)

// WithGridSize sets the number of PEs per grid side.
func WithGridSize(p int) Option {
	return func(o *Options) {
		o.GridSize = p
	}
}

// WithPadding allows grid sizes that do not divide the vertex count.
func WithPadding() Option {
	return func(o *Options) {
		o.Padding = true
	}
}

// WithPoolSize bounds the concurrent PE tasks of each stage.
func WithPoolSize(k int) Option {
	return func(o *Options) {
		o.PoolSize = k
	}
}

// WithVariant selects the squaring algorithm.
func WithVariant(v Variant) Option {
	return func(o *Options) {
		o.Variant = v
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs an engine observer on every round.
func WithObserver(obs bsp.Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// DefaultOptions returns the defaults listed on Options.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{
		GridSize: 0,
		Padding:  false,
		PoolSize: runtime.GOMAXPROCS(0),
		Variant:  VariantAuto,
		Logger:   l,
	}
}
