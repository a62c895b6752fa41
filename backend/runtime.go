// SPDX-License-Identifier: MIT

// Package backend - process-wide runtime state.
//
// Purpose:
//   - One-time setup of the logger and metric collectors.
//   - Live-structure accounting: every *Init increments a per-kind counter,
//     every *Clear decrements it. Tests use Live to prove that wrappers
//     release exactly once on every path.
//
// Notes:
//   - Setup may run at most once. The first allocation runs it implicitly
//     with defaults when the caller did not; later Setup calls fail with
//     ErrAlreadyInitialized and never re-initialize.
package backend

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Kind names one family of foreign structures.
type Kind uint8

// Structure kinds tracked by the runtime.
const (
	KindFmpz Kind = iota
	KindFmpq
	KindArb
	KindAcb
	KindFmpzPoly
	KindFmpqPoly
	KindModPoly
	KindFmpzMat
	KindFmpqMat
	KindModMat
	KindModCtx
	KindFqCtx
	KindFq
	KindNfCtx
	KindNf
	KindFqPoly
	KindFqMat
	KindFmpzPolyQ
	kindCount
)

var kindNames = [kindCount]string{
	KindFmpz:      "fmpz",
	KindFmpq:      "fmpq",
	KindArb:       "arb",
	KindAcb:       "acb",
	KindFmpzPoly:  "fmpz_poly",
	KindFmpqPoly:  "fmpq_poly",
	KindModPoly:   "fmpz_mod_poly",
	KindFmpzMat:   "fmpz_mat",
	KindFmpqMat:   "fmpq_mat",
	KindModMat:    "fmpz_mod_mat",
	KindModCtx:    "fmpz_mod_ctx",
	KindFqCtx:     "fq_ctx",
	KindFq:        "fq",
	KindNfCtx:     "nf_ctx",
	KindNf:        "nf_elem",
	KindFqPoly:    "fq_poly",
	KindFqMat:     "fq_mat",
	KindFmpzPolyQ: "fmpz_poly_q",
}

// String returns the stable metric label of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}

	return kindNames[k]
}

// Kinds returns every tracked kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}

	return out
}

// ---------- configuration ----------

// Option configures the runtime in Setup.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the logger used for runtime diagnostics.
// Panics on nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("backend: WithLogger: nil logger")
	}

	return func(o *options) { o.logger = l }
}

// WithRegisterer registers the runtime collectors with r.
// Without it the collectors exist but are not exported anywhere.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// ---------- state ----------

type runtimeState struct {
	log   *slog.Logger
	live  *prometheus.GaugeVec
	inits *prometheus.CounterVec
}

var (
	setupOnce sync.Once
	state     *runtimeState
	ready     atomic.Bool
	liveCount [kindCount]atomic.Int64
)

// Setup performs the one-time runtime initialization.
//
// Behavior highlights:
//   - Returns ErrAlreadyInitialized when the runtime is already set up.
//   - A registration failure is returned, but the runtime stays initialized
//     with working (unexported) collectors.
func Setup(opts ...Option) error {
	err := ErrAlreadyInitialized
	setupOnce.Do(func() {
		state, err = newRuntime(opts)
		ready.Store(true)
	})

	return err
}

// newRuntime builds the runtime state; it never returns a nil state.
func newRuntime(opts []Option) (*runtimeState, error) {
	o := options{logger: slog.Default()}
	for _, fn := range opts {
		fn(&o)
	}

	rt := &runtimeState{
		log: o.logger,
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "lvnum",
			Subsystem: "backend",
			Name:      "live_structures",
			Help:      "Foreign structures initialized and not yet cleared, by kind.",
		}, []string{"kind"}),
		inits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvnum",
			Subsystem: "backend",
			Name:      "inits_total",
			Help:      "Foreign structure initializations, by kind.",
		}, []string{"kind"}),
	}

	// Carry over anything allocated before setup finished (cannot happen
	// through the public API, kept for gauge consistency).
	for _, k := range Kinds() {
		rt.live.WithLabelValues(k.String()).Set(float64(liveCount[k].Load()))
	}

	var err error
	if o.registerer != nil {
		if e := o.registerer.Register(rt.live); e != nil {
			err = fmt.Errorf("backend: register live gauge: %w", e)
		} else if e = o.registerer.Register(rt.inits); e != nil {
			err = fmt.Errorf("backend: register init counter: %w", e)
		}
	}

	rt.log.Debug("backend: runtime initialized", slog.Bool("metrics_registered", o.registerer != nil && err == nil))

	return rt, err
}

// ensure returns the runtime, running the default setup on first use.
func ensure() *runtimeState {
	setupOnce.Do(func() {
		state, _ = newRuntime(nil)
		ready.Store(true)
	})

	return state
}

// Initialized reports whether the runtime has been set up.
func Initialized() bool {
	return ready.Load()
}

// Live returns the number of structures of kind k currently initialized.
func Live(k Kind) int64 {
	if k >= kindCount {
		return 0
	}

	return liveCount[k].Load()
}

// Collectors returns the runtime collectors (live gauge, init counter).
func Collectors() (*prometheus.GaugeVec, *prometheus.CounterVec) {
	rt := ensure()

	return rt.live, rt.inits
}

// ---------- per-structure header ----------

// header is embedded in every foreign structure. It carries the kind and the
// initialized flag; every entry point calls must() on each operand.
type header struct {
	kind Kind
	live bool
}

func (h *header) init(k Kind) {
	rt := ensure()
	h.kind = k
	h.live = true
	liveCount[k].Add(1)
	rt.live.WithLabelValues(k.String()).Inc()
	rt.inits.WithLabelValues(k.String()).Inc()
}

func (h *header) clear() {
	if !h.live {
		panic(panicDoubleClear)
	}
	h.live = false
	liveCount[h.kind].Add(-1)
	state.live.WithLabelValues(h.kind.String()).Dec()
}

func (h *header) must() {
	if !h.live {
		panic(panicUseAfterClear)
	}
}
