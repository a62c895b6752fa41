// SPDX-License-Identifier: MIT

package arith

import (
	"errors"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lvnum",
	Subsystem: "arith",
	Name:      "dispatch_total",
	Help:      "Arithmetic operations dispatched, by kernel, operation, call shape and outcome.",
}, []string{"kernel", "op", "shape", "outcome"})

// Dispatches exposes the dispatch counter for tests and custom exporters.
func Dispatches() *prometheus.CounterVec { return dispatches }

// Outcome labels.
const (
	OutcomeOK            = "ok"
	OutcomeMismatch      = "context_mismatch"
	OutcomeDivByZero     = "division_by_zero"
	OutcomeNotInvertible = "not_invertible"
	OutcomeReleased      = "released"
	OutcomeUnsupported   = "unsupported"
	OutcomeError         = "error"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, algebra.ErrContextMismatch):
		return OutcomeMismatch
	case errors.Is(err, algebra.ErrDivisionByZero):
		return OutcomeDivByZero
	case errors.Is(err, algebra.ErrNotInvertible):
		return OutcomeNotInvertible
	case errors.Is(err, algebra.ErrReleased):
		return OutcomeReleased
	case errors.Is(err, algebra.ErrUnsupported):
		return OutcomeUnsupported
	default:
		return OutcomeError
	}
}

func (k *Kernel[V, R]) observe(op Op, s Shape, err error) {
	dispatches.WithLabelValues(k.Name, op.String(), s.String(), outcome(err)).Inc()
}
