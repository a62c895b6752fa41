// SPDX-License-Identifier: MIT

// Package algebra - Context construction options.
//
// Options configure observability only. They never influence identity:
// two Contexts built from equal Params are compatible whatever options
// were passed.
package algebra

import "log/slog"

// Option mutates construction options.
type Option func(*options)

type options struct {
	log *slog.Logger
}

func defaultOptions() options {
	return options{log: slog.Default()}
}

// WithLogger routes Context lifecycle debug logs to l.
// Panics on nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("algebra: WithLogger(nil)")
	}

	return func(o *options) { o.log = l }
}
