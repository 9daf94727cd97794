package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context canceled on the first shutdown signal.
// A conversion in flight observes it and its browser is released.
// Call stop() to restore default signal handling.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
