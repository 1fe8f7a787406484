//go:build !unix

package main

import (
	"context"
	"os"
	"os/signal"
)

// signalContext returns a context cancelled on interrupt.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
