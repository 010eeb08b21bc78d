package signal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// NotifyContext is like signal.NotifyContext, but the received signal becomes
// the cancellation cause, and the second signal kills the process right away,
// so a stuck shutdown can still be interrupted.
func NotifyContext(parent context.Context, sig ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sig...)

	go func() {
		select {
		case s := <-sigCh:
			cancel(fmt.Errorf("got signal %v", s))
		case <-ctx.Done():
			return
		}
		<-sigCh
		os.Exit(1)
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel(context.Canceled)
	}
}
