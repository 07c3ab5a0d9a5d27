// Package shutdown реализует корректное завершение процесса по SIGINT/SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stickynotes/pkg/logger"
)

// Hook - действие, выполняемое при завершении.
type Hook func(context.Context) error

const (
	logShutdownSignal  = "shutdown signal received"
	logHookFailed      = "shutdown hook failed"
	logShutdownTimeout = "shutdown timed out before all hooks finished"
)

// Wait блокируется до SIGINT/SIGTERM или отмены ctx, затем параллельно
// выполняет hooks, ограничивая их общее время значением timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log := logger.Log(ctx)
	log.Info(ctx, logShutdownSignal)

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, logShutdownTimeout, zap.Duration("timeout", timeout))
	}
}
