package checks

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"webup/hostup/logger"
)

var (
	sigMu   sync.Mutex
	sigWait chan struct{}
)

// WatchInterrupts installs the process-wide interrupt handler: an interrupt
// aborts the run with a non-zero exit, unless a waiting check has claimed
// the signal to mean "proceed without waiting".
func WatchInterrupts() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	go func() {
		for range ch {
			sigMu.Lock()
			claimed := sigWait
			sigWait = nil
			sigMu.Unlock()

			if claimed != nil {
				close(claimed)
				continue
			}

			fmt.Println()
			logger.Error("Aborted by user")
			os.Exit(1)
		}
	}()
}

func claimInterrupt() chan struct{} {
	sigMu.Lock()
	defer sigMu.Unlock()
	sigWait = make(chan struct{})
	return sigWait
}

func releaseInterrupt() {
	sigMu.Lock()
	sigWait = nil
	sigMu.Unlock()
}
