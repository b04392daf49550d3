package ingest

import (
	"time"

	"motion-logger/services/sim"
)

// StateSource is what the simulated sensors sample. *sim.Base satisfies it.
type StateSource interface {
	State() sim.State
}

func tickInterval(rateHz, fallbackHz int) time.Duration {
	if rateHz <= 0 {
		rateHz = fallbackHz
	}
	return time.Second / time.Duration(rateHz)
}
