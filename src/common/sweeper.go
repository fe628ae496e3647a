package common

import (
	"context"
	"log"

	"fbs/src/store"
)

// Sweeper promotes accepted bookings whose window has passed to completed.
// The sweep is bookkeeping only: availability reads compare end times against
// now directly and never depend on the flip having happened.
type Sweeper struct {
	st *store.Store
}

func NewSweeper(st *store.Store) *Sweeper {
	return &Sweeper{st: st}
}

// Sweep runs one pass and returns how many bookings were completed. The
// store computes and persists the whole next snapshot under its lock.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	n, err := s.st.CompleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[sweeper] Completed %d expired bookings\n", n)
	}
	return n, nil
}
