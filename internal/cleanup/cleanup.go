// Package cleanup removes reservations whose slot lies in the past. The
// purge runs once at startup and then on a fixed interval, independently of
// request handling; it is not transactional with the availability view, so
// a view fetched just before a purge tick may still show a row the tick
// removes.
package cleanup

import (
	"context"
	"log"
	"time"

	"berberi/internal/repository"
	"berberi/internal/schedule"
)

// Service owns the purge ticker.
type Service struct {
	reservations *repository.ReservationRepo
	sessions     *repository.SessionRepo
	loc          *time.Location
	interval     time.Duration
	stop         chan struct{}
	done         chan struct{}
}

// New builds a purge service. The interval is how often the purge runs
// after the initial pass. Each pass also drops admin session rows whose
// expiry has passed.
func New(reservations *repository.ReservationRepo, sessions *repository.SessionRepo, loc *time.Location, interval time.Duration) *Service {
	return &Service{
		reservations: reservations,
		sessions:     sessions,
		loc:          loc,
		interval:     interval,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start runs one purge immediately, then ticks until Stop is called.
func (s *Service) Start() {
	go func() {
		defer close(s.done)
		s.runOnce()
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
	log.Printf("cleanup: purging expired reservations every %s", s.interval)
}

// Stop halts the ticker and waits for the loop to exit.
func (s *Service) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Service) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	deleted, err := s.Purge(ctx, time.Now().In(s.loc))
	if err != nil {
		log.Printf("cleanup: purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("cleanup: removed %d expired reservations", deleted)
	}

	sessions, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("cleanup: session prune failed: %v", err)
		return
	}
	if sessions > 0 {
		log.Printf("cleanup: removed %d expired admin sessions", sessions)
	}
}

// Purge deletes rows dated before today and today's rows whose end time is
// at or before now, regardless of status. Both deletions are unconditional
// and idempotent: with no eligible rows the call removes nothing.
func (s *Service) Purge(ctx context.Context, now time.Time) (int64, error) {
	today := now.Format(schedule.DateLayout)
	clock := now.Format(schedule.TimeLayout)

	old, err := s.reservations.DeleteBefore(ctx, today)
	if err != nil {
		return old, err
	}
	elapsed, err := s.reservations.DeleteElapsed(ctx, today, clock)
	return old + elapsed, err
}
