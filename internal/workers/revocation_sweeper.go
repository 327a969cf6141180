package workers

import (
	"time"

	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/revocation"
)

// RevocationSweeper periodically purges expired entries from the in-memory
// revocation store so its map does not grow unbounded in long-running
// processes. The Redis-backed store expires entries on its own and needs no
// sweeper.
type RevocationSweeper struct {
	store    *revocation.MemoryStore
	interval time.Duration
	logger   *logger.Logger
	stop     chan struct{}
}

// NewRevocationSweeper constructs a sweeper purging store every interval.
func NewRevocationSweeper(store *revocation.MemoryStore, interval time.Duration, logger *logger.Logger) *RevocationSweeper {
	return &RevocationSweeper{
		store:    store,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Run implements [Worker]. The sweep loop runs in its own goroutine until
// Stop is called.
func (s *RevocationSweeper) Run() {
	go s.loop()
}

// Stop terminates the sweep loop. Safe to call once.
func (s *RevocationSweeper) Stop() {
	close(s.stop)
}

func (s *RevocationSweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			if removed := s.store.Purge(now); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("purged expired revocation entries")
			}
		}
	}
}
