package offline

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"babydbg/internal/offline/interfaces"
	"babydbg/internal/providers"
	"babydbg/internal/structures"
)

// Scheduler periodically snapshots the offline store to disk and restores it
// on boot. One mutex serializes snapshot operations; the store itself is safe
// for concurrent request traffic while a snapshot runs.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	snapshot *SnapshotManager
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Offline.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.snapshot.SaveToFile(s.config.Offline.SnapshotPath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting offline store: %s", err)
			return
		}
		s.metrics.ObserveSnapshotDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted offline store to %s", s.config.Offline.SnapshotPath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.snapshot.LoadFromFile(s.config.Offline.SnapshotPath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting offline store to file...")
	start := time.Now()
	err := s.snapshot.SaveToFile(s.config.Offline.SnapshotPath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting offline store: %s", err)
		return err
	}
	s.metrics.ObserveSnapshotDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, snapshot *SnapshotManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		snapshot: snapshot,
	}
}
