package offline

import (
	"os"

	json "github.com/goccy/go-json"

	"babydbg/internal/offline/interfaces"
	"babydbg/internal/providers"
	"babydbg/internal/structures"
)

// snapshotFile is the on-disk envelope for a persisted offline store. The
// version field makes a snapshot from a previous deploy unusable as a whole,
// matching the store's all-or-nothing invalidation.
type snapshotFile struct {
	Version string            `json:"version"`
	Entries map[string][]byte `json:"entries"`
}

// SnapshotManager persists the offline store across restarts so a freshly
// booted daemon can serve cached fallbacks before ever reaching the upstream.
type SnapshotManager struct {
	version    string
	store      providers.StoreProviderInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewSnapshotManager(conf *structures.Config, store providers.StoreProviderInterface, compressor interfaces.CompressorInterface, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{
		version:    conf.Offline.Version,
		store:      store,
		compressor: compressor,
		logger:     logger,
	}
}

func (s *SnapshotManager) SaveToFile(fileName string) error {
	snapshot := snapshotFile{
		Version: s.version,
		Entries: s.store.Snapshot(),
	}

	jsonData, err := json.Marshal(&snapshot)
	if err != nil {
		return err
	}
	data, err := s.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (s *SnapshotManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := s.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot snapshotFile
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		return err
	}
	if snapshot.Version != s.version {
		s.logger.Warnf(providers.TypeApp, "snapshot version %q does not match %q, discarding", snapshot.Version, s.version)
		return nil
	}

	s.store.Restore(snapshot.Entries)
	s.logger.Infof(providers.TypeApp, "restored %d offline entries from %s", len(snapshot.Entries), fileName)
	return nil
}

func (s *SnapshotManager) Close() {
	s.compressor.Close()
}
