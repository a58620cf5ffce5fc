package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"exposurestats/internal/config"
	"exposurestats/internal/dto"
	"exposurestats/internal/library"
	"exposurestats/internal/logger"
	"exposurestats/internal/model"
	"exposurestats/internal/repository"
	"exposurestats/internal/service/websocket"
)

// Manager owns the in-memory library snapshot. The library is read once per
// run and on explicit or watcher-triggered reloads; every query handler
// reads the current snapshot.
type Manager struct {
	cfg     *config.Config
	log     *logger.Logger
	scanner *library.Scanner
	hub     *websocket.HubService

	mu       sync.RWMutex
	snap     *library.Snapshot
	scanning bool
}

func NewManager(cfg *config.Config, log *logger.Logger, hub *websocket.HubService) *Manager {
	return &Manager{
		cfg:     cfg,
		log:     log,
		scanner: library.NewScanner(cfg, log),
		hub:     hub,
		snap:    &library.Snapshot{},
	}
}

// Snapshot returns the current library snapshot.
func (m *Manager) Snapshot() *library.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Scanning reports whether a rescan is in flight.
func (m *Manager) Scanning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scanning
}

// Rescan scans the library and swaps the snapshot. Progress is broadcast to
// websocket clients.
func (m *Manager) Rescan(ctx context.Context) (*library.Snapshot, error) {
	m.mu.Lock()
	if m.scanning {
		m.mu.Unlock()
		return nil, fmt.Errorf("scan already in progress")
	}
	m.scanning = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.scanning = false
		m.mu.Unlock()
	}()

	snap, err := m.scanner.Scan(ctx, m.progress)
	if err != nil {
		m.progress(dto.ScanEvent{Stage: "error", Message: err.Error()})
		return nil, err
	}

	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()
	return snap, nil
}

// RescanAsync starts a rescan in the background.
func (m *Manager) RescanAsync() {
	go func() {
		if _, err := m.Rescan(context.Background()); err != nil {
			m.log.Error("background rescan failed: %v", err)
		}
	}()
}

// LoadToDB persists the current snapshot: photo rows, their sidecar
// keywords and the keyword links.
func (m *Manager) LoadToDB(photoRepo repository.PhotoRepository, kwRepo repository.KeywordRepository) error {
	snap := m.Snapshot()
	if len(snap.Photos) == 0 {
		return fmt.Errorf("nothing to load, snapshot is empty")
	}

	if err := photoRepo.InsertBatch(snap.Photos); err != nil {
		return err
	}

	keywordIDs := map[string]int64{}
	for _, p := range snap.Photos {
		if len(p.Keywords) == 0 {
			continue
		}
		stored, err := photoRepo.GetByName(p.Name)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("photo %s missing after batch insert", p.Name)
		}
		for _, kw := range p.Keywords {
			id, ok := keywordIDs[kw]
			if !ok {
				var err error
				if id, err = kwRepo.EnsureKeyword(kw, false, model.CategoryManual); err != nil {
					return err
				}
				keywordIDs[kw] = id
			}
			if err := kwRepo.TagPhoto(stored.ID, id); err != nil {
				return err
			}
		}
	}

	m.log.Info("Data for %d images inserted", len(snap.Photos))
	return nil
}

func (m *Manager) progress(ev dto.ScanEvent) {
	if m.hub == nil {
		return
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	m.hub.Broadcast(msg)
}
