package monitor

import (
	"log"
	"sync"
	"time"

	"github.com/axellelanca/cmdvault/internal/repository"
)

// catalogSnapshot holds the aggregate counters observed during one sweep.
type catalogSnapshot struct {
	commands int64
	likes    int64
	shares   int64
}

// CatalogMonitor periodically logs catalog-wide totals and flags changes
// between sweeps. It gives operators a heartbeat of catalog activity without
// any external metrics stack.
type CatalogMonitor struct {
	commandRepo repository.CommandRepository
	interval    time.Duration
	mu          sync.Mutex
	lastSeen    *catalogSnapshot // nil until the first sweep completes
}

// NewCatalogMonitor creates and returns a new instance of CatalogMonitor.
// interval determines how frequently the catalog totals are sampled.
func NewCatalogMonitor(commandRepo repository.CommandRepository, interval time.Duration) *CatalogMonitor {
	return &CatalogMonitor{
		commandRepo: commandRepo,
		interval:    interval,
	}
}

// Start launches the periodic monitoring loop.
// This is a blocking function that runs indefinitely until the program stops.
func (m *CatalogMonitor) Start() {
	log.Printf("[MONITOR] Starting catalog monitor with interval of %v...", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Take an immediate snapshot on startup before waiting for the first tick
	m.sweep()

	for range ticker.C {
		m.sweep()
	}
}

// sweep samples the catalog aggregates and compares them to the previous run.
func (m *CatalogMonitor) sweep() {
	commands, err := m.commandRepo.Count()
	if err != nil {
		log.Printf("[MONITOR] ERROR counting commands: %v", err)
		return
	}
	likes, err := m.commandRepo.SumLikes()
	if err != nil {
		log.Printf("[MONITOR] ERROR summing likes: %v", err)
		return
	}
	shares, err := m.commandRepo.SumShares()
	if err != nil {
		log.Printf("[MONITOR] ERROR summing shares: %v", err)
		return
	}

	current := catalogSnapshot{commands: commands, likes: likes, shares: shares}

	m.mu.Lock()
	previous := m.lastSeen
	m.lastSeen = &current
	m.mu.Unlock()

	if previous == nil {
		log.Printf("[MONITOR] Initial catalog state: %d command(s), %d like(s), %d share(s)",
			current.commands, current.likes, current.shares)
		return
	}

	if current != *previous {
		log.Printf("[MONITOR] Catalog changed: commands %d -> %d, likes %d -> %d, shares %d -> %d",
			previous.commands, current.commands,
			previous.likes, current.likes,
			previous.shares, current.shares)
	} else {
		log.Printf("[MONITOR] Catalog unchanged: %d command(s), %d like(s), %d share(s)",
			current.commands, current.likes, current.shares)
	}
}
