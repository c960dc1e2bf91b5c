package workers

import (
	"log"

	"github.com/axellelanca/cmdvault/internal/models"
	"github.com/axellelanca/cmdvault/internal/repository"
)

// StartAccessWorkers launches a pool of worker goroutines to persist access
// events asynchronously, so command reads are never delayed by audit writes.
// Parameters:
//   - workerCount: number of concurrent workers to spawn
//   - accessEventsChan: channel that receives access events to be processed
//   - accessRepo: repository interface for persisting accesses to database
func StartAccessWorkers(workerCount int, accessEventsChan <-chan models.AccessEvent, accessRepo repository.AccessRepository) {
	log.Printf("Starting %d access worker(s)...", workerCount)

	for i := 0; i < workerCount; i++ {
		go accessWorker(accessEventsChan, accessRepo)
	}
}

// accessWorker is the function executed by each worker goroutine.
// It drains the channel until the channel is closed, then exits.
func accessWorker(accessEventsChan <-chan models.AccessEvent, accessRepo repository.AccessRepository) {
	for event := range accessEventsChan {
		access := &models.Access{
			CommandID: event.CommandID,
			Kind:      event.Kind,
			Timestamp: event.Timestamp,
			UserAgent: event.UserAgent,
			IPAddress: event.IPAddress,
		}

		if err := accessRepo.CreateAccess(access); err != nil {
			// Log and keep going, one failed audit write must not stall the pool.
			log.Printf("ERROR: Failed to save %s access for command %d (UserAgent: %s, IP: %s): %v",
				event.Kind, event.CommandID, event.UserAgent, event.IPAddress, err)
		}
	}
}
