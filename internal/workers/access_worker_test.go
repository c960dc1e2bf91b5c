package workers

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/axellelanca/cmdvault/internal/models"
)

// recordingAccessRepo captures persisted accesses for inspection.
type recordingAccessRepo struct {
	mu       sync.Mutex
	accesses []models.Access
}

func (r *recordingAccessRepo) CreateAccess(access *models.Access) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accesses = append(r.accesses, *access)
	return nil
}

func (r *recordingAccessRepo) CountAccessesByCommandID(commandID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, a := range r.accesses {
		if a.CommandID == commandID {
			count++
		}
	}
	return count, nil
}

func (r *recordingAccessRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accesses)
}

func TestAccessWorkersPersistEvents(t *testing.T) {
	repo := &recordingAccessRepo{}
	events := make(chan models.AccessEvent, 8)

	StartAccessWorkers(2, events, repo)

	now := time.Now()
	events <- models.AccessEvent{CommandID: 1, Kind: models.AccessFull, Timestamp: now}
	events <- models.AccessEvent{CommandID: 1, Kind: models.AccessRaw, Timestamp: now}
	events <- models.AccessEvent{CommandID: 2, Kind: models.AccessFull, Timestamp: now}
	close(events)

	assert.Eventually(t, func() bool {
		return repo.len() == 3
	}, 2*time.Second, 10*time.Millisecond)

	count, err := repo.CountAccessesByCommandID(1)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
