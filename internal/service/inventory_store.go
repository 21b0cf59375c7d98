package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pantryscan/inventory-service/internal/models"
	"github.com/pantryscan/inventory-service/pkg/clock"
	"github.com/pantryscan/inventory-service/pkg/metrics"
)

// Snapshot is the state the store publishes to observers after every load and
// mutation: the item collection, the statistics derived from it, and the
// store's load/error status.
type Snapshot struct {
	Items     []models.InventoryItem `json:"items"`
	Stats     models.StockStats      `json:"stats"`
	IsLoading bool                   `json:"is_loading"`
	LastError *ErrorKind             `json:"last_error,omitempty"`
}

// Observer receives the new snapshot after each state change.
type Observer func(Snapshot)

// InventoryStore is the single source of truth for the tracked item
// collection. All mutations flow through its operations so that persistence
// and statistics recomputation stay coupled to every state change. Statistics
// are always recomputed wholesale from the current items before the new state
// is published.
//
// Persistence is best effort: a failed write keeps the in-memory change and
// records the failure on the snapshot, because losing a just-entered edit is
// worse than a transient durability gap. The next successful full-collection
// write reconciles storage.
type InventoryStore struct {
	mu        sync.RWMutex
	items     []models.InventoryItem
	stats     models.StockStats
	isLoading bool
	lastError *ErrorKind
	observers []Observer

	kv         KeyValueStore
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
	storageKey string
}

// NewInventoryStore creates a store persisting to kv under storageKey.
// Instances share no hidden state; tests construct as many as they need.
func NewInventoryStore(kv KeyValueStore, clk clock.Clock, logger *slog.Logger, metricsCollector *metrics.Metrics, storageKey string) *InventoryStore {
	return &InventoryStore{
		kv:         kv,
		clock:      clk,
		logger:     logger,
		metrics:    metricsCollector,
		storageKey: storageKey,
		stats:      models.StockStats{Categories: make(map[string]int)},
	}
}

// LoadFromStorage replaces the item collection with the persisted one. A
// missing key means an empty inventory. Read or parse failures are absorbed:
// the inventory starts empty and the failure is recorded on the snapshot.
// Call once at startup, before the store serves other operations.
func (s *InventoryStore) LoadFromStorage(ctx context.Context) {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()

	value, found, err := s.kv.Get(ctx, s.storageKey)

	s.mu.Lock()
	s.isLoading = false
	s.items = nil
	s.lastError = nil

	switch {
	case err != nil:
		kind := StorageReadFailure
		s.lastError = &kind
		s.logger.Error("Failed to load inventory from storage", "key", s.storageKey, "error", err)
	case found:
		var items []models.InventoryItem
		if err := json.Unmarshal([]byte(value), &items); err != nil {
			kind := StorageReadFailure
			s.lastError = &kind
			s.logger.Error("Failed to parse persisted inventory", "key", s.storageKey, "error", err)
		} else {
			s.items = items
			s.logger.Info("Inventory loaded from storage", "key", s.storageKey, "items_count", len(items))
		}
	default:
		s.logger.Info("No persisted inventory found, starting empty", "key", s.storageKey)
	}

	s.recomputeLocked()
	fire := s.publishLocked()
	s.mu.Unlock()
	fire()
}

// AddItem appends a new item to the collection. The item ID must not already
// be present; generating a fresh one is the caller's responsibility. Creation
// timestamps are stamped when the caller left them zero.
func (s *InventoryStore) AddItem(ctx context.Context, item models.InventoryItem) error {
	s.mu.Lock()

	if s.indexOfLocked(item.ID) >= 0 {
		s.mu.Unlock()
		s.countMutation("add_item", "rejected")
		return duplicateIDError(item.ID)
	}
	if err := models.ValidateItem(&item); err != nil {
		s.mu.Unlock()
		s.countMutation("add_item", "rejected")
		return err
	}

	now := s.clock.Now()
	if item.DateAdded.IsZero() {
		item.DateAdded = now
	}
	if item.LastUpdated.Before(item.DateAdded) {
		item.LastUpdated = item.DateAdded
	}

	s.items = append(s.items, item)
	s.persistLocked(ctx, "add_item")
	s.recomputeLocked()
	fire := s.publishLocked()
	s.mu.Unlock()
	fire()

	return nil
}

// UpdateItem overwrites the matched item's fields with the update's set
// fields and stamps LastUpdated. A missing ID is a no-op, not an error;
// the return value reports whether an item matched.
func (s *InventoryStore) UpdateItem(ctx context.Context, id string, update models.ItemUpdate) bool {
	s.mu.Lock()

	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	update.Apply(&s.items[i])
	s.items[i].LastUpdated = s.clock.Now()

	s.persistLocked(ctx, "update_item")
	s.recomputeLocked()
	fire := s.publishLocked()
	s.mu.Unlock()
	fire()

	return true
}

// RemoveItem deletes the matched item. A missing ID is a no-op.
func (s *InventoryStore) RemoveItem(ctx context.Context, id string) bool {
	s.mu.Lock()

	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.items = append(s.items[:i], s.items[i+1:]...)

	s.persistLocked(ctx, "remove_item")
	s.recomputeLocked()
	fire := s.publishLocked()
	s.mu.Unlock()
	fire()

	return true
}

// UpdateQuantity applies a delta to the matched item's stock quantity,
// clamped at zero, and stamps LastUpdated. A missing ID is a no-op.
func (s *InventoryStore) UpdateQuantity(ctx context.Context, id string, change int) bool {
	s.mu.Lock()

	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	quantity := s.items[i].StockQuantity + change
	if quantity < 0 {
		quantity = 0
	}
	s.items[i].StockQuantity = quantity
	s.items[i].LastUpdated = s.clock.Now()

	s.persistLocked(ctx, "update_quantity")
	s.recomputeLocked()
	fire := s.publishLocked()
	s.mu.Unlock()
	fire()

	return true
}

// GetItemByBarcode returns the first item, in insertion order, whose barcode
// matches. Barcodes are not unique within the collection; first match wins.
func (s *InventoryStore) GetItemByBarcode(barcode string) (models.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.Barcode == barcode {
			return item, true
		}
	}
	return models.InventoryItem{}, false
}

// CalculateStats forces a statistics recompute from the current items without
// any other mutation, so observers can resynchronize.
func (s *InventoryStore) CalculateStats() models.StockStats {
	s.mu.Lock()
	s.recomputeLocked()
	stats := s.stats
	fire := s.publishLocked()
	s.mu.Unlock()
	fire()

	return stats
}

// Snapshot returns the current published state.
func (s *InventoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers an observer invoked with the new snapshot after every
// load and mutation.
func (s *InventoryStore) Subscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// indexOfLocked returns the position of the item with the given ID, or -1.
func (s *InventoryStore) indexOfLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full serialized collection to the durable store.
// Failures are absorbed: the in-memory change stands and lastError records
// the gap. A successful write clears any previous storage error.
func (s *InventoryStore) persistLocked(ctx context.Context, operation string) {
	data, err := json.Marshal(s.items)
	if err == nil {
		err = s.kv.Set(ctx, s.storageKey, string(data))
	}

	if err != nil {
		kind := StorageWriteFailure
		s.lastError = &kind
		s.logger.Warn("Failed to persist inventory, keeping in-memory state",
			"operation", operation,
			"key", s.storageKey,
			"error", err,
		)
		s.countMutation(operation, "persist_error")
		return
	}

	s.lastError = nil
	s.countMutation(operation, "success")
}

// recomputeLocked rebuilds the statistics from the current items.
func (s *InventoryStore) recomputeLocked() {
	s.stats = CalculateStats(s.items, s.clock.Now())
	if s.metrics != nil {
		s.metrics.UpdateStockStats(s.stats.Total, s.stats.LowStock, s.stats.OutOfStock, s.stats.ExpiringSoon)
	}
}

// snapshotLocked builds a snapshot with a copied item slice so observers
// never alias the store's internal state.
func (s *InventoryStore) snapshotLocked() Snapshot {
	items := make([]models.InventoryItem, len(s.items))
	copy(items, s.items)

	return Snapshot{
		Items:     items,
		Stats:     s.stats,
		IsLoading: s.isLoading,
		LastError: s.lastError,
	}
}

// publishLocked captures the snapshot and observer list under the lock and
// returns the notification call to run after the lock is released.
func (s *InventoryStore) publishLocked() func() {
	snapshot := s.snapshotLocked()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)

	return func() {
		for _, observer := range observers {
			observer(snapshot)
		}
	}
}

func (s *InventoryStore) countMutation(operation, status string) {
	if s.metrics != nil {
		s.metrics.InventoryMutationsTotal.WithLabelValues(operation, status).Inc()
	}
}
