package diary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/daybookapp/daybook/internal/logging"
	"github.com/daybookapp/daybook/internal/models"
	"github.com/daybookapp/daybook/internal/storage/prefs"
)

// SortKey selects the temporal field SortedByRecency orders by.
type SortKey string

const (
	// SortByTimestamp orders by the full creation instant (canonical).
	SortByTimestamp SortKey = "timestamp"
	// SortByDate orders by the coarser calendar date.
	SortByDate SortKey = "date"
)

// EntryService owns the persisted diary collection. The collection is one
// JSON blob under a single preference key; every write is a full
// replacement, so callers must keep writes serialized (the UI enforces a
// single outstanding write).
type EntryService interface {
	// ListAll returns the collection newest-first. Absence reads as empty.
	ListAll(ctx context.Context) ([]models.DiaryEntry, error)

	// Append prepends the entry and writes the collection back. The entry is
	// not considered persisted unless the write succeeds. ID uniqueness is
	// the caller's responsibility.
	Append(ctx context.Context, entry models.DiaryEntry) error

	// ClearAll replaces the persisted collection with empty. Irreversible.
	ClearAll(ctx context.Context) error
}

type entryService struct {
	prefs prefs.Repository
	log   logging.Logger
}

func NewEntryService(prefStore prefs.Repository, log logging.Logger) EntryService {
	return &entryService{
		prefs: prefStore,
		log:   log.With("component", "entries"),
	}
}

func (s *entryService) ListAll(ctx context.Context) ([]models.DiaryEntry, error) {
	data, err := s.prefs.Get(ctx, prefs.KeyDiaryEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	if data == nil {
		return []models.DiaryEntry{}, nil
	}

	var entries []models.DiaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: corrupt entry collection: %v", ErrStorageRead, err)
	}
	if entries == nil {
		entries = []models.DiaryEntry{}
	}
	return entries, nil
}

func (s *entryService) Append(ctx context.Context, entry models.DiaryEntry) error {
	err := s.prefs.Update(ctx, prefs.KeyDiaryEntries, func(old []byte) ([]byte, error) {
		current := []models.DiaryEntry{}
		if old != nil {
			if err := json.Unmarshal(old, &current); err != nil {
				return nil, fmt.Errorf("%w: corrupt entry collection: %v", ErrStorageRead, err)
			}
		}

		updated := make([]models.DiaryEntry, 0, len(current)+1)
		updated = append(updated, entry)
		updated = append(updated, current...)
		return json.Marshal(updated)
	})
	if err != nil {
		if errors.Is(err, ErrStorageRead) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	s.log.Info(ctx, "entry appended", "id", entry.ID, "date", entry.Date)
	return nil
}

func (s *entryService) ClearAll(ctx context.Context) error {
	if err := s.prefs.Set(ctx, prefs.KeyDiaryEntries, []byte("[]")); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	s.log.Info(ctx, "entry collection cleared")
	return nil
}

// GroupByDate buckets entries by their calendar date, preserving the
// relative order within each bucket.
func GroupByDate(entries []models.DiaryEntry) map[string][]models.DiaryEntry {
	grouped := make(map[string][]models.DiaryEntry)
	for _, e := range entries {
		grouped[e.Date] = append(grouped[e.Date], e)
	}
	return grouped
}

// SortedByRecency returns a copy of entries sorted descending by the chosen
// temporal key. The sort is stable: entries sharing a key value keep their
// original relative order. Both key layouts are lexically ordered, so plain
// string comparison is a full-precision temporal comparison.
func SortedByRecency(entries []models.DiaryEntry, key SortKey) []models.DiaryEntry {
	sorted := make([]models.DiaryEntry, len(entries))
	copy(sorted, entries)

	field := func(e models.DiaryEntry) string {
		if key == SortByDate {
			return e.Date
		}
		return e.Timestamp
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return field(sorted[i]) > field(sorted[j])
	})
	return sorted
}

// randIntn is a test seam for the random source used by PickRandom.
var randIntn = rand.Intn

// PickRandom selects up to n distinct entries without replacement using a
// partial Fisher–Yates shuffle. The result carries no ordering guarantee.
// The input slice is not modified.
func PickRandom(entries []models.DiaryEntry, n int) []models.DiaryEntry {
	if n <= 0 {
		return []models.DiaryEntry{}
	}
	pool := make([]models.DiaryEntry, len(entries))
	copy(pool, entries)

	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + randIntn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
