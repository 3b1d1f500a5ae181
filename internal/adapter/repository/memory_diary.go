package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/repository"
)

type memoryRecord struct {
	seq   int64
	entry entity.DiaryEntry
}

// MemoryDiaryRepository keeps the session diary in process memory.
type MemoryDiaryRepository struct {
	mu      sync.RWMutex
	records []memoryRecord
	nextSeq int64
}

// NewMemoryDiaryRepository constructs an empty in-memory diary.
func NewMemoryDiaryRepository() *MemoryDiaryRepository {
	return &MemoryDiaryRepository{nextSeq: 1}
}

var _ repository.DiaryRepository = (*MemoryDiaryRepository)(nil)

func (r *MemoryDiaryRepository) Create(_ context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error) {
	if entry == nil || entry.ID == "" {
		return nil, entity.ErrInvalidDiaryID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(entry.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrDiaryEntryExists, entry.ID)
	}

	rec := memoryRecord{seq: r.nextSeq, entry: *entry}
	r.nextSeq++
	r.records = append(r.records, rec)

	out := rec.entry
	return &out, nil
}

func (r *MemoryDiaryRepository) Update(_ context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error) {
	if entry == nil {
		return nil, entity.ErrInvalidDiaryID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(entry.ID)
	if idx < 0 {
		return nil, entity.ErrDiaryEntryNotFound
	}

	updated := *entry
	updated.CreatedAt = r.records[idx].entry.CreatedAt
	r.records[idx].entry = updated

	return &updated, nil
}

func (r *MemoryDiaryRepository) GetByID(_ context.Context, id string) (*entity.DiaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, entity.ErrDiaryEntryNotFound
	}
	out := r.records[idx].entry
	return &out, nil
}

func (r *MemoryDiaryRepository) FindByDate(_ context.Context, date entity.Date) (*entity.DiaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := lo.Find(r.records, func(rec memoryRecord) bool { return rec.entry.Date == date })
	if !ok {
		return nil, nil
	}
	out := rec.entry
	return &out, nil
}

func (r *MemoryDiaryRepository) List(_ context.Context, query *repository.ListDiaryQuery) ([]entity.DiaryEntry, int64, error) {
	if query == nil {
		query = &repository.ListDiaryQuery{}
	}

	params, err := bindListDiary(query)
	if err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	matched := lo.Filter(r.records, func(rec memoryRecord, _ int) bool { return params.matches(rec.entry) })
	r.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b memoryRecord) int {
		if c := compareRecords(a, b, params.PrimaryKey, params.PrimaryDesc); c != 0 {
			return c
		}
		if c := compareRecords(a, b, params.SecondaryKey, params.SecondaryDesc); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	total := int64(len(matched))
	offset := int(query.Offset())
	if offset >= len(matched) {
		return []entity.DiaryEntry{}, total, nil
	}
	matched = matched[offset:]
	if query.PageSize > 0 && int(query.PageSize) < len(matched) {
		matched = matched[:query.PageSize]
	}

	return lo.Map(matched, func(rec memoryRecord, _ int) entity.DiaryEntry { return rec.entry }), total, nil
}

// Delete is idempotent: removing an unknown id is not an error.
func (r *MemoryDiaryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = slices.DeleteFunc(r.records, func(rec memoryRecord) bool { return rec.entry.ID == id })
	return nil
}

func (r *MemoryDiaryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.records, func(rec memoryRecord) bool { return rec.entry.ID == id })
}

func compareRecords(a, b memoryRecord, key string, desc bool) int {
	var c int
	switch key {
	case "seq":
		c = cmp.Compare(a.seq, b.seq)
	case "date":
		c = a.entry.Date.Time().Compare(b.entry.Date.Time())
	case "created_at":
		c = a.entry.CreatedAt.Compare(b.entry.CreatedAt)
	case "updated_at":
		c = a.entry.UpdatedAt.Compare(b.entry.UpdatedAt)
	default:
		return 0
	}
	if desc {
		return -c
	}
	return c
}
