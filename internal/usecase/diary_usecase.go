package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/repository"
)

// DiaryUsecase encapsulates the learning diary operations of a session.
type DiaryUsecase interface {
	CreateEntry(ctx context.Context, draft *entity.DiaryEntry) (*entity.DiaryEntry, error)
	UpdateEntry(ctx context.Context, id string, patch entity.DiaryEntryPatch) (*entity.DiaryEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*entity.DiaryEntry, error)
	FindByDate(ctx context.Context, date entity.Date) (*entity.DiaryEntry, error)
	ListEntries(ctx context.Context, query *repository.ListDiaryQuery) ([]entity.DiaryEntry, int64, error)
	MonthGrid(ctx context.Context, year int, month time.Month) (*entity.MonthGrid, error)
	Seed(ctx context.Context, entries []entity.DiaryEntry) error
}

// NewDiaryUsecase wires the repository with default behaviour.
func NewDiaryUsecase(repo repository.DiaryRepository) DiaryUsecase {
	return &diaryUsecase{
		repo:  repo,
		clock: time.Now,
		newID: uuid.NewString,
	}
}

type diaryUsecase struct {
	repo  repository.DiaryRepository
	clock func() time.Time
	newID func() string
}

func (u *diaryUsecase) CreateEntry(ctx context.Context, draft *entity.DiaryEntry) (*entity.DiaryEntry, error) {
	if draft == nil {
		return nil, entity.ErrInvalidDate
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	entry := *draft
	entry.ID = u.newID()
	entry.CreatedAt = time.Time{}
	entry.Normalize(u.clock())

	return u.repo.Create(ctx, &entry)
}

func (u *diaryUsecase) UpdateEntry(ctx context.Context, id string, patch entity.DiaryEntryPatch) (*entity.DiaryEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entity.ErrDiaryEntryNotFound
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Apply(patch)
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	existing.Normalize(u.clock())

	return u.repo.Update(ctx, existing)
}

func (u *diaryUsecase) DeleteEntry(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return u.repo.Delete(ctx, id)
}

func (u *diaryUsecase) GetEntry(ctx context.Context, id string) (*entity.DiaryEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entity.ErrDiaryEntryNotFound
	}
	return u.repo.GetByID(ctx, id)
}

func (u *diaryUsecase) FindByDate(ctx context.Context, date entity.Date) (*entity.DiaryEntry, error) {
	if date.IsZero() {
		return nil, entity.ErrInvalidDate
	}
	return u.repo.FindByDate(ctx, date)
}

func (u *diaryUsecase) ListEntries(ctx context.Context, query *repository.ListDiaryQuery) ([]entity.DiaryEntry, int64, error) {
	return u.repo.List(ctx, query)
}

// MonthGrid marks every day of the month with the entry FindByDate would return.
func (u *diaryUsecase) MonthGrid(ctx context.Context, year int, month time.Month) (*entity.MonthGrid, error) {
	grid, err := entity.NewMonthGrid(year, month)
	if err != nil {
		return nil, err
	}

	first := entity.MustDate(year, month, 1)
	last := entity.DateOf(first.Time().AddDate(0, 1, -1))
	entries, _, err := u.repo.List(ctx, &repository.ListDiaryQuery{
		FilterOrder: repository.FilterOrder{
			Filter: fmt.Sprintf("date >= '%s' && date <= '%s'", first, last),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list month entries: %w", err)
	}

	byDate := make(map[entity.Date]*entity.DiaryEntry, len(entries))
	for i := range entries {
		if _, seen := byDate[entries[i].Date]; !seen {
			byDate[entries[i].Date] = &entries[i]
		}
	}
	grid.Each(func(cell *entity.CalendarDay) {
		cell.Entry = byDate[*cell.Date]
	})

	return grid, nil
}

// Seed loads fixture entries in order. Entries without an ID get a generated one.
func (u *diaryUsecase) Seed(ctx context.Context, entries []entity.DiaryEntry) error {
	now := u.clock()
	for i := range entries {
		entry := entries[i]
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("seed entry %d: %w", i, err)
		}
		if strings.TrimSpace(entry.ID) == "" {
			entry.ID = u.newID()
		}
		entry.Normalize(now)
		if _, err := u.repo.Create(ctx, &entry); err != nil {
			return fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	return nil
}
