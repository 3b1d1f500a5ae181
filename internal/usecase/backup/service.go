package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/repository"
)

const (
	defaultBatchSize = 512
	formatVersion    = 1

	// DiaryTable names the diary section of an export.
	DiaryTable = "diary_entries"

	recordTypeMeta  = "meta"
	recordTypeDiary = "diary_entry"
)

var errNilRepository = errors.New("backup: diary repository is required")

type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// Service dumps the session diary as NDJSON.
type Service struct {
	repo      repository.DiaryRepository
	batchSize int
	clock     func() time.Time
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithClock overrides the timestamp written in the meta record.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a backup service reading from the provided repository.
func NewService(repo repository.DiaryRepository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errNilRepository
	}
	svc := &Service{
		repo:      repo,
		batchSize: defaultBatchSize,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	filter   string
	orderBy  string
	reporter ProgressReporter
}

// WithFilter restricts the export to entries matching a list filter expression.
func WithFilter(filter string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.filter = filter
	}
}

// WithOrderBy sets the order of exported entries. Collection order is the default.
func WithOrderBy(orderBy string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.orderBy = orderBy
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type record struct {
	Type       string         `json:"type"`
	Version    int            `json:"version,omitempty"`
	ExportedAt *time.Time     `json:"exported_at,omitempty"`
	Tables     []string       `json:"tables,omitempty"`
	RowCounts  map[string]int `json:"row_counts,omitempty"`
	Payload    any            `json:"payload,omitempty"`
}

// Export writes a meta record followed by one diary_entry record per entry.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	total, err := s.count(ctx, cfg)
	if err != nil {
		return fmt.Errorf("count table %s: %w", DiaryTable, err)
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := s.clock().UTC()
	meta := record{
		Type:       recordTypeMeta,
		Version:    formatVersion,
		ExportedAt: &now,
		Tables:     []string{DiaryTable},
		RowCounts:  map[string]int{DiaryTable: total},
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	reporter.StartTable(DiaryTable, total)
	if err := s.exportDiary(ctx, cfg, total, reporter, writer); err != nil {
		return err
	}
	reporter.FinishTable(DiaryTable)
	return writer.Flush()
}

func (s *Service) count(ctx context.Context, cfg exportConfig) (int, error) {
	_, total, err := s.repo.List(ctx, &repository.ListDiaryQuery{
		Pagination:  repository.Pagination{PageNo: 1, PageSize: 1},
		FilterOrder: repository.FilterOrder{Filter: cfg.filter, OrderBy: cfg.orderBy},
	})
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (s *Service) exportDiary(ctx context.Context, cfg exportConfig, total int, reporter ProgressReporter, w io.Writer) error {
	written := 0
	for page := int32(1); written < total; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, _, err := s.repo.List(ctx, &repository.ListDiaryQuery{
			Pagination:  repository.Pagination{PageNo: page, PageSize: int32(s.batchSize)},
			FilterOrder: repository.FilterOrder{Filter: cfg.filter, OrderBy: cfg.orderBy},
		})
		if err != nil {
			return fmt.Errorf("read %s page %d: %w", DiaryTable, page, err)
		}
		if len(entries) == 0 {
			break
		}
		for i := range entries {
			if err := writeRecord(w, record{Type: recordTypeDiary, Payload: diaryPayload(entries[i])}); err != nil {
				return err
			}
		}
		written += len(entries)
		reporter.Increment(DiaryTable, len(entries))
	}
	return nil
}

type diaryRow struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Notes      string `json:"notes"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func diaryPayload(e entity.DiaryEntry) diaryRow {
	return diaryRow{
		ID:         e.ID,
		Date:       e.Date.String(),
		Category:   string(e.Category),
		Difficulty: string(e.Difficulty),
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
