package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/samber/lo"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/infrastructure/database"
	"github.com/eslsoft/tutorpad/internal/repository"
)

const diaryColumns = "id, date, category, difficulty, notes, created_at, updated_at"

// SQLiteDiaryRepository stores the session diary in an in-memory SQLite database.
type SQLiteDiaryRepository struct {
	db *database.DB
}

// NewSQLiteDiaryRepository constructs a go-sqlite3 backed repository.
func NewSQLiteDiaryRepository(db *database.DB) *SQLiteDiaryRepository {
	return &SQLiteDiaryRepository{db: db}
}

var _ repository.DiaryRepository = (*SQLiteDiaryRepository)(nil)

func (r *SQLiteDiaryRepository) Create(ctx context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error) {
	if entry == nil || entry.ID == "" {
		return nil, entity.ErrInvalidDiaryID
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO diary_entries ("+diaryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Date, string(entry.Category), string(entry.Difficulty), entry.Notes,
		entry.CreatedAt.UnixNano(), entry.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return nil, translateDiaryError(entry.ID, err)
	}
	return r.GetByID(ctx, entry.ID)
}

func (r *SQLiteDiaryRepository) Update(ctx context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error) {
	if entry == nil {
		return nil, entity.ErrInvalidDiaryID
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE diary_entries SET date = ?, category = ?, difficulty = ?, notes = ?, updated_at = ? WHERE id = ?",
		entry.Date, string(entry.Category), string(entry.Difficulty), entry.Notes, entry.UpdatedAt.UnixNano(), entry.ID,
	)
	if err != nil {
		return nil, translateDiaryError(entry.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update diary entry: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrDiaryEntryNotFound
	}
	return r.GetByID(ctx, entry.ID)
}

func (r *SQLiteDiaryRepository) GetByID(ctx context.Context, id string) (*entity.DiaryEntry, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+diaryColumns+" FROM diary_entries WHERE id = ?", id)
	entry, err := scanDiaryEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrDiaryEntryNotFound
		}
		return nil, fmt.Errorf("get diary entry: %w", err)
	}
	return entry, nil
}

func (r *SQLiteDiaryRepository) FindByDate(ctx context.Context, date entity.Date) (*entity.DiaryEntry, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+diaryColumns+" FROM diary_entries WHERE date = ? ORDER BY seq LIMIT 1", date)
	entry, err := scanDiaryEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find diary entry: %w", err)
	}
	return entry, nil
}

func (r *SQLiteDiaryRepository) List(ctx context.Context, query *repository.ListDiaryQuery) ([]entity.DiaryEntry, int64, error) {
	if query == nil {
		query = &repository.ListDiaryQuery{}
	}

	params, err := bindListDiary(query)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildDiaryWhere(params)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM diary_entries"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count diary entries: %w", err)
	}

	limit := int64(-1)
	if query.PageSize > 0 {
		limit = int64(query.PageSize)
	}
	stmt := "SELECT " + diaryColumns + " FROM diary_entries" + where + buildDiaryOrder(params) + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, stmt, append(args, limit, int64(query.Offset()))...)
	if err != nil {
		return nil, 0, fmt.Errorf("list diary entries: %w", err)
	}
	defer rows.Close()

	results := make([]entity.DiaryEntry, 0)
	for rows.Next() {
		entry, err := scanDiaryEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan diary entry: %w", err)
		}
		results = append(results, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list diary entries: %w", err)
	}

	return results, total, nil
}

// Delete is idempotent: removing an unknown id is not an error.
func (r *SQLiteDiaryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM diary_entries WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete diary entry: %w", err)
	}
	return nil
}

func buildDiaryWhere(params listDiaryParams) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if params.Keyword != "" {
		clauses = append(clauses, "fold_contains(notes, ?)")
		args = append(args, params.Keyword)
	}
	if params.NotesPrefix != "" {
		clauses = append(clauses, "has_prefix(notes, ?)")
		args = append(args, params.NotesPrefix)
	}
	for _, set := range []struct {
		column string
		values []string
	}{
		{column: "category", values: params.Categories},
		{column: "difficulty", values: params.Difficulties},
	} {
		switch {
		case set.values == nil:
		case len(set.values) == 0:
			clauses = append(clauses, "1 = 0")
		default:
			clauses = append(clauses, set.column+" IN ("+placeholders(len(set.values))+")")
			args = append(args, lo.ToAnySlice(set.values)...)
		}
	}
	if !params.On.IsZero() {
		clauses = append(clauses, "date = ?")
		args = append(args, params.On)
	}
	if !params.From.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, params.From)
	}
	if !params.To.IsZero() {
		clauses = append(clauses, "date <= ?")
		args = append(args, params.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Column names come from the order schema whitelist, never from user input.
func buildDiaryOrder(params listDiaryParams) string {
	var terms []string
	for _, term := range []struct {
		key  string
		desc bool
	}{
		{key: params.PrimaryKey, desc: params.PrimaryDesc},
		{key: params.SecondaryKey, desc: params.SecondaryDesc},
	} {
		field, ok := listDiarySchema.Order.Fields[term.key]
		if !ok {
			continue
		}
		dir := "ASC"
		if term.desc {
			dir = "DESC"
		}
		terms = append(terms, field.Expr+" "+dir)
	}
	terms = append(terms, "seq ASC")
	return " ORDER BY " + strings.Join(terms, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDiaryEntry(row rowScanner) (*entity.DiaryEntry, error) {
	var (
		entry                entity.DiaryEntry
		category, difficulty string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&entry.ID, &entry.Date, &category, &difficulty, &entry.Notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	entry.Category = entity.Category(category)
	entry.Difficulty = entity.Difficulty(difficulty)
	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	entry.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &entry, nil
}

func translateDiaryError(id string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", entity.ErrDiaryEntryExists, id)
		case sqlite3.ErrConstraintCheck:
			return fmt.Errorf("diary entry %s violates a column constraint: %w", id, err)
		}
	}
	return fmt.Errorf("write diary entry: %w", err)
}
