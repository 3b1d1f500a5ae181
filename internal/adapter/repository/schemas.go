package repository

import (
	"fmt"
	"reflect"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/repository"
	"github.com/eslsoft/tutorpad/pkg/filterexpr"
	"github.com/eslsoft/tutorpad/pkg/textutil"
)

var (
	categoryValues   = lo.Map(entity.Categories, func(c entity.Category, _ int) string { return string(c) })
	difficultyValues = lo.Map(entity.Difficulties, func(d entity.Difficulty, _ int) string { return string(d) })
)

var listDiarySchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"keyword": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Keyword"},
		},
		"notes": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "NotesPrefix"},
		},
		"category": {
			Kind:   filterexpr.KindEnum,
			Values: categoryValues,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Categories",
				filterexpr.OpIN: "Categories",
			},
			Setter: setStringSet,
		},
		"difficulty": {
			Kind:   filterexpr.KindEnum,
			Values: difficultyValues,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Difficulties",
				filterexpr.OpIN: "Difficulties",
			},
			Setter: setStringSet,
		},
		"date": {
			Kind: filterexpr.KindDate,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "OnDates",
				filterexpr.OpGTE: "FromDates",
				filterexpr.OpLTE: "ToDates",
			},
			Setter: setDate,
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "seq",
		FallbackKey:    "seq",
		Fields: map[string]filterexpr.OrderField{
			"seq":        {Expr: "seq"},
			"date":       {Expr: "date"},
			"created_at": {Expr: "created_at"},
			"updated_at": {Expr: "updated_at"},
		},
	},
}

// listDiaryParams is shared by both backends so they agree on filter semantics.
type listDiaryParams struct {
	Keyword      string
	NotesPrefix  string
	// A nil set is unconstrained; an empty non-nil set matches nothing.
	Categories   []string
	Difficulties []string

	OnDates   []entity.Date
	FromDates []entity.Date
	ToDates   []entity.Date

	// Resolved from the date clauses by bindListDiary.
	On   entity.Date
	From entity.Date
	To   entity.Date

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func setStringSet(field reflect.Value, value any) error {
	var items []string
	switch v := value.(type) {
	case string:
		items = []string{v}
	case []string:
		items = v
	default:
		return fmt.Errorf("unexpected literal %T", value)
	}
	items = lo.Uniq(items)
	if !field.IsNil() {
		// Clauses are AND-ed, so a repeated field narrows the set.
		existing, _ := field.Interface().([]string)
		items = lo.Filter(existing, func(v string, _ int) bool { return lo.Contains(items, v) })
	}
	if items == nil {
		items = []string{}
	}
	field.Set(reflect.ValueOf(items))
	return nil
}

func setDate(field reflect.Value, value any) error {
	ts, ok := value.(time.Time)
	if !ok {
		return fmt.Errorf("unexpected literal %T", value)
	}
	existing, _ := field.Interface().([]entity.Date)
	field.Set(reflect.ValueOf(append(existing, entity.DateOf(ts))))
	return nil
}

// bindListDiary binds query into params and folds repeated date clauses
// into one exact date and the tightest bounds.
func bindListDiary(query *repository.ListDiaryQuery) (listDiaryParams, error) {
	var params listDiaryParams
	if err := filterexpr.Bind(query, &params, listDiarySchema); err != nil {
		return params, err
	}
	for _, d := range params.OnDates {
		if !params.On.IsZero() && d != params.On {
			return params, fmt.Errorf("%w: filter: conflicting dates %s and %s", filterexpr.ErrInvalidQuery, params.On, d)
		}
		params.On = d
	}
	for _, d := range params.FromDates {
		if params.From.IsZero() || params.From.Before(d) {
			params.From = d
		}
	}
	for _, d := range params.ToDates {
		if params.To.IsZero() || d.Before(params.To) {
			params.To = d
		}
	}
	return params, nil
}

// matches evaluates the bound filter against a single entry.
func (p listDiaryParams) matches(e entity.DiaryEntry) bool {
	if p.Keyword != "" && !textutil.ContainsFold(e.Notes, p.Keyword) {
		return false
	}
	if p.NotesPrefix != "" && !textutil.HasPrefix(e.Notes, p.NotesPrefix) {
		return false
	}
	if p.Categories != nil && !lo.Contains(p.Categories, string(e.Category)) {
		return false
	}
	if p.Difficulties != nil && !lo.Contains(p.Difficulties, string(e.Difficulty)) {
		return false
	}
	if !p.On.IsZero() && e.Date != p.On {
		return false
	}
	if !p.From.IsZero() && e.Date.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && p.To.Before(e.Date) {
		return false
	}
	return true
}
