// Package fixtures loads the session seed data: learner levels, the diary
// entries every session starts with, tutor rules and canned essay feedback.
package fixtures

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/infrastructure/config"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// ErrUnknownLevel is returned when the configured level label is not defined.
var ErrUnknownLevel = errors.New("unknown learner level")

// Fixtures is the decoded fixture document.
type Fixtures struct {
	Levels      []entity.Level      `yaml:"levels"`
	Suggestions []entity.Suggestion `yaml:"suggestions"`
	Diary       []DiaryEntry        `yaml:"diary"`
	Tutor       Tutor               `yaml:"tutor"`
	Writing     Writing             `yaml:"writing"`
}

// DiaryEntry is a seed entry in its textual form.
type DiaryEntry struct {
	ID         string `yaml:"id"`
	Date       string `yaml:"date"`
	Category   string `yaml:"category"`
	Difficulty string `yaml:"difficulty"`
	Notes      string `yaml:"notes"`
}

// Tutor holds the greeting and the ordered response rules.
type Tutor struct {
	Greeting string                `yaml:"greeting"`
	Rules    []entity.ResponseRule `yaml:"rules"`
	Default  string                `yaml:"default"`
}

// Writing holds the canned essay review.
type Writing struct {
	Feedback entity.EssayFeedback `yaml:"feedback"`
}

// Load reads the file configured by fixtures.path, or the embedded defaults when unset.
func Load(cfg *config.Config) (*Fixtures, error) {
	path := strings.TrimSpace(cfg.Fixtures.Path)
	if path == "" {
		return Parse(defaultFixtures)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	fx, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return fx, nil
}

// Default returns the embedded fixtures.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Parse validates data against the fixture schema and decodes it.
func Parse(data []byte) (*Fixtures, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}
	if _, err := fx.DiaryEntries(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// DiaryEntries converts the seed entries into domain values.
func (f *Fixtures) DiaryEntries() ([]entity.DiaryEntry, error) {
	out := make([]entity.DiaryEntry, 0, len(f.Diary))
	for i, raw := range f.Diary {
		date, err := entity.ParseDate(raw.Date)
		if err != nil {
			return nil, fmt.Errorf("diary[%d]: %w", i, err)
		}
		category, err := entity.ParseCategory(raw.Category)
		if err != nil {
			return nil, fmt.Errorf("diary[%d]: %w", i, err)
		}
		difficulty, err := entity.ParseDifficulty(raw.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("diary[%d]: %w", i, err)
		}
		out = append(out, entity.DiaryEntry{
			ID:         strings.TrimSpace(raw.ID),
			Date:       date,
			Category:   category,
			Difficulty: difficulty,
			Notes:      raw.Notes,
		})
	}
	return out, nil
}

// Level finds a level by label, ignoring case.
func (f *Fixtures) Level(label string) (entity.Level, error) {
	for _, lvl := range f.Levels {
		if strings.EqualFold(lvl.Label, strings.TrimSpace(label)) {
			return lvl, nil
		}
	}
	return entity.Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, label)
}

// ActiveLevel resolves the level selected by configuration.
func (f *Fixtures) ActiveLevel(cfg *config.Config) (entity.Level, error) {
	lvl, err := f.Level(cfg.Level.Label)
	if err != nil {
		return entity.Level{}, err
	}
	if desc := strings.TrimSpace(cfg.Level.Description); desc != "" {
		lvl.Description = desc
	}
	return lvl, nil
}
