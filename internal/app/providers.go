package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/tutorpad/internal/adapter/repository"
	"github.com/eslsoft/tutorpad/internal/adapter/rest"
	"github.com/eslsoft/tutorpad/internal/infrastructure/config"
	"github.com/eslsoft/tutorpad/internal/infrastructure/database"
	"github.com/eslsoft/tutorpad/internal/infrastructure/fixtures"
	repo "github.com/eslsoft/tutorpad/internal/repository"
	"github.com/eslsoft/tutorpad/internal/usecase"
	"github.com/eslsoft/tutorpad/internal/usecase/backup"
	"github.com/eslsoft/tutorpad/internal/usecase/feedback"
	"github.com/eslsoft/tutorpad/internal/usecase/writing"
)

// provideDiaryRepository opens the backend selected by store.driver.
func provideDiaryRepository(cfg *config.Config, logger *logrus.Logger) (repo.DiaryRepository, func(), error) {
	driver, err := cfg.StoreDriver()
	if err != nil {
		return nil, nil, err
	}
	switch driver {
	case config.StoreDriverSQLite3:
		db, cleanup, err := database.NewSQLite(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteDiaryRepository(db), cleanup, nil
	default:
		return repository.NewMemoryDiaryRepository(), func() {}, nil
	}
}

// provideDiaryUsecase returns a usecase whose store already holds the fixture entries.
func provideDiaryUsecase(store repo.DiaryRepository, fx *fixtures.Fixtures, logger *logrus.Logger) (usecase.DiaryUsecase, error) {
	uc := usecase.NewDiaryUsecase(store)
	seeds, err := fx.DiaryEntries()
	if err != nil {
		return nil, err
	}
	if err := uc.Seed(context.Background(), seeds); err != nil {
		return nil, fmt.Errorf("seed diary: %w", err)
	}
	logger.WithField("entries", len(seeds)).Debug("diary seeded")
	return uc, nil
}

func provideExporter(store repo.DiaryRepository) (*backup.Service, error) {
	return backup.NewService(store)
}

func provideDispatcher(fx *fixtures.Fixtures) (*feedback.Dispatcher, error) {
	return feedback.NewDispatcher(feedback.RuleSet{Rules: fx.Tutor.Rules, Default: fx.Tutor.Default})
}

func provideTutor(cfg *config.Config, fx *fixtures.Fixtures, dispatcher *feedback.Dispatcher) (*feedback.Tutor, error) {
	level, err := fx.ActiveLevel(cfg)
	if err != nil {
		return nil, err
	}
	return feedback.NewTutor(dispatcher, level, fx.Tutor.Greeting, cfg.Feedback.ReplyDelay)
}

func provideTimer(cfg *config.Config) (*writing.Timer, error) {
	return writing.NewTimer(cfg.WritingSeconds())
}

func provideWritingSession(cfg *config.Config, fx *fixtures.Fixtures, timer *writing.Timer) *writing.Session {
	topic := cfg.Writing.Topic
	if topic == "" {
		topic = config.DefaultWritingTopic
	}
	return writing.NewSession(topic, fx.Writing.Feedback, timer)
}

func provideTutorHandler(conv *feedback.Conversation, fx *fixtures.Fixtures) *rest.TutorHandler {
	return rest.NewTutorHandler(conv, fx.Suggestions)
}
