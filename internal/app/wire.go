//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/tutorpad/internal/adapter/rest"
	"github.com/eslsoft/tutorpad/internal/infrastructure/config"
	"github.com/eslsoft/tutorpad/internal/infrastructure/fixtures"
	"github.com/eslsoft/tutorpad/internal/infrastructure/server"
	"github.com/eslsoft/tutorpad/internal/usecase/feedback"
)

var configSet = wire.NewSet(
	config.Load,
	fixtures.Load,
)

var repositorySet = wire.NewSet(
	provideDiaryRepository,
)

var usecaseSet = wire.NewSet(
	provideDiaryUsecase,
	provideExporter,
	provideDispatcher,
	provideTutor,
	feedback.NewConversation,
	provideTimer,
	provideWritingSession,
)

var handlerSet = wire.NewSet(
	rest.NewDiaryHandler,
	provideTutorHandler,
	rest.NewWritingHandler,
	rest.NewRouter,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		repositorySet,
		usecaseSet,
		handlerSet,
		serverSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
