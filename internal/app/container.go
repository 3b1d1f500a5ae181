package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/tutorpad/internal/infrastructure/config"
	"github.com/eslsoft/tutorpad/internal/infrastructure/server"
	"github.com/eslsoft/tutorpad/internal/usecase"
	"github.com/eslsoft/tutorpad/internal/usecase/backup"
	"github.com/eslsoft/tutorpad/internal/usecase/feedback"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Server     *server.Server
	Diary      usecase.DiaryUsecase
	Exporter   *backup.Service
	Dispatcher *feedback.Dispatcher
	Tutor      *feedback.Tutor
}
