package airlock

import (
	"embed"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/files"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/infrastructure/notifications"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/infrastructure/persistence"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/presentation/controllers"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/services"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/deployment"
	wpersistence "github.com/enclaveworks/enclave-sdk/modules/workspaces/infrastructure/persistence"
	"github.com/enclaveworks/enclave-sdk/pkg/application"
	"github.com/enclaveworks/enclave-sdk/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/airlock-schema.sql
var migrationFiles embed.FS

type ModuleOptions struct {
	Orchestrator deployment.Orchestrator
	FileStore    files.Store
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{orchestrator: opts.Orchestrator, fileStore: opts.FileStore}
}

type Module struct {
	orchestrator deployment.Orchestrator
	fileStore    files.Store
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	airlockService := services.NewAirlockService(
		persistence.NewAirlockRequestRepository(),
		notifications.NewEventBusPublisher(app.EventPublisher()),
		wpersistence.NewRoleAssignmentDirectory(),
		conf.Airlock.EnabledByDefault,
	)
	reviewService := services.NewReviewResourceService(
		airlockService,
		wpersistence.NewResourceRepository(),
		m.orchestrator,
	)
	linkService := services.NewFileLinkService(m.fileStore, conf.Storage.LinkTTL)

	app.RegisterSchema(&migrationFiles)
	app.RegisterServices(airlockService, reviewService, linkService)
	app.RegisterControllers(controllers.NewAirlockController(app))
	return nil
}

func (m *Module) Name() string {
	return "airlock"
}
