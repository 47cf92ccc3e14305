package workspaces

import (
	"embed"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/infrastructure/persistence"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/services"
	"github.com/enclaveworks/enclave-sdk/pkg/application"
)

//go:embed infrastructure/persistence/schema/workspaces-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)
	app.RegisterServices(
		services.NewWorkspaceService(persistence.NewWorkspaceRepository()),
	)
	return nil
}

func (m *Module) Name() string {
	return "workspaces"
}
