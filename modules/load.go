package modules

import (
	"github.com/enclaveworks/enclave-sdk/modules/airlock"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/files"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/deployment"
	"github.com/enclaveworks/enclave-sdk/pkg/application"
)

// BuiltIn returns the module set in registration order. Workspaces must come
// first: the airlock module resolves its services during registration.
func BuiltIn(orchestrator deployment.Orchestrator, fileStore files.Store) []application.Module {
	return []application.Module{
		workspaces.NewModule(),
		airlock.NewModule(&airlock.ModuleOptions{
			Orchestrator: orchestrator,
			FileStore:    fileStore,
		}),
	}
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
