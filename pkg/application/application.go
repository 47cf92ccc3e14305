package application

import (
	"embed"
	"fmt"
	"reflect"

	"github.com/gorilla/mux"

	"github.com/enclaveworks/enclave-sdk/pkg/eventbus"
)

// Application is the composition root shared by all modules: a type-keyed
// service registry, the controller set, registered schema files and the
// process-wide event bus.
type Application interface {
	RegisterServices(services ...any)
	Service(service any) any
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	RegisterSchema(fs *embed.FS)
	Schemas() []*embed.FS
	EventPublisher() eventbus.EventBusWithError
}

// Controller registers a set of routes on the root router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature area (services, controllers, schema) into the app.
type Module interface {
	Name() string
	Register(app Application) error
}

type application struct {
	services    map[reflect.Type]any
	controllers []Controller
	schemas     []*embed.FS
	bus         eventbus.EventBusWithError
}

func New(bus eventbus.EventBusWithError) Application {
	return &application{
		services: map[reflect.Type]any{},
		bus:      bus,
	}
}

func (a *application) RegisterServices(services ...any) {
	for _, s := range services {
		a.services[reflect.TypeOf(s).Elem()] = s
	}
}

// Service returns the registered instance matching the type of the given
// zero value, e.g. app.Service(services.AirlockService{}).
func (a *application) Service(service any) any {
	s, ok := a.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("application: service %T not registered", service))
	}
	return s
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

func (a *application) RegisterSchema(fs *embed.FS) {
	a.schemas = append(a.schemas, fs)
}

func (a *application) Schemas() []*embed.FS {
	return a.schemas
}

func (a *application) EventPublisher() eventbus.EventBusWithError {
	return a.bus
}
