package component

import (
	"context"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

var _ app.Module = (*Module)(nil)

// Module provides a *Host over the *defaults.Store registered in DI.
// It must come after the defaults module.
type Module struct {
	host *Host
}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Init(ctx context.Context) error {
	store, err := do.Invoke[*defaults.Store](app.GetInjector(ctx))
	if err != nil {
		return oops.Wrapf(err, "failed to retrieve defaults store")
	}

	m.host = NewHost(store)

	app.Provide(ctx, m.GetHost)

	return nil
}

func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

func (m *Module) GetHost(_ do.Injector) (*Host, error) {
	return m.host, nil
}
