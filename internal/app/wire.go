//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/zapswap/zapdeploy/internal/adapters"
	"github.com/zapswap/zapdeploy/internal/config"
	"github.com/zapswap/zapdeploy/internal/logging"
	"github.com/zapswap/zapdeploy/internal/protocol"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.NewDefaultsStore,
		wire.Bind(new(usecase.DefaultsStore), new(*config.DefaultsStore)),
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Deployment steps
		protocol.NewRegistry,
		wire.Bind(new(usecase.StepRegistry), new(*protocol.Registry)),

		// Use cases
		usecase.NewRunDeployment,
		usecase.NewPlanDeployment,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewForgetDeployment,
		usecase.NewResetDeployments,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil, nil
}
