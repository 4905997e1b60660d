package app

import (
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector  usecase.DeploymentSelector
	Confirmer usecase.Confirmer
	Networks  usecase.NetworkResolver
	Steps     usecase.StepRegistry

	// Use cases
	RunDeployment    *usecase.RunDeployment
	PlanDeployment   *usecase.PlanDeployment
	ListDeployments  *usecase.ListDeployments
	ShowDeployment   *usecase.ShowDeployment
	ForgetDeployment *usecase.ForgetDeployment
	ResetDeployments *usecase.ResetDeployments
	ListNetworks     *usecase.ListNetworks
	ShowConfig       *usecase.ShowConfig
	SetConfig        *usecase.SetConfig
	RemoveConfig     *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.DeploymentSelector,
	confirmer usecase.Confirmer,
	networks usecase.NetworkResolver,
	steps usecase.StepRegistry,
	runDeployment *usecase.RunDeployment,
	planDeployment *usecase.PlanDeployment,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	forgetDeployment *usecase.ForgetDeployment,
	resetDeployments *usecase.ResetDeployments,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:           cfg,
		Selector:         selector,
		Confirmer:        confirmer,
		Networks:         networks,
		Steps:            steps,
		RunDeployment:    runDeployment,
		PlanDeployment:   planDeployment,
		ListDeployments:  listDeployments,
		ShowDeployment:   showDeployment,
		ForgetDeployment: forgetDeployment,
		ResetDeployments: resetDeployments,
		ListNetworks:     listNetworks,
		ShowConfig:       showConfig,
		SetConfig:        setConfig,
		RemoveConfig:     removeConfig,
	}, nil
}
