package bootstrap

import (
	"fmt"
	"time"

	"entity-journal-cli/internal/config"
	"entity-journal-cli/internal/editor"
	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/localstore"
	"entity-journal-cli/internal/pkg/logger"
	"entity-journal-cli/internal/service"
	"entity-journal-cli/internal/session"
	"entity-journal-cli/pkg/events"
)

// Container wires the client core: local state, signal bus, session store,
// gateway, and the typed API services on top.
type Container struct {
	Config  *config.Config
	Logger  logger.ILogger
	Local   localstore.ILocalStore
	Bus     *events.Bus
	Session *session.Store
	Gateway *gateway.Gateway

	Auth          service.IAuthService
	Notes         service.INoteService
	Entities      service.IEntityService
	Folders       service.IFolderService
	Tracking      service.ITrackingService
	Metrics       service.IMetricsService
	Subscriptions service.ISubscriptionService
	Account       service.IAccountService
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "development")

	local, err := localstore.New(cfg.App.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	bus := events.NewBus()
	store := session.NewStore(local, sysLogger)

	// 2. Gateway (reads the credential from the session store, invalidates
	// it on unauthorized responses, broadcasts classified failures on the bus)
	gw := gateway.New(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		store,
		bus,
		sysLogger,
	)

	// 3. Services
	return &Container{
		Config:  cfg,
		Logger:  sysLogger,
		Local:   local,
		Bus:     bus,
		Session: store,
		Gateway: gw,

		Auth:          service.NewAuthService(gw, store, sysLogger),
		Notes:         service.NewNoteService(gw),
		Entities:      service.NewEntityService(gw),
		Folders:       service.NewFolderService(gw),
		Tracking:      service.NewTrackingService(gw),
		Metrics:       service.NewMetricsService(gw),
		Subscriptions: service.NewSubscriptionService(gw),
		Account:       service.NewAccountService(gw),
	}, nil
}

// NewEditorSession builds an editing session bound to the container's
// services and local draft storage.
func (c *Container) NewEditorSession() *editor.Session {
	debounce := time.Duration(c.Config.Editor.AutosaveDebounceMs) * time.Millisecond
	return editor.NewSession(c.Notes, c.Entities, c.Local, c.Logger, debounce)
}

func (c *Container) Close() {
	_ = c.Bus.Close()
	_ = c.Logger.Sync()
}
