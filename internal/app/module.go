package app

import (
	"context"
	"errors"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tutordesk/internal/account"
	"tutordesk/internal/api"
	"tutordesk/internal/auth"
	"tutordesk/internal/booking"
	"tutordesk/internal/bus"
	"tutordesk/internal/config"
	"tutordesk/internal/lock"
	"tutordesk/internal/logging"
	"tutordesk/internal/slots"
	"tutordesk/internal/status"
	"tutordesk/internal/store"
	intsync "tutordesk/internal/sync"
	"tutordesk/internal/tui"
	appmodel "tutordesk/internal/tui/model"
)

// Params holds the resolved account configuration passed to the fx module.
type Params struct {
	AccountName string
}

// Module returns the fx module for the client, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("client",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideStateMachine,
			provideConfig,
			provideLock,
			provideStore,
			provideSession,
			provideClient,
			provideEngine,
			provideContactPoller,
			provideUnreadPoller,
			provideSlotManager,
			provideBookingService,
			provideViewModel,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(account.LogPath(p.AccountName), p.AccountName)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.Load(account.ConfigPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("config unreadable, using defaults", zap.Error(err))
		}
		return nil
	}
	return cfg
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := account.EnsureDir(p.AccountName); err != nil {
		return nil, err
	}
	logger.Info("acquiring account lock", zap.String("account", p.AccountName))
	l, err := lock.Acquire(account.Dir(p.AccountName))
	if err != nil {
		return nil, err
	}
	logger.Info("account lock acquired")
	return l, nil
}

func provideStore(p Params, logger *zap.Logger) (*store.DB, error) {
	dbPath := account.CacheDBPath(p.AccountName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("cache initialized", zap.String("path", dbPath))
	return db, nil
}

func provideSession(p Params) *auth.Session {
	return auth.Load(p.AccountName)
}

func provideClient(cfg *config.Config, sess *auth.Session, logger *zap.Logger) *api.Client {
	return api.New(cfg.BaseURL(), sess, logger)
}

func provideEngine(c *api.Client, db *store.DB, b *bus.Bus, logger *zap.Logger) *intsync.Engine {
	return intsync.NewEngine(c, db, b, logger)
}

func provideContactPoller(c *api.Client, db *store.DB, b *bus.Bus, machine *status.Machine, logger *zap.Logger) *intsync.ContactPoller {
	poller := intsync.NewContactPoller(c, db, b, logger)
	poller.SetHealth(machine)
	return poller
}

func provideUnreadPoller(c *api.Client, b *bus.Bus, logger *zap.Logger) *intsync.UnreadPoller {
	return intsync.NewUnreadPoller(c, b, logger)
}

func provideSlotManager(c *api.Client, b *bus.Bus, logger *zap.Logger) *slots.Manager {
	return slots.NewManager(c, 0, b, logger)
}

func provideBookingService(c *api.Client, sm *slots.Manager, logger *zap.Logger) *booking.Service {
	return booking.NewService(c, sm, logger)
}

func provideViewModel(engine *intsync.Engine, contacts *intsync.ContactPoller, unread *intsync.UnreadPoller, sm *slots.Manager, bs *booking.Service) *appmodel.ViewModel {
	return appmodel.NewViewModel(engine, contacts, unread, sm, bs)
}

func provideApp(p Params, c *api.Client, sess *auth.Session, vm *appmodel.ViewModel, b *bus.Bus, machine *status.Machine, logger *zap.Logger) *tui.App {
	return tui.NewApp(c, sess, vm, b, machine, p.AccountName, logger)
}

func registerLifecycle(lc fx.Lifecycle, sh fx.Shutdowner, app *tui.App, sess *auth.Session, machine *status.Machine, engine *intsync.Engine, contacts *intsync.ContactPoller, unread *intsync.UnreadPoller, lk *lock.Lock, db *store.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if sess.Authenticated() {
				_ = machine.Transition(status.Online)
			} else {
				logger.Info("no stored token, login required")
				_ = machine.Transition(status.AuthRequired)
			}

			// The TUI owns the terminal until the user quits.
			go func() {
				if err := app.Run(); err != nil {
					logger.Error("tui error", zap.Error(err))
				}
				_ = sh.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			app.Stop()
			engine.Stop()
			contacts.Stop()
			unread.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing cache", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("client stopped")
			return nil
		},
	})
}
