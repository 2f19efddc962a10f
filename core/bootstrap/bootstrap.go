package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"project-admin/core/config"
	"project-admin/core/database"
	"project-admin/core/loader"
	"project-admin/core/logger"
	"project-admin/core/middleware/cors"
	"project-admin/core/server"
	"project-admin/core/storage"
	"project-admin/core/token"
	"project-admin/feature/auth"
	"project-admin/feature/projects"
	projectmodels "project-admin/feature/projects/models"
	"project-admin/feature/users"
	usermodels "project-admin/feature/users/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// multipartOverhead is added to the attachment size limit to cover multipart
// boundaries and part headers.
const multipartOverhead = 64 << 10

// Options replaces the process-level collaborators of the application. Zero
// fields use the real implementations.
type Options struct {
	// Logger is built from the log configuration when nil.
	Logger *zap.Logger
	// Connect opens the database. Defaults to database.Connect.
	Connect func(ctx context.Context, cfg database.Config) (*gorm.DB, error)
	// Listen binds the HTTP listener. Defaults to net.Listen.
	Listen func(network, address string) (net.Listener, error)
	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
	// Storage is used instead of a client built from the storage configuration.
	Storage storage.Client
}

// App is a composed, not yet started application.
type App struct {
	cfg      *config.Config
	opts     Options
	logger   *zap.Logger
	db       *database.Handle
	store    storage.Client
	fiber    *fiber.App
	listener net.Listener
	stopping atomic.Bool
}

// Models lists every model managed by the schema migration.
func Models() []any {
	return []any{&usermodels.User{}, &projectmodels.Project{}, &projectmodels.Attachment{}}
}

// New validates the configuration and composes the application. Nothing is
// bound or connected until Start.
func New(cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if opts.Connect == nil {
		opts.Connect = database.Connect
	}
	if opts.Listen == nil {
		opts.Listen = net.Listen
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}

	l := opts.Logger
	if l == nil {
		var err error
		l, err = logger.New(&cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	tokens, err := token.NewIssuer(cfg.Auth)
	if err != nil {
		return nil, err
	}

	store := opts.Storage
	if store == nil && cfg.Storage.Enabled {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
	}

	a := &App{cfg: cfg, opts: opts, logger: l, db: database.NewHandle(), store: store}

	mgr := loader.NewManager()
	mgr.Register(auth.NewFeature(a.db, tokens, cfg.Auth.BcryptCost, l))
	mgr.Register(users.NewFeature(a.db, tokens, cfg.Auth.BcryptCost, l))
	mgr.Register(projects.NewFeature(a.db, tokens, store, cfg.Storage, l))

	serverCfg := cfg.Server
	if store != nil {
		if need := int(cfg.Storage.MaxUploadBytes) + multipartOverhead; need > serverCfg.BodyLimit {
			serverCfg.BodyLimit = need
		}
	}

	a.fiber, err = server.New(server.Deps{
		Config:   serverCfg,
		Policy:   cors.NewPolicy(cfg.Server.FrontendURL),
		Logger:   l,
		Features: mgr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compose application: %w", err)
	}
	return a, nil
}

// Fiber returns the composed HTTP application.
func (a *App) Fiber() *fiber.App {
	return a.fiber
}

// Database returns the handle published by the database stage.
func (a *App) Database() *database.Handle {
	return a.db
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Addr returns the bound listener address, or nil before Serving completes.
func (a *App) Addr() net.Addr {
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// Start runs the startup stages. Without SERVER_WAIT_FOR_DATABASE the listener
// is bound before Start returns and a bind failure is returned directly.
func (a *App) Start(ctx context.Context) (*Startup, error) {
	st := &Startup{Serving: newStage(), Database: newStage()}

	if a.store != nil {
		go a.ensureBucket(ctx)
	}

	if a.cfg.Server.WaitForDatabase {
		go func() {
			if err := a.runDatabase(ctx, st.Database); err != nil {
				st.Serving.finish(fmt.Errorf("not serving: %w", err))
				return
			}
			if err := a.serve(st.Serving); err != nil {
				a.logger.Error("Failed to bind listener", zap.Error(err))
				a.opts.Exit(1)
			}
		}()
		return st, nil
	}

	if err := a.serve(st.Serving); err != nil {
		return nil, err
	}
	go func() {
		_ = a.runDatabase(ctx, st.Database)
	}()
	return st, nil
}

// Shutdown stops the HTTP server and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.stopping.Store(true)
	err := a.fiber.ShutdownWithContext(ctx)
	if dbErr := a.db.Close(); dbErr != nil {
		err = errors.Join(err, dbErr)
	}
	return err
}

func (a *App) serve(stage *Stage) error {
	ln, err := a.opts.Listen("tcp", a.cfg.Server.Address())
	if err != nil {
		err = fmt.Errorf("failed to listen on %s: %w", a.cfg.Server.Address(), err)
		stage.finish(err)
		return err
	}
	a.listener = ln
	stage.finish(nil)

	a.logger.Info("Server listening",
		zap.String("address", ln.Addr().String()),
		zap.String("environment", a.cfg.Server.Environment))

	go func() {
		if err := a.fiber.Listener(ln); err != nil && !a.stopping.Load() {
			a.logger.Error("Server stopped", zap.Error(err))
			a.opts.Exit(1)
		}
	}()
	return nil
}

// runDatabase connects, migrates and publishes the connection. Failures are
// fatal unless startup has been cancelled.
func (a *App) runDatabase(ctx context.Context, stage *Stage) error {
	err := a.connect(ctx)
	if err != nil {
		if ctx.Err() == nil && !a.stopping.Load() {
			a.logger.Error("Database connection failed", zap.Error(err))
			a.opts.Exit(1)
		}
		stage.finish(err)
		return err
	}
	stage.finish(nil)
	return nil
}

func (a *App) connect(ctx context.Context) error {
	start := time.Now()
	db, err := a.opts.Connect(ctx, a.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", a.cfg.Database.Driver, err)
	}

	if a.cfg.Database.AutoMigrate {
		if err := database.Migrate(db, Models()...); err != nil {
			_ = database.Close(db)
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	a.db.Set(db)
	a.logger.Info("Database connected",
		zap.String("driver", a.cfg.Database.Driver),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (a *App) ensureBucket(ctx context.Context) {
	timeout := time.Duration(a.cfg.Storage.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := storage.EnsureBucket(ctx, a.store, a.cfg.Storage.Bucket, a.cfg.Storage.Region); err != nil {
		a.logger.Warn("Attachment bucket is not available", zap.Error(err))
		return
	}
	a.logger.Debug("Attachment bucket ready", zap.String("bucket", a.cfg.Storage.Bucket))
}
