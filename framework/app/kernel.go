package app

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-mvc/framework/config"
	"github.com/km-arc/go-mvc/framework/container"
	"github.com/km-arc/go-mvc/framework/providers"
	"github.com/km-arc/go-mvc/framework/routing"
	"github.com/km-arc/go-mvc/framework/scan"
)

// ErrNotBooted is returned by Dispatcher before a successful Boot.
var ErrNotBooted = errors.New("app: application has not booted")

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Singleton(), app.Make(), app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	// Catalog is the class manifest Boot scans. It defaults to scan.Default.
	Catalog *scan.Catalog

	report     *Report
	dispatcher *routing.Dispatcher
}

// Report summarizes a boot. Stage errors are non-fatal: each is the joined
// error of the classes, fields or mappings that were skipped.
type Report struct {
	Classes []string
	Beans   int
	Routes  *routing.Table

	RegisterErr   error
	InjectErr     error
	InitializeErr error
	RouteErr      error
}

// Err joins every stage error.
func (r *Report) Err() error {
	return errors.Join(r.RegisterErr, r.InjectErr, r.InitializeErr, r.RouteErr)
}

// New creates the application and registers the framework providers.
func New(envFiles ...string) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
		Catalog:   scan.Default,
	}

	// Framework providers never fail in Register.
	_ = registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	_ = registry.Register(&providers.LogServiceProvider{})
	_ = registry.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the providers, then the bean pipeline:
//
//	scan → register → inject → initialize → build routes
//
// A missing scan root or an unresolvable scan is fatal. Per-class failures
// after that are logged, collected in the Report and skipped. Boot runs
// once; later calls return the first report.
func (a *Application) Boot() (*Report, error) {
	if a.report != nil {
		return a.report, nil
	}
	if err := a.Providers.Boot(); err != nil {
		return nil, fmt.Errorf("boot providers: %w", err)
	}

	cfg := a.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := a.Logger()

	names, err := a.Catalog.Scan(cfg.Web.ScanPackage)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", cfg.Web.ScanPackage, err)
	}
	log.Info("scanned", zap.String("package", cfg.Web.ScanPackage), zap.Int("classes", len(names)))

	rep := &Report{Classes: names}
	rep.RegisterErr = a.RegisterBeans(a.Catalog, names)
	rep.InjectErr = a.Inject()
	rep.InitializeErr = a.Initialize()
	rep.Beans = len(a.Beans())

	rep.Routes, rep.RouteErr = routing.Build(a.Beans(), log)

	a.dispatcher = routing.NewDispatcher(rep.Routes, cfg.Web.ContextPath, log)
	a.Router().Mount(cfg.Web.ContextPath, a.dispatcher)

	if err := rep.Err(); err != nil {
		log.Warn("booted with errors", zap.Int("beans", rep.Beans), zap.Int("routes", rep.Routes.Len()), zap.Error(err))
	} else {
		log.Info("booted", zap.Int("beans", rep.Beans), zap.Int("routes", rep.Routes.Len()))
	}
	a.report = rep
	return rep, nil
}

// Dispatcher returns the request dispatcher built by Boot.
func (a *Application) Dispatcher() (*routing.Dispatcher, error) {
	if a.dispatcher == nil {
		return nil, ErrNotBooted
	}
	return a.dispatcher, nil
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Logger resolves the application logger; a no-op logger before boot.
func (a *Application) Logger() *zap.Logger {
	return providers.Logger(a.Container)
}

// Run boots the application (if needed) and starts the HTTP server on APP_PORT.
func (a *Application) Run() error {
	if _, err := a.Boot(); err != nil {
		return err
	}
	cfg := a.Config()
	addr := ":" + cfg.App.Port
	a.Logger().Info("listening",
		zap.String("app", cfg.App.Name),
		zap.String("addr", addr),
		zap.String("context_path", cfg.Web.ContextPath),
		zap.String("env", cfg.App.Env))

	return http.ListenAndServe(addr, a.Router())
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }

// IsProduction reports whether APP_ENV is "production".
func (a *Application) IsProduction() bool { return a.Environment() == "production" }

// IsTesting reports whether APP_ENV is "testing".
func (a *Application) IsTesting() bool { return a.Environment() == "testing" }
