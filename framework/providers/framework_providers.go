package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-mvc/framework/config"
	"github.com/km-arc/go-mvc/framework/container"
	"github.com/km-arc/go-mvc/framework/logging"
	"github.com/km-arc/go-mvc/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider builds the zap logger once configuration is available
// and hands it to the container, so bean registration and injection log
// through it.
//
// Bound abstracts:
//   - "log"  → *zap.Logger
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {}

func (p *LogServiceProvider) Boot(app *container.Container) error {
	cfg := container.Resolve[*config.Config](app, "config")
	log, err := logging.New(&cfg.App)
	if err != nil {
		return err
	}
	app.Instance("log", log)
	app.SetLogger(log)
	return nil
}

// Logger resolves the "log" binding, or a no-op logger before boot.
func Logger(app *container.Container) *zap.Logger {
	if log, ok := container.TryResolve[*zap.Logger](app, "log"); ok {
		return log
	}
	return zap.NewNop()
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router the dispatcher is
// mounted in.
//
// Bound abstracts:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New()
	})
}
