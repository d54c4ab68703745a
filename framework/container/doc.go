// Package container is the application's IoC container: it owns the
// framework singletons bound by service providers and the beans produced
// from the scanned catalog.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()
//  4. Beans: RegisterBeans → Inject → Initialize (single-threaded)
//  5. Serve requests; nothing is mutated from here on
//
// # Bindings
//
//	// Singleton: built on first Make, reused
//	c.Singleton("config", func(c *container.Container) any { return config.Load() })
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
//	// Resolve
//	cfg := container.Resolve[*config.Config](c, "config")
//	cfg, ok := container.TryResolve[*config.Config](c, "config")
//
// # Beans
//
// RegisterBeans instantiates the controllers and services among the scanned
// class names. A bean lives once, under its bean name. For a service, its
// type name and every scanned interface it implements are aliases of that
// single instance; a controller is reachable by bean name only:
//
//	c.Make("userService")                                  // *UserServiceImpl
//	c.Make("example.com/app/service.UserService")           // same pointer
//	c.Make("example.com/app/service.UserServiceImpl")       // same pointer
//
// Inject then wires every field tagged `inject`. An empty tag resolves by
// the field's type name, a non-empty one by bean name. Exported fields are
// assigned directly; unexported ones need a Set<Field> method.
//
// Neither step aborts on a single failure. Failures come back as joined
// *BeanError / *InjectError values and are logged.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton("mailer", func(c *container.Container) any {
//	        cfg := container.Resolve[*config.Config](c, "config")
//	        return mail.NewSMTP(cfg.Property("MAIL_HOST", "localhost"))
//	    })
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
