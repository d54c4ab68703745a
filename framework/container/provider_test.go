package container_test

import (
	"errors"
	"testing"

	"github.com/km-arc/go-mvc/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalls int
	bootCalls     int
}

func (p *eagerProvider) Register(app *container.Container) {
	p.registerCalls++
	app.Singleton("eager-svc", func(c *container.Container) any { return "eager" })
}

func (p *eagerProvider) Boot(app *container.Container) error {
	p.bootCalls++
	return nil
}

// dependentProvider resolves another provider's binding during Boot.
type dependentProvider struct {
	container.BaseProvider
	seen string
}

func (p *dependentProvider) Register(app *container.Container) {
	app.Singleton("dependent-svc", func(c *container.Container) any {
		return container.Resolve[string](c, "eager-svc") + "+dependent"
	})
}

func (p *dependentProvider) Boot(app *container.Container) error {
	p.seen = container.Resolve[string](app, "dependent-svc")
	return nil
}

var errBootFailed = errors.New("boot failed")

type failingProvider struct{ container.BaseProvider }

func (p *failingProvider) Register(app *container.Container) {}

func (p *failingProvider) Boot(app *container.Container) error { return errBootFailed }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_RegisterCalledImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if p.registerCalls != 1 {
		t.Errorf("Register() calls: got %d want 1", p.registerCalls)
	}
	if p.bootCalls != 0 {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}
}

func TestRegistry_BootCallsProvidersInOrder(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	eager := &eagerProvider{}
	dependent := &dependentProvider{}
	_ = reg.Register(eager)
	_ = reg.Register(dependent)

	if err := reg.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if eager.bootCalls != 1 {
		t.Errorf("eager Boot() calls: got %d want 1", eager.bootCalls)
	}
	if dependent.seen != "eager+dependent" {
		t.Errorf("dependent saw %q, want %q", dependent.seen, "eager+dependent")
	}
}

func TestRegistry_Boot_Idempotent(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()
	_ = reg.Boot()

	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
	if p.bootCalls != 1 {
		t.Errorf("Boot() calls: got %d want 1", p.bootCalls)
	}
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	if reg.Booted() {
		t.Error("Booted() should be false before Boot()")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	_ = reg.Register(p)
	_ = reg.Register(p)

	if p.registerCalls != 1 {
		t.Errorf("Register() calls: got %d want 1", p.registerCalls)
	}
	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d want 1", len(reg.Providers()))
	}
}

func TestRegistry_BootError_Stops(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	after := &eagerProvider{}
	_ = reg.Register(&failingProvider{})
	_ = reg.Register(after)

	if err := reg.Boot(); !errors.Is(err, errBootFailed) {
		t.Fatalf("Boot: got %v want %v", err, errBootFailed)
	}
	if after.bootCalls != 0 {
		t.Error("providers after a failing one should not boot")
	}
}

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	_ = reg.Boot()

	p := &eagerProvider{}
	_ = reg.Register(p)

	if p.bootCalls != 1 {
		t.Error("provider registered after Boot() should be booted immediately")
	}
	if err := reg.Register(&failingProvider{}); !errors.Is(err, errBootFailed) {
		t.Errorf("late failing provider: got %v want %v", err, errBootFailed)
	}
}

func TestBaseProvider_Boot(t *testing.T) {
	var p container.BaseProvider
	if err := p.Boot(container.New()); err != nil {
		t.Errorf("BaseProvider.Boot: %v", err)
	}
}
