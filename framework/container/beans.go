package container

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/go-mvc/framework/mvc"
	"github.com/km-arc/go-mvc/framework/scan"
)

// Bean is a singleton produced from a catalogued class.
type Bean struct {
	Name       string
	Descriptor scan.Descriptor
	Instance   any
}

// RegisterBeans instantiates every controller and service among names and
// stores it under its bean name. Services are also aliased under their own
// type name and under every scanned interface they implement; controllers
// are reachable by bean name only. Interfaces and plain classes are not instantiated.
//
// A class that fails is logged and skipped; the others still register.
// The returned error joins one *BeanError per failure.
func (c *Container) RegisterBeans(cat *scan.Catalog, names []string) error {
	log := c.logger()

	var (
		errs       []error
		interfaces []scan.Descriptor
		candidates []scan.Descriptor
	)
	fail := func(d scan.Descriptor, err error) {
		log.Warn("bean skipped",
			zap.String("class", d.Name),
			zap.String("bean", d.BeanName),
			zap.Error(err))
		errs = append(errs, &BeanError{Class: d.Name, Bean: d.BeanName, Err: err})
	}

	for _, name := range names {
		d, err := cat.Describe(name)
		if err != nil {
			fail(scan.Descriptor{Name: name}, err)
			continue
		}
		switch {
		case d.Interface:
			interfaces = append(interfaces, d)
		case d.Role != mvc.RolePlain:
			candidates = append(candidates, d)
		}
	}

	for _, d := range candidates {
		if c.Bound(d.BeanName) {
			fail(d, ErrDuplicateBean)
			continue
		}
		class, _ := cat.Lookup(d.Name)
		instance, err := class.New()
		if err != nil {
			fail(d, fmt.Errorf("%w: %w", ErrInstantiate, err))
			continue
		}

		c.Instance(d.BeanName, instance)
		c.mu.Lock()
		c.beans = append(c.beans, &Bean{Name: d.BeanName, Descriptor: d, Instance: instance})
		c.mu.Unlock()

		var keys []string
		if d.Role == mvc.RoleService {
			keys = append(keys, d.Name)
			it := reflect.TypeOf(instance)
			for _, iface := range interfaces {
				if it.Implements(iface.Type) {
					keys = append(keys, iface.Name)
				}
			}
		}
		for _, key := range keys {
			if err := c.aliasBean(d.BeanName, key); err != nil {
				fail(d, err)
			}
		}

		log.Debug("bean registered",
			zap.String("bean", d.BeanName),
			zap.Stringer("role", d.Role),
			zap.Strings("aliases", keys))
	}

	return errors.Join(errs...)
}

// aliasBean points key at bean unless key already names something else.
func (c *Container) aliasBean(bean, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target, ok := c.aliases[key]; ok && target != bean {
		return fmt.Errorf("%w: %s -> %s", ErrAliasConflict, key, target)
	}
	if _, ok := c.instances[key]; ok {
		return fmt.Errorf("%w: %s is a bean name", ErrAliasConflict, key)
	}
	c.aliases[key] = bean
	return nil
}

// Beans returns the registered beans in registration order.
func (c *Container) Beans() []*Bean {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Bean, len(c.beans))
	copy(out, c.beans)
	return out
}

// Initialize calls Initialize on every bean implementing mvc.Initializer,
// in registration order. Failures are logged and joined.
func (c *Container) Initialize() error {
	log := c.logger()
	var errs []error
	for _, b := range c.Beans() {
		hook, ok := b.Instance.(mvc.Initializer)
		if !ok {
			continue
		}
		if err := callInitialize(hook); err != nil {
			log.Warn("bean initialization failed", zap.String("bean", b.Name), zap.Error(err))
			errs = append(errs, &BeanError{
				Class: b.Descriptor.Name,
				Bean:  b.Name,
				Err:   fmt.Errorf("%w: %w", ErrInitialize, err),
			})
		}
	}
	return errors.Join(errs...)
}

func callInitialize(hook mvc.Initializer) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return hook.Initialize()
}
