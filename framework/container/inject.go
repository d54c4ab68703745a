package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/km-arc/go-mvc/framework/mvc"
	"github.com/km-arc/go-mvc/framework/scan"
)

// Site is one field of a bean that wants another bean.
type Site struct {
	Bean   string
	Field  string
	Target string

	index    int
	typ      reflect.Type
	exported bool
}

// Sites lists the injection sites of a bean: every struct field tagged
// `inject`. An empty tag resolves by the field's type name.
func Sites(b *Bean) []Site {
	v := reflect.ValueOf(b.Instance)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	t := v.Elem().Type()

	var sites []Site
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		target, ok := f.Tag.Lookup(mvc.TagInject)
		if !ok {
			continue
		}
		target = strings.TrimSpace(target)
		if target == "" {
			target = scan.TypeName(f.Type)
		}
		sites = append(sites, Site{
			Bean:     b.Name,
			Field:    f.Name,
			Target:   target,
			index:    i,
			typ:      f.Type,
			exported: f.IsExported(),
		})
	}
	return sites
}

// Inject wires every injection site of every registered bean. All beans
// must already be registered. A site that cannot be wired is logged and
// skipped; the returned error joins one *InjectError per failure.
func (c *Container) Inject() error {
	log := c.logger()
	var errs []error
	for _, b := range c.Beans() {
		for _, s := range Sites(b) {
			err := c.wire(b, s)
			if err == nil {
				continue
			}
			log.Warn("injection skipped",
				zap.String("bean", s.Bean),
				zap.String("field", s.Field),
				zap.String("target", s.Target),
				zap.Error(err))
			errs = append(errs, &InjectError{Bean: s.Bean, Field: s.Field, Target: s.Target, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (c *Container) wire(b *Bean, s Site) error {
	dep, ok := c.Lookup(s.Target)
	if !ok {
		return ErrBeanNotFound
	}
	dv := reflect.ValueOf(dep)
	if !dv.IsValid() || !dv.Type().AssignableTo(s.typ) {
		return fmt.Errorf("%w: %T into %s", ErrTypeMismatch, dep, s.typ)
	}

	holder := reflect.ValueOf(b.Instance)
	if s.exported {
		holder.Elem().Field(s.index).Set(dv)
		return nil
	}

	setter := holder.MethodByName("Set" + upperFirst(s.Field))
	if !setter.IsValid() {
		return ErrUnexportedField
	}
	st := setter.Type()
	if st.NumIn() != 1 || !dv.Type().AssignableTo(st.In(0)) {
		return fmt.Errorf("%w: setter %s has signature %s", ErrTypeMismatch, "Set"+upperFirst(s.Field), st)
	}
	return callSetter(setter, dv)
}

func callSetter(setter, dep reflect.Value) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrSetterPanic, rec)
		}
	}()
	setter.Call([]reflect.Value{dep})
	return nil
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
