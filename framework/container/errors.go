package container

import (
	"errors"
	"fmt"
)

var (
	// ErrInstantiate wraps a constructor failure.
	ErrInstantiate = errors.New("container: instantiation failed")
	// ErrDuplicateBean is returned when two classes claim one bean name.
	ErrDuplicateBean = errors.New("container: duplicate bean name")
	// ErrAliasConflict is returned when an alias already points elsewhere.
	ErrAliasConflict = errors.New("container: alias already taken")
	// ErrInitialize wraps an Initialize() failure.
	ErrInitialize = errors.New("container: initialization failed")

	// ErrBeanNotFound is returned when an injection target is not registered.
	ErrBeanNotFound = errors.New("container: bean not found")
	// ErrTypeMismatch is returned when the target is not assignable to the field.
	ErrTypeMismatch = errors.New("container: bean not assignable to field")
	// ErrUnexportedField is returned for an unexported field without a setter.
	ErrUnexportedField = errors.New("container: unexported field has no setter")
	// ErrSetterPanic wraps a panic raised by a Set<Field> method.
	ErrSetterPanic = errors.New("container: setter panicked")
)

// BeanError reports a class that could not be registered or initialized.
type BeanError struct {
	Class string
	Bean  string
	Err   error
}

func (e *BeanError) Error() string {
	return fmt.Sprintf("bean %q (%s): %v", e.Bean, e.Class, e.Err)
}

func (e *BeanError) Unwrap() error { return e.Err }

// InjectError reports one injection site that could not be wired.
type InjectError struct {
	Bean   string
	Field  string
	Target string
	Err    error
}

func (e *InjectError) Error() string {
	return fmt.Sprintf("inject %s.%s <- %q: %v", e.Bean, e.Field, e.Target, e.Err)
}

func (e *InjectError) Unwrap() error { return e.Err }
