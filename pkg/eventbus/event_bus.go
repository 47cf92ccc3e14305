package eventbus

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/enclaveworks/enclave-sdk/pkg/serrors"
)

// EventBus is an in-process publish/subscribe bus. Handlers are plain
// functions; an event is delivered to every subscriber whose signature
// matches the published arguments.
type EventBus interface {
	Publish(args ...any)
	Subscribe(handler any)
	Unsubscribe(handler any)
	Clear()
	SubscribersCount() int
}

// EventBusWithError extends EventBus with a publish variant that surfaces
// handler errors to the publisher. Handlers participating in PublishE must
// return either nothing or a single error.
type EventBusWithError interface {
	EventBus
	PublishE(args ...any) error
}

var (
	ErrNoSubscribers        = serrors.NewError("EVENTBUS_NO_SUBSCRIBERS", "no matching subscribers")
	ErrInvalidHandlerReturn = serrors.NewError("EVENTBUS_INVALID_HANDLER_RETURN", "invalid handler return signature")
)

type subscriber struct {
	handler any
}

type bus struct {
	log         *logrus.Logger
	subscribers []subscriber
}

func NewEventPublisher(log *logrus.Logger) EventBusWithError {
	return &bus{log: log}
}

// MatchSignature reports whether handler is a func whose parameters can
// accept args positionally, honoring interface implementation and nil.
func MatchSignature(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t.Kind() != reflect.Func {
		return false
	}
	if t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		param := t.In(i)
		if arg == nil {
			if param.Kind() != reflect.Interface && param.Kind() != reflect.Ptr {
				return false
			}
			continue
		}
		argType := reflect.TypeOf(arg)
		if param.Kind() == reflect.Interface {
			if !argType.Implements(param) {
				return false
			}
			continue
		}
		if !argType.AssignableTo(param) {
			return false
		}
	}
	return true
}

func (b *bus) Publish(args ...any) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}

	handled := false
	for _, sub := range b.subscribers {
		if !MatchSignature(sub.handler, args) {
			continue
		}
		v := reflect.ValueOf(sub.handler)
		func() {
			defer func() {
				if r := recover(); r != nil && b.log != nil {
					b.log.Errorf("eventbus: handler %s panicked with args %v: %v", v.Type(), args, r)
				}
			}()
			v.Call(in)
			handled = true
		}()
	}

	if !handled && b.log != nil {
		b.log.Warnf("eventbus.Publish: no matching subscribers for event with args: %v", in)
	}
}

func (b *bus) PublishE(args ...any) error {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}

	handled := false
	var errs []error

	for _, sub := range b.subscribers {
		if !MatchSignature(sub.handler, args) {
			continue
		}
		handled = true
		v := reflect.ValueOf(sub.handler)

		func() {
			defer func() {
				if r := recover(); r != nil {
					errs = append(errs, fmt.Errorf("eventbus: handler %s panicked: %v", v.Type(), r))
				}
			}()

			out := v.Call(in)
			switch len(out) {
			case 0:
				return
			case 1:
				ret := out[0]
				if ret.Type() != reflect.TypeOf((*error)(nil)).Elem() {
					errs = append(errs, fmt.Errorf("%w: handler %s returns %s", ErrInvalidHandlerReturn, v.Type(), ret.Type()))
					return
				}
				if !ret.IsNil() {
					errs = append(errs, ret.Interface().(error))
				}
			default:
				errs = append(errs, fmt.Errorf("%w: handler %s returns %d values", ErrInvalidHandlerReturn, v.Type(), len(out)))
			}
		}()
	}

	if !handled {
		return ErrNoSubscribers
	}
	return errors.Join(errs...)
}

func (b *bus) Subscribe(handler any) {
	if reflect.TypeOf(handler).Kind() != reflect.Func {
		panic("eventbus: handler must be a function")
	}
	b.subscribers = append(b.subscribers, subscriber{handler: handler})
}

func (b *bus) Unsubscribe(handler any) {
	ptr := reflect.ValueOf(handler).Pointer()
	for i, sub := range b.subscribers {
		if reflect.ValueOf(sub.handler).Pointer() == ptr {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

func (b *bus) Clear() {
	b.subscribers = nil
}

func (b *bus) SubscribersCount() int {
	return len(b.subscribers)
}
