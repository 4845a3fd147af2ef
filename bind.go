package skema

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	"github.com/reoring/skema/dsl"
)

// Opt holds an optional field that keeps absent apart from present. Use it
// where *T would conflate a missing key with an explicit null.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Opt.
func Some[T any](v T) Opt[T] { return Opt[T]{Value: v, Set: true} }

// Get returns the value and whether it was present.
func (o Opt[T]) Get() (T, bool) { return o.Value, o.Set }

func (o *Opt[T]) bindOpt() reflect.Value { o.Set = true; return reflect.ValueOf(&o.Value).Elem() }

type optBinder interface{ bindOpt() reflect.Value }

// BindError reports output that the target Go type cannot hold. It signals
// a mismatch between a schema and the Go type it is bound to.
type BindError struct {
	Path   string       // Dot/bracket path of the offending output.
	Type   reflect.Type // Target type.
	Found  string       // Go type of the output.
	Reason string
}

func (e *BindError) Error() string {
	at := e.Path
	if at == "" {
		at = "<root>"
	}
	msg := fmt.Sprintf("skema: cannot bind %s into %v at %s", e.Found, e.Type, at)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

var registry = struct {
	sync.RWMutex
	byTag map[reflect.Type]map[string]reflect.Type
	byPos map[reflect.Type][]reflect.Type
}{
	byTag: map[reflect.Type]map[string]reflect.Type{},
	byPos: map[reflect.Type][]reflect.Type{},
}

// Variants registers the concrete types implementing interface I, keyed by
// discriminated union tag. Bind uses it to materialize Variant output into I.
func Variants[I any](byTag map[string]I) {
	it := reflect.TypeOf((*I)(nil)).Elem()
	m := make(map[string]reflect.Type, len(byTag))
	for tag, v := range byTag {
		m[tag] = reflect.TypeOf(v)
	}
	registry.Lock()
	registry.byTag[it] = m
	registry.Unlock()
}

// Members registers the concrete types implementing interface I by union
// member position. Bind uses it to materialize Choice output into I.
func Members[I any](members ...I) {
	it := reflect.TypeOf((*I)(nil)).Elem()
	ts := make([]reflect.Type, len(members))
	for i, v := range members {
		ts[i] = reflect.TypeOf(v)
	}
	registry.Lock()
	registry.byPos[it] = ts
	registry.Unlock()
}

// Bind materializes generic output into T. Structs match keys through
// ResolveStructKey; *T fields are nil for both absent and null; Opt[T]
// fields record presence; interfaces are filled through Variants or Members;
// fieldless structs accept any scalar, which suits literal members.
func Bind[T any](out any) (T, error) {
	var t T
	if err := bindValue(reflect.ValueOf(&t).Elem(), out, Root()); err != nil {
		return t, err
	}
	return t, nil
}

// Typed decodes src, validates it against s and binds the output into T.
func Typed[T any](ctx context.Context, s dsl.Schema, src Source, opts ...ParseOpt) (T, error) {
	out, err := ParseFrom(ctx, s, src, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Bind[T](out)
}

var timeType = reflect.TypeOf(time.Time{})

func bindValue(dst reflect.Value, out any, p Path) error {
	if ob, ok := dst.Addr().Interface().(optBinder); ok {
		if out == NotSet {
			return nil
		}
		v := ob.bindOpt()
		if out == nil {
			v.SetZero()
			return nil
		}
		return bindValue(v, out, p)
	}
	switch c := out.(type) {
	case Choice:
		if dst.Kind() != reflect.Interface {
			return bindValue(dst, c.Value, p)
		}
	case Variant:
		if dst.Kind() != reflect.Interface {
			return bindValue(dst, c.Fields, p)
		}
	case Unset:
		return nil
	}

	switch dst.Kind() {
	case reflect.Pointer:
		if out == nil {
			dst.SetZero()
			return nil
		}
		nv := reflect.New(dst.Type().Elem())
		if err := bindValue(nv.Elem(), out, p); err != nil {
			return err
		}
		dst.Set(nv)
		return nil
	case reflect.Interface:
		return bindInterface(dst, out, p)
	case reflect.Struct:
		if dst.Type() == timeType {
			t, ok := out.(time.Time)
			if !ok {
				return bindErr(dst, out, p, "")
			}
			dst.Set(reflect.ValueOf(t))
			return nil
		}
		return bindStruct(dst, out, p)
	case reflect.Slice:
		items, ok := out.([]any)
		if !ok {
			return bindErr(dst, out, p, "")
		}
		sl := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, it := range items {
			if err := bindValue(sl.Index(i), it, p.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(sl)
		return nil
	case reflect.Map:
		m, ok := out.(map[string]any)
		if !ok || dst.Type().Key().Kind() != reflect.String {
			return bindErr(dst, out, p, "")
		}
		mv := reflect.MakeMapWithSize(dst.Type(), len(m))
		for k, it := range m {
			ev := reflect.New(dst.Type().Elem()).Elem()
			if err := bindValue(ev, it, p.Field(k)); err != nil {
				return err
			}
			mv.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), ev)
		}
		dst.Set(mv)
		return nil
	case reflect.String:
		s, ok := out.(string)
		if !ok {
			return bindErr(dst, out, p, "")
		}
		dst.SetString(s)
		return nil
	case reflect.Bool:
		b, ok := out.(bool)
		if !ok {
			return bindErr(dst, out, p, "")
		}
		dst.SetBool(b)
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := out.(float64)
		if !ok {
			return bindErr(dst, out, p, "")
		}
		dst.SetFloat(f)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := out.(float64)
		if !ok || f != math.Trunc(f) || dst.OverflowInt(int64(f)) {
			return bindErr(dst, out, p, "not an integer in range")
		}
		dst.SetInt(int64(f))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := out.(float64)
		if !ok || f < 0 || f != math.Trunc(f) || dst.OverflowUint(uint64(f)) {
			return bindErr(dst, out, p, "not an unsigned integer in range")
		}
		dst.SetUint(uint64(f))
		return nil
	}
	return bindErr(dst, out, p, "unsupported target kind")
}

func bindStruct(dst reflect.Value, out any, p Path) error {
	if dst.NumField() == 0 {
		switch out.(type) {
		case string, float64, bool, nil, map[string]any:
			return nil
		}
		return bindErr(dst, out, p, "")
	}
	m, ok := out.(map[string]any)
	if !ok {
		return bindErr(dst, out, p, "")
	}
	st := dst.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		it, present := m[key]
		if !present {
			continue
		}
		if err := bindValue(dst.Field(i), it, p.Field(key)); err != nil {
			return err
		}
	}
	return nil
}

func bindInterface(dst reflect.Value, out any, p Path) error {
	it := dst.Type()
	var concrete reflect.Type
	var payload any
	switch c := out.(type) {
	case Variant:
		registry.RLock()
		concrete = registry.byTag[it][c.Tag]
		registry.RUnlock()
		payload = c.Fields
	case Choice:
		registry.RLock()
		if ts := registry.byPos[it]; c.Member < len(ts) {
			concrete = ts[c.Member]
		}
		registry.RUnlock()
		payload = c.Value
	}
	if concrete == nil {
		if out == nil {
			dst.SetZero()
			return nil
		}
		rv := reflect.ValueOf(out)
		if !rv.Type().AssignableTo(it) {
			return bindErr(dst, out, p, "no registered variant")
		}
		dst.Set(rv)
		return nil
	}
	var nv reflect.Value
	if concrete.Kind() == reflect.Pointer {
		nv = reflect.New(concrete.Elem())
		if err := bindValue(nv.Elem(), payload, p); err != nil {
			return err
		}
	} else {
		nv = reflect.New(concrete).Elem()
		if err := bindValue(nv, payload, p); err != nil {
			return err
		}
	}
	dst.Set(nv)
	return nil
}

func bindErr(dst reflect.Value, out any, p Path, reason string) error {
	return &BindError{Path: p.String(), Type: dst.Type(), Found: fmt.Sprintf("%T", out), Reason: reason}
}
