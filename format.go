package xbridge

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Hook renders one field value. Hooks registered on a Formatter replace the
// default rendering of the top-level field they are keyed by.
type Hook func(value any) string

// Formatter turns an event into display text. The zero value is ready to
// use.
//
// Templates in log_format interpolate event fields with {name}. A field
// reference may walk nested maps or struct fields ({req.path}), call a
// zero-argument function ({load()}), request a quoted rendering ({name!r})
// and carry a fmt verb spec ({ratio:.2f}). Literal braces are written {{
// and }}.
type Formatter struct {
	mu    sync.RWMutex
	hooks map[string]Hook
}

// NewFormatter returns a Formatter without hooks.
func NewFormatter() *Formatter {
	return &Formatter{hooks: make(map[string]Hook)}
}

var defaultFormatter = NewFormatter()

// DefaultFormatter is the process-wide formatter used by FormatEvent.
func DefaultFormatter() *Formatter { return defaultFormatter }

// FormatEvent formats e with the default formatter.
func FormatEvent(e Event) string { return defaultFormatter.Format(e) }

// RegisterHook installs h for field key, replacing any previous hook. A nil
// h removes the hook.
func (f *Formatter) RegisterHook(key string, h Hook) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h == nil {
		delete(f.hooks, key)
		return
	}
	if f.hooks == nil {
		f.hooks = make(map[string]Hook)
	}
	f.hooks[key] = h
}

func (f *Formatter) hook(key string) Hook {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.hooks[key]
}

// Format renders e. It never fails: a broken template, a missing field or a
// panicking {f()} call yields an "Unable to format event" text carrying the
// reason. Panics raised by hooks are not recovered.
func (f *Formatter) Format(e Event) string {
	s, err := f.Render(e)
	if err != nil {
		return unformattable(e, err)
	}
	return s
}

// Render is Format with the error exposed. Events without log_format render
// as log_text, or as "" when that is absent too.
func (f *Formatter) Render(e Event) (string, error) {
	raw, present := e[KeyFormat]
	if !present || raw == nil {
		text, _ := e[KeyText].(string)
		return text, nil
	}
	format, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("log_format must be a string, got %T", raw)
	}
	buf := getBuf()
	defer putBuf(buf)
	if err := f.expand(buf, format, e); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var errSingleBrace = errors.New("single '}' encountered in format string")

func (f *Formatter) expand(buf *buffer, format string, e Event) error {
	for i := 0; i < len(format); {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				buf.writeByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				return errors.New("expected '}' before end of string")
			}
			if err := f.replaceField(buf, format[i+1:i+1+end], e); err != nil {
				return err
			}
			i += end + 2
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				buf.writeByte('}')
				i += 2
				continue
			}
			return errSingleBrace
		default:
			next := strings.IndexAny(format[i:], "{}")
			if next < 0 {
				buf.writeString(format[i:])
				return nil
			}
			buf.writeString(format[i : i+next])
			i += next
		}
	}
	return nil
}

// fieldRef is one parsed "{...}" reference.
type fieldRef struct {
	path []string
	call bool
	repr bool
	spec string
}

func parseFieldRef(s string) (fieldRef, error) {
	var ref fieldRef
	if i := strings.IndexByte(s, ':'); i >= 0 {
		ref.spec = s[i+1:]
		s = s[:i]
	}
	if i := strings.IndexByte(s, '!'); i >= 0 {
		switch conv := s[i+1:]; conv {
		case "r":
			ref.repr = true
		case "s":
		default:
			return ref, fmt.Errorf("unknown conversion specifier %q", conv)
		}
		s = s[:i]
	}
	if strings.HasSuffix(s, "()") {
		ref.call = true
		s = strings.TrimSuffix(s, "()")
	}
	if s == "" {
		return ref, errors.New("format field name is empty")
	}
	ref.path = strings.Split(s, ".")
	for _, p := range ref.path {
		if p == "" {
			return ref, fmt.Errorf("empty attribute in format field %q", s)
		}
	}
	return ref, nil
}

func (f *Formatter) replaceField(buf *buffer, raw string, e Event) error {
	ref, err := parseFieldRef(raw)
	if err != nil {
		return err
	}
	v, ok := e[ref.path[0]]
	if !ok {
		return fmt.Errorf("missing key %q", ref.path[0])
	}
	for _, attr := range ref.path[1:] {
		if v, err = lookupAttr(v, attr); err != nil {
			return err
		}
	}
	if ref.call {
		if v, err = call(v); err != nil {
			return fmt.Errorf("%s(): %w", strings.Join(ref.path, "."), err)
		}
	}

	if len(ref.path) == 1 && !ref.call {
		if h := f.hook(ref.path[0]); h != nil {
			v = h(v)
		}
	}

	switch {
	case ref.spec != "":
		verb := ref.spec
		if last := verb[len(verb)-1]; !isVerb(last) {
			verb += "v"
		}
		if _, isStr := v.(string); ref.repr && isStr && strings.HasSuffix(verb, "v") {
			verb = strings.TrimSuffix(verb, "v") + "q"
		}
		buf.b = fmt.Appendf(buf.b, "%"+verb, v)
	case ref.repr:
		appendRepr(buf, v)
	default:
		appendValue(buf, v)
	}
	return nil
}

func isVerb(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lookupAttr(v any, attr string) (any, error) {
	switch m := v.(type) {
	case Event:
		if x, ok := m[attr]; ok {
			return x, nil
		}
		return nil, fmt.Errorf("missing key %q", attr)
	case map[string]any:
		if x, ok := m[attr]; ok {
			return x, nil
		}
		return nil, fmt.Errorf("missing key %q", attr)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("nil value has no attribute %q", attr)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		fv := rv.FieldByName(attr)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil, fmt.Errorf("%s has no attribute %q", rv.Type(), attr)
		}
		return fv.Interface(), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		mv := rv.MapIndex(reflect.ValueOf(attr).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, fmt.Errorf("missing key %q", attr)
		}
		return mv.Interface(), nil
	}
	return nil, fmt.Errorf("%T has no attribute %q", v, attr)
}

// call invokes a zero-argument function or a Stringer. A panic inside the
// call is reported as an error.
func call(v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		if s, ok := v.(fmt.Stringer); ok {
			return s.String(), nil
		}
		return nil, fmt.Errorf("%T is not callable", v)
	}
	if rv.IsNil() {
		return nil, errors.New("nil function is not callable")
	}
	t := rv.Type()
	if t.NumIn() != 0 || t.NumOut() == 0 {
		return nil, fmt.Errorf("%s is not a zero-argument function with a result", t)
	}
	return rv.Call(nil)[0].Interface(), nil
}

// unformattable renders an event that could not be formatted, listing its
// fields in key order.
func unformattable(e Event, cause error) string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := getBuf()
	defer putBuf(buf)
	buf.writeString("Unable to format event {")
	for i, k := range keys {
		if i > 0 {
			buf.writeString(", ")
		}
		appendQuoted(buf, k)
		buf.writeString(": ")
		appendRepr(buf, e[k])
	}
	buf.writeString("}: ")
	buf.writeString(cause.Error())
	return buf.String()
}
