package xbridge

import (
	"fmt"
	"reflect"
)

// LevelMapping translates between structured levels and a legacy backend's
// integer level codes and level names. It is built once from a static
// forward table and is read-only afterwards, so it can be shared freely.
type LevelMapping struct {
	forward map[Level]int
	byCode  map[int]Level
	byName  map[string]Level
	name    func(int) string
}

// NewLevelMapping builds the reverse tables by walking forward once and
// registering both the code and name(code) for every level. forward must
// cover all five levels with distinct codes; violations panic since the
// tables are static.
func NewLevelMapping(forward map[Level]int, name func(int) string) *LevelMapping {
	m := &LevelMapping{
		forward: make(map[Level]int, len(forward)),
		byCode:  make(map[int]Level, len(forward)),
		byName:  make(map[string]Level, len(forward)),
		name:    name,
	}
	for _, l := range allLevels {
		code, ok := forward[l]
		if !ok {
			panic(fmt.Sprintf("xbridge: level mapping misses %s", l))
		}
		if prev, dup := m.byCode[code]; dup {
			panic(fmt.Sprintf("xbridge: levels %s and %s share legacy code %d", prev, l, code))
		}
		m.forward[l] = code
		m.byCode[code] = l
		if name != nil {
			m.byName[name(code)] = l
		}
	}
	return m
}

// ToLegacy returns the legacy code for l. ok is false for values outside the
// five structured levels; callers pick their own default.
func (m *LevelMapping) ToLegacy(l Level) (code int, ok bool) {
	code, ok = m.forward[l]
	return code, ok
}

// LegacyName returns the backend's canonical name for code.
func (m *LevelMapping) LegacyName(code int) string {
	if m.name == nil {
		return fmt.Sprint(code)
	}
	return m.name(code)
}

// FromCode maps a legacy code back to a structured level.
func (m *LevelMapping) FromCode(code int) (Level, error) {
	if l, ok := m.byCode[code]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("%w: legacy code %d", ErrUnknownLevel, code)
}

// FromName maps a legacy level name, spelled as the backend prints it, back
// to a structured level.
func (m *LevelMapping) FromName(name string) (Level, error) {
	if l, ok := m.byName[name]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("%w: legacy name %q", ErrUnknownLevel, name)
}

// FromLegacy accepts either a legacy code (any integer kind, including the
// backend's own level type) or a legacy name (any string kind).
func (m *LevelMapping) FromLegacy(codeOrName any) (Level, error) {
	rv := reflect.ValueOf(codeOrName)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return m.FromCode(int(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return m.FromCode(int(rv.Uint()))
	case reflect.String:
		return m.FromName(rv.String())
	default:
		return LevelInfo, fmt.Errorf("%w: unsupported key %T", ErrUnknownLevel, codeOrName)
	}
}
