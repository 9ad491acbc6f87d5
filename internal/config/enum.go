package config

import (
	"fmt"
	"sort"
	"strings"
)

// enum maps case-insensitive spellings to values of T.
type enum[T comparable] struct {
	name   string
	values map[string]T
	keys   []string
}

func newEnum[T comparable](name string, values map[string]T) *enum[T] {
	e := &enum[T]{name: name, values: make(map[string]T, len(values))}
	for k, v := range values {
		k = normalize(k)
		e.values[k] = v
		e.keys = append(e.keys, k)
	}
	sort.Strings(e.keys)
	return e
}

func (e *enum[T]) parse(raw string) (T, error) {
	if v, ok := e.values[normalize(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", e.name, raw, e.keys)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
