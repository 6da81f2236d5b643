// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package datatest runs table tests whose cases live in YAML files.
//
// Case files are decoded with gopkg.in/yaml.v3 rather than with the parser
// under test, so a parser bug cannot silently rewrite its own expectations.
package datatest

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAMLFunc decodes a YAML document into generic values.
type LoadYAMLFunc func([]byte) (any, error)

// LoadYAMLv3 decodes data with gopkg.in/yaml.v3.
func LoadYAMLv3(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadTestCasesFromFile reads a list of cases from filename. A nil loadYAML
// means LoadYAMLv3. Cases written as {case-type: {...}} are normalized to
// {type: case-type, ...}.
func LoadTestCasesFromFile(filename string, loadYAML LoadYAMLFunc) ([]map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if loadYAML == nil {
		loadYAML = LoadYAMLv3
	}
	raw, err := loadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a sequence of cases, got %T", filename, raw)
	}

	cases := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			cases = append(cases, NormalizeTypeAsKey(m))
		}
	}
	return cases, nil
}

// NormalizeTypeAsKey turns {"parse-events": {...}} into
// {"type": "parse-events", ...}. Other maps are returned unchanged.
func NormalizeTypeAsKey(m map[string]any) map[string]any {
	if len(m) != 1 {
		return m
	}
	if _, ok := m["type"]; ok {
		return m
	}
	for key, value := range m {
		body, ok := value.(map[string]any)
		if !ok || !IsTypeConstant(key) {
			return m
		}
		out := map[string]any{"type": key}
		for k, v := range body {
			out[k] = v
		}
		return out
	}
	return m
}

// IsTypeConstant reports whether s looks like a case type: letters, digits,
// '-' and '_' only.
func IsTypeConstant(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// UnmarshalStruct fills the fields of target, a pointer to a struct, from
// data. Fields are matched by their yaml tag; unknown keys are ignored.
// Fields whose address implements FromValue(any) error convert themselves.
func UnmarshalStruct(target any, data map[string]any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be pointer to struct, got %T", target)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			continue
		}
		value, ok := data[name]
		if !ok {
			continue
		}
		if err := setField(v.Field(i), value); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value any) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	if conv, ok := field.Addr().Interface().(interface{ FromValue(any) error }); ok {
		return conv.FromValue(value)
	}

	rv := reflect.ValueOf(value)
	ft := field.Type()
	switch {
	case rv.Type().AssignableTo(ft):
		field.Set(rv)
		return nil
	case ft.Kind() == reflect.Interface:
		field.Set(rv)
		return nil
	case rv.CanConvert(ft) && rv.Kind() != reflect.String && ft.Kind() != reflect.String:
		field.Set(rv.Convert(ft))
		return nil
	case ft.Kind() == reflect.Slice:
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("expected a sequence, got %T", value)
		}
		s := reflect.MakeSlice(ft, len(items), len(items))
		for i, item := range items {
			if m, ok := item.(map[string]any); ok && ft.Elem().Kind() == reflect.Struct {
				if err := UnmarshalStruct(s.Index(i).Addr().Interface(), NormalizeTypeAsKey(m)); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
				continue
			}
			if err := setField(s.Index(i), item); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		field.Set(s)
		return nil
	case ft.Kind() == reflect.Struct:
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("expected a mapping, got %T", value)
		}
		return UnmarshalStruct(field.Addr().Interface(), m)
	}
	return fmt.Errorf("cannot convert %T to %v", value, ft)
}
