// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package display reads human-readable labels from `display` struct tags.
package display

import (
	"errors"
	"fmt"
	"reflect"
)

// TagName is the struct tag holding a field's label.
const TagName = "display"

// ErrNotStruct is returned when the model is not a struct or a pointer to one.
var ErrNotStruct = errors.New("model is not a struct")

// Field is one labelled value of a model.
type Field struct {
	Name  string
	Label string
	Value any
}

// Name returns the label of the named field. Fields without a tag are
// labelled with their Go name.
func Name(model any, field string) (string, error) {
	typ, _, err := structOf(model)
	if err != nil {
		return "", err
	}
	sf, ok := typ.FieldByName(field)
	if !ok || !sf.IsExported() {
		return "", fmt.Errorf("display: %s has no exported field %q", typ.Name(), field)
	}
	return label(sf), nil
}

// Fields returns the exported fields of model in declaration order. Fields
// tagged `display:"-"` are skipped.
func Fields(model any) ([]Field, error) {
	typ, val, err := structOf(model)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, typ.NumField())
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() || sf.Tag.Get(TagName) == "-" {
			continue
		}
		f := Field{Name: sf.Name, Label: label(sf)}
		if val.IsValid() {
			f.Value = val.Field(i).Interface()
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func label(sf reflect.StructField) string {
	if l := sf.Tag.Get(TagName); l != "" {
		return l
	}
	return sf.Name
}

// structOf resolves model to its struct type. The value is invalid when
// model is a nil pointer.
func structOf(model any) (reflect.Type, reflect.Value, error) {
	if model == nil {
		return nil, reflect.Value{}, ErrNotStruct
	}
	val := reflect.ValueOf(model)
	typ := val.Type()
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
		if val.IsNil() {
			val = reflect.Value{}
		} else {
			val = val.Elem()
		}
	}
	if typ.Kind() != reflect.Struct {
		return nil, reflect.Value{}, fmt.Errorf("%w: %T", ErrNotStruct, model)
	}
	return typ, val, nil
}
