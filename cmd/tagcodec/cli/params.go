// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a flag set named name with one flag per
// tagged field of params, a pointer to a struct. A malformed tag is a
// programming error and panics. Commands call it from Command.Flags and
// read the struct once Run is reached:
//
//	var params decodeParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("decode", &params)
//	    },
//	    Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
//	        // params holds the parsed flags here
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags adds a flag to flagSet for every field of params carrying
// a flag tag. The tags are:
//
//	flag:"name" or flag:"name,n"   long name and optional shorthand
//	desc:"..."                     help text
//	default:"..."                  default, parsed per the field type
//	                               ([]string defaults are comma separated)
//
// Fields may be string, bool, int, int64 or []string. Embedded structs
// are walked, which lets commands share a group such as InputParams.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

// flagSpec is the parsed form of one field's struct tags.
type flagSpec struct {
	name, shorthand string
	usage           string
	defaultValue    string
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()
	for i := range structType.NumField() {
		field, fieldValue := structType.Field(i), structValue.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		spec := flagSpec{usage: field.Tag.Get("desc"), defaultValue: field.Tag.Get("default")}
		spec.name, spec.shorthand, _ = strings.Cut(tag, ",")

		if err := spec.bind(fieldValue.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// bind registers the flag for target, a pointer to the field.
func (spec flagSpec) bind(target any, flagSet *pflag.FlagSet) error {
	var err error
	switch target := target.(type) {
	case *string:
		flagSet.StringVarP(target, spec.name, spec.shorthand, spec.defaultValue, spec.usage)
	case *bool:
		var value bool
		if value, err = parseDefault(spec.defaultValue, strconv.ParseBool); err == nil {
			flagSet.BoolVarP(target, spec.name, spec.shorthand, value, spec.usage)
		}
	case *int:
		var value int
		if value, err = parseDefault(spec.defaultValue, strconv.Atoi); err == nil {
			flagSet.IntVarP(target, spec.name, spec.shorthand, value, spec.usage)
		}
	case *int64:
		var value int64
		parseInt64 := func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }
		if value, err = parseDefault(spec.defaultValue, parseInt64); err == nil {
			flagSet.Int64VarP(target, spec.name, spec.shorthand, value, spec.usage)
		}
	case *[]string:
		var value []string
		if spec.defaultValue != "" {
			value = strings.Split(spec.defaultValue, ",")
		}
		flagSet.StringSliceVarP(target, spec.name, spec.shorthand, value, spec.usage)
	default:
		return fmt.Errorf("unsupported type %T for flag --%s", target, spec.name)
	}
	if err != nil {
		return fmt.Errorf("default for --%s: %w", spec.name, err)
	}
	return nil
}

// parseDefault parses a default:"..." tag value, treating an absent tag
// as the zero value.
func parseDefault[T any](s string, parse func(string) (T, error)) (T, error) {
	if s == "" {
		var zero T
		return zero, nil
	}
	return parse(s)
}
