package registry

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

type field struct {
	index    []int
	ty       cty.Type
	optional bool
}

// fieldsOf maps the `cty` tag names of *target's struct fields to their
// declared attribute types.
func fieldsOf(target any) (map[string]field, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("config must be a pointer to a struct, got %T", target)
	}

	st := rv.Elem().Type()
	fields := make(map[string]field, st.NumField())
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.Split(sf.Tag.Get("cty"), ",")[0]
		if name == "" || name == "-" {
			continue
		}

		ty, err := gocty.ImpliedType(reflect.Zero(sf.Type).Interface())
		if err != nil {
			return nil, fmt.Errorf("attribute '%s': could not imply cty type from Go field type %s: %w", name, sf.Type, err)
		}
		fields[name] = field{
			index:    sf.Index,
			ty:       ty,
			optional: sf.Type.Kind() == reflect.Pointer,
		}
	}
	return fields, nil
}

// Decode copies attrs into the struct target points to. Values are converted
// to each field's type where cty allows it, so "2" satisfies a number.
// Every problem is reported, not just the first.
func Decode(attrs Attributes, target any) error {
	fields, err := fieldsOf(target)
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, name := range sortedKeys(attrs) {
		if _, ok := fields[name]; !ok {
			result = multierror.Append(result, fmt.Errorf("unsupported attribute %q", name))
		}
	}

	rv := reflect.ValueOf(target).Elem()
	for _, name := range sortedFieldNames(fields) {
		f := fields[name]
		v, ok := attrs[name]
		if !ok || v.IsNull() {
			if !f.optional {
				result = multierror.Append(result, fmt.Errorf("missing required attribute %q", name))
			}
			continue
		}
		if !v.IsWhollyKnown() {
			result = multierror.Append(result, fmt.Errorf("attribute %q: value is not known", name))
			continue
		}

		conv, err := convert.Convert(v, f.ty)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("attribute %q: %w", name, err))
			continue
		}
		if err := gocty.FromCtyValue(conv, rv.FieldByIndex(f.index).Addr().Interface()); err != nil {
			result = multierror.Append(result, fmt.Errorf("attribute %q: %w", name, err))
		}
	}
	return result.ErrorOrNil()
}

func sortedFieldNames(fields map[string]field) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
