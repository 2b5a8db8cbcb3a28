package moodle

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// Params are the function specific arguments of a web-service call. Values
// may be scalars, slices or maps and are nested arbitrarily.
type Params map[string]any

// encodeParams flattens params into the bracketed form encoding the LMS
// expects: courseids[0]=5, criteria[0][key]=email, flag=1.
func encodeParams(form url.Values, params Params) error {
	for _, key := range sortedKeys(params) {
		if err := encodeValue(form, key, reflect.ValueOf(params[key])); err != nil {
			return err
		}
	}
	return nil
}

func encodeValue(form url.Values, key string, v reflect.Value) error {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.String:
		form.Add(key, v.String())
	case reflect.Bool:
		if v.Bool() {
			form.Add(key, "1")
		} else {
			form.Add(key, "0")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		form.Add(key, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		form.Add(key, strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		form.Add(key, strconv.FormatFloat(v.Float(), 'f', -1, 64))
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(form, fmt.Sprintf("%s[%d]", key, i), v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("param %q: map keys must be strings", key)
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			if err := encodeValue(form, fmt.Sprintf("%s[%s]", key, k.String()), v.MapIndex(k)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("param %q: unsupported type %s", key, v.Type())
	}
	return nil
}

func sortedKeys(params Params) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
