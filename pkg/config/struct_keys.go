package config

import (
	"reflect"
	"strings"
)

const sep = "."

// GetStructKeys returns the dotted keys of all leaf fields of a nested
// struct, named by the tag or the field name. A tag ending with
// ","+squashValue flattens an embedded struct into its parent, like
// mapstructure does. Pointers are followed, maps are leaves.
func GetStructKeys(typ reflect.Type, tag, squashValue string) []string {
	return appendStructKeys(typ, tag, ","+squashValue, nil, nil)
}

func appendStructKeys(typ reflect.Type, tag, squashSuffix string, prefix []string, keys []string) []string {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return append(keys, strings.Join(prefix, sep))
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name, tagged := field.Tag.Lookup(tag)
		if !tagged {
			name = field.Name
		}
		squash := tagged && strings.HasSuffix(name, squashSuffix)
		key := append([]string{}, prefix...)
		if !squash {
			key = append(key, name)
		}
		keys = appendStructKeys(field.Type, tag, squashSuffix, key, keys)
	}
	return keys
}
