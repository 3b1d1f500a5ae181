package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type orderParams struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// parseOrderBy accepts "key [asc|desc][, key [asc|desc]]" restricted to the schema's keys.
func parseOrderBy(raw string, schema OrderSchema) (orderParams, error) {
	if schema.DefaultPrimary == "" {
		return orderParams{}, errors.New("order schema default primary key required")
	}
	if _, ok := schema.Fields[schema.DefaultPrimary]; !ok {
		return orderParams{}, fmt.Errorf("order key %q missing from schema fields", schema.DefaultPrimary)
	}
	if schema.FallbackKey != "" {
		if _, ok := schema.Fields[schema.FallbackKey]; !ok {
			return orderParams{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
		}
	}

	ord := orderParams{
		PrimaryKey:  schema.DefaultPrimary,
		PrimaryDesc: schema.DefaultPrimaryDesc,
	}

	raw = strings.TrimSpace(raw)
	var keys []orderTerm
	if raw != "" {
		var err error
		keys, err = parseOrderTerms(raw, schema)
		if err != nil {
			return orderParams{}, err
		}
	}

	if len(keys) > 0 {
		ord.PrimaryKey, ord.PrimaryDesc = keys[0].key, keys[0].desc
	}
	if len(keys) > 1 {
		ord.SecondaryKey, ord.SecondaryDesc = keys[1].key, keys[1].desc
	} else if schema.FallbackKey != ord.PrimaryKey {
		ord.SecondaryKey, ord.SecondaryDesc = schema.FallbackKey, schema.FallbackDesc
	}

	return ord, nil
}

type orderTerm struct {
	key  string
	desc bool
}

func parseOrderTerms(raw string, schema OrderSchema) ([]orderTerm, error) {
	var terms []orderTerm
	seen := make(map[string]struct{})
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		if _, ok := schema.Fields[key]; !ok {
			return nil, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return nil, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return nil, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}
		terms = append(terms, orderTerm{key: key, desc: desc})
	}
	if len(terms) > 2 {
		return nil, errors.New("order_by supports at most two keys")
	}
	return terms, nil
}

func setOrderParams(binding any, ord orderParams) error {
	rv := reflect.ValueOf(binding)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("binding must be a non-nil pointer")
	}

	target := rv.Elem()
	if target.Kind() != reflect.Struct {
		return errors.New("binding must point to a struct")
	}

	for _, f := range []struct {
		name  string
		value any
	}{
		{"PrimaryKey", ord.PrimaryKey},
		{"PrimaryDesc", ord.PrimaryDesc},
		{"SecondaryKey", ord.SecondaryKey},
		{"SecondaryDesc", ord.SecondaryDesc},
	} {
		if err := setAssignableField(target, f.name, reflect.ValueOf(f.value)); err != nil {
			return err
		}
	}
	return nil
}

func setAssignableField(target reflect.Value, name string, value reflect.Value) error {
	field := target.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("params struct %s has no field named %q", target.Type(), name)
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %q on params struct", name)
	}
	if !value.Type().ConvertibleTo(field.Type()) {
		return fmt.Errorf("field %q must be %s-compatible, got %s", name, field.Type(), value.Type())
	}
	field.Set(value.Convert(field.Type()))
	return nil
}
