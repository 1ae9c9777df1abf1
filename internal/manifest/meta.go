package manifest

import "fmt"

// Meta carries the typed manifest keys the scanner interprets. Every other
// key stays in the raw dict untouched.
type Meta struct {
	Application bool
	Depends     []string
	AutoInstall bool
}

// ExtractMeta pulls the recognized keys out of a parsed manifest dict and
// validates their types. A key with the wrong type is an error, which fails
// that module's discovery; a missing key falls back to its default.
func ExtractMeta(dict map[string]any) (Meta, error) {
	var meta Meta

	application, err := boolKey(dict, "application")
	if err != nil {
		return Meta{}, err
	}

	meta.Application = application

	autoInstall, err := boolKey(dict, "auto_install")
	if err != nil {
		return Meta{}, err
	}

	meta.AutoInstall = autoInstall

	depends, err := stringListKey(dict, "depends")
	if err != nil {
		return Meta{}, err
	}

	meta.Depends = depends

	return meta, nil
}

func boolKey(dict map[string]any, key string) (bool, error) {
	raw, ok := dict[key]
	if !ok {
		return false, nil
	}

	value, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("manifest key %q is %T, expected a bool", key, raw)
	}

	return value, nil
}

func stringListKey(dict map[string]any, key string) ([]string, error) {
	raw, ok := dict[key]
	if !ok {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("manifest key %q is %T, expected a list", key, raw)
	}

	values := make([]string, 0, len(list))

	for i, item := range list {
		value, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("manifest key %q element %d is %T, expected a string", key, i, item)
		}

		values = append(values, value)
	}

	return values, nil
}
