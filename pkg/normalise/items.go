package normalise

import "errors"

// ErrUnrecognisedShape is returned when the response root is not one of the
// container shapes the provider is known to produce. Callers treat it as an
// empty result, not a crash.
var ErrUnrecognisedShape = errors.New("normalise: unrecognised container shape")

// ExtractItems flattens the four container shapes the provider produces
// into a plain list:
//
//   - a bare array
//   - {"root": {"item": [...]}} (converted XML)
//   - {"items": [...]}
//   - a single object under "item" or "root"."item"
//
// Anything else is ErrUnrecognisedShape.
func ExtractItems(raw interface{}) ([]interface{}, error) {
	switch value := raw.(type) {
	case nil:
		return []interface{}{}, nil
	case []interface{}:
		return value, nil
	case map[string]interface{}:
		if root, ok := value["root"].(map[string]interface{}); ok {
			if item, present := root["item"]; present {
				return coerceList(item), nil
			}

			return []interface{}{}, nil
		}

		if item, present := value["item"]; present {
			return coerceList(item), nil
		}

		if items, present := value["items"]; present {
			return coerceList(items), nil
		}

		return nil, ErrUnrecognisedShape
	default:
		return nil, ErrUnrecognisedShape
	}
}

// coerceList wraps the single-object-instead-of-array XML-ism.
func coerceList(value interface{}) []interface{} {
	switch v := value.(type) {
	case nil:
		return []interface{}{}
	case []interface{}:
		return v
	default:
		return []interface{}{v}
	}
}
