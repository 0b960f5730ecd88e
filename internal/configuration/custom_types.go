package configuration

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/markusressel/pid2go/internal/pid"
	"github.com/mitchellh/mapstructure"
)

// Vec3HookFunc returns a mapstructure decode hook for pid.Vec3d values.
// Besides the plain {x, y, z} map it accepts:
//  1. a list of exactly three numbers: [x, y, z]
//  2. a single number, which is used for all three axes
func Vec3HookFunc() mapstructure.DecodeHookFuncType {
	vecType := reflect.TypeOf(pid.Vec3d{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != vecType {
			return data, nil
		}

		switch v := data.(type) {
		case []interface{}:
			if len(v) != 3 {
				return nil, fmt.Errorf("vector needs exactly 3 components, got %d", len(v))
			}
			var components [3]float64
			for i, c := range v {
				value, err := anyToFloat(c)
				if err != nil {
					return nil, fmt.Errorf("invalid vector component %d: %w", i, err)
				}
				components[i] = value
			}
			return pid.NewVec3(components[0], components[1], components[2]), nil
		case []float64:
			if len(v) != 3 {
				return nil, fmt.Errorf("vector needs exactly 3 components, got %d", len(v))
			}
			return pid.NewVec3(v[0], v[1], v[2]), nil
		case int, int64, float64, string:
			value, err := anyToFloat(v)
			if err != nil {
				return nil, err
			}
			return pid.Splat(value), nil
		}

		return data, nil
	}
}

// anyToFloat converts numeric and string values to float64.
func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as float: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}
