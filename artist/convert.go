package artist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gplot"
)

// ToFloat converts numbers and numeric strings.
func ToFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %v (%T) is not a number", gplot.ErrInvalidValue, v, v)
}

// ToBool converts bools and the strings true/false/on/off/yes/no.
func ToBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(x) {
		case "true", "on", "yes", "1":
			return true, nil
		case "false", "off", "no", "0":
			return false, nil
		}
	case int:
		return x != 0, nil
	}
	return false, fmt.Errorf("%w: %v (%T) is not a bool", gplot.ErrInvalidValue, v, v)
}

// ToString accepts strings and fmt.Stringers.
func ToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", fmt.Errorf("%w: %v (%T) is not a string", gplot.ErrInvalidValue, v, v)
}

// ToFloats converts a slice of numbers.
func ToFloats(v any) ([]float64, error) {
	switch x := v.(type) {
	case []float64:
		return x, nil
	case []int:
		out := make([]float64, len(x))
		for i, n := range x {
			out[i] = float64(n)
		}
		return out, nil
	case []any:
		out := make([]float64, len(x))
		for i, e := range x {
			f, err := ToFloat(e)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %v (%T) is not a number sequence", gplot.ErrInvalidValue, v, v)
}
