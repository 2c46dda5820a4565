package rcparams

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/colors"
)

// Validator coerces a raw value into the stored form or fails.
type Validator func(v any) (any, error)

func invalid(v any, want string) error {
	return fmt.Errorf("%w: %v (%T) is not %s", gplot.ErrInvalidValue, v, v, want)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func validateFloat(v any) (any, error) {
	f, ok := toFloat(v)
	if !ok {
		return nil, invalid(v, "a float")
	}
	return f, nil
}

func validateNonNegative(v any) (any, error) {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return nil, invalid(v, "a non-negative float")
	}
	return f, nil
}

func validateInt(v any) (any, error) {
	f, ok := toFloat(v)
	if !ok || f != float64(int(f)) {
		return nil, invalid(v, "an integer")
	}
	return int(f), nil
}

func validateBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int:
		if x == 0 || x == 1 {
			return x == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "t", "y", "yes", "on", "true", "1":
			return true, nil
		case "f", "n", "no", "off", "false", "0":
			return false, nil
		}
	}
	return nil, invalid(v, "a bool")
}

func validateString(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, invalid(v, "a string")
	}
	return s, nil
}

// validateColor stores the color specification string. Six bare hex
// digits gain a leading '#' since rc files treat '#' as a comment.
func validateColor(v any) (any, error) {
	var s string
	switch x := v.(type) {
	case string:
		s = strings.TrimSpace(x)
	case float64, int:
		f, _ := toFloat(x)
		s = strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return nil, invalid(v, "a color")
	}
	if len(s) == 6 {
		if _, err := strconv.ParseUint(s, 16, 32); err == nil {
			s = "#" + s
		}
	}
	if !colors.IsNone(s) && s != "auto" && !colors.IsColorLike(s) {
		return nil, invalid(v, "a color")
	}
	return s, nil
}

func validateEnum(options ...string) Validator {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, invalid(v, "one of "+strings.Join(options, ", "))
		}
		s = strings.TrimSpace(s)
		if !slices.Contains(options, s) {
			return nil, invalid(v, "one of "+strings.Join(options, ", "))
		}
		return s, nil
	}
}

func toList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = f
		}
		return out, true
	case string:
		parts := strings.Split(x, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

func validateFloatList(n int) Validator {
	return func(v any) (any, error) {
		items, ok := toList(v)
		if !ok || (n > 0 && len(items) != n) {
			return nil, invalid(v, fmt.Sprintf("a list of %d floats", n))
		}
		out := make([]float64, len(items))
		for i, it := range items {
			f, ok := toFloat(it)
			if !ok {
				return nil, invalid(v, "a list of floats")
			}
			out[i] = f
		}
		return out, nil
	}
}

func validateStringList(v any) (any, error) {
	items, ok := toList(v)
	if !ok {
		return nil, invalid(v, "a list of strings")
	}
	out := make([]string, len(items))
	for i, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, invalid(v, "a list of strings")
		}
		out[i] = s
	}
	return out, nil
}

func validateColorList(v any) (any, error) {
	raw, err := validateStringList(v)
	if err != nil {
		return nil, err
	}
	list := raw.([]string)
	if len(list) == 0 {
		return nil, invalid(v, "a non-empty color list")
	}
	for i, s := range list {
		c, err := validateColor(s)
		if err != nil {
			return nil, err
		}
		list[i] = c.(string)
	}
	return list, nil
}
