package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrRange is returned when a value does not fit the target type.
var ErrRange = errors.New("layout: value out of range")

// toInt converts v to a signed integer that fits in bits.
func toInt(v any, bits int) (int64, error) {
	var i int64
	switch x := v.(type) {
	case int:
		i = int64(x)
	case int8:
		i = int64(x)
	case int16:
		i = int64(x)
	case int32:
		i = int64(x)
	case int64:
		i = x
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, fmt.Errorf("layout: %d: %w", x, ErrRange)
		}
		i = int64(x)
	case uint8:
		i = int64(x)
	case uint16:
		i = int64(x)
	case uint32:
		i = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("layout: %d: %w", x, ErrRange)
		}
		i = int64(x)
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, fmt.Errorf("layout: %v is not an int%d: %w", x, bits, ErrRange)
		}
		i = int64(x)
	case json.Number:
		n, err := strconv.ParseInt(string(x), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("layout: parse %q: %w", x, err)
		}
		i = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("layout: parse %q: %w", x, err)
		}
		i = n
	case nil:
		return 0, errors.New("layout: missing value")
	default:
		return 0, fmt.Errorf("layout: cannot use %T as an integer", v)
	}

	if bits < 64 {
		lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
		if i < lo || i > hi {
			return 0, fmt.Errorf("layout: %d does not fit int%d: %w", i, bits, ErrRange)
		}
	}
	return i, nil
}

// toUint converts v to an unsigned integer that fits in bits.
func toUint(v any, bits int) (uint64, error) {
	var u uint64
	switch x := v.(type) {
	case uint:
		u = uint64(x)
	case uint8:
		u = uint64(x)
	case uint16:
		u = uint64(x)
	case uint32:
		u = uint64(x)
	case uint64:
		u = x
	case json.Number:
		n, err := strconv.ParseUint(string(x), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("layout: parse %q: %w", x, err)
		}
		u = n
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(x), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("layout: parse %q: %w", x, err)
		}
		u = n
	case float64:
		if x != math.Trunc(x) || x < 0 || x >= math.MaxUint64 {
			return 0, fmt.Errorf("layout: %v is not a uint%d: %w", x, bits, ErrRange)
		}
		u = uint64(x)
	default:
		i, err := toInt(v, 64)
		if err != nil {
			return 0, err
		}
		if i < 0 {
			return 0, fmt.Errorf("layout: %d is negative: %w", i, ErrRange)
		}
		u = uint64(i)
	}

	if bits < 64 && u > uint64(1)<<bits-1 {
		return 0, fmt.Errorf("layout: %d does not fit uint%d: %w", u, bits, ErrRange)
	}
	return u, nil
}

// toFloat64 converts v to a float.
func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("layout: parse %q: %w", x, err)
		}
		return f, nil
	case uint64:
		return float64(x), nil
	}
	i, err := toInt(v, 64)
	if err != nil {
		return 0, err
	}
	return float64(i), nil
}
