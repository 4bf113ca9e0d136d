// Package codec provides serialize/deserialize hook pairs for leaf fields:
// the value transform applied between the JSON value a tree exchanges and
// the wire value its editor holds.
package codec

import (
	"fmt"
	"time"

	"github.com/zhibinjin/jsonforms/schema"
)

// Hook pairs the two directions of a leaf transform. Serialize runs before a
// value reaches the editor; Deserialize runs on the value read back.
type Hook struct {
	Serialize   schema.TransformFunc
	Deserialize schema.TransformFunc
}

// Bind installs the hook pair on a leaf schema fragment.
func Bind(s *schema.Schema, h Hook) {
	s.Serialize = h.Serialize
	s.Deserialize = h.Deserialize
}

const dateLayout = "2006-01-02"

// Date converts between time.Time values and the 2006-01-02 strings a date
// editor holds. Null passes through untouched in both directions.
func Date() Hook {
	return Hook{
		Serialize: func(v any) (any, error) {
			switch t := v.(type) {
			case nil:
				return nil, nil
			case time.Time:
				return t.Format(dateLayout), nil
			case string:
				if _, err := time.Parse(dateLayout, t); err != nil {
					return nil, fmt.Errorf("codec: bad date %q: %w", t, err)
				}
				return t, nil
			default:
				return nil, fmt.Errorf("codec: cannot serialize %T as date", v)
			}
		},
		Deserialize: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok || s == "" {
				if v == nil {
					return nil, nil
				}
				return nil, fmt.Errorf("codec: cannot deserialize %T as date", v)
			}
			t, err := time.Parse(dateLayout, s)
			if err != nil {
				return nil, fmt.Errorf("codec: bad date %q: %w", s, err)
			}
			return t, nil
		},
	}
}

// TimeRFC3339 converts between time.Time values and canonical RFC3339
// strings.
func TimeRFC3339() Hook {
	return Hook{
		Serialize: func(v any) (any, error) {
			switch t := v.(type) {
			case nil:
				return nil, nil
			case time.Time:
				return formatRFC3339Canonical(t), nil
			case string:
				parsed, err := parseRFC3339(t)
				if err != nil {
					return nil, err
				}
				return formatRFC3339Canonical(parsed), nil
			default:
				return nil, fmt.Errorf("codec: cannot serialize %T as RFC3339 time", v)
			}
		},
		Deserialize: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				if v == nil {
					return nil, nil
				}
				return nil, fmt.Errorf("codec: cannot deserialize %T as RFC3339 time", v)
			}
			return parseRFC3339(s)
		},
	}
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
