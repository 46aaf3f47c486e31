// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package stride

import (
	"fmt"

	"github.com/born-ml/stride/internal/stride"
)

// Options is the named-option set accepted by the package entry points.
// Recognized keys: "subok" (bool), "writeable" (bool), and, for
// SlidingWindowView only, "step" ([]int). A nil map selects the defaults of
// the respective operation.
type Options map[string]any

// config holds parsed option values with operation-specific defaults.
type config struct {
	subok     bool
	writeable bool
	step      []int
}

// parseOptions validates an option map. Unknown keys fail with
// ErrUnexpectedOption; a step of the wrong dynamic type fails with
// ErrShapeSequence, mirroring the flat-integer-sequence requirement.
func parseOptions(opts Options, allowStep bool, defaults config) (config, error) {
	cfg := defaults
	for key, value := range opts {
		switch key {
		case "subok":
			v, ok := value.(bool)
			if !ok {
				return config{}, fmt.Errorf("option %q must be a bool, got %T", key, value)
			}
			cfg.subok = v
		case "writeable":
			v, ok := value.(bool)
			if !ok {
				return config{}, fmt.Errorf("option %q must be a bool, got %T", key, value)
			}
			cfg.writeable = v
		case "step":
			if !allowStep {
				return config{}, fmt.Errorf("%w: %q", stride.ErrUnexpectedOption, key)
			}
			v, ok := toIntSlice(value)
			if !ok {
				return config{}, fmt.Errorf("step %w, got %T", stride.ErrShapeSequence, value)
			}
			cfg.step = v
		default:
			return config{}, fmt.Errorf("%w: %q", stride.ErrUnexpectedOption, key)
		}
	}
	return cfg, nil
}

// toIntSlice accepts the integer-sequence encodings callers plausibly hand
// an untyped option map. Nested sequences and non-integers are rejected.
func toIntSlice(value any) ([]int, bool) {
	switch v := value.(type) {
	case []int:
		return v, true
	case []any:
		out := make([]int, len(v))
		for i, e := range v {
			n, ok := e.(int)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}
