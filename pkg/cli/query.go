package cli

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Query runs the jq expression expr over v and collects its results.
//
// v is first normalised through JSON so that structs, typed slices and
// custom marshalers look to jq exactly as they would in JSON output.
func Query(expr string, v any) ([]any, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile jq expression %q: %w", expr, err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jq input: %w", err)
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("jq input: %w", err)
	}

	var results []any
	iter := code.Run(input)
	for {
		r, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := r.(error); ok {
			if herr, ok := err.(*gojq.HaltError); ok && herr.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq %q: %w", expr, err)
		}
		results = append(results, r)
	}
	return results, nil
}
