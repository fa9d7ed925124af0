package wrappers

import (
	"fmt"
	"strconv"
	"strings"
)

// LLM providers send numbers as float64 and lists as []interface{}; some models
// send everything as strings, so every helper accepts both.

func stringArg(args map[string]interface{}, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func floatArg(args map[string]interface{}, key string) (float64, bool, error) {
	switch v := args[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false, fmt.Errorf("%s: %w", key, err)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("%s: unsupported value %v", key, v)
	}
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	var out []string
	switch v := args[key].(type) {
	case []string:
		out = v
	case []interface{}:
		for _, e := range v {
			out = append(out, fmt.Sprintf("%v", e))
		}
	case string:
		out = strings.Split(v, ",")
	}
	var cleaned []string
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}
