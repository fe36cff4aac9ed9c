package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	textx "github.com/tanpawarit/insurance-callcenter-agent/agent/textx"
)

// argumentError marks a problem with the arguments the runtime sent. It is
// reported back as a soft tool error rather than a failure.
type argumentError struct {
	msg string
}

func (e *argumentError) Error() string { return e.msg }

func argErrorf(format string, args ...any) error {
	return &argumentError{msg: fmt.Sprintf(format, args...)}
}

func stringArg(args map[string]any, key string, required bool) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		if required {
			return "", argErrorf("%s is required", key)
		}
		return "", nil
	}

	var value string
	switch v := raw.(type) {
	case string:
		value = v
	case json.Number:
		value = v.String()
	case float64:
		value = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "", argErrorf("%s must be a string", key)
	}

	value = strings.TrimSpace(value)
	if required && value == "" {
		return "", argErrorf("%s is required", key)
	}
	return value, nil
}

func floatArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, argErrorf("%s is required", key)
	}

	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, argErrorf("%s must be a number", key)
		}
		value = f
	case string:
		cleaned := strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(v))
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, argErrorf("%s must be a number", key)
		}
		value = f
	default:
		return 0, argErrorf("%s must be a number", key)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, argErrorf("%s must be a finite number", key)
	}
	return value, nil
}

// claimIDArg accepts an integer or free text that contains the claim number.
func claimIDArg(args map[string]any, key string) (int64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, argErrorf("%s is required", key)
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, argErrorf("%s must be a whole number", key)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, argErrorf("%s must be a whole number", key)
		}
		return n, nil
	case string:
		n, ok := textx.ExtractClaimNumber(v)
		if !ok {
			return 0, argErrorf("%s must contain a claim number", key)
		}
		return int64(n), nil
	default:
		return 0, argErrorf("%s must be a whole number", key)
	}
}

var policyTokenPattern = regexp.MustCompile(`^[Pp]\d+$`)

// newPolicyNumberArg reads the number of a policy being created. The value is
// stored as given; only a bare token such as "p1023" is upper-cased.
func newPolicyNumberArg(args map[string]any, key string) (string, error) {
	value, err := stringArg(args, key, true)
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if policyTokenPattern.MatchString(value) {
		return strings.ToUpper(value), nil
	}
	return value, nil
}

// policyNumberArg prefers a policy token found in the value, so spoken
// phrases like "my policy is p1023" resolve to "P1023". Values without such a
// token are used as given.
func policyNumberArg(args map[string]any, key string) (string, error) {
	value, err := stringArg(args, key, true)
	if err != nil {
		return "", err
	}
	if token, ok := textx.ExtractPolicyNumber(value); ok {
		return token, nil
	}
	return value, nil
}
