package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"algorithm_guessr/internal/common"
)

// decodeBody reads a JSON body into v. Malformed or missing bodies decode as
// empty so the field checks that follow produce the user-facing error; only a
// well-formed body with a wrongly typed field is reported.
func decodeBody(r *http.Request, v any) error {
	err := common.ParseJSON(r, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr
	}
	return nil
}

// truthy follows JSON-loose truthiness: false, 0, "", null and absence are false.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

// looseString renders a decoded JSON value the way a JavaScript String() call
// would, so tags sent as numbers or booleans still grade.
func looseString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			if item != nil {
				parts[i] = looseString(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

type successResponse struct {
	Success bool `json:"success"`
}
