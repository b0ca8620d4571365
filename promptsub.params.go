package promptsub

import (
	"strconv"
)

// validateParams checks that every parameter value is a string, an
// integer, a float or a bool, and coerces the non-string kinds to
// their string form. The core only ever sees string-to-string maps.
func validateParams(params map[string]any) (map[string]string, error) {
	validated := make(map[string]string, len(params))

	for key, value := range params {
		switch v := value.(type) {
		case string:
			validated[key] = v
		case bool:
			validated[key] = strconv.FormatBool(v)
		case int:
			validated[key] = strconv.Itoa(v)
		case int8:
			validated[key] = strconv.FormatInt(int64(v), 10)
		case int16:
			validated[key] = strconv.FormatInt(int64(v), 10)
		case int32:
			validated[key] = strconv.FormatInt(int64(v), 10)
		case int64:
			validated[key] = strconv.FormatInt(v, 10)
		case uint:
			validated[key] = strconv.FormatUint(uint64(v), 10)
		case uint8:
			validated[key] = strconv.FormatUint(uint64(v), 10)
		case uint16:
			validated[key] = strconv.FormatUint(uint64(v), 10)
		case uint32:
			validated[key] = strconv.FormatUint(uint64(v), 10)
		case uint64:
			validated[key] = strconv.FormatUint(v, 10)
		case float32:
			validated[key] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		case float64:
			validated[key] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			return nil, newParamsError(ErrMsgParamBadValue, key)
		}
	}

	return validated, nil
}
