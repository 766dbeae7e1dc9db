package validation

import (
	"bytes"
	"encoding/json"
	"mime"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/focusflow/internal/common"
)

// Object is a decoded JSON object whose values are kept raw so that their
// JSON types can be checked strictly.
type Object map[string]json.RawMessage

// ParseObject accepts only a JSON object sent with a JSON content type.
// Anything else, including an empty body, a JSON array or null, is
// common.ErrMalformedBody.
func ParseObject(contentType string, body []byte) (Object, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !isJSONMediaType(mediaType) {
		return nil, common.ErrMalformedBody
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, common.ErrMalformedBody
	}

	var obj Object
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, common.ErrMalformedBody
	}

	return obj, nil
}

func isJSONMediaType(mt string) bool {
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stringValue decodes raw only when it is a JSON string.
func stringValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// intValue decodes raw only when it is an integral JSON number without a
// fraction or exponent.
func intValue(raw json.RawMessage) (int64, bool) {
	n, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// boolValue decodes raw only when it is the literal true or false.
func boolValue(raw json.RawMessage) (bool, bool) {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
