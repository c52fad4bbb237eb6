package media

import (
	"encoding/json"
)

// LocateURL picks the URL to download from an API response: the final URL
// itself for direct media, a URL named in a JSON body, or the final URL again
// when the body names none.
func LocateURL(k Kind, contentType, finalURL string, body []byte) string {
	if k.IsDirect(contentType, finalURL) {
		return finalURL
	}
	if url := urlFromJSON(k.JSONKeys, body); url != "" {
		return url
	}
	return finalURL
}

// urlFromJSON accepts {"key": "url"}, {"key": {"url": ...}} and
// {"key": [{"url": ...}]} for the first key present in the object.
func urlFromJSON(keys []string, body []byte) string {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}

	for _, key := range keys {
		value, ok := doc[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		case map[string]any:
			if _, ok := v["url"]; ok {
				return stringValue(v["url"])
			}
		case []any:
			if len(v) == 0 {
				continue
			}
			if first, ok := v[0].(map[string]any); ok {
				if _, ok := first["url"]; ok {
					return stringValue(first["url"])
				}
			}
		}
	}
	return ""
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
