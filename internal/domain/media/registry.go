package media

import (
	"encoding/json"
	"fmt"
)

// API is one keyword's endpoint.
type API struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

// Registry is an insertion-ordered keyword to API URL mapping.
type Registry struct {
	apis []API
}

// DecodeRegistry parses a stored registry. Empty input is an empty registry.
func DecodeRegistry(raw string) (*Registry, error) {
	r := &Registry{}
	if raw == "" {
		return r, nil
	}
	if err := json.Unmarshal([]byte(raw), &r.apis); err != nil {
		return nil, fmt.Errorf("invalid api registry: %w", err)
	}
	return r, nil
}

func (r *Registry) Encode() (string, error) {
	apis := r.apis
	if apis == nil {
		apis = []API{}
	}
	data, err := json.Marshal(apis)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Registry) Lookup(keyword string) (string, bool) {
	for _, api := range r.apis {
		if api.Keyword == keyword {
			return api.URL, true
		}
	}
	return "", false
}

// Put adds keyword or updates it in place.
func (r *Registry) Put(keyword, url string) {
	for i := range r.apis {
		if r.apis[i].Keyword == keyword {
			r.apis[i].URL = url
			return
		}
	}
	r.apis = append(r.apis, API{Keyword: keyword, URL: url})
}

// Remove reports whether keyword was present.
func (r *Registry) Remove(keyword string) bool {
	for i := range r.apis {
		if r.apis[i].Keyword == keyword {
			r.apis = append(r.apis[:i], r.apis[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) List() []API {
	return append([]API(nil), r.apis...)
}

func (r *Registry) Len() int {
	return len(r.apis)
}
