package core

import (
	"net/http"
	"net/url"
	"strings"
)

// QueryParam is a single query string entry. Order is preserved on encoding.
type QueryParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Request describes one REST call before it is signed and sent.
type Request struct {
	Op          Operation         `json:"op"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Query       []QueryParam      `json:"query,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequireAuth bool              `json:"require_auth"`
}

// NewRequest returns a GET request for op at path.
func NewRequest(op Operation, path string) *Request {
	return &Request{
		Op:      op,
		Method:  http.MethodGet,
		Path:    path,
		Headers: make(map[string]string),
	}
}

// SetQuery appends a query parameter. Repeated keys are kept.
func (r *Request) SetQuery(key, value string) *Request {
	r.Query = append(r.Query, QueryParam{Key: key, Value: value})
	return r
}

func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

func (r *Request) SetRequireAuth(require bool) *Request {
	r.RequireAuth = require
	return r
}

// URI returns the path with its encoded query string. This is the exact value
// that is signed and appended to the base URL.
func (r *Request) URI() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	var b strings.Builder
	b.WriteString(r.Path)
	b.WriteByte('?')
	for i, p := range r.Query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
