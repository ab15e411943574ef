package host

import (
	"net/http"
	"strings"
)

// RequestHeaderMap adapts a *http.Request to HeaderMap for the request
// direction. Grounded on the http.Header-based rule application in a
// Traefik-style dynamic-headers middleware: rules mutate the live
// http.Header in place, no copying.
type RequestHeaderMap struct {
	req *http.Request
}

// NewRequestHeaderMap wraps req.
func NewRequestHeaderMap(req *http.Request) *RequestHeaderMap {
	return &RequestHeaderMap{req: req}
}

func (h *RequestHeaderMap) GetAllAsCommaString(name string) (string, bool) {
	vs := h.req.Header.Values(name)
	if len(vs) == 0 {
		return "", false
	}
	return strings.Join(vs, ","), true
}

func (h *RequestHeaderMap) Set(name, value string) {
	h.req.Header.Set(name, value)
}

func (h *RequestHeaderMap) Append(name, value string) {
	h.req.Header.Add(name, value)
}

func (h *RequestHeaderMap) Path() (string, bool) {
	p := h.req.URL.RequestURI()
	if p == "" {
		return "", false
	}
	return p, true
}

func (h *RequestHeaderMap) SetPath(path string) {
	before, query, hasQuery := strings.Cut(path, "?")
	u := *h.req.URL
	if hasQuery {
		u.Path = before
		u.RawQuery = query
	} else {
		u.Path = path
		u.RawQuery = ""
	}
	h.req.URL = &u
}

// ResponseHeaderMap adapts an http.Header belonging to a response
// (http.ResponseWriter.Header() or an *http.Response) to HeaderMap. The
// response side has no :path, so Path/SetPath are no-ops, matching the
// host contract that urlp/set-path are request-only.
type ResponseHeaderMap struct {
	header http.Header
}

// NewResponseHeaderMap wraps header.
func NewResponseHeaderMap(header http.Header) *ResponseHeaderMap {
	return &ResponseHeaderMap{header: header}
}

func (h *ResponseHeaderMap) GetAllAsCommaString(name string) (string, bool) {
	vs := h.header.Values(name)
	if len(vs) == 0 {
		return "", false
	}
	return strings.Join(vs, ","), true
}

func (h *ResponseHeaderMap) Set(name, value string) {
	h.header.Set(name, value)
}

func (h *ResponseHeaderMap) Append(name, value string) {
	h.header.Add(name, value)
}

func (h *ResponseHeaderMap) Path() (string, bool) {
	return "", false
}

func (h *ResponseHeaderMap) SetPath(string) {}
