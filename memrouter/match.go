package memrouter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mveldt/routewire/route"
)

// buildPath substitutes :param segments of a template with param values.
func buildPath(template string, params route.Params) (string, error) {
	segs := strings.Split(template, "/")
	for i, seg := range segs {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		key := seg[1:]
		val, ok := params[key]
		if !ok {
			return "", fmt.Errorf("missing param %q for path %q", key, template)
		}
		segs[i] = url.PathEscape(val)
	}
	return strings.Join(segs, "/"), nil
}

// matchPath matches a concrete path against a template, capturing :param
// segments. Returns nil params for templates without captures.
func matchPath(template, path string) (route.Params, bool) {
	tsegs := strings.Split(strings.TrimSuffix(template, "/"), "/")
	psegs := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(tsegs) != len(psegs) {
		return nil, false
	}

	var params route.Params
	for i, tseg := range tsegs {
		if strings.HasPrefix(tseg, ":") {
			val, err := url.PathUnescape(psegs[i])
			if err != nil {
				return nil, false
			}
			if params == nil {
				params = route.Params{}
			}
			params[tseg[1:]] = val
			continue
		}
		if tseg != psegs[i] {
			return nil, false
		}
	}
	return params, true
}

// stripBase removes the router's base URL from a raw URL, leaving the path.
// Without a base, the URL is parsed and its path used as-is.
func stripBase(base, rawURL string) (string, error) {
	if base != "" && strings.HasPrefix(rawURL, base) {
		return rawURL[len(base):], nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	return u.Path, nil
}
