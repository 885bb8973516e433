package http

import "strings"

type Route struct {
	Methods []string
	Path    string
	Handler Handler
}

// matchPath matches a request path against a route pattern segment by
// segment. ":name" segments capture one path segment under "name"; a
// trailing "*" captures the rest of the path under "*".
func matchPath(pattern, path string) (map[string]string, bool) {
	params := map[string]string{}

	for {
		patternSeg, patternRest := nextSegment(pattern)
		pathSeg, pathRest := nextSegment(path)

		if patternSeg == "*" {
			params["*"] = strings.TrimLeft(path, "/")
			return params, true
		}
		if patternSeg == "" && pathSeg == "" {
			return params, true
		}
		if patternSeg == "" || pathSeg == "" {
			return nil, false
		}

		if len(patternSeg) > 1 && patternSeg[0] == ':' {
			params[patternSeg[1:]] = pathSeg
		} else if patternSeg != pathSeg {
			return nil, false
		}

		pattern, path = patternRest, pathRest
	}
}

func nextSegment(path string) (segment, rest string) {
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			return path[:i], path[i:]
		}
	}
	return path, ""
}
