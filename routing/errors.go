package routing

import (
	"errors"
	"fmt"
	"strings"
)

// PatternError describes an invalid path specification. It is raised at
// build time and is fatal to application startup.
type PatternError struct {
	Spec   string
	Reason string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("routing: invalid pattern %q: %s", e.Spec, e.Reason)
}

// NotFoundError is returned by Table.Match when no route under any method
// matches the requested path. Surfaced as 404 Not Found per RFC 9110
// Section 15.5.5.
type NotFoundError struct {
	Method string
	Path   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("routing: no route matches %s %s", e.Method, e.Path)
}

// MethodNotAllowedError is returned by Table.Match when the path matches
// under a different method. Allowed holds the sorted set of methods that
// do match, for an Allow header per RFC 9110 Section 15.5.6.
type MethodNotAllowedError struct {
	Method  string
	Path    string
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("routing: method %s not allowed for %s (allowed: %s)",
		e.Method, e.Path, strings.Join(e.Allowed, ", "))
}

// ErrTableFrozen is returned by Table.Add after the table has been frozen.
// Route registration is a build-phase operation only.
var ErrTableFrozen = errors.New("routing: route table is frozen")
