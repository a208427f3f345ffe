// Package routing implements the path pattern compiler and the ordered
// route table the strada engine dispatches against.
//
// # Patterns
//
// A path specification is a sequence of segments separated by "/". Three
// segment kinds are supported:
//
//	/pages/about        literal text
//	/country/:info      named capture, matches one non-slash segment
//	/files/*            splat, captures the remainder of the path
//
// Named captures are extracted into Match.Params under their identifier.
// Splat captures are collected, in order of appearance, into Match.Splat.
// A splat only matches when the slash preceding it in the pattern is
// present in the incoming path: "/files/*" matches "/files/a/b/c" (splat
// "a/b/c") and "/files/" (splat ""), but never "/files". The single
// pattern "*" matches any path.
//
// The root specification ("" or "/") matches exactly the root path. A
// trailing slash in the incoming path is significant: "/posts" and
// "/posts/" are different paths. Path normalization, when wanted, is the
// caller's decision.
//
// # Table
//
// A Table keeps one ordered route list per HTTP method. Lookup scans the
// list in registration order and the first structural match wins, which
// makes dispatch deterministic for overlapping patterns. When no route
// under the requested method matches but another method's route does,
// Match returns a *MethodNotAllowedError carrying the matching method set
// so the caller can emit an Allow header per RFC 9110 Section 15.5.6.
//
// Tables are populated during a single build phase and frozen before
// serving traffic. A frozen table is immutable and safe for lock-free
// concurrent Match calls.
package routing
