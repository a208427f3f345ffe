package routing

import (
	"regexp"
	"strings"
)

// SplatName is the reserved identifier under which splat captures are
// reported. It cannot be used as a named capture.
const SplatName = "splat"

// Pattern is a compiled path specification: an anchored matcher plus the
// ordered list of parameter names it produces.
type Pattern struct {
	spec   string
	regexp *regexp.Regexp
	// groups records the identity of each capture group in order:
	// the capture name, or SplatName for a splat.
	groups []string
	names  []string
	splats int
}

// PathMatch holds the captures extracted from one matched path.
type PathMatch struct {
	// Params maps named capture identifiers to their values.
	Params map[string]string

	// Splat holds splat captures in order of appearance.
	Splat []string
}

// CompilePattern compiles a path specification. The root specification
// ("" or "/") matches exactly "/". Compiled patterns are cached by spec,
// so repeated registrations of the same specification share one matcher.
func CompilePattern(spec string) (*Pattern, error) {
	if p, ok := patternCache.Load(spec); ok {
		return p.(*Pattern), nil
	}

	p, err := compilePattern(spec)
	if err != nil {
		return nil, err
	}

	actual, _ := patternCache.LoadOrStore(spec, p)

	return actual.(*Pattern), nil
}

func compilePattern(spec string) (*Pattern, error) {
	// The bare splat specification matches any path. The leading slash is
	// consumed outside the capture so the splat value never starts with it.
	if spec == "*" {
		return &Pattern{
			spec:   spec,
			regexp: regexp.MustCompile(`^/?(.*)$`),
			groups: []string{SplatName},
			splats: 1,
		}, nil
	}

	if spec == "" || spec == "/" {
		return &Pattern{
			spec:   spec,
			regexp: regexp.MustCompile(`^/$`),
		}, nil
	}

	if spec[0] != '/' {
		return nil, &PatternError{Spec: spec, Reason: "must begin with a slash"}
	}

	var (
		pattern strings.Builder
		groups  []string
		names   []string
		splats  int
		seen    = make(map[string]bool)
		literal strings.Builder
	)

	flushLiteral := func() {
		if literal.Len() > 0 {
			pattern.WriteString(regexp.QuoteMeta(literal.String()))
			literal.Reset()
		}
	}

	pattern.WriteByte('^')

	for i := 0; i < len(spec); i++ {
		switch spec[i] {
		case ':':
			end := i + 1
			for end < len(spec) && isNameByte(spec[end]) {
				end++
			}
			name := spec[i+1 : end]
			if name == "" {
				return nil, &PatternError{Spec: spec, Reason: "missing name after ':'"}
			}
			if name == SplatName {
				return nil, &PatternError{Spec: spec, Reason: "parameter name " + SplatName + " is reserved"}
			}
			if seen[name] {
				return nil, &PatternError{Spec: spec, Reason: "duplicate parameter name " + name}
			}
			seen[name] = true
			flushLiteral()
			pattern.WriteString(`([^/]+)`)
			groups = append(groups, name)
			names = append(names, name)
			i = end - 1
		case '*':
			if i == 0 || spec[i-1] != '/' {
				return nil, &PatternError{Spec: spec, Reason: "splat must be preceded by a slash"}
			}
			flushLiteral()
			pattern.WriteString(`(.*)`)
			groups = append(groups, SplatName)
			splats++
		default:
			literal.WriteByte(spec[i])
		}
	}

	flushLiteral()
	pattern.WriteByte('$')

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, &PatternError{Spec: spec, Reason: err.Error()}
	}

	return &Pattern{
		spec:   spec,
		regexp: re,
		groups: groups,
		names:  names,
		splats: splats,
	}, nil
}

// Spec returns the original path specification.
func (p *Pattern) Spec() string {
	return p.spec
}

// Names returns the named capture identifiers in order of appearance.
// Splats are not included; see PathMatch.Splat.
func (p *Pattern) Names() []string {
	return p.names
}

// Splats returns the number of splat segments in the pattern.
func (p *Pattern) Splats() int {
	return p.splats
}

// Match matches the pattern against an incoming path and extracts its
// captures. It reports false when the path does not match structurally.
func (p *Pattern) Match(path string) (*PathMatch, bool) {
	matches := p.regexp.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}

	m := &PathMatch{}
	if len(p.names) > 0 {
		m.Params = make(map[string]string, len(p.names))
	}

	for i, group := range p.groups {
		if i+1 >= len(matches) {
			break
		}
		if group == SplatName {
			m.Splat = append(m.Splat, matches[i+1])
		} else {
			m.Params[group] = matches[i+1]
		}
	}

	return m, true
}

// isNameByte reports whether b may appear in a named capture identifier.
func isNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
