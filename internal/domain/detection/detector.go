// Package detection classifies source files as TypeScript or JavaScript.
//
// TypeScript extensions are always TypeScript and Vue single-file
// components are TypeScript when their script tag declares lang="ts". For
// plain .js and .jsx files the outcome depends on the policy: the default
// extension policy trusts the extension alone, while the content policy
// sniffs the file for TypeScript-only syntax.
package detection

import (
	"regexp"

	"github.com/tscoverage/tscoverage/internal/domain"
)

var vueTypeScriptPattern = regexp.MustCompile(`(?i)<script[^>]*lang\s*=\s*["']ts["'][^>]*>`)

// Matcher is an ordered list of patterns with any-match semantics.
type Matcher []*regexp.Regexp

// Match reports whether any pattern matches content, testing in order.
func (m Matcher) Match(content string) bool {
	for _, re := range m {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// typeScriptSyntax matches constructs that only exist in TypeScript.
var typeScriptSyntax = Matcher{
	regexp.MustCompile(`(?m)^\s*(export\s+)?(declare\s+)?interface\s+\w+`),
	regexp.MustCompile(`(?m)^\s*(export\s+)?type\s+\w+(\s*<[^>]*>)?\s*=`),
	regexp.MustCompile(`(?m)^\s*(export\s+)?(declare\s+)?(const\s+)?enum\s+\w+\s*\{`),
	regexp.MustCompile(`\b(private|public|protected|readonly)\s+\w+\s*[?]?\s*[:;=(]`),
	regexp.MustCompile(`function\s*\w*\s*(<[^>]*>)?\s*\([^)]*\w+\??\s*:\s*[A-Za-z_{\[]`),
	regexp.MustCompile(`\)\s*:\s*(string|number|boolean|any|void|unknown|never|Promise\s*<)`),
	regexp.MustCompile(`\bas\s+(string|number|boolean|any|unknown|const)\b`),
}

// jsxTypeScriptSyntax extends typeScriptSyntax with React typing idioms.
var jsxTypeScriptSyntax = append(Matcher{
	regexp.MustCompile(`from\s+["'][^"']+\.tsx?["']`),
	regexp.MustCompile(`:\s*React\.\w+`),
	regexp.MustCompile(`\buse(State|Ref|Reducer|Context|Memo|Callback)\s*<`),
}, typeScriptSyntax...)

// Detector implements domain.TypeScriptDetector.
type Detector struct {
	policy string
	js     Matcher
	jsx    Matcher
}

// New returns a detector for the named policy. Unknown names fall back to
// the extension policy.
func New(policy string) *Detector {
	d := &Detector{policy: domain.DetectionExtension}
	if policy == domain.DetectionContent {
		d.policy = domain.DetectionContent
		d.js = typeScriptSyntax
		d.jsx = jsxTypeScriptSyntax
	}
	return d
}

// Policy returns the effective policy name.
func (d *Detector) Policy() string { return d.policy }

func (d *Detector) IsTypeScript(path, content string) bool {
	switch domain.Extension(path) {
	case ".ts", ".tsx":
		return true
	case ".vue":
		return vueTypeScriptPattern.MatchString(content)
	case ".jsx":
		return d.jsx.Match(content)
	case ".js":
		return d.js.Match(content)
	default:
		return false
	}
}
