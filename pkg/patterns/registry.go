// Package patterns is the central registry of compiled regex patterns used
// by the phishing analyzers. Everything is compiled once at first use and
// shared by all callers.
//
// Design principles:
//   - COMPILE ONCE: patterns are compiled at init, never per-request
//   - DRY: single source of truth for detection regexes
//   - ORDERED: patterns within a category keep registration order, so the
//     evidence strings an analysis emits are deterministic
package patterns

import (
	"regexp"
	"sync"
)

// Category groups patterns by the scan that consumes them.
type Category string

const (
	// CategoryURLPath patterns run against the full URL string and feed
	// the per-URL risk score.
	CategoryURLPath Category = "url_path"

	// CategorySensitiveRequest patterns run against the message body and
	// feed the sensitiveInfo feature.
	CategorySensitiveRequest Category = "sensitive_request"
)

// Pattern holds a compiled regex with scoring metadata.
type Pattern struct {
	Name     string         // stable identifier for logging
	Regex    *regexp.Regexp // compiled regex, never nil after init
	Category Category
	Severity int    // risk points contributed on a match
	Message  string // human-readable evidence line
}

// Registry holds all compiled patterns, organized by category.
type Registry struct {
	mu         sync.RWMutex
	byCategory map[Category][]*Pattern
	all        []*Pattern
}

var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the global pattern registry (singleton).
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

func newRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[Category][]*Pattern),
		all:        make([]*Pattern, 0, 16),
	}

	r.registerURLPathPatterns()
	r.registerSensitiveRequestPatterns()

	return r
}

func (r *Registry) register(name string, pattern string, category Category, severity int, message string) {
	p := &Pattern{
		Name:     name,
		Regex:    regexp.MustCompile(pattern),
		Category: category,
		Severity: severity,
		Message:  message,
	}

	r.byCategory[category] = append(r.byCategory[category], p)
	r.all = append(r.all, p)
}

// GetByCategory returns all patterns for a category in registration order.
// Returns an empty slice if the category is unknown (never nil).
func (r *Registry) GetByCategory(cat Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if patterns, ok := r.byCategory[cat]; ok {
		return patterns
	}
	return []*Pattern{}
}

// MatchAll returns every pattern in the category that matches the text,
// preserving registration order.
func (r *Registry) MatchAll(text string, cat Category) []*Pattern {
	var matches []*Pattern
	for _, p := range r.GetByCategory(cat) {
		if p.Regex.MatchString(text) {
			matches = append(matches, p)
		}
	}
	return matches
}

// MatchAny returns the first matching pattern in the category, or nil.
func (r *Registry) MatchAny(text string, cat Category) *Pattern {
	for _, p := range r.GetByCategory(cat) {
		if p.Regex.MatchString(text) {
			return p
		}
	}
	return nil
}

// TotalPatterns returns the total count of registered patterns.
func (r *Registry) TotalPatterns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// CategoryCount returns the number of patterns in a category.
func (r *Registry) CategoryCount(cat Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCategory[cat])
}
