// Package classify turns engine failures into user-facing descriptors.
//
// Classification is a first-match scan over an ordered rule table. Each rule
// is a case-insensitive regular expression tested against the error text;
// text that matches nothing gets a generic, recoverable descriptor.
package classify

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/rs/zerolog"
)

// Category groups failures by what the user can do about them.
type Category string

const (
	Initialization Category = "initialization"
	Format         Category = "format"
	Memory         Category = "memory"
	Processing     Category = "processing"
	File           Category = "file"
	Network        Category = "network"
	Unknown        Category = "unknown"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{Initialization, Format, Memory, Processing, File, Network, Unknown}
}

// Descriptor is what a failure means to the user.
type Descriptor struct {
	Category Category `json:"category" yaml:"category"`
	Message  string   `json:"message" yaml:"message"`
	// Recoverable is false when retrying cannot help without changing the
	// environment.
	Recoverable bool     `json:"recoverable" yaml:"recoverable"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Rule maps error text matching Pattern to a descriptor.
type Rule struct {
	Pattern     string
	Category    Category
	Message     string
	Recoverable bool
	Suggestions []string
}

func (r Rule) descriptor() Descriptor {
	return Descriptor{
		Category:    r.Category,
		Message:     r.Message,
		Recoverable: r.Recoverable,
		Suggestions: slices.Clone(r.Suggestions),
	}
}

type compiled struct {
	re *regexp.Regexp
	Rule
}

// Classifier evaluates an ordered rule list.
type Classifier struct {
	rules    []compiled
	fallback Descriptor
}

// New compiles rules in order. Patterns are matched case-insensitively.
func New(rules []Rule, fallback Descriptor) (*Classifier, error) {
	c := &Classifier{rules: make([]compiled, 0, len(rules)), fallback: fallback}
	for i, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Category, err)
		}
		c.rules = append(c.rules, compiled{re: re, Rule: r})
	}
	return c, nil
}

// Classify returns the descriptor of the first rule matching err's message,
// or the fallback.
func (c *Classifier) Classify(err any) Descriptor {
	msg := Message(err)
	for _, r := range c.rules {
		if r.re.MatchString(msg) {
			return r.descriptor()
		}
	}
	fb := c.fallback
	fb.Suggestions = slices.Clone(fb.Suggestions)
	return fb
}

// Match returns the index of the first matching rule, or -1.
func (c *Classifier) Match(err any) int {
	msg := Message(err)
	for i, r := range c.rules {
		if r.re.MatchString(msg) {
			return i
		}
	}
	return -1
}

// Stats counts rules per category. Every category is present.
func (c *Classifier) Stats() map[Category]int {
	out := make(map[Category]int, len(Categories()))
	for _, cat := range Categories() {
		out[cat] = 0
	}
	for _, r := range c.rules {
		out[r.Category]++
	}
	return out
}

var std = func() *Classifier {
	c, err := New(rules, fallback)
	if err != nil {
		panic(err)
	}
	return c
}()

// Classify classifies err with the built-in rules.
func Classify(err any) Descriptor { return std.Classify(err) }

// Match returns the index of the built-in rule err matches, or -1.
func Match(err any) int { return std.Match(err) }

// Rules returns a copy of the built-in rule table, in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Suggestions = slices.Clone(r.Suggestions)
		out[i] = r
	}
	return out
}

// RuleCount counts the built-in rules per category.
func RuleCount() map[Category]int { return std.Stats() }

// Fallback returns the descriptor used for unrecognized errors.
func Fallback() Descriptor {
	fb := fallback
	fb.Suggestions = slices.Clone(fb.Suggestions)
	return fb
}

// RecommendedActions returns generic next steps for a category.
func RecommendedActions(c Category) []string {
	if a, ok := recommended[c]; ok {
		return slices.Clone(a)
	}
	return slices.Clone(fallback.Suggestions)
}

// Message extracts the text classification runs on.
func Message(err any) string {
	switch v := err.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", err)
}

// Log records a classified failure at debug level together with its raw
// cause.
func Log(log zerolog.Logger, err any, d Descriptor) {
	log.Debug().
		Str("category", string(d.Category)).
		Str("message", d.Message).
		Bool("recoverable", d.Recoverable).
		Strs("suggestions", d.Suggestions).
		Str("cause", Message(err)).
		Msg("conversion error classified")
}
