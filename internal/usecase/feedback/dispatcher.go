// Package feedback implements the rule-driven tutor replies and the chat
// transcript built on top of them.
package feedback

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/pkg/textutil"
)

// Rule is a trigger list and the template used when one trigger matches.
type Rule = entity.ResponseRule

// RuleSet is evaluated in order; the first rule with a matching trigger wins
// and Default is used when none match.
type RuleSet struct {
	Rules   []Rule
	Default string
}

// DefaultRuleName is reported by Match when no rule applies.
const DefaultRuleName = "default"

type templateData struct {
	Level    string
	Question string
}

type compiledRule struct {
	name     string
	triggers []string
	tmpl     *template.Template
}

// Dispatcher maps a question and a level label to a reply.
// It is immutable after construction and safe for concurrent use.
type Dispatcher struct {
	rules    []compiledRule
	fallback compiledRule
}

// NewDispatcher compiles the rule set. Every template is executed once
// against sample data so Respond can never fail later.
func NewDispatcher(set RuleSet) (*Dispatcher, error) {
	d := &Dispatcher{rules: make([]compiledRule, 0, len(set.Rules))}

	seen := make(map[string]struct{}, len(set.Rules))
	for i, rule := range set.Rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("rule %q: duplicate name", name)
		}
		seen[name] = struct{}{}

		var triggers []string
		for _, trigger := range rule.Triggers {
			if folded := textutil.Fold(strings.TrimSpace(trigger)); folded != "" {
				triggers = append(triggers, folded)
			}
		}
		if len(triggers) == 0 {
			return nil, fmt.Errorf("rule %q: at least one trigger is required", name)
		}

		tmpl, err := compileTemplate(name, rule.Template)
		if err != nil {
			return nil, err
		}
		d.rules = append(d.rules, compiledRule{name: name, triggers: triggers, tmpl: tmpl})
	}

	if strings.TrimSpace(set.Default) == "" {
		return nil, errors.New("default template is required")
	}
	tmpl, err := compileTemplate(DefaultRuleName, set.Default)
	if err != nil {
		return nil, err
	}
	d.fallback = compiledRule{name: DefaultRuleName, tmpl: tmpl}

	return d, nil
}

func compileTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("rule %q: parse template: %w", name, err)
	}
	if err := tmpl.Execute(io.Discard, templateData{Level: "Intermediate", Question: "?"}); err != nil {
		return nil, fmt.Errorf("rule %q: execute template: %w", name, err)
	}
	return tmpl, nil
}

func (d *Dispatcher) match(text string) compiledRule {
	folded := textutil.Fold(text)
	for _, rule := range d.rules {
		for _, trigger := range rule.triggers {
			if strings.Contains(folded, trigger) {
				return rule
			}
		}
	}
	return d.fallback
}

// Match returns the name of the rule that answers text.
func (d *Dispatcher) Match(text string) string {
	return d.match(text).name
}

// Respond renders the reply for text at the given level. It is a pure function of its inputs.
func (d *Dispatcher) Respond(text, level string) string {
	rule := d.match(text)
	var b strings.Builder
	if err := rule.tmpl.Execute(&b, templateData{Level: level, Question: text}); err != nil {
		return ""
	}
	return b.String()
}
