// Package agents defines the closed set of generation agent types, their
// prompt templates and their model selection. Everything in this package is
// pure: no I/O, no side effects, deterministic for a given input.
package agents

// Type is a fixed tag selecting which prompt template and output routing
// applies to a job.
type Type string

// Known agent types
const (
	// TypeLandingPage generates hero copy and page sections for a landing page
	TypeLandingPage Type = "landing_page"
	// TypeHeadlineGenerator generates headline variants
	TypeHeadlineGenerator Type = "headline_generator"
	// TypeValueProposition generates a positioning statement and value props
	TypeValueProposition Type = "value_proposition"
	// TypeLaunchSequence generates a multi-email launch sequence
	TypeLaunchSequence Type = "launch_sequence"
	// TypeAdCopy generates short-form ad copy variants
	TypeAdCopy Type = "ad_copy"
	// TypeSocialPosts generates social media post drafts
	TypeSocialPosts Type = "social_posts"
	// TypeWelcomeEmail generates a free-text welcome email
	TypeWelcomeEmail Type = "welcome_email"
)

// types lists every known agent type. New agents must be added here and to
// the template, title and sink tables; Prompt and the worker treat anything
// else as unknown.
var types = []Type{
	TypeLandingPage,
	TypeHeadlineGenerator,
	TypeValueProposition,
	TypeLaunchSequence,
	TypeAdCopy,
	TypeSocialPosts,
	TypeWelcomeEmail,
}

// String returns the string representation of the agent type
func (t Type) String() string {
	return string(t)
}

// ParseType converts a string to an agent Type. It is a lookup, not a
// validated command: an unrecognized string returns ok=false rather than an
// error.
func ParseType(str string) (Type, bool) {
	for _, t := range types {
		if string(t) == str {
			return t, true
		}
	}
	return "", false
}

// Types returns the full set of known agent types.
func Types() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

// Resolver maps agent types to model identifiers. The default model is
// uniform across agent types; a per-type override table is consulted first.
type Resolver struct {
	defaultModel string
	overrides    map[Type]string
}

// NewResolver creates a model resolver with the given default model and
// per-agent-type overrides keyed by agent type string.
func NewResolver(defaultModel string, overrides map[string]string) *Resolver {
	r := &Resolver{
		defaultModel: defaultModel,
		overrides:    make(map[Type]string, len(overrides)),
	}
	for k, v := range overrides {
		if t, ok := ParseType(k); ok {
			r.overrides[t] = v
		}
	}
	return r
}

// Model returns the model identifier to use for the given agent type.
func (r *Resolver) Model(t Type) string {
	if model, ok := r.overrides[t]; ok {
		return model
	}
	return r.defaultModel
}
