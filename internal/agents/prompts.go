package agents

import "fmt"

// Prompt renders the prompt for the given agent type and context. Missing
// context fields are substituted with the placeholder; the render only fails
// for an unrecognized agent type, in which case ok is false.
func Prompt(t Type, ctx Context) (string, bool) {
	tmpl, ok := templates[t]
	if !ok {
		return "", false
	}
	return tmpl(ctx), true
}

type templateFunc func(Context) string

var templates = map[Type]templateFunc{
	TypeLandingPage:       landingPagePrompt,
	TypeHeadlineGenerator: headlinePrompt,
	TypeValueProposition:  valuePropPrompt,
	TypeLaunchSequence:    launchSequencePrompt,
	TypeAdCopy:            adCopyPrompt,
	TypeSocialPosts:       socialPostsPrompt,
	TypeWelcomeEmail:      welcomeEmailPrompt,
}

func landingPagePrompt(c Context) string {
	return fmt.Sprintf(`You are a conversion copywriter. Write landing page copy for the following product.

App name: %s
Description: %s
Target audience: %s
Problem it solves: %s
How it solves it: %s
Key features: %s
Tone: %s

Respond with only a JSON object with these keys:
"hero_headline", "hero_subheadline", "cta_text", "features" (array of objects with "title" and "description"), "social_proof_line", "closing_cta".`,
		field(c.AppName), field(c.Description), field(c.TargetAudience),
		field(c.Problem), field(c.Solution), field(c.Features), field(c.Tone))
}

func headlinePrompt(c Context) string {
	return fmt.Sprintf(`You are a direct-response copywriter. Generate 10 headline variants for this product.

App name: %s
Description: %s
Target audience: %s
Problem it solves: %s
Tone: %s

Respond with only a JSON object with one key "headlines" holding an array of 10 strings.`,
		field(c.AppName), field(c.Description), field(c.TargetAudience),
		field(c.Problem), field(c.Tone))
}

func valuePropPrompt(c Context) string {
	return fmt.Sprintf(`You are a product positioning expert. Write the positioning for this product.

App name: %s
Description: %s
Target audience: %s
Problem it solves: %s
How it solves it: %s
Pricing: %s

Respond with only a JSON object with these keys:
"positioning_statement", "value_props" (array of 3-5 strings), "differentiator".`,
		field(c.AppName), field(c.Description), field(c.TargetAudience),
		field(c.Problem), field(c.Solution), field(c.Pricing))
}

func launchSequencePrompt(c Context) string {
	return fmt.Sprintf(`You are an email marketing expert. Write a 5-email launch sequence for this product.

App name: %s
Description: %s
Target audience: %s
Problem it solves: %s
Tone: %s
Pricing: %s

Respond with only a JSON object with one key "emails" holding an array of 5 objects, each with "day", "subject" and "body".`,
		field(c.AppName), field(c.Description), field(c.TargetAudience),
		field(c.Problem), field(c.Tone), field(c.Pricing))
}

func adCopyPrompt(c Context) string {
	return fmt.Sprintf(`You are a performance marketer. Write short-form ad copy variants for this product.

App name: %s
Description: %s
Target audience: %s
Problem it solves: %s
Tone: %s

Respond with only a JSON object with these keys:
"google_ads" (array of objects with "headline" and "description"), "meta_ads" (array of objects with "primary_text" and "headline").`,
		field(c.AppName), field(c.Description), field(c.TargetAudience),
		field(c.Problem), field(c.Tone))
}

func socialPostsPrompt(c Context) string {
	return fmt.Sprintf(`You are a social media strategist. Write launch-week social posts for this product.

App name: %s
Description: %s
Target audience: %s
Key features: %s
Tone: %s

Respond with only a JSON object with these keys:
"twitter" (array of 5 strings), "linkedin" (array of 3 strings).`,
		field(c.AppName), field(c.Description), field(c.TargetAudience),
		field(c.Features), field(c.Tone))
}

func welcomeEmailPrompt(c Context) string {
	return fmt.Sprintf(`You are an email copywriter. Write a warm welcome email for new users of this product.

App name: %s
Description: %s
Target audience: %s
How it solves their problem: %s
Tone: %s

Respond with the email text only, no JSON, no preamble.`,
		field(c.AppName), field(c.Description), field(c.TargetAudience),
		field(c.Solution), field(c.Tone))
}
