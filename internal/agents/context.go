package agents

import (
	"github.com/launchforge/launchforge/internal/db/models"
)

// Placeholder is substituted for any context field that is missing, so a
// template render never fails on incomplete project data.
const Placeholder = "Not specified"

// Context is the denormalized snapshot of project fields substituted into a
// prompt template. It is captured once at job submission and stored on the
// job row; later project edits must not affect a queued job.
type Context struct {
	AppName        string `json:"app_name,omitempty"`
	Description    string `json:"description,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	Problem        string `json:"problem,omitempty"`
	Solution       string `json:"solution,omitempty"`
	Features       string `json:"features,omitempty"`
	Tone           string `json:"tone,omitempty"`
	Pricing        string `json:"pricing,omitempty"`
}

// Snapshot builds a context from a project's current fields.
func Snapshot(project *models.Project) Context {
	return Context{
		AppName:        project.Name,
		Description:    project.Description,
		TargetAudience: project.TargetAudience,
		Problem:        project.Problem,
		Solution:       project.Solution,
		Features:       project.Features,
		Tone:           project.Tone,
		Pricing:        project.Pricing,
	}
}

// field returns the value or the placeholder when the value is empty.
func field(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}
