package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchforge/launchforge/internal/db/models"
)

func init() {
	projectsCmd.AddCommand(createProjectCmd)
	projectsCmd.AddCommand(getProjectCmd)
	projectsCmd.AddCommand(listProjectsCmd)
	projectsCmd.AddCommand(listArtifactsCmd)

	// Add flags
	createProjectCmd.Flags().StringP("name", "n", "", "Project name")
	createProjectCmd.Flags().StringP("description", "d", "", "What the app does")
	createProjectCmd.Flags().String("audience", "", "Target audience")
	createProjectCmd.Flags().String("problem", "", "Problem the app solves")
	createProjectCmd.Flags().String("solution", "", "How the app solves it")
	createProjectCmd.Flags().String("features", "", "Key features")
	createProjectCmd.Flags().String("tone", "", "Copy tone")
	createProjectCmd.Flags().String("pricing", "", "Pricing model")
	_ = createProjectCmd.MarkFlagRequired("name")

	getProjectCmd.Flags().UintP("id", "i", 0, "Project ID to fetch")
	_ = getProjectCmd.MarkFlagRequired("id")

	listProjectsCmd.Flags().IntP("page", "p", 1, "Page number")

	listArtifactsCmd.Flags().UintP("id", "i", 0, "Project ID")
	listArtifactsCmd.Flags().IntP("page", "p", 1, "Page number")
	_ = listArtifactsCmd.MarkFlagRequired("id")
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var createProjectCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		audience, _ := cmd.Flags().GetString("audience")
		problem, _ := cmd.Flags().GetString("problem")
		solution, _ := cmd.Flags().GetString("solution")
		features, _ := cmd.Flags().GetString("features")
		tone, _ := cmd.Flags().GetString("tone")
		pricing, _ := cmd.Flags().GetString("pricing")

		project, err := apiClient.CreateProject(context.Background(), &models.Project{
			Name:           name,
			Description:    description,
			TargetAudience: audience,
			Problem:        problem,
			Solution:       solution,
			Features:       features,
			Tone:           tone,
			Pricing:        pricing,
		})
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		return printJSON(project)
	},
}

var getProjectCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, _ := cmd.Flags().GetUint("id")

		project, err := apiClient.GetProject(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error fetching project: %w", err)
		}

		return printJSON(project)
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, _ := cmd.Flags().GetInt("page")

		projects, err := apiClient.ListProjects(context.Background(), page)
		if err != nil {
			return fmt.Errorf("error fetching projects: %w", err)
		}

		return printJSON(projects)
	},
}

var listArtifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "List the generated artifacts for a project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, _ := cmd.Flags().GetUint("id")
		page, _ := cmd.Flags().GetInt("page")

		artifacts, err := apiClient.ListProjectArtifacts(context.Background(), projectID, page)
		if err != nil {
			return fmt.Errorf("error fetching artifacts: %w", err)
		}

		return printJSON(artifacts)
	},
}

// GetProjectsCmd returns the projects command
func GetProjectsCmd() *cobra.Command {
	return projectsCmd
}
