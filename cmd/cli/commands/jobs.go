package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	jobsCmd.AddCommand(submitJobCmd)
	jobsCmd.AddCommand(getJobCmd)
	jobsCmd.AddCommand(jobStatusCmd)
	jobsCmd.AddCommand(listJobsCmd)

	// Add flags
	submitJobCmd.Flags().UintP("project-id", "p", 0, "Project ID to generate for")
	submitJobCmd.Flags().StringP("agent-type", "a", "", "Agent type to run (e.g. landing_page)")
	_ = submitJobCmd.MarkFlagRequired("project-id")
	_ = submitJobCmd.MarkFlagRequired("agent-type")

	getJobCmd.Flags().UintP("id", "i", 0, "Job ID to fetch")
	_ = getJobCmd.MarkFlagRequired("id")

	jobStatusCmd.Flags().UintP("id", "i", 0, "Job ID to check")
	_ = jobStatusCmd.MarkFlagRequired("id")

	listJobsCmd.Flags().StringP("status", "t", "", "Filter jobs by status")
	listJobsCmd.Flags().IntP("page", "p", 1, "Page number")
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage generation jobs",
}

var submitJobCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a generation job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, _ := cmd.Flags().GetUint("project-id")
		agentType, _ := cmd.Flags().GetString("agent-type")

		resp, err := apiClient.SubmitJob(context.Background(), projectID, agentType)
		if err != nil {
			return fmt.Errorf("error submitting job: %w", err)
		}

		return printJSON(resp)
	},
}

var getJobCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")

		job, err := apiClient.GetJob(context.Background(), jobID)
		if err != nil {
			return fmt.Errorf("error fetching job: %w", err)
		}

		return printJSON(job)
	},
}

var jobStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get the status of a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")

		status, err := apiClient.GetJobStatus(context.Background(), jobID)
		if err != nil {
			return fmt.Errorf("error fetching job status: %w", err)
		}

		return printJSON(status)
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")

		jobs, err := apiClient.ListJobs(context.Background(), status, page)
		if err != nil {
			return fmt.Errorf("error fetching jobs: %w", err)
		}

		return printJSON(jobs)
	},
}

// GetJobsCmd returns the jobs command
func GetJobsCmd() *cobra.Command {
	return jobsCmd
}

// printJSON pretty-prints a value as indented JSON
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}
