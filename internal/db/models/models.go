// Package models defines the database models shared by the API server, the
// worker and the CLI.
package models

// DefaultPageSize is the default number of records returned by list queries.
const DefaultPageSize = 50

// ListOptions defines pagination options for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns list options with the default page size.
func DefaultListOptions() *ListOptions {
	return &ListOptions{Limit: DefaultPageSize}
}
