/*
Package stats serves the catalog's home page summary.

The counts come from PostgreSQL on every request. The visit count is kept
per visitor in Redis, keyed by user id when signed in and by client IP
otherwise.
*/
package stats

// Summary is what the home page shows.
type Summary struct {
	NumBooks              int   `json:"num_books"`
	NumInstances          int   `json:"num_instances"`
	NumInstancesAvailable int   `json:"num_instances_available"`
	NumAuthors            int   `json:"num_authors"`
	NumVisits             int64 `json:"num_visits"`
}
