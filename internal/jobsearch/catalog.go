// Package jobsearch is the JobMind listing API: a fixed in-memory set
// of job records filtered by case-insensitive substring match. Records
// never change after startup and nothing is persisted.
package jobsearch

import "strings"

// Job is one listing record.
type Job struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Source   string `json:"source"`
}

// Catalog holds the listing set in insertion order.
type Catalog struct {
	jobs []Job
}

// NewCatalog creates a catalog over the given records.
func NewCatalog(jobs []Job) *Catalog {
	return &Catalog{jobs: jobs}
}

// DefaultCatalog returns the seed listing set.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Job{
		{ID: 1, Title: "Data Analyst", Company: "BNP Paribas", Location: "Casablanca, Maroc", Source: "LinkedIn"},
		{ID: 2, Title: "Financial Data Scientist", Company: "Société Générale", Location: "Paris, France", Source: "Indeed"},
		{ID: 3, Title: "Développeur Web", Company: "Startup Maroc", Location: "Rabat, Maroc", Source: "MarocAnnonces"},
	})
}

// Search filters the catalog. An empty query matches everything; the
// keyword matches on title or company, the country on location. Both
// compose and all matching is case-insensitive substring.
func (c *Catalog) Search(query, country string) []Job {
	query = strings.ToLower(strings.TrimSpace(query))
	country = strings.ToLower(strings.TrimSpace(country))

	out := make([]Job, 0, len(c.jobs))
	for _, job := range c.jobs {
		if query != "" &&
			!strings.Contains(strings.ToLower(job.Title), query) &&
			!strings.Contains(strings.ToLower(job.Company), query) {
			continue
		}
		if country != "" && !strings.Contains(strings.ToLower(job.Location), country) {
			continue
		}
		out = append(out, job)
	}
	return out
}
