package dto

import "job-matcher/internal/repository"

type JobResponse struct {
	JobID       string   `json:"job_id"`
	Source      string   `json:"source"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Salary      string   `json:"salary,omitempty"`
	TechStack   []string `json:"tech_stack"`
	PostedAt    string   `json:"posted_at,omitempty"`
}

func FromJob(j repository.Job) JobResponse {
	out := JobResponse{
		JobID:       j.ID.String(),
		Source:      j.Source,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		URL:         j.URL,
		Salary:      j.Salary,
		TechStack:   j.TechStack,
	}
	if out.TechStack == nil {
		out.TechStack = []string{}
	}
	if j.PostedAt != nil && !j.PostedAt.IsZero() {
		out.PostedAt = j.PostedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return out
}
