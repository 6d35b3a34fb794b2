package viewmodels

type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	PostedAt    string `json:"posted_at"`
	CreatedAt   string `json:"created_at"`
}
