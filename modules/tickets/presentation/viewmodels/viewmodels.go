package viewmodels

type StatusChange struct {
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changed_by"`
	ChangedAt string `json:"changed_at"`
	Note      string `json:"note,omitempty"`
}

type Comment struct {
	Text       string `json:"text"`
	Author     string `json:"author"`
	CreatedAt  string `json:"created_at"`
	IsInternal bool   `json:"is_internal"`
}

type Ticket struct {
	ID          string         `json:"id"`
	Number      string         `json:"number"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	SubCategory string         `json:"sub_category"`
	Priority    string         `json:"priority"`
	Status      string         `json:"status"`
	AssignedTo  string         `json:"assigned_to"`
	CreatedBy   string         `json:"created_by"`
	Tags        []string       `json:"tags"`
	DueDate     string         `json:"due_date,omitempty"`
	SLADeadline string         `json:"sla_deadline"`
	History     []StatusChange `json:"status_history"`
	Comments    []Comment      `json:"comments"`
	ClosedAt    string         `json:"closed_at,omitempty"`
	CreatedAt   string         `json:"created_at"`
}
