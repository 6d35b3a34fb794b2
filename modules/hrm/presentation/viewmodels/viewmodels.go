package viewmodels

type LeaveType struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Code            string  `json:"code"`
	AnnualAllowance float64 `json:"annual_allowance"`
	Status          string  `json:"status"`
}

type LeaveRequest struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	TypeID             string  `json:"type_id"`
	ReportingManagerID string  `json:"reporting_manager_id,omitempty"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	Session            string  `json:"session"`
	Days               float64 `json:"days"`
	Duration           string  `json:"duration"`
	Reason             string  `json:"reason"`
	Status             string  `json:"status"`
	ManagerStatus      string  `json:"manager_status"`
	ReviewerNote       string  `json:"reviewer_note,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

type LeaveBalance struct {
	TypeID    string  `json:"type_id"`
	TypeName  string  `json:"type_name"`
	Allowance float64 `json:"allowance"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}
