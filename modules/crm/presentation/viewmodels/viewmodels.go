package viewmodels

type Company struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Location  string  `json:"location"`
	Owner     string  `json:"owner"`
	Rating    float64 `json:"rating"`
	Contacts  int     `json:"contacts"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

type Deal struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	CompanyID         string `json:"company_id,omitempty"`
	Stage             string `json:"stage"`
	Value             string `json:"value"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	Probability       int    `json:"probability"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty"`
	Owner             string `json:"owner"`
	CreatedAt         string `json:"created_at"`
}

type DealColumn struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Deals []*Deal `json:"deals"`
}

type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
