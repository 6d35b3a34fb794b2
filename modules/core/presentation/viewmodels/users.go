package viewmodels

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
