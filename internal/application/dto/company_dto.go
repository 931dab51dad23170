package dto

// CompanyResponse empresa en respuestas (pantalla de renovación y evento realtime).
type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	Phone    string `json:"phone,omitempty"`
	PlanID   string `json:"plan_id"`
	PlanName string `json:"plan_name,omitempty"`
	DueDate  string `json:"due_date"` // YYYY-MM-DD
	Status   string `json:"status"`
}
