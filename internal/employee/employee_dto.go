package employee

type CreateEmployeeRequest struct {
	TeamID       string `json:"team_id" binding:"required,uuid"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Position     string `json:"position" binding:"required"`
	SupervisorID string `json:"supervisor_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	TeamID       string `json:"team_id" binding:"required,uuid"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Position     string `json:"position" binding:"required"`
	SupervisorID string `json:"supervisor_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID                string `json:"id"`
	TeamID            string `json:"team_id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Position          string `json:"position"`
	SupervisorID      string `json:"supervisor_id,omitempty"`
	SubordinatesCount int    `json:"subordinates_count"`
}

type HierarchyResponse struct {
	Manager      *EmployeeResponse  `json:"manager"`
	Subordinates []EmployeeResponse `json:"subordinates"`
	Colleagues   []EmployeeResponse `json:"colleagues"`
}
