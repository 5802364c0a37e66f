package review

type CreateReviewRequest struct {
	EmployeeID          string `json:"employee_id" binding:"required,uuid"`
	TeamID              string `json:"team_id" binding:"required,uuid"`
	ReviewDate          string `json:"review_date" binding:"required"`
	Performance         int    `json:"performance" binding:"gte=0"`
	SoftSkills          int    `json:"soft_skills" binding:"gte=0"`
	Independence        int    `json:"independence" binding:"gte=0"`
	AspirationForGrowth int    `json:"aspiration_for_growth" binding:"gte=0"`
}

type UpdateReviewRequest struct {
	EmployeeID          string `json:"employee_id" binding:"required,uuid"`
	TeamID              string `json:"team_id" binding:"required,uuid"`
	ReviewDate          string `json:"review_date" binding:"required"`
	Performance         int    `json:"performance" binding:"gte=0"`
	SoftSkills          int    `json:"soft_skills" binding:"gte=0"`
	Independence        int    `json:"independence" binding:"gte=0"`
	AspirationForGrowth int    `json:"aspiration_for_growth" binding:"gte=0"`
}

type ReviewResponse struct {
	ID                  string `json:"id"`
	EmployeeID          string `json:"employee_id"`
	TeamID              string `json:"team_id"`
	ReviewDate          string `json:"review_date"`
	Performance         int    `json:"performance"`
	SoftSkills          int    `json:"soft_skills"`
	Independence        int    `json:"independence"`
	AspirationForGrowth int    `json:"aspiration_for_growth"`
}
