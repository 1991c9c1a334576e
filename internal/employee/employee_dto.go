package employee

const DateLayout = "2006-01-02"

type EmployeeResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID string `json:"departmentId"`
	DOB          string `json:"dob"`
	Position     string `json:"position"`
	Image        string `json:"image"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID.String(),
		UserID:       e.UserID.String(),
		Name:         e.Name,
		Email:        e.Email,
		DepartmentID: e.DepartmentID.String(),
		DOB:          e.DOB.Format(DateLayout),
		Position:     e.Position,
		Image:        e.Image,
	}
}
