package response

import "github.com/seemaakh/bitefinder/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

// Student is the minimal display identity rendered to clients.
// Password hashes never leave the service layer.
type Student struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// NewStudentFromDomain: Domain -> Response
func NewStudentFromDomain(s *domain.Student) *Student {
	if s == nil {
		return nil
	}
	return &Student{
		ID:             s.ID,
		Name:           s.Name,
		Username:       s.Username,
		ProfilePicture: s.ProfilePicture,
	}
}

// StudentProfile is the full account view.
type StudentProfile struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func NewStudentProfileFromDomain(s *domain.Student) StudentProfile {
	return StudentProfile{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		Username:       s.Username,
		PhoneNumber:    s.PhoneNumber,
		ProfilePicture: s.ProfilePicture,
		CreatedAt:      s.CreatedAt.Format(DateTimeFormat),
	}
}
