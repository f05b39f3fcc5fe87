package transport

// LoginForm is a snapshot of the login screen's inputs, exactly as typed.
type LoginForm struct {
	StudentID string
	Password  string
}

// SignUpForm is a snapshot of the sign-up screen's inputs, exactly as typed.
// Grade and EnrollmentStatus only matter when UserType is "student".
type SignUpForm struct {
	Name             string
	StudentID        string
	Email            string
	Phone            string
	Password         string
	ConfirmPassword  string
	Major            string
	UserType         string
	Grade            string
	EnrollmentStatus string
}

const (
	UserTypeStudent   = "student"
	UserTypeProfessor = "professor"
)

const (
	EnrollmentEnrolled = "enrolled"
	EnrollmentOnLeave  = "leave"
)

type LoginRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type SignUpRequest struct {
	Name             string  `json:"name" validate:"required"`
	StudentID        string  `json:"studentId" validate:"required"`
	Email            string  `json:"email" validate:"required"`
	Password         string  `json:"password" validate:"required,min=8"`
	Major            string  `json:"major" validate:"required"`
	Phone            string  `json:"phone"`
	UserType         string  `json:"userType" validate:"required,usertype"`
	Grade            *int    `json:"grade"`
	EnrollmentStatus *string `json:"enrollmentStatus"`
}

// SessionInfo is the body the backend returns on successful login or sign-up.
type SessionInfo struct {
	OK               bool    `json:"ok"`
	UserID           string  `json:"userId" validate:"required"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	DeptName         string  `json:"deptName"`
	Phone            *string `json:"phone"`
	Grade            *int    `json:"grade"`
	EnrollmentStatus *string `json:"enrollmentStatus"`
	CreatedAt        string  `json:"createdAt"`
	AccessToken      string  `json:"accessToken,omitempty"`
}
