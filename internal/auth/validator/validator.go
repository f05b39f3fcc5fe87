// Package validator checks the login and sign-up forms before anything is
// sent to the backend. Rules run in a fixed order and the first failure wins.
package validator

import (
	"strconv"

	"sigma_app/internal/auth/transport"
	"sigma_app/platform/apperr"
	"sigma_app/platform/validator"
)

var engine = validator.New()

// MinPasswordLength is the shortest password the sign-up form accepts.
const MinPasswordLength = 8

const (
	minGrade = 1
	maxGrade = 4
)

// Reason names the rule a form failed.
type Reason int

const (
	ReasonNone Reason = iota
	MissingRequiredField
	PasswordMismatch
	PasswordTooShort
	MissingStudentField
	GradeOutOfRange
	MissingCredentials
)

var reasonNames = map[Reason]string{
	ReasonNone:           "none",
	MissingRequiredField: "missing_required_field",
	PasswordMismatch:     "password_mismatch",
	PasswordTooShort:     "password_too_short",
	MissingStudentField:  "missing_student_field",
	GradeOutOfRange:      "grade_out_of_range",
	MissingCredentials:   "missing_credentials",
}

var reasonMessages = map[Reason]string{
	MissingRequiredField: "모든 필수 정보를 입력하거나 선택해 주세요.",
	PasswordMismatch:     "비밀번호와 비밀번호 확인이 일치하지 않습니다.",
	PasswordTooShort:     "비밀번호는 최소 8자 이상이어야 합니다.",
	MissingStudentField:  "학생은 학년 및 재학/휴학 상태를 선택해야 합니다.",
	GradeOutOfRange:      "학년은 1에서 4 사이의 숫자로 입력해 주세요.",
	MissingCredentials:   "학번과 비밀번호를 모두 입력해 주세요.",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "reason(" + strconv.Itoa(int(r)) + ")"
}

// Result is the verdict on a form: valid, or invalid for exactly one Reason.
type Result struct {
	Reason Reason
}

// Valid reports whether every rule passed.
func (r Result) Valid() bool { return r.Reason == ReasonNone }

// Message returns the notice shown to the user, or "" when valid.
func (r Result) Message() string { return reasonMessages[r.Reason] }

// Err returns a KindValidation error carrying the reason, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return apperr.Validation(r.Message()).WithDetails(r.Reason.String())
}

func invalid(reason Reason) Result { return Result{Reason: reason} }

// ValidateSignUp applies the sign-up rules in order:
// required fields, password confirmation, password length, student fields.
func ValidateSignUp(form transport.SignUpForm) Result {
	required := []string{
		form.Name,
		form.StudentID,
		form.Email,
		form.Password,
		form.ConfirmPassword,
		form.Major,
		form.UserType,
	}
	for _, field := range required {
		if engine.Var(field, "required") != nil {
			return invalid(MissingRequiredField)
		}
	}

	if engine.VarWithValue(form.Password, form.ConfirmPassword, "eqfield") != nil {
		return invalid(PasswordMismatch)
	}

	if engine.Var(form.Password, "min="+strconv.Itoa(MinPasswordLength)) != nil {
		return invalid(PasswordTooShort)
	}

	if form.UserType == transport.UserTypeStudent {
		if form.Grade == "" || form.EnrollmentStatus == "" {
			return invalid(MissingStudentField)
		}
		if _, ok := ParseGrade(form.Grade); !ok {
			return invalid(GradeOutOfRange)
		}
	}

	return Result{}
}

// ValidateLogin requires both the student id and the password.
func ValidateLogin(form transport.LoginForm) Result {
	if engine.Var(form.StudentID, "required") != nil || engine.Var(form.Password, "required") != nil {
		return invalid(MissingCredentials)
	}
	return Result{}
}

// ParseGrade parses the whole string as a decimal integer in [1, 4].
// Partial numbers such as "3abc" or " 3" are rejected.
func ParseGrade(s string) (int, bool) {
	grade, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if engine.Var(grade, "min="+strconv.Itoa(minGrade)+",max="+strconv.Itoa(maxGrade)) != nil {
		return 0, false
	}
	return grade, true
}
