package validator

import (
	"testing"

	"sigma_app/internal/auth/transport"
	"sigma_app/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudent() transport.SignUpForm {
	return transport.SignUpForm{
		Name:             "홍길동",
		StudentID:        "20231234",
		Email:            "student@university.ac.kr",
		Phone:            "010-1234-5678",
		Password:         "password1",
		ConfirmPassword:  "password1",
		Major:            "컴퓨터공학과",
		UserType:         transport.UserTypeStudent,
		Grade:            "2",
		EnrollmentStatus: transport.EnrollmentEnrolled,
	}
}

func TestValidateSignUp(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *transport.SignUpForm)
		want   Reason
	}{
		{"valid student", func(f *transport.SignUpForm) {}, ReasonNone},
		{"missing name", func(f *transport.SignUpForm) { f.Name = "" }, MissingRequiredField},
		{"missing email", func(f *transport.SignUpForm) { f.Email = "" }, MissingRequiredField},
		{"missing confirmation", func(f *transport.SignUpForm) { f.ConfirmPassword = "" }, MissingRequiredField},
		{"missing user type", func(f *transport.SignUpForm) { f.UserType = "" }, MissingRequiredField},
		{"phone is optional", func(f *transport.SignUpForm) { f.Phone = "" }, ReasonNone},
		{"mismatch", func(f *transport.SignUpForm) { f.ConfirmPassword = "password2" }, PasswordMismatch},
		{"short matching password", func(f *transport.SignUpForm) {
			f.Password, f.ConfirmPassword = "abc123", "abc123"
		}, PasswordTooShort},
		{"exactly eight", func(f *transport.SignUpForm) {
			f.Password, f.ConfirmPassword = "abcd1234", "abcd1234"
		}, ReasonNone},
		{"student without grade", func(f *transport.SignUpForm) { f.Grade = "" }, MissingStudentField},
		{"student without enrollment", func(f *transport.SignUpForm) { f.EnrollmentStatus = "" }, MissingStudentField},
		{"grade five", func(f *transport.SignUpForm) { f.Grade = "5" }, GradeOutOfRange},
		{"grade zero", func(f *transport.SignUpForm) { f.Grade = "0" }, GradeOutOfRange},
		{"grade not a number", func(f *transport.SignUpForm) { f.Grade = "two" }, GradeOutOfRange},
		{"grade with suffix", func(f *transport.SignUpForm) { f.Grade = "3abc" }, GradeOutOfRange},
		{"professor without grade", func(f *transport.SignUpForm) {
			f.UserType = transport.UserTypeProfessor
			f.Grade, f.EnrollmentStatus = "", ""
		}, ReasonNone},
		{"professor with nonsense grade", func(f *transport.SignUpForm) {
			f.UserType = transport.UserTypeProfessor
			f.Grade = "9"
		}, ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validStudent()
			tt.mutate(&form)
			got := ValidateSignUp(form)
			assert.Equal(t, tt.want, got.Reason, "got %s", got.Reason)
			assert.Equal(t, tt.want == ReasonNone, got.Valid())
		})
	}
}

func TestValidateSignUpFirstFailureWins(t *testing.T) {
	form := validStudent()
	form.Name = ""
	form.ConfirmPassword = "different"
	form.Grade = "7"
	assert.Equal(t, MissingRequiredField, ValidateSignUp(form).Reason)

	form = validStudent()
	form.Password, form.ConfirmPassword = "short", "shorter"
	assert.Equal(t, PasswordMismatch, ValidateSignUp(form).Reason)

	form = validStudent()
	form.Password, form.ConfirmPassword = "short", "short"
	form.Grade = "9"
	assert.Equal(t, PasswordTooShort, ValidateSignUp(form).Reason)
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin(transport.LoginForm{StudentID: "20231234", Password: "x"}).Valid())
	assert.Equal(t, MissingCredentials, ValidateLogin(transport.LoginForm{StudentID: "20231234"}).Reason)
	assert.Equal(t, MissingCredentials, ValidateLogin(transport.LoginForm{Password: "x"}).Reason)
	assert.Equal(t, MissingCredentials, ValidateLogin(transport.LoginForm{}).Reason)
}

func TestParseGrade(t *testing.T) {
	for _, s := range []string{"1", "2", "3", "4"} {
		g, ok := ParseGrade(s)
		require.True(t, ok, s)
		assert.GreaterOrEqual(t, g, 1)
	}
	for _, s := range []string{"", "0", "5", "-1", "3abc", " 3", "3.0"} {
		_, ok := ParseGrade(s)
		assert.False(t, ok, s)
	}
}

func TestResultMessageAndErr(t *testing.T) {
	valid := Result{}
	assert.Empty(t, valid.Message())
	assert.NoError(t, valid.Err())

	r := Result{Reason: GradeOutOfRange}
	assert.Equal(t, "학년은 1에서 4 사이의 숫자로 입력해 주세요.", r.Message())
	err := r.Err()
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.GetKind(err))
	assert.Equal(t, "grade_out_of_range", r.Reason.String())
}
