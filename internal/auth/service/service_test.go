package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sigma_app/internal/auth"
	"sigma_app/internal/auth/transport"
	"sigma_app/internal/auth/validator"
	"sigma_app/platform/apperr"
	"sigma_app/platform/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	perMinute float64
	burst     int
}

func (c testConfig) GetAuthRatePerMinute() float64 { return c.perMinute }
func (c testConfig) GetAuthBurst() int              { return c.burst }
func (c testConfig) GetPhoneRegion() string         { return "KR" }

var generous = testConfig{perMinute: 600, burst: 100}

type fakeRemote struct {
	calls      atomic.Int32
	session    *transport.SessionInfo
	err        error
	block      chan struct{}
	entered    chan struct{}
	lastSignUp transport.SignUpRequest
	mu         sync.Mutex
}

func (f *fakeRemote) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeRemote) Login(ctx context.Context, req transport.LoginRequest) (*transport.SessionInfo, error) {
	f.calls.Add(1)
	f.wait()
	return f.session, f.err
}

func (f *fakeRemote) SignUp(ctx context.Context, req transport.SignUpRequest) (*transport.SessionInfo, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastSignUp = req
	f.mu.Unlock()
	f.wait()
	return f.session, f.err
}

func okSession() *transport.SessionInfo {
	return &transport.SessionInfo{OK: true, UserID: "20231234", Name: "홍길동", Role: "student"}
}

func studentForm() transport.SignUpForm {
	return transport.SignUpForm{
		Name:             "홍길동",
		StudentID:        "20231234",
		Email:            "student@university.ac.kr",
		Phone:            "010-1234-5678",
		Password:         "password1",
		ConfirmPassword:  "password1",
		Major:            "컴퓨터공학과",
		UserType:         transport.UserTypeStudent,
		Grade:            "3",
		EnrollmentStatus: transport.EnrollmentOnLeave,
	}
}

func TestLoginSuccessPublishesEvent(t *testing.T) {
	remote := &fakeRemote{session: okSession()}
	bus := events.NewInMemoryBus(nil)
	var got auth.LoginSucceeded
	bus.Subscribe(auth.EventLoginSucceeded, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		got = e.(auth.LoginSucceeded)
		return nil
	}))

	svc := New(remote, bus, generous, nil)
	out := svc.Login(context.Background(), transport.LoginForm{StudentID: "20231234", Password: "pw"})

	require.Equal(t, auth.Success, out.Kind)
	assert.Equal(t, "20231234", out.Session.UserID)
	assert.Equal(t, "로그인 성공", out.Title())
	assert.Equal(t, "20231234", got.Session.UserID)
}

func TestLoginFailurePublishesEvent(t *testing.T) {
	remote := &fakeRemote{err: apperr.Rejected("학번 혹은 비밀번호가 잘못되었습니다.")}
	bus := events.NewInMemoryBus(nil)
	var got auth.LoginFailed
	bus.Subscribe(auth.EventLoginFailed, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		got = e.(auth.LoginFailed)
		return nil
	}))

	out := New(remote, bus, generous, nil).Login(context.Background(), transport.LoginForm{StudentID: "1", Password: "x"})
	assert.Equal(t, auth.Rejected, out.Kind)
	assert.Equal(t, "학번 혹은 비밀번호가 잘못되었습니다.", out.Message)
	assert.Equal(t, auth.Rejected, got.Kind)
	assert.Equal(t, "1", got.StudentID)
}

func TestValidationBlocksNetworkCall(t *testing.T) {
	remote := &fakeRemote{session: okSession()}
	svc := New(remote, nil, generous, nil)

	out := svc.Login(context.Background(), transport.LoginForm{StudentID: "20231234"})
	assert.Equal(t, auth.Invalid, out.Kind)
	assert.Equal(t, validator.MissingCredentials, out.Reason)
	assert.Equal(t, "학번과 비밀번호를 모두 입력해 주세요.", out.Message)

	form := studentForm()
	form.Grade = "5"
	out = svc.SignUp(context.Background(), form)
	assert.Equal(t, auth.Invalid, out.Kind)
	assert.Equal(t, validator.GradeOutOfRange, out.Reason)

	assert.Equal(t, int32(0), remote.calls.Load())
}

func TestErrorKindsFoldIntoOutcomes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want auth.OutcomeKind
	}{
		{"rejected", apperr.Rejected("no"), auth.Rejected},
		{"network", apperr.New(apperr.KindNetwork, "down"), auth.NetworkFailure},
		{"timeout", apperr.New(apperr.KindTimeout, "slow"), auth.Timeout},
		{"malformed", apperr.New(apperr.KindMalformedResponse, "bad"), auth.MalformedResponse},
		{"bare deadline", context.DeadlineExceeded, auth.Timeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{err: tt.err}
			out := New(remote, nil, generous, nil).Login(context.Background(), transport.LoginForm{StudentID: "1", Password: "x"})
			assert.Equal(t, tt.want, out.Kind)
			assert.False(t, out.OK())
			assert.Nil(t, out.Session)
		})
	}
}

func TestConcurrentSubmissionIsBusy(t *testing.T) {
	remote := &fakeRemote{session: okSession(), block: make(chan struct{}), entered: make(chan struct{}, 1)}
	svc := New(remote, nil, generous, nil)

	done := make(chan auth.Outcome, 1)
	go func() {
		done <- svc.Login(context.Background(), transport.LoginForm{StudentID: "1", Password: "x"})
	}()

	select {
	case <-remote.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the remote")
	}

	second := svc.Login(context.Background(), transport.LoginForm{StudentID: "1", Password: "x"})
	assert.Equal(t, auth.Busy, second.Kind)

	// the sign-up form has its own gate
	remote.entered = nil
	signUpDone := make(chan auth.Outcome, 1)
	go func() { signUpDone <- svc.SignUp(context.Background(), studentForm()) }()

	close(remote.block)
	first := <-done
	assert.Equal(t, auth.Success, first.Kind)
	assert.Equal(t, auth.Success, (<-signUpDone).Kind)

	third := svc.Login(context.Background(), transport.LoginForm{StudentID: "1", Password: "x"})
	assert.Equal(t, auth.Success, third.Kind)
}

func TestRateLimited(t *testing.T) {
	remote := &fakeRemote{err: apperr.Rejected("no")}
	svc := New(remote, nil, testConfig{perMinute: 0.001, burst: 2}, nil)

	form := transport.LoginForm{StudentID: "1", Password: "x"}
	assert.Equal(t, auth.Rejected, svc.Login(context.Background(), form).Kind)
	assert.Equal(t, auth.Rejected, svc.Login(context.Background(), form).Kind)
	assert.Equal(t, auth.RateLimited, svc.Login(context.Background(), form).Kind)
	assert.Equal(t, int32(2), remote.calls.Load())
}

func TestSignUpAttemptsDoNotThrottleLogin(t *testing.T) {
	remote := &fakeRemote{err: apperr.Rejected("no")}
	svc := New(remote, nil, testConfig{perMinute: 0.001, burst: 1}, nil)
	ctx := context.Background()

	assert.Equal(t, auth.Rejected, svc.SignUp(ctx, studentForm()).Kind)
	assert.Equal(t, auth.RateLimited, svc.SignUp(ctx, studentForm()).Kind)

	form := transport.LoginForm{StudentID: "1", Password: "x"}
	assert.Equal(t, auth.Rejected, svc.Login(ctx, form).Kind)
	assert.Equal(t, auth.RateLimited, svc.Login(ctx, form).Kind)
	assert.Equal(t, int32(2), remote.calls.Load())
}

func TestSignUpBuildsRequest(t *testing.T) {
	remote := &fakeRemote{session: okSession()}
	bus := events.NewInMemoryBus(nil)
	var signedUp atomic.Bool
	bus.Subscribe(auth.EventSignedUp, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		signedUp.Store(true)
		return nil
	}))

	out := New(remote, bus, generous, nil).SignUp(context.Background(), studentForm())
	require.Equal(t, auth.Success, out.Kind)
	assert.Equal(t, "회원가입 성공!", out.Title())
	assert.True(t, signedUp.Load())

	req := remote.lastSignUp
	assert.Equal(t, "+821012345678", req.Phone)
	require.NotNil(t, req.Grade)
	assert.Equal(t, 3, *req.Grade)
	require.NotNil(t, req.EnrollmentStatus)
	assert.Equal(t, transport.EnrollmentOnLeave, *req.EnrollmentStatus)
}

func TestBuildSignUpRequestProfessorDropsStudentFields(t *testing.T) {
	form := studentForm()
	form.UserType = transport.UserTypeProfessor
	form.Phone = "not a phone"

	req := BuildSignUpRequest(form, "KR")
	assert.Nil(t, req.Grade)
	assert.Nil(t, req.EnrollmentStatus)
	assert.Equal(t, "not a phone", req.Phone)
	assert.Equal(t, "password1", req.Password)
}
