// Package service runs a form submission end to end: validate, guard against
// double submits and bursts, call the backend, then publish what happened.
package service

import (
	"context"
	"errors"
	"time"

	"sigma_app/internal/auth"
	"sigma_app/internal/auth/transport"
	"sigma_app/internal/auth/validator"
	"sigma_app/platform/apperr"
	"sigma_app/platform/config"
	"sigma_app/platform/events"
	"sigma_app/platform/logger"
	"sigma_app/platform/phone"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	msgBusy        = "이전 요청을 처리하고 있습니다. 잠시만 기다려 주세요."
	msgRateLimited = "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."
)

// Remote is the backend the service submits to.
type Remote interface {
	Login(ctx context.Context, req transport.LoginRequest) (*transport.SessionInfo, error)
	SignUp(ctx context.Context, req transport.SignUpRequest) (*transport.SessionInfo, error)
}

type Service struct {
	remote  Remote
	bus     events.Bus
	log     *logger.Logger
	region  string

	// each form has its own attempt budget and one in-flight submission
	loginLimiter  *rate.Limiter
	signUpLimiter *rate.Limiter
	loginGate     *semaphore.Weighted
	signUpGate    *semaphore.Weighted
}

func New(remote Remote, bus events.Bus, cfg config.AuthConfig, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	perSecond := rate.Limit(cfg.GetAuthRatePerMinute() / 60.0)
	return &Service{
		remote:        remote,
		bus:           bus,
		log:           log,
		region:        cfg.GetPhoneRegion(),
		loginLimiter:  rate.NewLimiter(perSecond, cfg.GetAuthBurst()),
		signUpLimiter: rate.NewLimiter(perSecond, cfg.GetAuthBurst()),
		loginGate:     semaphore.NewWeighted(1),
		signUpGate:    semaphore.NewWeighted(1),
	}
}

// Login submits the login form. It always resolves to exactly one Outcome.
func (s *Service) Login(ctx context.Context, form transport.LoginForm) auth.Outcome {
	if res := validator.ValidateLogin(form); !res.Valid() {
		return invalidOutcome(auth.FlowLogin, res)
	}

	if !s.loginGate.TryAcquire(1) {
		return auth.Outcome{Flow: auth.FlowLogin, Kind: auth.Busy, Message: msgBusy, Err: apperr.New(apperr.KindBusy, msgBusy)}
	}
	defer s.loginGate.Release(1)

	if !s.loginLimiter.Allow() {
		s.log.AuthEvent("login", form.StudentID, false, "rate_limited")
		return auth.Outcome{Flow: auth.FlowLogin, Kind: auth.RateLimited, Message: msgRateLimited, Err: apperr.New(apperr.KindRateLimited, msgRateLimited)}
	}

	start := time.Now()
	session, err := s.remote.Login(ctx, BuildLoginRequest(form))
	outcome := fold(auth.FlowLogin, session, err)

	if outcome.OK() {
		s.log.AuthEvent("login", form.StudentID, true, "")
		s.publish(ctx, auth.LoginSucceeded{BaseEvent: events.NewBaseEvent(), Session: *session})
	} else {
		s.log.AuthEvent("login", form.StudentID, false, outcome.Kind.String())
		s.publish(ctx, auth.LoginFailed{
			BaseEvent: events.NewBaseEvent(),
			StudentID: form.StudentID,
			Kind:      outcome.Kind,
			Message:   outcome.Message,
		})
	}
	s.log.Debug("login finished", "kind", outcome.Kind.String(), "latency_ms", time.Since(start).Milliseconds())

	return outcome
}

// SignUp submits the sign-up form. It always resolves to exactly one Outcome.
func (s *Service) SignUp(ctx context.Context, form transport.SignUpForm) auth.Outcome {
	if res := validator.ValidateSignUp(form); !res.Valid() {
		return invalidOutcome(auth.FlowSignUp, res)
	}

	if !s.signUpGate.TryAcquire(1) {
		return auth.Outcome{Flow: auth.FlowSignUp, Kind: auth.Busy, Message: msgBusy, Err: apperr.New(apperr.KindBusy, msgBusy)}
	}
	defer s.signUpGate.Release(1)

	if !s.signUpLimiter.Allow() {
		s.log.AuthEvent("signup", form.StudentID, false, "rate_limited")
		return auth.Outcome{Flow: auth.FlowSignUp, Kind: auth.RateLimited, Message: msgRateLimited, Err: apperr.New(apperr.KindRateLimited, msgRateLimited)}
	}

	session, err := s.remote.SignUp(ctx, BuildSignUpRequest(form, s.region))
	outcome := fold(auth.FlowSignUp, session, err)

	if outcome.OK() {
		s.log.AuthEvent("signup", form.StudentID, true, "")
		s.publish(ctx, auth.SignedUp{BaseEvent: events.NewBaseEvent(), Session: *session})
	} else {
		s.log.AuthEvent("signup", form.StudentID, false, outcome.Kind.String())
	}

	return outcome
}

// BuildLoginRequest copies the form into the wire body unchanged.
func BuildLoginRequest(form transport.LoginForm) transport.LoginRequest {
	return transport.LoginRequest{StudentID: form.StudentID, Password: form.Password}
}

// BuildSignUpRequest converts a validated form into the wire body. Grade and
// enrollment status are only sent for students; the phone number is
// normalized to E.164 when it parses in region.
func BuildSignUpRequest(form transport.SignUpForm, region string) transport.SignUpRequest {
	req := transport.SignUpRequest{
		Name:      form.Name,
		StudentID: form.StudentID,
		Email:     form.Email,
		Password:  form.Password,
		Major:     form.Major,
		Phone:     phone.NormalizeE164(form.Phone, region),
		UserType:  form.UserType,
	}
	if form.UserType == transport.UserTypeStudent {
		if grade, ok := validator.ParseGrade(form.Grade); ok {
			req.Grade = &grade
		}
		status := form.EnrollmentStatus
		req.EnrollmentStatus = &status
	}
	return req
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.log.Error("auth event handler failed", "event", event.EventName(), "error", err)
	}
}

func invalidOutcome(flow auth.Flow, res validator.Result) auth.Outcome {
	return auth.Outcome{
		Flow:    flow,
		Kind:    auth.Invalid,
		Message: res.Message(),
		Reason:  res.Reason,
		Err:     res.Err(),
	}
}

// fold maps the client's result onto an Outcome.
func fold(flow auth.Flow, session *transport.SessionInfo, err error) auth.Outcome {
	if err == nil {
		return auth.Outcome{Flow: flow, Kind: auth.Success, Session: session, Message: successMessage(flow)}
	}

	outcome := auth.Outcome{Flow: flow, Message: apperr.Message(err), Err: err}
	switch apperr.GetKind(err) {
	case apperr.KindRejected:
		outcome.Kind = auth.Rejected
	case apperr.KindTimeout:
		outcome.Kind = auth.Timeout
	case apperr.KindMalformedResponse:
		outcome.Kind = auth.MalformedResponse
	case apperr.KindNetwork:
		outcome.Kind = auth.NetworkFailure
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			outcome.Kind = auth.Timeout
		} else {
			outcome.Kind = auth.NetworkFailure
		}
	}
	return outcome
}

func successMessage(flow auth.Flow) string {
	if flow == auth.FlowSignUp {
		return "회원가입이 완료되었습니다. 이제 로그인해 주세요."
	}
	return "환영합니다!"
}
