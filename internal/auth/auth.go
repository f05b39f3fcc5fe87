// Package auth provides the login and sign-up flows.
// This file defines the public API of the auth bounded context: the outcome
// every submission resolves to, and the events published about it.
package auth

import (
	"sigma_app/internal/auth/transport"
	"sigma_app/internal/auth/validator"
	"sigma_app/platform/events"
)

// OutcomeKind is the terminal state of one submission.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	Invalid
	Rejected
	NetworkFailure
	Timeout
	MalformedResponse
	Busy
	RateLimited
)

var outcomeNames = map[OutcomeKind]string{
	Success:           "success",
	Invalid:           "invalid",
	Rejected:          "rejected",
	NetworkFailure:    "network_failure",
	Timeout:           "timeout",
	MalformedResponse: "malformed_response",
	Busy:              "busy",
	RateLimited:       "rate_limited",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Flow identifies which form produced an outcome.
type Flow string

const (
	FlowLogin  Flow = "login"
	FlowSignUp Flow = "signup"
)

// Outcome is what a screen shows after a submission. Exactly one of Session
// (Success) or Message (everything else) is meaningful.
type Outcome struct {
	Flow    Flow
	Kind    OutcomeKind
	Session *transport.SessionInfo
	Message string
	// Reason is set when Kind is Invalid.
	Reason validator.Reason
	// Err is the underlying error, if any.
	Err error
}

// OK reports whether the submission succeeded.
func (o Outcome) OK() bool { return o.Kind == Success }

// Title returns the notice title the screens use for this outcome.
func (o Outcome) Title() string {
	switch o.Kind {
	case Success:
		if o.Flow == FlowSignUp {
			return "회원가입 성공!"
		}
		return "로그인 성공"
	case Invalid:
		return "오류"
	case NetworkFailure, Timeout:
		return "네트워크 오류"
	case Busy:
		return "처리 중"
	case RateLimited:
		return "잠시 후 다시 시도"
	default:
		if o.Flow == FlowSignUp {
			return "회원가입 실패"
		}
		return "로그인 실패"
	}
}

// Event names published on the bus.
const (
	EventLoginSucceeded = "auth.login_succeeded"
	EventLoginFailed    = "auth.login_failed"
	EventSignedUp       = "auth.signed_up"
)

// LoginSucceeded is published after the backend accepts a login.
type LoginSucceeded struct {
	events.BaseEvent
	Session transport.SessionInfo
}

func (LoginSucceeded) EventName() string { return EventLoginSucceeded }

// LoginFailed is published when a login reached the backend and failed, or
// never reached it because of the network.
type LoginFailed struct {
	events.BaseEvent
	StudentID string
	Kind      OutcomeKind
	Message   string
}

func (LoginFailed) EventName() string { return EventLoginFailed }

// SignedUp is published after the backend creates an account.
type SignedUp struct {
	events.BaseEvent
	Session transport.SessionInfo
}

func (SignedUp) EventName() string { return EventSignedUp }
