// Package client talks to the backend's auth endpoints. Each call is a
// single request with no retry; the result is a session or a typed error.
package client

import (
	"context"
	"net/http"
	"unicode/utf8"

	"sigma_app/internal/api"
	"sigma_app/internal/auth/transport"
	"sigma_app/platform/apperr"
	"sigma_app/platform/logger"
	"sigma_app/platform/validator"
)

const (
	pathLogin  = "/auth/login"
	pathSignUp = "/auth/signup"

	// MsgInvalidCredentials is shown for a 401 from the login endpoint.
	MsgInvalidCredentials = "학번 혹은 비밀번호가 잘못되었습니다."

	msgUnexpectedBody = " 서버가 예상치 않은 응답을 보냈습니다."

	// bodyEchoLimit is the rune count below which a non-JSON error body is
	// appended to the fallback message.
	bodyEchoLimit = 50
)

// Client is the remote auth client.
type Client struct {
	api *api.Client
	val *validator.Validator
	log *logger.Logger
}

// New creates an auth client on top of the shared API client.
func New(apiClient *api.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{api: apiClient, val: validator.New(), log: log}
}

// Login posts the credentials. A 401 is always reported with
// MsgInvalidCredentials, whatever the body says.
func (c *Client) Login(ctx context.Context, req transport.LoginRequest) (*transport.SessionInfo, error) {
	resp, err := c.api.Do(ctx, http.MethodPost, pathLogin, nil, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, rejected(MsgInvalidCredentials, resp.StatusCode, "auth.Login")
	}
	if !resp.OK() {
		msg := rejectionMessage("로그인", resp.StatusCode, resp.Body, "")
		c.log.Warn("login rejected", "status", resp.StatusCode, "request_id", resp.RequestID)
		return nil, rejected(msg, resp.StatusCode, "auth.Login")
	}

	return c.decodeSession(resp, "auth.Login")
}

// SignUp posts a new account.
func (c *Client) SignUp(ctx context.Context, req transport.SignUpRequest) (*transport.SessionInfo, error) {
	resp, err := c.api.Do(ctx, http.MethodPost, pathSignUp, nil, req)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		msg := rejectionMessage("회원가입", resp.StatusCode, resp.Body, msgUnexpectedBody)
		c.log.Warn("signup rejected", "status", resp.StatusCode, "request_id", resp.RequestID)
		return nil, rejected(msg, resp.StatusCode, "auth.SignUp")
	}

	return c.decodeSession(resp, "auth.SignUp")
}

func (c *Client) decodeSession(resp *api.Response, op string) (*transport.SessionInfo, error) {
	var session transport.SessionInfo
	if err := resp.DecodeJSON(&session); err != nil {
		c.log.Error("auth response decode failed", "op", op, "error", err, "request_id", resp.RequestID)
		return nil, apperr.Wrap(apperr.KindMalformedResponse, apperr.Message(err), err).WithOp(op)
	}
	if err := c.val.Struct(session); err != nil {
		c.log.Error("auth response missing fields", "op", op, "fields", validator.FailedFields(err), "request_id", resp.RequestID)
		return nil, apperr.Wrap(apperr.KindMalformedResponse, "서버 응답에 사용자 정보가 없습니다.", err).WithOp(op)
	}
	return &session, nil
}

func rejected(msg string, status int, op string) error {
	return apperr.Rejected(msg).WithOp(op).WithDetails(map[string]int{"status": status})
}

// rejectionMessage picks the message for a non-2xx answer. A JSON object
// yields its message, error or detail field, or the status line when none is
// set. Any other body, JSON null included, is echoed after the status line when it is short,
// otherwise unexpected is appended.
func rejectionMessage(flow string, status int, body []byte, unexpected string) string {
	fallback := api.StatusMessage(flow, status)

	if api.IsJSONObject(body) {
		if msg, ok := api.ErrorMessage(body); ok {
			return msg
		}
		return fallback
	}

	if n := utf8.RuneCount(body); n > 0 && n < bodyEchoLimit {
		return fallback + " 서버 응답 본문: " + string(body)
	}
	return fallback + unexpected
}
