package devserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"sigma_app/internal/auth/transport"
	"sigma_app/internal/cafeteria"
	"sigma_app/platform/apperr"
	"sigma_app/platform/httpkit"
	"sigma_app/platform/validator"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidUserType  = "userType must be 'student' or 'professor'"
)

func (s *Server) signUp(c *gin.Context) {
	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := s.val.Struct(req); err != nil {
		if validator.HasFailedTag(err, tagUserType) {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidUserType, nil)
			return
		}
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	role := normalizeUserType(req.UserType)

	session, err := s.store.createUser(req, role)
	if httpkit.HandleError(c, err) {
		return
	}
	s.log.Info("user registered", "user_id", session.UserID, "role", role)
	httpkit.Created(c, session)
}

func (s *Server) login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := s.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	session, err := s.store.authenticate(req.StudentID, req.Password)
	if err != nil {
		s.log.AuthEvent("login", req.StudentID, false, "invalid_credentials")
		httpkit.HandleError(c, err)
		return
	}

	token, err := httpkit.IssueAccessToken(s.cfg.GetDevJWTSecret(), session.UserID, session.Role, s.cfg.GetDevTokenTTL())
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to issue token", err))
		return
	}
	session.AccessToken = token

	s.log.AuthEvent("login", req.StudentID, true, "")
	httpkit.OK(c, session)
}

// me returns the account behind the bearer token.
func (s *Server) me(c *gin.Context) {
	session, err := s.store.profile(c.GetString(httpkit.ContextUserIDKey))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, session)
}

func (s *Server) listCafeterias(c *gin.Context) {
	httpkit.OK(c, s.store.listCafeterias(c.Query("q")))
}

func (s *Server) listMenus(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse(cafeteria.DateLayout, date); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
	}

	limit := cafeteria.DefaultMenuLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpkit.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	httpkit.OK(c, s.store.listMenus(date, c.Query("cafe"), limit))
}

func (s *Server) upsertMenu(c *gin.Context) {
	var in cafeteria.MenuInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	menu, err := s.store.upsertMenu(in)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, menu)
}

// tagUserType accepts "student" or "professor" in any case, ignoring
// surrounding spaces.
const tagUserType = "usertype"

func normalizeUserType(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func validUserType(fl playground.FieldLevel) bool {
	role := normalizeUserType(fl.Field().String())
	return role == transport.UserTypeStudent || role == transport.UserTypeProfessor
}

func health(c *gin.Context) {
	httpkit.OK(c, gin.H{"status": "ok"})
}
