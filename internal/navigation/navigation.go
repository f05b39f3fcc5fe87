// Package navigation is a screen stack: navigate, replace and go back.
package navigation

import (
	"slices"
	"sync"
)

// Route names a screen.
type Route string

const (
	Login        Route = "Login"
	SignUp       Route = "SignUp"
	Profile      Route = "Profile"
	Home         Route = "Home"
	Chat         Route = "Chat"
	Schedule     Route = "AcademicSchedule"
	CourseSearch Route = "CourseSearch"
	Facility     Route = "FacilityStatus"
	FAQ          Route = "FAQ"
)

var titles = map[Route]string{
	Login:        "로그인",
	SignUp:       "회원가입",
	Profile:      "프로필",
	Home:         "홈",
	Chat:         "SIGMA 챗봇",
	Schedule:     "학사 일정",
	CourseSearch: "강의 검색",
	Facility:     "시설 현황",
	FAQ:          "자주 묻는 질문",
}

// Title returns the screen title.
func (r Route) Title() string {
	if t, ok := titles[r]; ok {
		return t
	}
	return string(r)
}

// HomeMenu lists the features reachable from the home screen, in order.
var HomeMenu = []Route{Chat, Schedule, CourseSearch, Facility, FAQ}

// Navigator is a stack of routes. It is never empty.
type Navigator struct {
	mu    sync.Mutex
	stack []Route
}

// New creates a navigator showing initial.
func New(initial Route) *Navigator {
	return &Navigator{stack: []Route{initial}}
}

// Current returns the route on top of the stack.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Stack returns the routes from bottom to top.
func (n *Navigator) Stack() []Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.stack)
}

// Navigate goes to r. If r is already on the stack the routes above it are
// popped, otherwise r is pushed.
func (n *Navigator) Navigate(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i := slices.Index(n.stack, r); i >= 0 {
		n.stack = n.stack[:i+1]
		return
	}
	n.stack = append(n.stack, r)
}

// Replace swaps the top route for r.
func (n *Navigator) Replace(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack[len(n.stack)-1] = r
}

// Back pops the top route. It reports false at the root.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// Reset clears the stack down to r.
func (n *Navigator) Reset(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = []Route{r}
}
