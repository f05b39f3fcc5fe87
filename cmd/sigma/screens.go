package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sigma_app/internal/auth"
	"sigma_app/internal/auth/transport"
	"sigma_app/internal/catalog"
	"sigma_app/internal/chat"
	"sigma_app/internal/navigation"
	searchservice "sigma_app/internal/search/service"
	"sigma_app/internal/ui"
	"sigma_app/platform/apperr"
	"sigma_app/platform/events"
)

var errQuit = errors.New("quit")

const (
	menuBack   = "뒤로"
	menuQuit   = "종료"
	chatBack   = "/back"
	loginLabel = "로그인"
)

// run starts at the login screen.
func (a *app) run(ctx context.Context) error {
	return a.runFrom(ctx, navigation.New(navigation.Login))
}

// runFrom drives the screen stack until the user quits or ctx ends.
func (a *app) runFrom(ctx context.Context, nav *navigation.Navigator) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		route := nav.Current()
		if _, err := fmt.Fprintf(a.out, "\n== %s ==\n", route.Title()); err != nil {
			return err
		}

		var err error
		switch route {
		case navigation.Login:
			err = a.loginStep(ctx, nav)
		case navigation.SignUp:
			err = a.signUpStep(ctx, nav)
		case navigation.Home:
			err = a.homeStep(ctx, nav)
		case navigation.Profile:
			err = a.profileStep(ctx, nav)
		case navigation.Chat:
			err = a.chatScreen(ctx)
			nav.Back()
		case navigation.CourseSearch:
			err = a.courseSearchScreen(ctx)
			nav.Back()
		case navigation.FAQ:
			err = a.faqScreen(ctx)
			nav.Back()
		case navigation.Schedule:
			err = a.printSchedule()
			nav.Back()
		case navigation.Facility:
			err = a.printFacilities()
			nav.Back()
		default:
			nav.Reset(navigation.Home)
		}

		switch {
		case errors.Is(err, errQuit), errors.Is(err, ui.ErrAborted):
			return nil
		case err != nil:
			return err
		}
	}
}

func (a *app) loginStep(ctx context.Context, nav *navigation.Navigator) error {
	choice, err := a.prompt.Select(ctx, ui.SelectConfig{
		Message: "무엇을 할까요?",
		Options: []string{loginLabel, navigation.SignUp.Title(), menuQuit},
	})
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		out, err := a.loginScreen(ctx)
		if err != nil {
			return err
		}
		if out.OK() {
			nav.Replace(navigation.Home)
		}
		return nil
	case 1:
		nav.Navigate(navigation.SignUp)
		return nil
	default:
		return errQuit
	}
}

func (a *app) signUpStep(ctx context.Context, nav *navigation.Navigator) error {
	out, err := a.signUpScreen(ctx)
	if err != nil {
		return err
	}
	if out.OK() {
		nav.Navigate(navigation.Login)
		return nil
	}
	retry, err := a.prompt.Confirm(ctx, ui.ConfirmConfig{Message: "다시 입력할까요?", Default: true})
	if err != nil {
		return err
	}
	if !retry {
		nav.Back()
	}
	return nil
}

func (a *app) homeStep(ctx context.Context, nav *navigation.Navigator) error {
	options := make([]string, 0, len(navigation.HomeMenu)+2)
	for _, r := range navigation.HomeMenu {
		options = append(options, r.Title())
	}
	options = append(options, navigation.Profile.Title(), menuQuit)

	choice, err := a.prompt.Select(ctx, ui.SelectConfig{Message: "기능을 선택하세요", Options: options})
	if err != nil {
		return err
	}
	switch {
	case choice >= 0 && choice < len(navigation.HomeMenu):
		nav.Navigate(navigation.HomeMenu[choice])
	case choice == len(navigation.HomeMenu):
		nav.Navigate(navigation.Profile)
	default:
		return errQuit
	}
	return nil
}

func (a *app) profileStep(ctx context.Context, nav *navigation.Navigator) error {
	if err := a.printProfile(); err != nil {
		return err
	}
	choice, err := a.prompt.Select(ctx, ui.SelectConfig{Message: "선택", Options: []string{menuBack, "로그아웃"}})
	if err != nil {
		return err
	}
	if choice == 1 {
		a.session.Clear()
		nav.Reset(navigation.Login)
		return nil
	}
	nav.Back()
	return nil
}

// loginScreen collects the login form and submits it.
func (a *app) loginScreen(ctx context.Context) (auth.Outcome, error) {
	var form transport.LoginForm
	var err error
	if form.StudentID, err = a.prompt.Input(ctx, ui.InputConfig{Message: "학번"}); err != nil {
		return auth.Outcome{}, err
	}
	if form.Password, err = a.prompt.Password(ctx, ui.InputConfig{Message: "비밀번호"}); err != nil {
		return auth.Outcome{}, err
	}

	out := a.auth.Login(ctx, form)
	return out, ui.Notice(a.out, out)
}

// signUpScreen collects the sign-up form and submits it. Grade and enrollment
// status are only asked of students.
func (a *app) signUpScreen(ctx context.Context) (auth.Outcome, error) {
	var form transport.SignUpForm
	fields := []struct {
		label  string
		target *string
		secret bool
	}{
		{"이름", &form.Name, false},
		{"학번", &form.StudentID, false},
		{"이메일", &form.Email, false},
		{"전화번호", &form.Phone, false},
		{"비밀번호", &form.Password, true},
		{"비밀번호 확인", &form.ConfirmPassword, true},
		{"전공", &form.Major, false},
	}
	for _, f := range fields {
		cfg := ui.InputConfig{Message: f.label}
		var err error
		if f.secret {
			*f.target, err = a.prompt.Password(ctx, cfg)
		} else {
			*f.target, err = a.prompt.Input(ctx, cfg)
		}
		if err != nil {
			return auth.Outcome{}, err
		}
	}

	userType, err := a.prompt.Select(ctx, ui.SelectConfig{Message: "구분", Options: []string{"학생", "교수"}})
	if err != nil {
		return auth.Outcome{}, err
	}
	form.UserType = transport.UserTypeStudent
	if userType == 1 {
		form.UserType = transport.UserTypeProfessor
	}

	if form.UserType == transport.UserTypeStudent {
		if form.Grade, err = a.prompt.Input(ctx, ui.InputConfig{Message: "학년 (1-4)"}); err != nil {
			return auth.Outcome{}, err
		}
		status, err := a.prompt.Select(ctx, ui.SelectConfig{Message: "학적 상태", Options: []string{"재학", "휴학"}})
		if err != nil {
			return auth.Outcome{}, err
		}
		form.EnrollmentStatus = transport.EnrollmentEnrolled
		if status == 1 {
			form.EnrollmentStatus = transport.EnrollmentOnLeave
		}
	}

	out := a.auth.SignUp(ctx, form)
	return out, ui.Notice(a.out, out)
}

func (a *app) courseSearchScreen(ctx context.Context) error {
	for {
		query, err := a.prompt.Input(ctx, ui.InputConfig{Message: "강의명, 교수명, 과목코드 (빈 입력: 뒤로)"})
		if err != nil {
			return err
		}
		if strings.TrimSpace(query) == "" {
			return nil
		}
		if err := a.printCourses(query); err != nil {
			return err
		}
	}
}

func (a *app) faqScreen(ctx context.Context) error {
	counts := searchservice.CategoryCounts(a.catalog.FAQ(), a.catalog.FAQCategories())
	options := make([]string, 0, len(counts)+1)
	for _, c := range counts {
		options = append(options, fmt.Sprintf("%s (%d)", c.Name, c.Shown()))
	}
	options = append(options, menuBack)

	for {
		choice, err := a.prompt.Select(ctx, ui.SelectConfig{Message: "카테고리", Options: options})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(counts) {
			return nil
		}
		query, err := a.prompt.Input(ctx, ui.InputConfig{Message: "검색어"})
		if err != nil {
			return err
		}
		if err := a.printFAQ(query, counts[choice].Name); err != nil {
			return err
		}
	}
}

func (a *app) chatScreen(ctx context.Context) error {
	responder, err := a.newReply(ctx)
	if err != nil {
		a.log.Warn("assistant unavailable", "error", err)
	}
	conv := chat.NewConversation(a.catalog.Greeting(), responder, a.log)
	for _, m := range conv.Messages() {
		if _, err := fmt.Fprintln(a.out, ui.ChatLine(m)); err != nil {
			return err
		}
	}

	for {
		text, err := a.prompt.Input(ctx, ui.InputConfig{Message: "메시지 (" + chatBack + ": 뒤로)"})
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == chatBack {
			return nil
		}

		added, err := conv.Send(ctx, text)
		for _, m := range added {
			if m.Sender == catalog.SenderUser {
				a.bus.Publish(ctx, chat.MessageSent{BaseEvent: events.NewBaseEvent(), MessageID: m.ID})
				continue
			}
			if _, werr := fmt.Fprintln(a.out, ui.ChatLine(m)); werr != nil {
				return werr
			}
		}
		if err != nil {
			if _, werr := fmt.Fprintln(a.out, apperr.Message(err)); werr != nil {
				return werr
			}
		}
	}
}
