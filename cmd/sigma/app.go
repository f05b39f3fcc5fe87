package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sigma_app/internal/api"
	authclient "sigma_app/internal/auth/client"
	authservice "sigma_app/internal/auth/service"
	"sigma_app/internal/cafeteria"
	"sigma_app/internal/catalog"
	"sigma_app/internal/chat"
	"sigma_app/internal/facility"
	searchservice "sigma_app/internal/search/service"
	"sigma_app/internal/session"
	"sigma_app/internal/ui"
	"sigma_app/platform/config"
	"sigma_app/platform/events"
	"sigma_app/platform/logger"
)

// app wires every dependency a command needs.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	bus      *events.InMemoryBus
	catalog  *catalog.Catalog
	session  *session.Store
	auth     *authservice.Service
	cafes    *cafeteria.Client
	prompt   ui.PromptDriver
	out      io.Writer
	newReply func(ctx context.Context) (chat.Responder, error)
}

func newApp(cfg *config.Config, log *logger.Logger, prompt ui.PromptDriver, out io.Writer) (*app, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	apiClient := api.New(cfg, log)
	bus := events.NewInMemoryBus(log)
	store := session.NewStore()
	store.Subscribe(bus)

	a := &app{
		cfg:     cfg,
		log:     log,
		bus:     bus,
		catalog: cat,
		session: store,
		auth:    authservice.New(authclient.New(apiClient, log), bus, cfg, log),
		cafes:   cafeteria.New(apiClient, log),
		prompt:  prompt,
		out:     out,
	}
	a.newReply = a.defaultResponder
	return a, nil
}

func (a *app) defaultResponder(ctx context.Context) (chat.Responder, error) {
	if !a.cfg.IsAssistantEnabled() {
		return nil, nil
	}
	r, err := chat.NewGeminiResponder(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (a *app) printCourses(query string) error {
	res := searchservice.SearchCourses(a.catalog.Courses(), query)
	if res.NoResults {
		_, err := fmt.Fprintln(a.out, "검색 결과가 없습니다.")
		return err
	}
	tbl := ui.Table{Headers: []string{"과목코드", "강의명", "교수", "강의실", "시간", "정원", "학점", "상태"}}
	for _, c := range res.Items {
		tbl.Rows = append(tbl.Rows, []string{c.Code, c.Title, c.Professor, c.Location, c.Schedule, c.Capacity, c.Credits, ui.CourseStatus(c)})
	}
	return tbl.Render(a.out)
}

func (a *app) printFAQ(query, category string) error {
	entries := a.catalog.FAQ()
	var pills []string
	for _, c := range searchservice.CategoryCounts(entries, a.catalog.FAQCategories()) {
		label := fmt.Sprintf("%s(%d)", c.Name, c.Shown())
		if c.Name == category || (category == "" && c.Name == searchservice.AllCategories) {
			label = "[" + label + "]"
		}
		pills = append(pills, label)
	}
	if _, err := fmt.Fprintln(a.out, strings.Join(pills, " ")); err != nil {
		return err
	}

	res := searchservice.SearchFAQ(entries, query, category)
	if res.NoResults {
		_, err := fmt.Fprintln(a.out, "검색 결과가 없습니다.")
		return err
	}
	for _, e := range res.Items {
		if _, err := fmt.Fprintf(a.out, "\nQ. %s\nA. %s\n", e.Question, e.Answer); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) printFacilities() error {
	tbl := ui.Table{Headers: []string{"시설", "위치", "이용 현황", "혼잡도", "운영 시간"}}
	for _, s := range facility.Statuses(a.catalog.Facilities()) {
		f := s.Facility
		usage := fmt.Sprintf("%d/%d (%d%%)", f.Current, f.Total, s.Percent())
		tbl.Rows = append(tbl.Rows, []string{f.Name, f.Location, usage, ui.LevelBadge(s.Level), f.Hours})
	}
	return tbl.Render(a.out)
}

func (a *app) printSchedule() error {
	for i, day := range a.catalog.Schedule() {
		if i > 0 {
			if _, err := fmt.Fprintln(a.out); err != nil {
				return err
			}
		}
		if err := ui.Heading(a.out, day.Title); err != nil {
			return err
		}
		tbl := ui.Table{}
		for _, e := range day.Events {
			tbl.Rows = append(tbl.Rows, []string{e.Time, e.Title, e.Location, ui.TagColor(e.TagKind()).Sprint(e.Tag)})
		}
		if err := tbl.Render(a.out); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) printProfile() error {
	p := a.catalog.Profile()
	name, studentID, major := p.Name, p.StudentID, p.Major
	if s, ok := a.session.Current(); ok {
		name, studentID, major = s.Name, s.UserID, s.DeptName
	}
	// question counts arrive asynchronously
	a.bus.Wait()
	u := a.catalog.Usage()

	if err := ui.Heading(a.out, name); err != nil {
		return err
	}
	tbl := ui.Table{Rows: [][]string{
		{"학번", studentID},
		{"전공", major},
		{"학년", strconv.Itoa(p.Year) + "학년"},
		{"평점", strconv.FormatFloat(p.GPA, 'f', 2, 64)},
		{"이수 학점", strconv.Itoa(p.Credits)},
		{"대화 수", strconv.Itoa(u.Chats)},
		{"질문 수", strconv.Itoa(u.Questions + a.session.Questions())},
		{"평균 응답 시간", u.AvgResponseTime},
	}}
	return tbl.Render(a.out)
}

func (a *app) printCafeterias(ctx context.Context, query string) error {
	cafes, err := a.cafes.ListCafeterias(ctx, query)
	if err != nil {
		return err
	}
	tbl := ui.Table{Headers: []string{"식당", "위치"}}
	for _, c := range cafes {
		loc := "-"
		if c.Location != nil {
			loc = *c.Location
		}
		tbl.Rows = append(tbl.Rows, []string{c.Name, loc})
	}
	return tbl.Render(a.out)
}

func (a *app) printMenus(ctx context.Context, filter cafeteria.MenuFilter) error {
	menus, err := a.cafes.ListMenus(ctx, filter)
	if err != nil {
		return err
	}
	if len(menus) == 0 {
		_, err := fmt.Fprintln(a.out, "등록된 메뉴가 없습니다.")
		return err
	}
	return menuTable(menus).Render(a.out)
}

func (a *app) upsertMenu(ctx context.Context, in cafeteria.MenuInput) error {
	menu, err := a.cafes.UpsertMenu(ctx, in)
	if err != nil {
		return err
	}
	a.log.Info("menu saved", "menu_id", menu.ID, "cafe", menu.CafeName, "date", menu.Date)
	return menuTable([]cafeteria.Menu{*menu}).Render(a.out)
}

func menuTable(menus []cafeteria.Menu) ui.Table {
	tbl := ui.Table{Headers: []string{"날짜", "식당", "구분", "메뉴", "가격"}}
	for _, m := range menus {
		price := "-"
		if m.Price != nil {
			price = strconv.Itoa(*m.Price) + "원"
		}
		tbl.Rows = append(tbl.Rows, []string{m.Date, m.CafeName, m.MealType, m.ItemName, price})
	}
	return tbl
}
