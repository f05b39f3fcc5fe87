package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"sigma_app/internal/auth/transport"
	"sigma_app/internal/cafeteria"
	"sigma_app/internal/catalog"
	"sigma_app/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     []byte
	Phone            *string
	Role             string
	Grade            *int
	EnrollmentStatus *string
	DeptID           string
	CreatedAt        time.Time
}

type cafeRow struct {
	ID       string
	Name     string
	Location *string
}

type menuRow struct {
	ID       string
	CafeID   string
	Date     string
	MealType string
	ItemName string
	Price    *int
}

type menuKey struct {
	cafeID, date, mealType, itemName string
}

// store is the in-memory stand-in for the campus database.
type store struct {
	mu          sync.RWMutex
	users       map[string]*user
	departments map[string]string // name -> id
	cafes       map[string]*cafeRow
	menus       map[menuKey]*menuRow
	bcryptCost  int
	now         func() time.Time
}

func newStore(cat *catalog.Catalog) *store {
	s := &store{
		users:       make(map[string]*user),
		departments: make(map[string]string),
		cafes:       make(map[string]*cafeRow),
		menus:       make(map[menuKey]*menuRow),
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
	}
	if cat == nil {
		return s
	}
	for _, c := range cat.Cafeterias() {
		row := &cafeRow{ID: c.ID, Name: c.Name}
		if c.Location != "" {
			loc := c.Location
			row.Location = &loc
		}
		s.cafes[c.ID] = row
	}
	for _, m := range cat.Menus() {
		key := menuKey{m.CafeID, m.Date, m.MealType, m.ItemName}
		s.menus[key] = &menuRow{
			ID:       uuid.NewString(),
			CafeID:   m.CafeID,
			Date:     m.Date,
			MealType: m.MealType,
			ItemName: m.ItemName,
			Price:    m.Price,
		}
	}
	return s
}

// deptIDLocked returns the department id for name, creating it on first use.
func (s *store) deptIDLocked(name string) string {
	if id, ok := s.departments[name]; ok {
		return id
	}
	id := uuid.NewString()
	s.departments[name] = id
	return id
}

func (s *store) deptNameLocked(id string) string {
	for name, deptID := range s.departments {
		if deptID == id {
			return name
		}
	}
	return ""
}

func (s *store) createUser(req transport.SignUpRequest, role string) (transport.SessionInfo, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return transport.SessionInfo{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.StudentID]; exists {
		return transport.SessionInfo{}, apperr.Conflict("studentId already registered")
	}

	u := &user{
		ID:           req.StudentID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		DeptID:       s.deptIDLocked(req.Major),
		CreatedAt:    s.now(),
	}
	if req.Phone != "" {
		p := req.Phone
		u.Phone = &p
	}
	if role == transport.UserTypeStudent {
		u.Grade = req.Grade
		u.EnrollmentStatus = req.EnrollmentStatus
	}
	s.users[u.ID] = u

	return s.sessionLocked(u), nil
}

func (s *store) authenticate(studentID, password string) (transport.SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[studentID]
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return transport.SessionInfo{}, apperr.Unauthorized("invalid credentials")
	}
	return s.sessionLocked(u), nil
}

func (s *store) profile(userID string) (transport.SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return transport.SessionInfo{}, apperr.NotFound("user not found")
	}
	return s.sessionLocked(u), nil
}

func (s *store) sessionLocked(u *user) transport.SessionInfo {
	return transport.SessionInfo{
		OK:               true,
		UserID:           u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		DeptName:         s.deptNameLocked(u.DeptID),
		Phone:            u.Phone,
		Grade:            u.Grade,
		EnrollmentStatus: u.EnrollmentStatus,
		CreatedAt:        u.CreatedAt.Format(cafeteria.DateLayout),
	}
}

func (s *store) listCafeterias(q string) []cafeteria.Cafeteria {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]cafeteria.Cafeteria, 0, len(s.cafes))
	for _, c := range s.cafes {
		if q != "" && !containsFold(c.Name, q) {
			continue
		}
		out = append(out, cafeteria.Cafeteria{ID: c.ID, Name: c.Name, Location: c.Location})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *store) listMenus(date, cafe string, limit int) []cafeteria.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]cafeteria.Menu, 0)
	for _, m := range s.menus {
		if date != "" && m.Date != date {
			continue
		}
		c := s.cafes[m.CafeID]
		if cafe != "" && !containsFold(c.Name, cafe) {
			continue
		}
		out = append(out, toMenu(m, c.Name))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.MealType != b.MealType {
			return a.MealType < b.MealType
		}
		if a.ItemName != b.ItemName {
			return a.ItemName < b.ItemName
		}
		return a.CafeName < b.CafeName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *store) upsertMenu(in cafeteria.MenuInput) (cafeteria.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cafe *cafeRow
	for _, c := range s.cafes {
		if c.Name == in.CafeName {
			cafe = c
			break
		}
	}
	if cafe == nil {
		return cafeteria.Menu{}, apperr.NotFound("cafeteria not found")
	}

	key := menuKey{cafe.ID, in.Date, in.MealType, in.ItemName}
	row, ok := s.menus[key]
	if !ok {
		row = &menuRow{
			ID:       uuid.NewString(),
			CafeID:   cafe.ID,
			Date:     in.Date,
			MealType: in.MealType,
			ItemName: in.ItemName,
		}
		s.menus[key] = row
	}
	row.Price = in.Price

	return toMenu(row, cafe.Name), nil
}

func toMenu(m *menuRow, cafeName string) cafeteria.Menu {
	return cafeteria.Menu{
		ID:       m.ID,
		CafeName: cafeName,
		Date:     m.Date,
		MealType: m.MealType,
		ItemName: m.ItemName,
		Price:    m.Price,
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
