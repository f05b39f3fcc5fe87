package catalog

// StatusOpen is the course status shown while registration is possible.
const StatusOpen = "신청가능"

// Course is one row of the course search screen.
type Course struct {
	ID        string `yaml:"id" validate:"required"`
	Title     string `yaml:"title" validate:"required"`
	Code      string `yaml:"code" validate:"required"`
	Professor string `yaml:"professor" validate:"required"`
	Location  string `yaml:"location"`
	Capacity  string `yaml:"capacity"`
	Schedule  string `yaml:"schedule"`
	Credits   string `yaml:"credits"`
	Status    string `yaml:"status" validate:"required"`
}

// SearchFields returns title, professor and code.
func (c Course) SearchFields() []string {
	return []string{c.Title, c.Professor, c.Code}
}

// Category is empty: the course screen has no category pills.
func (c Course) Category() string { return "" }

// Available reports whether registration is still open.
func (c Course) Available() bool { return c.Status == StatusOpen }

// FAQEntry is a single question on the FAQ screen.
type FAQEntry struct {
	ID       string `yaml:"id" validate:"required"`
	Group    string `yaml:"category" validate:"required"`
	Question string `yaml:"question" validate:"required"`
	Answer   string `yaml:"answer" validate:"required"`
}

// SearchFields returns question and answer.
func (f FAQEntry) SearchFields() []string {
	return []string{f.Question, f.Answer}
}

// Category returns the FAQ category the entry is filed under.
func (f FAQEntry) Category() string { return f.Group }

// FAQCategory is a category pill. Count is the advertised total, which can
// exceed the entries bundled with the app.
type FAQCategory struct {
	Name  string `yaml:"name" validate:"required"`
	Count int    `yaml:"count" validate:"gte=0"`
	Color string `yaml:"color" validate:"omitempty,hexcolor"`
}

// Facility is a campus facility with its current head count.
type Facility struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	Location string `yaml:"location"`
	Current  int    `yaml:"current" validate:"gte=0"`
	Total    int    `yaml:"total" validate:"gte=0"`
	Hours    string `yaml:"hours"`
}

// ScheduleDay groups the events of one calendar day.
type ScheduleDay struct {
	Title  string          `yaml:"title" validate:"required"`
	Events []ScheduleEvent `yaml:"events" validate:"dive"`
}

// TagKind classifies the free-text schedule tag.
type TagKind string

const (
	TagExam         TagKind = "exam"
	TagSeminar      TagKind = "seminar"
	TagRegistration TagKind = "registration"
	TagOther        TagKind = "other"
)

// ScheduleEvent is one entry on the academic schedule.
type ScheduleEvent struct {
	Time     string `yaml:"time" validate:"required"`
	Title    string `yaml:"title" validate:"required"`
	Location string `yaml:"location"`
	Tag      string `yaml:"tag"`
}

// TagKind maps the Korean tag label to a kind.
func (e ScheduleEvent) TagKind() TagKind {
	switch e.Tag {
	case "시험":
		return TagExam
	case "세미나":
		return TagSeminar
	case "수강신청":
		return TagRegistration
	default:
		return TagOther
	}
}

// Profile is the student shown on the profile screen.
type Profile struct {
	Name      string  `yaml:"name" validate:"required"`
	StudentID string  `yaml:"student_id" validate:"required,numeric"`
	Major     string  `yaml:"major"`
	GPA       float64 `yaml:"gpa" validate:"gte=0,lte=4.5"`
	Credits   int     `yaml:"credits" validate:"gte=0"`
	Year      int     `yaml:"year" validate:"gte=1,lte=4"`
}

// Usage summarizes assistant usage on the profile screen.
type Usage struct {
	Chats           int    `yaml:"chats"`
	Questions       int    `yaml:"questions"`
	AvgResponseTime string `yaml:"avg_response_time"`
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderAI   Sender = "ai"
	SenderUser Sender = "user"
)

// ChatMessage is one bubble in the chat transcript.
type ChatMessage struct {
	ID     string `yaml:"id" validate:"required"`
	Text   string `yaml:"text" validate:"required"`
	Sender Sender `yaml:"sender" validate:"oneof=ai user"`
}

// Cafeteria seeds the dev server's cafeteria table.
type Cafeteria struct {
	ID       string `yaml:"id" validate:"required,uuid"`
	Name     string `yaml:"name" validate:"required"`
	Location string `yaml:"location"`
}

// Menu seeds one menu item served on a date. Price is optional.
type Menu struct {
	CafeID   string `yaml:"cafe_id" validate:"required,uuid"`
	Date     string `yaml:"date" validate:"required,datetime=2006-01-02"`
	MealType string `yaml:"meal_type" validate:"required"`
	ItemName string `yaml:"item_name" validate:"required"`
	Price    *int   `yaml:"price" validate:"omitempty,gte=0"`
}
