package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Courses(), 4)
	assert.Len(t, c.FAQ(), 5)
	assert.Len(t, c.FAQCategories(), 4)
	assert.Len(t, c.Facilities(), 4)
	assert.Len(t, c.Schedule(), 3)
	assert.Len(t, c.Greeting(), 3)
	assert.Equal(t, "20231234", c.Profile().StudentID)
	assert.Equal(t, 24, c.Usage().Chats)

	menus := c.Menus()
	require.NotEmpty(t, menus)
	assert.Nil(t, menus[len(menus)-1].Price)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	courses := c.Courses()
	courses[0].Title = "changed"
	assert.Equal(t, "소프트웨어공학", c.Courses()[0].Title)

	days := c.Schedule()
	days[0].Events[0].Title = "changed"
	assert.Equal(t, "소프트웨어공학 중간고사", c.Schedule()[0].Events[0].Title)

	menus := c.Menus()
	*menus[0].Price = 1
	assert.Equal(t, 3000, *c.Menus()[0].Price)
}

func TestCourseAvailability(t *testing.T) {
	assert.True(t, Course{Status: "신청가능"}.Available())
	assert.False(t, Course{Status: "마감"}.Available())
}

func TestScheduleTagKind(t *testing.T) {
	tests := map[string]TagKind{
		"시험":   TagExam,
		"세미나":  TagSeminar,
		"수강신청": TagRegistration,
		"휴강":   TagOther,
		"":     TagOther,
	}
	for tag, want := range tests {
		assert.Equal(t, want, ScheduleEvent{Tag: tag}.TagKind(), tag)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	doc := []byte(`
courses:
  - {id: "1", title: a, code: A1, professor: p, status: 마감}
  - {id: "1", title: b, code: B1, professor: q, status: 마감}
profile: {name: n, student_id: "1", year: 1}
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestParseRejectsMissingFields(t *testing.T) {
	doc := []byte(`
courses:
  - {id: "1", code: A1, professor: p, status: 마감}
profile: {name: n, student_id: "1", year: 1}
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title")
}

func TestParseRejectsOrphanMenu(t *testing.T) {
	doc := []byte(`
profile: {name: n, student_id: "1", year: 1}
menus:
  - {cafe_id: 57b9bcb9-ec66-444f-b96d-1e252653eee6, date: "2025-11-10", meal_type: 중식, item_name: x}
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cafeteria")
}
