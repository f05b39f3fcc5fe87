package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "이번 주 중간고사 일정 알려줘", Text("  이번 주   중간고사 일정 알려줘 "))
	assert.Equal(t, "hello", Text("<b>hello</b>"))
	assert.Equal(t, "첫 줄\n둘째 줄", Text("첫 줄 \n  둘째   줄"))
	assert.Equal(t, "", Text("<script></script>"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "학식 메뉴", StripHTML(`<p onclick="x()">학식 <i>메뉴</i></p>`))
	assert.Equal(t, "", StripHTML("<script>alert(1)</script>"))
	assert.Equal(t, "Q&A", StripHTML("Q&A"))
	assert.Equal(t, "a < b", StripHTML("a < b"))
}
