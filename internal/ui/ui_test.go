package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"sigma_app/internal/auth"
	"sigma_app/internal/catalog"
	"sigma_app/internal/facility"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"학생식당", 8},
		{"CS101 자료구조", 14},
		{"ＡＢ", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayWidth(tt.in), tt.in)
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "가나  ", Pad("가나", 6))
	assert.Equal(t, "toolong", Pad("toolong", 3))
}

func TestTableAlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	tbl := Table{
		Headers: []string{"이름", "정원"},
		Rows: [][]string{
			{"중앙도서관", "82%"},
			{"Gym", "3%"},
			{"short"},
		},
	}
	require.NoError(t, tbl.Render(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "이름        정원", lines[0])
	assert.Equal(t, "----------  ----", lines[1])
	assert.Equal(t, "중앙도서관  82%", lines[2])
	assert.Equal(t, "Gym         3%", lines[3])
	assert.Equal(t, "short", lines[4])
}

func TestEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table{}.Render(&buf))
	assert.Empty(t, buf.String())
}

func TestNoticeAndBadges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Notice(&buf, auth.Outcome{Flow: auth.FlowLogin, Kind: auth.Rejected, Message: "학번 혹은 비밀번호가 잘못되었습니다."}))
	assert.Equal(t, "로그인 실패\n학번 혹은 비밀번호가 잘못되었습니다.\n", buf.String())

	assert.Equal(t, "혼잡", LevelBadge(facility.Crowded))
	assert.Equal(t, "정보 없음", LevelBadge(facility.Unknown))
	assert.Equal(t, "나: 안녕", ChatLine(catalog.ChatMessage{Text: "안녕", Sender: catalog.SenderUser}))
	assert.Equal(t, "AI: 반가워요", ChatLine(catalog.ChatMessage{Text: "반가워요", Sender: catalog.SenderAI}))
	assert.Equal(t, "신청가능", CourseStatus(catalog.Course{Status: "신청가능"}))
}

func TestScriptedDriver(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	d := NewScriptedDriver(
		Answer{Text: "20231234"},
		Answer{Choice: 1},
		Answer{Yes: true},
		Answer{Choice: 9},
		Answer{Err: boom},
	)

	s, err := d.Input(ctx, InputConfig{Message: "학번"})
	require.NoError(t, err)
	assert.Equal(t, "20231234", s)

	i, err := d.Select(ctx, SelectConfig{Message: "메뉴", Options: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	yes, err := d.Confirm(ctx, ConfirmConfig{Message: "종료?"})
	require.NoError(t, err)
	assert.True(t, yes)

	i, err = d.Select(ctx, SelectConfig{Message: "메뉴", Options: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, -1, i)

	_, err = d.Password(ctx, InputConfig{Message: "비밀번호"})
	assert.ErrorIs(t, err, boom)

	_, err = d.Input(ctx, InputConfig{Message: "more"})
	assert.ErrorIs(t, err, ErrAborted)

	assert.Equal(t, []string{"학번", "메뉴", "종료?", "메뉴", "비밀번호", "more"}, d.Asked)
}

func TestScriptedDriverRunsValidator(t *testing.T) {
	d := NewScriptedDriver(Answer{Text: ""})
	_, err := d.Input(context.Background(), InputConfig{
		Message: "x",
		Validator: func(s string) error {
			if s == "" {
				return errors.New("required")
			}
			return nil
		},
	})
	assert.EqualError(t, err, "required")
}
