package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginReplacedByHome(t *testing.T) {
	nav := New(Login)
	nav.Navigate(SignUp)
	assert.Equal(t, []Route{Login, SignUp}, nav.Stack())

	// sign-up success goes back to login
	nav.Navigate(Login)
	assert.Equal(t, []Route{Login}, nav.Stack())

	nav.Replace(Home)
	assert.Equal(t, Home, nav.Current())
	assert.False(t, nav.Back())
}

func TestNavigateAndBack(t *testing.T) {
	nav := New(Home)
	nav.Navigate(FAQ)
	nav.Navigate(Chat)
	assert.Equal(t, []Route{Home, FAQ, Chat}, nav.Stack())

	assert.True(t, nav.Back())
	assert.Equal(t, FAQ, nav.Current())

	nav.Navigate(Home)
	assert.Equal(t, []Route{Home}, nav.Stack())
}

func TestStackIsCopy(t *testing.T) {
	nav := New(Home)
	s := nav.Stack()
	s[0] = Chat
	assert.Equal(t, Home, nav.Current())
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "학사 일정", Schedule.Title())
	assert.Equal(t, "Unknown", Route("Unknown").Title())
	for _, r := range HomeMenu {
		assert.NotEqual(t, string(r), r.Title())
	}
}
