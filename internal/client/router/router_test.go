package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"/", Route{Path: "/", View: ViewHome}},
		{"", Route{Path: "/", View: ViewHome}},
		{"/auth", Route{Path: "/auth", View: ViewAuth}},
		{"auth", Route{Path: "/auth", View: ViewAuth}},
		{"/profile/", Route{Path: "/profile", View: ViewProfile}},
		{"/information", Route{Path: "/information", View: ViewInformation}},
		{"/information/3", Route{Path: "/information/3", View: ViewInformation, PageToken: "3"}},
		{"/information/abc?x=1", Route{Path: "/information/abc", View: ViewInformation, PageToken: "abc"}},
		{"/information/1/2", Route{Path: "/information/1/2", View: ViewNotFound}},
		{"/nowhere", Route{Path: "/nowhere", View: ViewNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

func TestRoute_Protected(t *testing.T) {
	assert.True(t, Resolve("/information/2").Protected())
	assert.True(t, Resolve("/profile").Protected())
	assert.False(t, Resolve("/auth").Protected())
	assert.False(t, Resolve("/").Protected())
}

func TestInformationPage(t *testing.T) {
	assert.Equal(t, "/information/7", InformationPage("7"))
	assert.Equal(t, "/information/a%2Fb", InformationPage("a/b"))
}

func TestNavigator(t *testing.T) {
	n := NewNavigator("/")
	assert.Equal(t, "/", n.Current())

	n.Push("/information")
	n.Replace("/information/1")
	assert.Equal(t, "/information/1", n.Current())
	assert.Equal(t, ViewInformation, n.Route().View)

	n.Push("/profile")
	assert.True(t, n.Back())
	assert.Equal(t, "/information/1", n.Current())
	assert.True(t, n.Back())
	assert.Equal(t, "/", n.Current())
	assert.False(t, n.Back())
}

func TestView_String(t *testing.T) {
	assert.Equal(t, "information", ViewInformation.String())
	assert.Equal(t, "not found", ViewNotFound.String())
}
