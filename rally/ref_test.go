package rally

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"story", "hierarchicalrequirement"},
		{"userstory", "hierarchicalrequirement"},
		{"feature", "portfolioitem/feature"},
		{"initiative", "portfolioitem/initiative"},
		{"theme", "portfolioitem/theme"},
		{"Defect", "defect"},
		{"TASK", "task"},
		{"portfolioitem/Epic", "portfolioitem/epic"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Translate(tt.input))
		})
	}

	for alias, want := range typeAliases {
		assert.Equal(t, want, Translate(strings.ToUpper(alias)), "alias %s", alias)
		assert.Equal(t, Translate(alias), Translate(strings.ToUpper(alias)))
	}
}

func TestBuildRef(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		id       string
		expected string
	}{
		{"collection", "defect", "", "/defect.js"},
		{"zero id is a collection", "defect", "0", "/defect.js"},
		{"object", "defect", "42", "/defect/42.js"},
		{"aliased object", "Story", "42", "/hierarchicalrequirement/42.js"},
		{"create endpoint", "feature", CreateID, "/portfolioitem/feature/create.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildRef(tt.typeName, tt.id))
		})
	}

	assert.Equal(t, BuildRef("task", "7"), (&Client{}).Ref("task", "7"))
}

func TestApplyWorkspace(t *testing.T) {
	t.Run("no workspace and no params", func(t *testing.T) {
		c := &Client{}
		assert.Equal(t, "/defect.js", c.applyWorkspace("/defect.js", nil))
		assert.Equal(t, "/defect.js", c.applyWorkspace("/defect.js", url.Values{}))
	})

	t.Run("workspace set", func(t *testing.T) {
		c := &Client{}
		c.SetWorkspace("/workspace/12345")

		got := c.applyWorkspace("/defect/1.js", nil)
		assert.Equal(t, "/defect/1.js?workspace=%2Fworkspace%2F12345", got)
	})

	t.Run("params are form encoded", func(t *testing.T) {
		c := &Client{}
		c.SetWorkspace("/workspace/1")

		params := url.Values{}
		params.Set("query", `(Name = "a b&c")`)
		got := c.applyWorkspace("defect.js", params)

		assert.True(t, strings.HasPrefix(got, "defect.js?"))
		values, err := url.ParseQuery(strings.TrimPrefix(got, "defect.js?"))
		assert.NoError(t, err)
		assert.Equal(t, `(Name = "a b&c")`, values.Get("query"))
		assert.Equal(t, "/workspace/1", values.Get("workspace"))
		assert.Contains(t, got, "query=%28Name+%3D+%22a+b%26c%22%29")
	})
}

func TestHasMorePages(t *testing.T) {
	tests := []struct {
		total, start int
		expected     bool
	}{
		{250, 1, true},
		{250, 101, true},
		{250, 201, false},
		{100, 1, false},
		{101, 1, true},
		{50, 1, false},
		{0, 1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, hasMorePages(tt.total, tt.start, PageSize), "total=%d start=%d", tt.total, tt.start)
	}
}
