package filter

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/rallyctl/rally"
)

func testObjects() []rally.Object {
	return []rally.Object{
		{
			"_ref":          "/hierarchicalrequirement/1.js",
			"FormattedID":   "US1",
			"Name":          "Login page",
			"ScheduleState": "Accepted",
			"PlanEstimate":  float64(5),
			"Owner":         map[string]any{"_ref": "/user/10.js"},
			"CreationDate":  "2020-01-02T03:04:05.000Z",
		},
		{
			"_ref":          "/hierarchicalrequirement/2.js",
			"FormattedID":   "US2",
			"Name":          "Search results",
			"ScheduleState": "Defined",
			"PlanEstimate":  float64(2),
			"CreationDate":  time.Now().UTC().Format(time.RFC3339),
		},
		{
			"_ref":          "/hierarchicalrequirement/3.js",
			"FormattedID":   "US3",
			"Name":          "Logout",
			"ScheduleState": "Accepted",
		},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "field comparison",
			expression: `ScheduleState == "Accepted"`,
		},
		{
			name:        "empty expression",
			expression:  "  ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `icontains(Name, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "native contains operator",
			expression: `lower(Name) contains "log"`,
		},
		{
			name:       "helpers",
			expression: `icontains(Name, "log") and daysSince(CreationDate) > 30 and refID(Owner) == "10"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression, zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				require.ErrorAs(t, err, &compErr)
				assert.Equal(t, tt.expression, compErr.Expression)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.String())
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		expected   []string
	}{
		{
			name:       "string equality",
			expression: `ScheduleState == "Accepted"`,
			expected:   []string{"US1", "US3"},
		},
		{
			name:       "numeric comparison skips objects missing the field",
			expression: `PlanEstimate > 3`,
			expected:   []string{"US1"},
		},
		{
			name:       "case insensitive contains",
			expression: `icontains(Name, "LOG")`,
			expected:   []string{"US1", "US3"},
		},
		{
			name:       "native contains is case sensitive",
			expression: `Name contains "Log"`,
			expected:   []string{"US1", "US3"},
		},
		{
			name:       "case insensitive prefix",
			expression: `istartsWith(Name, "login")`,
			expected:   []string{"US1"},
		},
		{
			name:       "case insensitive suffix",
			expression: `iendsWith(FormattedID, "us3")`,
			expected:   []string{"US3"},
		},
		{
			name:       "upper",
			expression: `upper(ScheduleState) == "DEFINED"`,
			expected:   []string{"US2"},
		},
		{
			name:       "created before a cutoff",
			expression: `parseDate(CreationDate) < daysAgo(30)`,
			expected:   []string{"US1"},
		},
		{
			name:       "created up to now",
			expression: `parseDate(CreationDate) <= now()`,
			expected:   []string{"US1", "US2"},
		},
		{
			name:       "nested reference",
			expression: `refOf(Owner) == "/user/10.js"`,
			expected:   []string{"US1"},
		},
		{
			name:       "age in days",
			expression: `daysSince(CreationDate) > 365`,
			expected:   []string{"US1"},
		},
		{
			name:       "non boolean result never matches",
			expression: `FormattedID`,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MustCompile(tt.expression)

			var got []string
			for _, obj := range f.Apply(testObjects()) {
				got = append(got, obj.String("FormattedID"))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRefID(t *testing.T) {
	assert.Equal(t, "42", refID("/defect/42.js"))
	assert.Equal(t, "42", refID("https://rally1.rallydev.com/slm/webservice/1.40/defect/42.js"))
	assert.Equal(t, "7", refID(map[string]any{"_ref": "/user/7.js"}))
	assert.Equal(t, "", refID(nil))
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, 2020, parseDate("2020-01-02T03:04:05.000Z").Year())
	assert.Equal(t, time.March, parseDate("2021-03-04").Month())
	assert.True(t, parseDate("not a date").IsZero())
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("") })
}
