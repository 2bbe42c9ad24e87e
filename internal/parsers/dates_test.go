package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "weekday with long month and time",
			in:   "Monday, January 1, 2024 12:00:00 PM",
			want: "2024-01-01T12:00:00",
		},
		{
			name: "long month without time",
			in:   "March 15, 2023",
			want: "2023-03-15T00:00:00",
		},
		{
			name: "numeric date with time",
			in:   "1/1/2024 12:00:00 PM",
			want: "2024-01-01T12:00:00",
		},
		{
			name: "numeric date",
			in:   "12/31/2022",
			want: "2022-12-31T00:00:00",
		},
		{
			name: "iso with time",
			in:   "2024-01-01 12:00:00",
			want: "2024-01-01T12:00:00",
		},
		{
			name: "iso date only",
			in:   "2024-01-01",
			want: "2024-01-01T00:00:00",
		},
		{
			name: "weekday without comma",
			in:   "Sunday March 3, 2024",
			want: "2024-03-03T00:00:00",
		},
		{
			name: "afternoon time",
			in:   "Tuesday, July 4, 2023 6:30:15 PM",
			want: "2023-07-04T18:30:15",
		},
		{
			name: "unparseable passthrough",
			in:   "sometime last summer",
			want: "sometime last summer",
		},
		{
			name: "empty passthrough",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in))
		})
	}
}
