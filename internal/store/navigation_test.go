package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragment(t *testing.T) {
	assert.Equal(t, "#/webinar/12", Fragment("12"))
}

func TestParseFragment(t *testing.T) {
	tests := []struct {
		in     string
		wantID string
		wantOK bool
	}{
		{"#/webinar/1", "1", true},
		{"/webinar/3", "3", true},
		{" #/webinar/7 ", "7", true},
		{"#/webinar/", "", false},
		{"#/webinar/1/extra", "", false},
		{"#/webinars/1", "", false},
		{"", "", false},
		{"#", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, ok := ParseFragment(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
