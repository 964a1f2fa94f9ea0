package gitlab

import (
	"errors"
	"testing"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestProjectIDFromRepositoryURL(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "numeric id", input: "12345", want: "12345"},
		{name: "plain path", input: "group/project", want: "group%2Fproject"},
		{name: "https url", input: "https://gitlab.com/group/project", want: "group%2Fproject"},
		{name: "https url with .git", input: "https://gitlab.com/group/sub/project.git", want: "group%2Fsub%2Fproject"},
		{name: "web page url", input: "https://gitlab.com/group/project/-/merge_requests/3", want: "group%2Fproject"},
		{name: "trailing slash and spaces", input: "  https://gitlab.com/group/project/  ", want: "group%2Fproject"},
		{name: "ssh remote", input: "git@gitlab.com:group/project.git", want: "group%2Fproject"},
		{name: "empty", input: "", wantErr: true},
		{name: "no namespace", input: "https://gitlab.com/project", wantErr: true},
		{name: "bad ssh", input: "git@gitlab.com", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ProjectIDFromRepositoryURL(tc.input)
			if tc.wantErr {
				assert.True(t, errors.Is(err, apperr.ErrConfiguration), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
