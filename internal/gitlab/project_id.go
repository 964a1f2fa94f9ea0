package gitlab

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alimgiray/mrscope/internal/apperr"
)

// ProjectIDFromRepositoryURL turns a repository reference into the project
// identifier used in API paths. It accepts a numeric project ID, a
// "group/subgroup/project" path, an http(s) URL (web pages below "/-/" are
// allowed) or an scp-like ssh remote such as git@gitlab.com:group/project.git.
func ProjectIDFromRepositoryURL(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", fmt.Errorf("%w: repository URL is not set", apperr.ErrConfiguration)
	}

	if isNumeric(ref) {
		return ref, nil
	}

	path := ref
	switch {
	case strings.Contains(ref, "://"):
		u, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("%w: invalid repository URL %q: %v", apperr.ErrConfiguration, raw, err)
		}
		path = u.Path
	case strings.HasPrefix(ref, "git@"):
		idx := strings.Index(ref, ":")
		if idx < 0 {
			return "", fmt.Errorf("%w: invalid repository URL %q", apperr.ErrConfiguration, raw)
		}
		path = ref[idx+1:]
	}

	if idx := strings.Index(path, "/-/"); idx >= 0 {
		path = path[:idx]
	}
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")

	if !strings.Contains(path, "/") {
		return "", fmt.Errorf("%w: repository URL %q does not name a namespace and project", apperr.ErrConfiguration, raw)
	}

	return url.PathEscape(path), nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
