package ui

import (
	"fmt"
	"strings"

	"github.com/alimgiray/mrscope/internal/models"
	"github.com/manifoldco/promptui"
)

// SelectMergeRequest asks the user to pick a merge request and returns its iid
func SelectMergeRequest(mrs []models.MergeRequest) (int, error) {
	if len(mrs) == 0 {
		return 0, fmt.Errorf("no merge requests found")
	}

	items := make([]string, len(mrs))
	for i, mr := range mrs {
		items[i] = fmt.Sprintf(
			"%s %s %s %s %s",
			PadRight(fmt.Sprintf("!%d", mr.IID), 7),
			PadRight(Truncate(mr.Title, titleWidth), titleWidth),
			PadRight(mr.Author, 15),
			PadRight(mr.State, 8),
			mr.CreatedAt.Format("2006-01-02"),
		)
	}

	prompt := promptui.Select{
		Label: "Select merge request",
		Items: items,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
		StartInSearchMode: true,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}
	return mrs[idx].IID, nil
}
