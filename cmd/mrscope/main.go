package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/models"
	"github.com/alimgiray/mrscope/internal/repositories"
	"github.com/alimgiray/mrscope/internal/services"
	"github.com/alimgiray/mrscope/internal/ui"
	"github.com/alimgiray/mrscope/pkg/config"
	"github.com/alimgiray/mrscope/pkg/logger"
	"github.com/spf13/cobra"
)

// app holds the configuration and collaborators shared by every command
type app struct {
	cfg      *config.Config
	newAPI   func(cfg *config.Config) (gitlab.API, error)
	prompter ui.Prompter

	output        string
	repositoryURL string
	limit         int
	maxAgeDays    int
}

// scanner bundles the services a command needs for one project
type scanner struct {
	projectID     string
	mergeRequests *services.MergeRequestService
	participants  *services.ParticipantService
	contributors  *services.ContributorService
}

func newGitLabAPI(cfg *config.Config) (gitlab.API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return gitlab.NewClient(gitlab.ClientConfig{
		BaseURL:  cfg.GitLab.APIURL,
		Token:    cfg.GitLab.Token,
		AuthMode: cfg.GitLab.AuthMode,
		Timeout:  cfg.RequestTimeout(),
	}, nil), nil
}

func (a *app) scanner() (*scanner, error) {
	repositoryService := services.NewRepositoryService(repositories.NewSettingsRepository(a.cfg.GitLab.RepositoryURL))
	projectID, err := repositoryService.ResolveProject(a.repositoryURL)
	if err != nil {
		return nil, err
	}

	api, err := a.newAPI(a.cfg)
	if err != nil {
		return nil, err
	}

	mergeRequests := services.NewMergeRequestService(api)
	participants := services.NewParticipantService(api)
	return &scanner{
		projectID:     projectID,
		mergeRequests: mergeRequests,
		participants:  participants,
		contributors:  services.NewContributorService(api, mergeRequests, participants, a.cfg.Scan.Workers),
	}, nil
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "mrscope",
		Short:        "Scan GitLab merge requests and their contributors",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.output, "output", "o", ui.OutputTable, "output format: table, json or yaml")
	flags.StringVar(&a.repositoryURL, "repository-url", "", "repository URL or project ID (defaults to REPOSITORY_URL)")
	flags.IntVar(&a.limit, "limit", a.cfg.Scan.DefaultLimit, "maximum number of merge requests")
	flags.IntVar(&a.maxAgeDays, "max-age-days", a.cfg.Scan.DefaultMaxAgeDays, "only merge requests created within this many days (0 for all)")

	root.AddCommand(
		newMergeRequestsCommand(a),
		newParticipantsCommand(a),
		newContributorsCommand(a),
	)
	return root
}

func newMergeRequestsCommand(a *app) *cobra.Command {
	var withParticipants bool

	cmd := &cobra.Command{
		Use:     "merge-requests",
		Aliases: []string{"mrs"},
		Short:   "List recent opened and closed merge requests, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.scanner()
			if err != nil {
				return err
			}

			var mrs []models.MergeRequest
			if withParticipants {
				mrs, err = s.contributors.ScanAndAttachParticipants(cmd.Context(), s.projectID, a.limit, a.maxAgeDays)
			} else {
				mrs, err = s.mergeRequests.ScanMergeRequests(cmd.Context(), s.projectID, a.limit, a.maxAgeDays)
			}
			if err != nil {
				return err
			}

			return ui.Render(cmd.OutOrStdout(), a.output, mrs, func(w io.Writer) error {
				return ui.WriteMergeRequestTable(w, mrs)
			})
		},
	}

	cmd.Flags().BoolVarP(&withParticipants, "participants", "p", false, "attach the participants of every merge request")
	return cmd
}

func newParticipantsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "participants [iid]",
		Short: "Show who took part in a merge request",
		Long:  "Show who took part in a merge request. Without an iid the merge request is chosen interactively.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.scanner()
			if err != nil {
				return err
			}

			var iid int
			if len(args) == 1 {
				iid, err = strconv.Atoi(args[0])
				if err != nil || iid <= 0 {
					return fmt.Errorf("invalid merge request iid %q", args[0])
				}
			} else {
				mrs, err := s.mergeRequests.ScanMergeRequests(cmd.Context(), s.projectID, a.limit, a.maxAgeDays)
				if err != nil {
					return err
				}
				iid, err = a.prompter.SelectMergeRequest(mrs)
				if err != nil {
					return err
				}
			}

			details, err := s.participants.ResolveDetails(cmd.Context(), s.projectID, iid)
			if err != nil {
				return err
			}
			mr := details.MergeRequest
			mr.Participants = details.Participants.Sorted()

			return ui.Render(cmd.OutOrStdout(), a.output, mr, func(w io.Writer) error {
				return ui.WriteParticipantTable(w, mr, mr.Participants)
			})
		},
	}
}

func newContributorsCommand(a *app) *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "contributors",
		Short: "Aggregate contributor activity across every merge request of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.scanner()
			if err != nil {
				return err
			}

			report, err := s.contributors.AggregateContributors(cmd.Context(), s.projectID, progressPrinter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := exportReport(exportPath, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", exportPath)
			}

			return ui.Render(cmd.OutOrStdout(), a.output, report, func(w io.Writer) error {
				return ui.WriteContributorTable(w, report)
			})
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "also write the report to this XLSX file")
	return cmd
}

// progressPrinter reports the estimate once and then each finished page
func progressPrinter(w io.Writer) services.ProgressFunc {
	var mu sync.Mutex
	estimated := false
	return func(processed, total int, estimate time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		if !estimated && estimate > 0 {
			estimated = true
			fmt.Fprintf(w, "Estimated scan time: %s for %d merge requests\n", estimate.Round(time.Second), total)
		}
		if processed > 0 {
			fmt.Fprintf(w, "Processed %d/%d merge requests\n", processed, total)
		}
	}
}

func exportReport(path string, report *models.ContributorReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := services.NewExportService().WriteContributors(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.SetOutput(os.Stderr)

	a := &app{
		cfg:      cfg,
		newAPI:   newGitLabAPI,
		prompter: &ui.DefaultPrompter{},
	}

	if err := newRootCommand(a).Execute(); err != nil {
		os.Exit(1)
	}
}
