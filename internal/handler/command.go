package handler

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/classroom-report/internal/dto"
	"github.com/noah-isme/classroom-report/pkg/config"
	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
)

// Builder wires a ReportHandler from the final configuration, after command flags
// have been applied. It runs once per command invocation.
type Builder func(cfg *config.Config) (*ReportHandler, error)

// NewRootCommand builds the classroom-report command tree. Running the root
// command without a subcommand produces the submissions report.
func NewRootCommand(cfg *config.Config, build Builder, version string, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "classroom-report",
		Short:         "Reports on GitHub Classroom assignments through the gh CLI",
		Long:          "A command-line tool that lists GitHub Classroom classrooms, assignments\nand submissions using the gh program for API access.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Report.Format = strings.ToLower(cfg.Report.Format)
			if err := cfg.Validate(); err != nil {
				return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.ExitStatus, "invalid configuration")
			}
			return nil
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.Metrics.File, "metrics-file", cfg.Metrics.File, "write prometheus metrics to this file at exit")
	flags.IntVar(&cfg.GitHub.Concurrency, "concurrency", cfg.GitHub.Concurrency, "parallel classroom fetches")

	runSubmissions := func(cmd *cobra.Command, args []string) error {
		h, err := build(cfg)
		if err != nil {
			return err
		}
		return h.Submissions(cmd.Context(), SubmissionsOptions{
			ClassroomName:  cfg.Report.ClassroomName,
			AssignmentName: cfg.Report.AssignmentName,
			Format:         cfg.Report.Format,
			OutputDir:      cfg.Report.OutputDir,
		})
	}
	root.RunE = runSubmissions
	addSubmissionFlags(root, cfg)

	cmdSubmissions := &cobra.Command{
		Use:   "submissions",
		Short: "list the accepted submissions of an assignment",
		Long: "Resolves the classroom by name and the assignment by title, then lists\n" +
			"every accepted submission. The first classroom and assignment with a\n" +
			"matching name are used.\n\n" +
			"   Example: classroom-report submissions --classroom CS101 --assignment HW1",
		Args: cobra.NoArgs,
		RunE: runSubmissions,
	}
	addSubmissionFlags(cmdSubmissions, cfg)
	root.AddCommand(cmdSubmissions)

	cmdClassrooms := &cobra.Command{
		Use:   "classrooms",
		Short: "list every classroom with its assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := build(cfg)
			if err != nil {
				return err
			}
			return h.Classrooms(cmd.Context())
		},
	}
	root.AddCommand(cmdClassrooms)

	cmdCommits := &cobra.Command{
		Use:   "commits",
		Short: "count the commits of every submission repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := build(cfg)
			if err != nil {
				return err
			}
			return h.Commits(cmd.Context(), dto.SubmissionReportRequest{
				ClassroomName:  cfg.Report.ClassroomName,
				AssignmentName: cfg.Report.AssignmentName,
			})
		},
	}
	addAssignmentFlags(cmdCommits, cfg)
	root.AddCommand(cmdCommits)

	cmdRateLimit := &cobra.Command{
		Use:   "rate-limit",
		Short: "print the remaining API quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := build(cfg)
			if err != nil {
				return err
			}
			return h.RateLimit(cmd.Context())
		},
	}
	root.AddCommand(cmdRateLimit)

	cmdVersion := &cobra.Command{
		Use:   "version",
		Short: "print the version number of classroom-report",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "classroom-report "+version)
		},
	}
	root.AddCommand(cmdVersion)

	return root
}

func addAssignmentFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.Report.ClassroomName, "classroom", cfg.Report.ClassroomName, "classroom name (GC_CLASSROOM_NAME)")
	cmd.Flags().StringVar(&cfg.Report.AssignmentName, "assignment", cfg.Report.AssignmentName, "assignment title (GC_ASSIGNMENT_NAME)")
}

func addSubmissionFlags(cmd *cobra.Command, cfg *config.Config) {
	addAssignmentFlags(cmd, cfg)
	cmd.Flags().StringVar(&cfg.Report.Format, "format", cfg.Report.Format, "output format: table, csv or pdf")
	cmd.Flags().StringVar(&cfg.Report.OutputDir, "output-dir", cfg.Report.OutputDir, "directory for csv and pdf reports")
}
