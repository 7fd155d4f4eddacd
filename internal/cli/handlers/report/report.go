// Package report contains the read-only CLI commands: analytics over a
// snapshot of the roster and the text-generation insights.
package report

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/roster/internal/analytics"
	"github.com/aanand-mishra/roster/internal/cli"
	"github.com/aanand-mishra/roster/internal/insight"
	"github.com/aanand-mishra/roster/internal/types"
	"github.com/aanand-mishra/roster/internal/utils/response"
)

const noData = "no student records available"

// Snapshotter supplies the roster snapshot.
type Snapshotter interface {
	List() []types.Student
}

// Top handles: top N
func Top(src Snapshotter) *cobra.Command {
	return &cobra.Command{
		Use:   "top N",
		Short: "Show the N students with the highest gpa",
		Args:  cli.Args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", analytics.ErrInvalidN, args[0])
			}

			top, err := analytics.TopN(src.List(), n)
			if err != nil {
				return err
			}
			if len(top) == 0 {
				return response.WriteJSON(cmd.OutOrStdout(), response.Empty(noData))
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(top))
		},
	}
}

// AtRisk handles: at-risk
func AtRisk(src Snapshotter) *cobra.Command {
	return &cobra.Command{
		Use:   "at-risk",
		Short: "Show students with a gpa below the risk threshold",
		Args:  cli.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			students := src.List()
			if len(students) == 0 {
				return response.WriteJSON(cmd.OutOrStdout(), response.Empty(noData))
			}

			risky := analytics.AtRisk(students)
			if len(risky) == 0 {
				return response.WriteJSON(cmd.OutOrStdout(), response.Empty("no at-risk students"))
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(risky))
		},
	}
}

// Stats handles: stats
func Stats(src Snapshotter) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show gpa statistics and the grade distribution",
		Args:  cli.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, ok := analytics.Describe(src.List())
			if !ok {
				return response.WriteJSON(cmd.OutOrStdout(), response.Empty(noData))
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(stats))
		},
	}
}

// Courses handles: courses
func Courses(src Snapshotter) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "Show the mean gpa of every course",
		Args:  cli.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := analytics.ByCourse(src.List())
			if len(groups) == 0 {
				return response.WriteJSON(cmd.OutOrStdout(), response.Empty(noData))
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(groups))
		},
	}
}

// Dashboard handles: dashboard
func Dashboard(src Snapshotter) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the roster summary",
		Args:  cli.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			students := src.List()
			if len(students) == 0 {
				return response.WriteJSON(cmd.OutOrStdout(), response.Empty(noData))
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(analytics.Summarize(students)))
		},
	}
}

// Insight handles: insight KIND [ID]
//
// The generated text is returned untouched in data.text. The command's
// context bounds the request, so Ctrl+C cancels it.
func Insight(svc *insight.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "insight class|intervention|feedback|predictive [ID]",
		Short: "Ask the text generator about the roster or one student",
		Args:  cli.Args(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := insight.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", insight.ErrUnknownKind, args[0])
			}

			var id string
			if len(args) == 2 {
				id = args[1]
			}

			text, err := svc.Insight(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(map[string]string{
				"kind": string(kind),
				"text": text,
			}))
		},
	}
}
