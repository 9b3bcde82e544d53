package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"titan/internal/models"
	"titan/internal/stats"
	"titan/internal/validation"
)

// TopicsCmd groups the topic ledger commands.
var TopicsCmd = NewTopicsCmd()

// NewTopicsCmd builds the "topics" command tree.
func NewTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Select topics and inspect the usage ledger",
	}
	cmd.PersistentFlags().Bool("json", false, "Print JSON instead of text")

	cmd.AddCommand(newTopicsNextCmd(), newTopicsStatsCmd(), newTopicsResetCmd(), newTopicsPlanCmd())
	return cmd
}

func newTopicsNextCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Select and record the next topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("-n must be at least 1")
			}
			a, err := LoadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			records := make([]*models.TopicRecord, 0, count)
			for i := 0; i < count; i++ {
				rec, err := a.Selector.SelectNextTopic(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to select topic: %w", err)
				}
				records = append(records, rec)
			}

			out := cmd.OutOrStdout()
			if asJSON(cmd) {
				return printJSON(out, records)
			}
			for i, rec := range records {
				fmt.Fprintf(out, "%d. %s\n", i+1, rec.PrimaryKeyword)
				fmt.Fprintf(out, "   Category: %s  Trending: %d  Length: %d words\n", rec.Category, rec.TrendingScore, rec.TargetLength)
				fmt.Fprintf(out, "   Related: %s\n", strings.Join(rec.RelatedKeywords, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of topics to select")
	return cmd
}

func newTopicsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ledger statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := LoadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.Ledger.Usage(cmd.Context())
			if err != nil {
				return err
			}
			s := stats.Build(u)

			out := cmd.OutOrStdout()
			if asJSON(cmd) {
				return printJSON(out, s)
			}
			fmt.Fprintf(out, "Total generated: %d\n", s.TotalGenerated)
			fmt.Fprintf(out, "Unique topics:   %d\n", s.UniqueTopics)
			if s.LastUpdate != nil {
				fmt.Fprintf(out, "Last:            %s at %s\n", s.LastCategory, s.LastUpdate.Format(time.RFC3339))
			}
			fmt.Fprintln(out, "By category:")
			for _, c := range s.ByCategory {
				fmt.Fprintf(out, "  %-16s %d\n", c.Category, c.Count)
			}
			if len(s.RecentTopics) > 0 {
				fmt.Fprintln(out, "Recent:")
				for _, k := range s.RecentTopics {
					fmt.Fprintf(out, "  - %s\n", k)
				}
			}
			return nil
		},
	}
}

func newTopicsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <category>",
		Short: "Forget used keywords mentioning a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := validation.NormalizeCategory(strings.Join(args, " "))
			if ok, msg := validation.ValidateCategory(category); !ok {
				return fmt.Errorf("%s", msg)
			}

			a, err := LoadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			removed, err := a.Ledger.ResetCategory(cmd.Context(), category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d keywords for %q\n", removed, category)
			return nil
		},
	}
}

func newTopicsPlanCmd() *cobra.Command {
	var (
		date  string
		count int
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the curated topic plan for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > validation.MaxPlanCount {
				return fmt.Errorf("--count must be between 1 and %d", validation.MaxPlanCount)
			}
			day, err := validation.ParsePlanDate(date, time.Now(), time.UTC)
			if err != nil {
				return err
			}

			a, err := LoadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			plan := a.Planner.Plan(day, count)
			out := cmd.OutOrStdout()
			if asJSON(cmd) {
				return printJSON(out, plan)
			}
			fmt.Fprintf(out, "Plan for %s\n", day.Format("2006-01-02"))
			for _, p := range plan {
				fmt.Fprintf(out, "%d. %s [%s] (%d searches/month)\n", p.EpisodeNumber, p.Title, p.Category, p.SearchVolume)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to plan, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&count, "count", 5, "Number of topics")
	return cmd
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
