package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"focusfence/internal/bootstrap"
	profiledto "focusfence/internal/modules/profile/dto"
	"focusfence/internal/platform/config"
	apperrors "focusfence/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "focusfence",
		Short:         "Full-screen focus timer that grows a tree while you stay on task",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory (database, config.yaml, logs)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newRewardCmd(&dataDir))
	root.AddCommand(newScheduleCmd(&dataDir))
	root.AddCommand(newThemeCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusfence"
	}
	return filepath.Join(home, ".focusfence")
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp loads the app for one command and closes it afterwards.
func withApp(dataDir string, fn func(*bootstrap.App) error) error {
	app, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focus timer terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, bootstrap.TUIOptions{})
			})
		},
	}
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Focus session commands"}

	var minutes int
	start := &cobra.Command{
		Use:   "start --minutes <n>",
		Short: "Open the terminal UI and start a session right away",
		RunE: func(_ *cobra.Command, _ []string) error {
			if minutes < 1 {
				return fmt.Errorf("%w: --minutes must be at least 1", apperrors.ErrInvalidInput)
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, bootstrap.TUIOptions{StartMinutes: minutes})
			})
		},
	}
	start.Flags().IntVar(&minutes, "minutes", 25, "session length in whole minutes")

	var previewMinutes int
	preview := &cobra.Command{
		Use:   "preview --minutes <n>",
		Short: "Show how big the tree would look for a duration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				g := app.SessionCLI.Preview(previewMinutes)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "trunk=%.0f%% foliage=%.2f visible=%t\n", g.TrunkHeight, g.FoliageScale, g.FoliageVisible)
				return nil
			})
		},
	}
	preview.Flags().IntVar(&previewMinutes, "minutes", 25, "planned minutes")

	var limit int
	var asJSON bool
	history := &cobra.Command{
		Use:   "history",
		Short: "List finished sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				records, err := app.SessionCLI.History(context.Background(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(records)
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, r := range records {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%dm planned\t%ds focused\t%.0f%%\n",
						r.EndedAt.Format(time.RFC3339), r.Outcome, r.Origin, r.PlannedSeconds/60, r.ElapsedTicks, r.Progress*100)
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "maximum sessions to list (0 for all)")
	history.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the last seven days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.SessionCLI.Stats(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "since: %s\ncompleted: %d\nwithered: %d\nabandoned: %d\nfocused: %s\n",
					s.Since.Format("2006-01-02"), s.Completed, s.Withered, s.Abandoned, time.Duration(s.FocusedTicks)*time.Second)
				return nil
			})
		},
	}

	session.AddCommand(start, preview, history, stats)
	return session
}

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Student profile commands"}

	var name, email string
	initCmd := &cobra.Command{
		Use:   "init --name <name> --email <email>",
		Short: "Create the local profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
				return fmt.Errorf("--name and --email are required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				p, err := app.ProfileCLI.Onboard(context.Background(), name, email)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s\n", p.Name)
				return nil
			})
		},
	}
	initCmd.Flags().StringVar(&name, "name", "", "display name")
	initCmd.Flags().StringVar(&email, "email", "", "email address")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile, trees and today's reward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				loaded, err := app.ProfileCLI.Load(context.Background())
				if errors.Is(err, apperrors.ErrNoProfile) {
					return fmt.Errorf("no profile yet, run: focusfence profile init --name <name> --email <email>")
				}
				if err != nil {
					return err
				}
				printProfile(cmd, loaded.Profile)
				return nil
			})
		},
	}

	profile.AddCommand(initCmd, show)
	return profile
}

func printProfile(cmd *cobra.Command, p profiledto.ProfileOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "name: %s\nemail: %s\ntrees: %d\nnext milestone: %d (%.0f%%)\nsessions today: %d\nreward: %s\n",
		p.Name, p.Email, p.TotalTreesPlanted, p.Milestone.Next, p.Milestone.Percent, p.Reward.SessionsToday, rewardLabel(p))
}

func rewardLabel(p profiledto.ProfileOutput) string {
	switch {
	case p.Reward.Claimed:
		return "claimed"
	case p.Reward.Unlocked:
		return "ready to claim"
	default:
		return "locked"
	}
}

func newRewardCmd(dataDir *string) *cobra.Command {
	reward := &cobra.Command{Use: "reward", Short: "Daily reward commands"}
	reward.AddCommand(&cobra.Command{
		Use:   "claim",
		Short: "Claim today's reward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				p, err := app.ProfileCLI.ClaimDailyReward(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reward claimed for %s\n", p.Reward.Date)
				return nil
			})
		},
	})
	return reward
}

func newScheduleCmd(dataDir *string) *cobra.Command {
	schedule := &cobra.Command{Use: "schedule", Short: "Weekly focus window commands"}

	var start, end string
	var days []string
	set := &cobra.Command{
		Use:   "set --start HH:MM --end HH:MM --days mon,tue",
		Short: "Save the weekly focus window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.ScheduleCLI.Set(context.Background(), start, end, days)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schedule saved: %s-%s %s\n", s.StartTime, s.EndTime, strings.Join(s.Days, ","))
				return nil
			})
		},
	}
	set.Flags().StringVar(&start, "start", "", "window start (HH:MM)")
	set.Flags().StringVar(&end, "end", "", "window end (HH:MM)")
	set.Flags().StringSliceVar(&days, "days", nil, "days: mon,tue,wed,thu,fri,sat,sun")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the saved schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.ScheduleCLI.Show(context.Background())
				if errors.Is(err, apperrors.ErrNoSchedule) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no schedule")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "start: %s\nend: %s\ndays: %s\n", s.StartTime, s.EndTime, strings.Join(s.Days, ","))
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the saved schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if err := app.ScheduleCLI.Clear(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "schedule cleared")
				return nil
			})
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Report whether now falls inside the focus window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ScheduleCLI.Check(context.Background())
				if err != nil {
					return err
				}
				switch {
				case !out.Configured:
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no schedule")
				case out.InWindow && out.WindowUsed:
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "in window: %d minutes left, session already started\n", out.RemainingMinutes)
				case out.InWindow:
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "in window: %d minutes left\n", out.RemainingMinutes)
				default:
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "outside window")
				}
				return nil
			})
		},
	}

	schedule.AddCommand(set, show, clearCmd, check)
	return schedule
}

func newThemeCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				ctx := context.Background()
				var name string
				var err error
				if len(args) == 0 {
					name, err = app.ProfileCLI.Theme(ctx)
				} else {
					name, err = app.ProfileCLI.SetTheme(ctx, args[0])
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", name)
				return nil
			})
		},
	}
}
