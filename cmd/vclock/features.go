package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vclock/internal/bootstrap"
	"vclock/internal/ui/theme"
)

func newAlarmCmd(flags *rootFlags) *cobra.Command {
	alarm := &cobra.Command{Use: "alarm", Short: "Daily alarm commands"}

	var sound, title string
	var repeat bool
	setCmd := &cobra.Command{
		Use:   "set <hour> <minute> <am|pm>",
		Short: "Configure the alarm time (does not arm it)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				var rep *bool
				if cmd.Flags().Changed("repeat") {
					rep = &repeat
				}
				out, err := app.AlarmCLI.Set(ctx, args[0], args[1], args[2], sound, title, rep)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "alarm set to %s (sound=%s repeat=%t)\n", out.Display, out.Sound, out.Repeat)
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&sound, "sound", "", "sound file")
	setCmd.Flags().StringVar(&title, "title", "", "alarm title")
	setCmd.Flags().BoolVar(&repeat, "repeat", false, "loop the sound until dismissed")
	alarm.AddCommand(setCmd)

	alarm.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Arm the alarm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out := app.AlarmCLI.Start(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "alarm armed for %s, rings in %s\n", out.Display, app.AlarmCLI.Next(ctx))
				return nil
			})
		},
	})
	alarm.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Disarm the alarm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				app.AlarmCLI.Stop(ctx)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "alarm off")
				return nil
			})
		},
	})
	alarm.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the alarm configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				s := app.AlarmCLI.Status(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "time=%s active=%t repeat=%t sound=%s title=%q\n", s.Display, s.IsActive, s.Repeat, s.Sound, s.Title)
				return nil
			})
		},
	})
	alarm.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Show the time left until the alarm rings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				next := app.AlarmCLI.Next(ctx)
				if next == "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "alarm is off")
					return nil
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), next)
				return nil
			})
		},
	})
	alarm.AddCommand(&cobra.Command{
		Use:   "test-sound [sound]",
		Short: "Play the alarm sound briefly",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				app.AlarmCLI.TestSound(ctx, firstArg(args))
				return waitPlayback(ctx, 3*time.Second)
			})
		},
	})
	return alarm
}

func newTimerCmd(flags *rootFlags) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Countdown timer commands"}

	timer.AddCommand(&cobra.Command{
		Use:   "set <duration>",
		Short: `Set a duration: "90", "5:30", "1:30:00" or a preset label`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Set(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer set to %s\n", out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "target <datetime>",
		Short: `Count down to an RFC 3339 or local "2006-01-02 15:04" time`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Target(ctx, strings.Join(args, " "), time.Local)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer set to %s\n", out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start or resume the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Start(ctx)
				if err != nil {
					return err
				}
				printTimer(cmd.OutOrStdout(), out.State, out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out := app.TimerCLI.Pause(ctx)
				printTimer(cmd.OutOrStdout(), out.State, out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume the paused timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Resume(ctx)
				if err != nil {
					return err
				}
				printTimer(cmd.OutOrStdout(), out.State, out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and its sound",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out := app.TimerCLI.Stop(ctx)
				printTimer(cmd.OutOrStdout(), out.State, out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the timer to its configured duration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out := app.TimerCLI.Reset(ctx)
				printTimer(cmd.OutOrStdout(), out.State, out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "add <seconds>",
		Short: "Add time to a running or paused timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Add(ctx, args[0])
				if err != nil {
					return err
				}
				printTimer(cmd.OutOrStdout(), out.State, out.Display)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the timer state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out := app.TimerCLI.Status(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "state=%s mode=%s remaining=%s progress=%.1f%%\n", out.State, out.Mode, out.Display, out.Progress)
				return nil
			})
		},
	})
	timer.AddCommand(&cobra.Command{
		Use:   "presets",
		Short: "List quick timer presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, app *bootstrap.App) error {
				for _, p := range app.TimerCLI.Presets() {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%ds\n", p.Label, p.Seconds)
				}
				return nil
			})
		},
	})
	return timer
}

func printTimer(w io.Writer, state, display string) {
	_, _ = fmt.Fprintf(w, "timer %s %s\n", state, display)
}

func newStopwatchCmd(flags *rootFlags) *cobra.Command {
	sw := &cobra.Command{Use: "stopwatch", Short: "Stopwatch commands"}

	sw.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start or resume the stopwatch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.StopwatchCLI.Start(ctx).Display)
				return nil
			})
		},
	})
	sw.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the stopwatch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.StopwatchCLI.Pause(ctx).Display)
				return nil
			})
		},
	})
	sw.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear elapsed time and laps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.StopwatchCLI.Reset(ctx).Display)
				return nil
			})
		},
	})
	sw.AddCommand(&cobra.Command{
		Use:   "lap",
		Short: "Record a lap while running",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				lap, err := app.StopwatchCLI.Lap(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lap %d\t%s\t%s\n", lap.Number, lap.LapDisplay, lap.TotalDisplay)
				return nil
			})
		},
	})
	sw.AddCommand(&cobra.Command{
		Use:   "laps",
		Short: "List laps with fastest, slowest and average",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				status := app.StopwatchCLI.Status(ctx)
				if len(status.Laps) == 0 {
					_, _ = fmt.Fprintln(out, "no laps")
					return nil
				}
				for _, lap := range status.Laps {
					_, _ = fmt.Fprintf(out, "%d\t%s\t%s\n", lap.Number, lap.LapDisplay, lap.TotalDisplay)
				}
				stats := app.StopwatchCLI.Stats(ctx)
				if stats.Fastest != nil && stats.Slowest != nil {
					_, _ = fmt.Fprintf(out, "fastest=%d slowest=%d average=%s\n", stats.Fastest.Number, stats.Slowest.Number, stats.AverageDisplay)
				}
				return nil
			})
		},
	})
	sw.AddCommand(&cobra.Command{
		Use:   "delete-lap <number>",
		Short: "Delete a lap and renumber the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.StopwatchCLI.DeleteLap(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lap %s deleted\n", args[0])
				return nil
			})
		},
	})
	sw.AddCommand(&cobra.Command{
		Use:   "clear-laps",
		Short: "Delete every lap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				app.StopwatchCLI.ClearLaps(ctx)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "laps cleared")
				return nil
			})
		},
	})
	sw.AddCommand(&cobra.Command{
		Use:   "precision <0-3>",
		Short: "Set the number of fractional digits shown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.StopwatchCLI.SetPrecision(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "precision=%d %s\n", out.Precision, out.Display)
				return nil
			})
		},
	})
	var format string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export laps as CSV or Markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				payload, err := app.StopwatchCLI.Export(ctx, format)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), payload)
				return nil
			})
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "export format: csv|markdown")
	sw.AddCommand(exportCmd)
	sw.AddCommand(&cobra.Command{
		Use:   "inspect <file|->",
		Short: "Summarize a markdown lap export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read lap export: %w", err)
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				stats, err := app.StopwatchCLI.Inspect(ctx, string(raw))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "laps=%d\n", stats.Count)
				if stats.Fastest != nil && stats.Slowest != nil {
					_, _ = fmt.Fprintf(out, "fastest=%d slowest=%d average=%s\n", stats.Fastest.Number, stats.Slowest.Number, stats.AverageDisplay)
				}
				return nil
			})
		},
	})
	return sw
}

func newClockCmd(flags *rootFlags) *cobra.Command {
	clock := &cobra.Command{Use: "clock", Short: "World clock commands"}

	clock.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tracked cities in display order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				cities := app.ClockCLI().List(ctx)
				if len(cities) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no cities")
					return nil
				}
				for _, uc := range cities {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", uc.Order, uc.City.ID, uc.City.Name, uc.City.Timezone)
				}
				return nil
			})
		},
	})
	clock.AddCommand(&cobra.Command{
		Use:   "add <city>",
		Short: "Track a city by id or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				uc, err := app.ClockCLI().Add(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) at position %d\n", uc.City.Name, uc.City.Timezone, uc.Order)
				return nil
			})
		},
	})
	clock.AddCommand(&cobra.Command{
		Use:   "remove <city>",
		Short: "Stop tracking a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ClockCLI().Remove(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	})
	clock.AddCommand(&cobra.Command{
		Use:   "move <city> <position>",
		Short: "Move a tracked city to a 0-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ClockCLI().Move(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s\n", args[0], args[1])
				return nil
			})
		},
	})
	clock.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Stop tracking every city",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				app.ClockCLI().Clear(ctx)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cities cleared")
				return nil
			})
		},
	})
	var continent string
	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the city catalog by name or country",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				for _, c := range app.ClockCLI().Search(ctx, firstArg(args), continent) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s, %s\t%s\tUTC%s\n", c.ID, c.Name, c.Country, c.Timezone, c.UTCOffset)
				}
				return nil
			})
		},
	}
	searchCmd.Flags().StringVar(&continent, "continent", "", "only cities on this continent")
	clock.AddCommand(searchCmd)
	clock.AddCommand(&cobra.Command{
		Use:   "continents",
		Short: "List catalog continents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				for _, c := range app.ClockCLI().Continents(ctx) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	})
	clock.AddCommand(&cobra.Command{
		Use:   "times",
		Short: "Show the current time in every tracked city",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				for _, t := range app.ClockCLI().Times(ctx) {
					day := "night"
					if t.Daytime {
						day = "day"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s (%s)\t%s, %s\n", t.City.Name, t.Display, t.Date, t.UTCOffset, t.Relative, day, t.Label)
				}
				return nil
			})
		},
	})
	clock.AddCommand(&cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Show the offset between two cities or IANA zones",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				diff, err := app.ClockCLI().Diff(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), diff)
				return nil
			})
		},
	})
	return clock
}

func newRecentCmd(flags *rootFlags) *cobra.Command {
	recent := &cobra.Command{Use: "recent", Short: "Recently configured alarms and timers"}
	for _, kind := range []string{"alarms", "timers"} {
		kind := kind
		recent.AddCommand(&cobra.Command{
			Use:   kind,
			Short: "List recent " + kind + ", newest first",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
					list := app.StoreCLI.RecentAlarms
					if kind == "timers" {
						list = app.StoreCLI.RecentTimers
					}
					items, err := list(ctx)
					if err != nil {
						return err
					}
					if len(items) == 0 {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no recent %s\n", kind)
						return nil
					}
					for _, item := range items {
						at := time.UnixMilli(item.Timestamp).Format(time.DateTime)
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", at, item.ID, item.Data)
					}
					return nil
				})
			},
		})
	}
	return recent
}

func newStoreCmd(flags *rootFlags) *cobra.Command {
	store := &cobra.Command{Use: "store", Short: "Persisted data commands"}

	store.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print every persisted value as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				payload, err := app.StoreCLI.Export(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), payload)
				return nil
			})
		},
	})
	store.AddCommand(&cobra.Command{
		Use:   "import <file|->",
		Short: "Replace persisted values from an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.StoreCLI.Import(ctx, string(raw)); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "imported")
				return nil
			})
		},
	})
	store.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every persisted value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.StoreCLI.Clear(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "store cleared")
				return nil
			})
		},
	})
	store.AddCommand(&cobra.Command{
		Use:   "usage",
		Short: "Show how much data is persisted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				u, err := app.StoreCLI.Usage(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "keys=%d bytes=%d space_available=%t\n", u.Keys, u.UsedBytes, u.SpaceAvailable)
				return nil
			})
		},
	})
	return store
}

func newPrefsCmd(flags *rootFlags) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Display preferences"}

	prefs.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show visual settings and theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				v := app.StoreCLI.VisualSettings(ctx)
				name := theme.Resolve(app.StoreCLI.Theme(ctx))
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "time_format=%d show_date=%t font=%s size=%s color=%s theme=%s\n",
					v.TimeFormat, v.ShowDate, v.FontFamily, v.FontSize, v.TextColor, name)
				return nil
			})
		},
	})
	prefs.AddCommand(&cobra.Command{
		Use:   "set-format <12|24>",
		Short: "Choose the 12 or 24 hour clock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("format %q: expected 12 or 24", args[0])
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				v, err := app.StoreCLI.SetTimeFormat(ctx, format)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "time_format=%d\n", v.TimeFormat)
				return nil
			})
		},
	})
	prefs.AddCommand(&cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show, set or toggle the UI theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				current := theme.Resolve(app.StoreCLI.Theme(ctx))
				switch arg := firstArg(args); arg {
				case "":
				case "toggle":
					name, err := app.StoreCLI.ToggleTheme(ctx, current)
					if err != nil {
						return err
					}
					current = name
				default:
					if err := app.StoreCLI.SetTheme(ctx, arg); err != nil {
						return err
					}
					current = arg
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme=%s\n", current)
				return nil
			})
		},
	})
	return prefs
}

func newSoundsCmd(flags *rootFlags) *cobra.Command {
	sounds := &cobra.Command{Use: "sounds", Short: "Alarm and timer sounds"}

	sounds.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bundled sounds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, app *bootstrap.App) error {
				for _, s := range app.SoundsCLI.Sounds() {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.ID, s.Name, s.File)
				}
				return nil
			})
		},
	})
	var duration time.Duration
	testCmd := &cobra.Command{
		Use:   "test [sound]",
		Short: "Play a sound for a short while",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				app.SoundsCLI.TestSound(ctx, firstArg(args), duration)
				return waitPlayback(ctx, duration)
			})
		},
	}
	testCmd.Flags().DurationVar(&duration, "duration", 3*time.Second, "how long to play")
	sounds.AddCommand(testCmd)
	return sounds
}

// waitPlayback keeps the process alive while a test sound plays.
func waitPlayback(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
