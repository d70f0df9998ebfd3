package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"passby/internal/bootstrap"
	observedomain "passby/internal/modules/observe/domain"
	observedto "passby/internal/modules/observe/dto"
	settingsdto "passby/internal/modules/settings/dto"
	"passby/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "passby",
		Short:         "Passer-by field observation logger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "data directory path")

	root.AddCommand(newTUICmd(&dataPath))
	root.AddCommand(newSessionCmd(&dataPath))
	root.AddCommand(newLogCmd(&dataPath))
	root.AddCommand(newArchiveCmd(&dataPath))
	root.AddCommand(newExportCmd(&dataPath))
	root.AddCommand(newSettingsCmd(&dataPath))
	root.AddCommand(newClassifyCmd())
	return root
}

func loadApp(dataPath string) (*bootstrap.App, error) {
	cfg, err := config.New(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run passby terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSessionCmd(dataPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Manage the observation session"}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			status, err := app.ObserveCLI.Status(context.Background())
			if err != nil {
				return err
			}
			printStatus(cmd, status)
			return nil
		},
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Open session setup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			status, err := app.ObserveCLI.BeginSetup(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session setup opened (phase=%s)\n", status.Phase)
			return nil
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel session setup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			status, err := app.ObserveCLI.CancelSetup(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "setup cancelled (phase=%s)\n", status.Phase)
			return nil
		},
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start recording",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			status, err := app.ObserveCLI.Start(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recording started at %s\n", optionalTime(status.StartedAt))
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop recording",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			status, err := app.ObserveCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recording stopped at %s (%d entries)\n", optionalTime(status.EndedAt), status.LogCount)
			return nil
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a stopped session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			status, err := app.ObserveCLI.Resume(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recording resumed (phase=%s)\n", status.Phase)
			return nil
		},
	}

	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive the finished session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ObserveCLI.Archive(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "archived session %s (%d entries)\n", out.ArchiveID, out.EntryCount)
			return nil
		},
	}

	var yes bool
	discardCmd := &cobra.Command{
		Use:   "discard",
		Short: "Discard the finished session without archiving",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("discard removes all recorded entries; re-run with --yes to confirm")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ObserveCLI.Discard(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session discarded")
			return nil
		},
	}
	discardCmd.Flags().BoolVar(&yes, "yes", false, "confirm discarding the session")

	var location, note string
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Update session location and note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var locPatch, notePatch *string
			if cmd.Flags().Changed("location") {
				locPatch = &location
			}
			if cmd.Flags().Changed("note") {
				notePatch = &note
			}
			if locPatch == nil && notePatch == nil {
				return fmt.Errorf("nothing to update: pass --location and/or --note")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			status, err := app.ObserveCLI.UpdateInfo(context.Background(), locPatch, notePatch)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session info updated (location=%q note=%q)\n", status.Location, status.Note)
			return nil
		},
	}
	infoCmd.Flags().StringVar(&location, "location", "", "observation location")
	infoCmd.Flags().StringVar(&note, "note", "", "session note")

	session.AddCommand(statusCmd, setupCmd, cancelCmd, startCmd, stopCmd, resumeCmd, archiveCmd, discardCmd, infoCmd)
	return session
}

func newLogCmd(dataPath *string) *cobra.Command {
	log := &cobra.Command{Use: "log", Short: "Manage log entries of the active session"}

	var side, category string
	var group bool
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a log entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(side) == "" {
				return fmt.Errorf("--side is required (left|right)")
			}
			if strings.TrimSpace(category) == "" {
				return fmt.Errorf("--category is required (pass|look|stop|use)")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			entry, err := app.ObserveCLI.AddLog(context.Background(), side, group, category)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %s (%s) id=%s\n", entry.Side, entry.Category, groupLabel(entry.Group), entry.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&side, "side", "", "observed side: left|right")
	addCmd.Flags().StringVar(&category, "category", "", "action category: pass|look|stop|use")
	addCmd.Flags().BoolVar(&group, "group", false, "entry describes a group")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List log entries in recorded order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.ObserveCLI.ListLogs(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s  %s  %-5s %-10s %s", e.ID, e.Timestamp, e.Side, groupLabel(e.Group), e.Category)
				if e.Note != "" {
					line += "  note=" + e.Note
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	undoCmd := &cobra.Command{
		Use:   "undo",
		Short: "Remove the most recent log entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ObserveCLI.UndoLog(context.Background())
			if err != nil {
				return err
			}
			if !out.Removed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to undo")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s %s id=%s\n", out.Entry.Side, out.Entry.Category, out.Entry.ID)
			return nil
		},
	}

	var editSide, editCategory, editNote string
	var editGroup bool
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a log entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := observedto.UpdateLogInput{ID: args[0]}
			if cmd.Flags().Changed("side") {
				input.Side = &editSide
			}
			if cmd.Flags().Changed("category") {
				input.Category = &editCategory
			}
			if cmd.Flags().Changed("group") {
				input.Group = &editGroup
			}
			if cmd.Flags().Changed("note") {
				input.Note = &editNote
			}
			if input.Side == nil && input.Category == nil && input.Group == nil && input.Note == nil {
				return fmt.Errorf("nothing to update: pass --side, --category, --group and/or --note")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			entry, err := app.ObserveCLI.UpdateLog(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %s %s (%s)\n", entry.ID, entry.Side, entry.Category, groupLabel(entry.Group))
			return nil
		},
	}
	editCmd.Flags().StringVar(&editSide, "side", "", "observed side: left|right")
	editCmd.Flags().StringVar(&editCategory, "category", "", "action category: pass|look|stop|use")
	editCmd.Flags().BoolVar(&editGroup, "group", false, "entry describes a group")
	editCmd.Flags().StringVar(&editNote, "note", "", "free-form note")

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a log entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("delete is permanent; re-run with --yes to confirm")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ObserveCLI.DeleteLog(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting the entry")

	log.AddCommand(addCmd, listCmd, undoCmd, editCmd, deleteCmd)
	return log
}

func newArchiveCmd(dataPath *string) *cobra.Command {
	archive := &cobra.Command{Use: "archive", Short: "Browse archived sessions"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			summaries, err := app.ArchiveCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no archived sessions")
				return nil
			}
			for _, s := range summaries {
				location := s.Location
				if location == "" {
					location = "-"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-20s %d entries\n", s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), location, s.EntryCount)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an archived session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ArchiveCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Archive:  %s\n", out.ID)
			_, _ = fmt.Fprintf(w, "Created:  %s\n", out.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			_, _ = fmt.Fprintf(w, "Start:    %s\n", optionalTime(out.StartedAt))
			_, _ = fmt.Fprintf(w, "End:      %s\n", optionalTime(out.EndedAt))
			_, _ = fmt.Fprintf(w, "Location: %s\n", out.Location)
			_, _ = fmt.Fprintf(w, "Note:     %s\n", out.Note)
			_, _ = fmt.Fprintf(w, "Entries:  %d\n", len(out.Entries))
			for _, e := range out.Entries {
				_, _ = fmt.Fprintf(w, "  %s  %-5s %-10s %s\n", e.Timestamp, e.Side, groupLabel(e.Group), e.Category)
			}
			return nil
		},
	}

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("delete is permanent; re-run with --yes to confirm")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ArchiveCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted archive %s\n", args[0])
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting the archive")

	reindexCmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the archive index from stored sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ArchiveCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "archive index rebuilt")
			return nil
		},
	}

	archive.AddCommand(listCmd, showCmd, deleteCmd, reindexCmd)
	return archive
}

func newExportCmd(dataPath *string) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Export sessions as CSV"}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Export the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ExportCLI.ExportSession(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", out.EntryCount, out.Path)
			return nil
		},
	}

	archiveCmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Export an archived session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ExportCLI.ExportArchive(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", out.EntryCount, out.Path)
			return nil
		},
	}

	export.AddCommand(sessionCmd, archiveCmd)
	return export
}

func newSettingsCmd(dataPath *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Inspect and change settings"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsUC.Get(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "feedback enabled:  %t\n", out.FeedbackEnabled)
			_, _ = fmt.Fprintf(w, "export prefix:     %s\n", out.ExportPrefix)
			_, _ = fmt.Fprintf(w, "note suffix runes: %d\n", out.NoteSuffixRunes)
			for kind, pattern := range out.Patterns {
				_, _ = fmt.Fprintf(w, "pattern %-12s %v\n", kind+":", pattern)
			}
			return nil
		},
	}

	var feedback bool
	var prefix string
	var noteRunes int
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := settingsdto.UpdateInput{}
			if cmd.Flags().Changed("feedback") {
				input.FeedbackEnabled = &feedback
			}
			if cmd.Flags().Changed("export-prefix") {
				input.ExportPrefix = &prefix
			}
			if cmd.Flags().Changed("note-runes") {
				input.NoteSuffixRunes = &noteRunes
			}
			if input.FeedbackEnabled == nil && input.ExportPrefix == nil && input.NoteSuffixRunes == nil {
				return fmt.Errorf("nothing to set: pass --feedback, --export-prefix and/or --note-runes")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsUC.Update(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "settings saved (feedback=%t prefix=%s note-runes=%d)\n", out.FeedbackEnabled, out.ExportPrefix, out.NoteSuffixRunes)
			return nil
		},
	}
	setCmd.Flags().BoolVar(&feedback, "feedback", true, "enable feedback cues")
	setCmd.Flags().StringVar(&prefix, "export-prefix", "", "export filename prefix")
	setCmd.Flags().IntVar(&noteRunes, "note-runes", 0, "max note runes in export filenames")

	settings.AddCommand(showCmd, setCmd)
	return settings
}

// newClassifyCmd maps a drag vector to a category without touching any
// state. Useful when tuning gesture thresholds against a new terminal.
func newClassifyCmd() *cobra.Command {
	var side string
	classify := &cobra.Command{
		Use:   "classify <dx> <dy>",
		Short: "Classify a drag vector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dx, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid dx %q: %w", args[0], err)
			}
			dy, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid dy %q: %w", args[1], err)
			}
			parsed, err := observedomain.ParseSide(side)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), observedomain.Classify(dx, dy, parsed))
			return nil
		},
	}
	classify.Flags().StringVar(&side, "side", "right", "observed side: left|right")
	return classify
}

func printStatus(cmd *cobra.Command, status observedto.StatusOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Phase:    %s\n", status.Phase)
	_, _ = fmt.Fprintf(w, "Start:    %s\n", optionalTime(status.StartedAt))
	_, _ = fmt.Fprintf(w, "End:      %s\n", optionalTime(status.EndedAt))
	_, _ = fmt.Fprintf(w, "Location: %s\n", status.Location)
	_, _ = fmt.Fprintf(w, "Note:     %s\n", status.Note)
	_, _ = fmt.Fprintf(w, "Entries:  %d\n", status.LogCount)
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func groupLabel(group bool) string {
	if group {
		return "group"
	}
	return "individual"
}
