package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/tui"
)

var bindingsJSON bool

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the hotkey bindings",
	Long: `Lists the default bindings with any configured key overrides, followed
by the extra bindings from the config file. Keys that cannot be registered,
for example because two bindings share a key, are marked as conflicts.`,
	Args: cobra.NoArgs,
	RunE: runBindings,
}

func init() {
	bindingsCmd.Flags().BoolVar(&bindingsJSON, "json", false, "print bindings as JSON")
	rootCmd.AddCommand(bindingsCmd)
}

func runBindings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src := tui.NewKeySource()
	// Listing never talks to the player.
	ctrl, stop, err := startController(ctx, cfg, newPlayer(cfg), src)
	if err != nil {
		return err
	}
	defer stop()

	st, err := ctrl.State(ctx)
	if err != nil {
		return fmt.Errorf("failed to read bindings: %w", err)
	}

	out := cmd.OutOrStdout()
	if bindingsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st.Bindings)
	}

	printBindings(out, st.Bindings, st.HotkeysEnabled, src)
	return nil
}

func printBindings(out io.Writer, bindings []hotkey.Binding, enabled bool, src *tui.KeySource) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKEY\tACTION\tSECONDS\tSTATUS")
	for _, b := range bindings {
		seconds := "-"
		if b.Action.IsSeek() {
			seconds = fmt.Sprintf("%.1f", hotkey.ClampMagnitude(b.Magnitude))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.ID, keyName(b.Trigger), b.Action, seconds, bindingStatus(b, enabled, src))
	}
	w.Flush()

	if !enabled {
		fmt.Fprintln(out, "\nHotkeys are disabled (hotkeys.enabled: false). Press tab in abloop run to enable them.")
	}
}

func keyName(t hotkey.Trigger) string {
	switch {
	case t == "":
		return "-"
	case strings.TrimSpace(string(t)) == "":
		return "space"
	}
	return string(t)
}

func bindingStatus(b hotkey.Binding, enabled bool, src *tui.KeySource) string {
	switch {
	case !enabled:
		return "off"
	case b.Trigger == "":
		return "unbound"
	}
	if id, ok := src.Lookup(tui.NormalizeTrigger(b.Trigger)); ok && id == b.ID {
		return "ok"
	}
	return "conflict"
}
