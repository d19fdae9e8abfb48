package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/abloop/internal/marker"
)

var timecodeCmd = &cobra.Command{
	Use:   "timecode <seconds|MM:SS.CC>...",
	Short: "Convert between seconds and MM:SS.CC",
	Long: `Converts each argument to a timecode and its total seconds. Arguments
may be plain seconds (83.5), MM:SS (1:23) or MM:SS.CC (01:23.50). Seconds
and centiseconds out of range are clamped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTimecode,
}

func init() {
	rootCmd.AddCommand(timecodeCmd)
}

func runTimecode(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, arg := range args {
		tc, err := marker.ParseTimecode(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %.2f\n", tc, tc.TotalSeconds())
	}
	return nil
}
