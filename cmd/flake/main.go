// Command flake converts WAV files to FLAC.
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

var (
	flagQuiet     bool
	flagLevel     int
	flagBlockSize int
	flagPredType  int
	flagOrder     string
	flagOrderMtd  int
	flagPartition string
	flagStereo    int
	flagVariable  int
	flagPadding   int
	flagOutput    string
	flagForce     bool
)

var rootCmd = &cobra.Command{
	Use:   "flake [wav files...]",
	Short: "Encode WAV files to FLAC",
	Long: `flake encodes one or more WAV files to FLAC.

A bare -N flag (e.g. -5) is shorthand for --level N, matching the reference
Flake encoder's own -0..-12 compression-level flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, wavPath := range args {
			if err := encodeFile(wavPath); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-fatal progress output")
	rootCmd.Flags().IntVarP(&flagLevel, "level", "c", 5, "compression level, 0 (fastest) to 12 (smallest)")
	rootCmd.Flags().IntVarP(&flagBlockSize, "blocksize", "b", 0, "block size in samples (0 = use compression-level default)")
	rootCmd.Flags().IntVarP(&flagPredType, "predtype", "t", -1, "prediction type: 0=none, 1=fixed, 2=LPC")
	rootCmd.Flags().StringVarP(&flagOrder, "order", "l", "", "prediction order range, \"max\" or \"min,max\"")
	rootCmd.Flags().IntVarP(&flagOrderMtd, "ordermethod", "m", -1, "order-selection method, 0..6")
	rootCmd.Flags().StringVarP(&flagPartition, "partition", "r", "", "Rice partition order range, \"max\" or \"min,max\"")
	rootCmd.Flags().IntVarP(&flagStereo, "stereo", "s", -1, "stereo method: 0=independent, 1=estimate")
	rootCmd.Flags().IntVarP(&flagVariable, "variable", "v", 0, "variable block size: 0=off, 1=on (unsupported)")
	rootCmd.Flags().IntVarP(&flagPadding, "padding", "p", 0, "PADDING block size in bytes (0 = compression-level default)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (defaults to the input path with its extension replaced)")
	rootCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "force overwrite of an existing output file")
}

var bareLevelFlag = regexp.MustCompile(`^-([0-9]|1[0-2])$`)

// preprocessArgs rewrites bare "-N" compression-level shorthand flags (as
// the reference encoder's own CLI accepts) into "--level N" before cobra's
// standard flag parser sees them, since pflag has no notion of a flag named
// by a bare digit.
func preprocessArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if bareLevelFlag.MatchString(a) {
			out = append(out, "--level", strings.TrimPrefix(a, "-"))
			continue
		}
		out = append(out, a)
	}
	return out
}

func init() {
	rootCmd.SetArgs(preprocessArgs(os.Args[1:]))
}

// parseOrderRange parses a "max" or "min,max" order-range flag value.
func parseOrderRange(s string) (min, max int, ok bool, err error) {
	if s == "" {
		return 0, 0, false, nil
	}
	parts := strings.SplitN(s, ",", 2)
	if len(parts) == 1 {
		max, err = strconv.Atoi(parts[0])
		return 0, max, true, err
	}
	min, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false, err
	}
	max, err = strconv.Atoi(parts[1])
	return min, max, true, err
}

func progressf(format string, args ...interface{}) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
