package analyze

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/annotate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit code of 'analyze --fail-on-unsafe' when some subroutine is unsafe
const ExitCodeUnsafe = 3

var analyzeFailOnUnsafe bool

var AnalyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Report register usage of every subroutine in m68k assembly files",
	Long: `Analyzes m68k assembly sources and prints, for every subroutine, how it uses each register:

  scratch  - d0, d1, a0 and a1, free to use
  saved    - preserved register saved with movem <list>,-(sp)
  unsafe   - preserved register modified but never saved

Unsafe modifications are listed with their location and the movem instructions that would fix them.

Output formats:
  text  - human readable, colored when writing to a terminal (default)
  json  - one array entry per file
  yaml  - same structure as json

Examples:
  # Report all subroutines of a file
  m68kregs analyze sprite.s

  # Machine readable output, failing on unsafe subroutines (CI)
  m68kregs analyze -f json --fail-on-unsafe src/*.s`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAnalyze,
}

func init() {
	AnalyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml")
	AnalyzeCmd.Flags().Bool("no-color", false, "Disable colored text output")
	AnalyzeCmd.Flags().BoolVar(&analyzeFailOnUnsafe, "fail-on-unsafe", false, fmt.Sprintf("Exit with code %v if any subroutine modifies a preserved register without saving it", ExitCodeUnsafe))

	cobra.CheckErr(viper.BindPFlag("output.format", AnalyzeCmd.Flags().Lookup("format")))
	cobra.CheckErr(viper.BindPFlag("output.no-color", AnalyzeCmd.Flags().Lookup("no-color")))
}

// Returns the output style from configuration. color.NoColor is set by the color
// package when stdout is not a terminal or NO_COLOR is set
func outputStyle() *annotate.Style {
	return annotate.NewStyle(!viper.GetBool("output.no-color") && !color.NoColor)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	format, err := annotate.FormatByName(viper.GetString("output.format"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings, err := settingsFromConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files, err := analyzeFiles(analyzer.New(settings), args, annotate.Severity_Warning)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := annotate.Write(cmd.OutOrStdout(), format, files, outputStyle()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(2)
	}

	if analyzeFailOnUnsafe {
		for _, file := range files {
			if file.HasUnsafe() {
				os.Exit(ExitCodeUnsafe)
			}
		}
	}
}
