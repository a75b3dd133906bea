package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/registers"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
	"github.com/spf13/cobra"
)

var supportedModules = map[string]func() string{
	"m68k.registers": func() string { return registers.Registers.DocString() },
	"m68k.grammar":   func() string { return analyzer.Mnemonics.DocString() },
}

func moduleNames() []string {
	return utils.SortedKeys(supportedModules)
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show m68kregs documentation",
	Long: `Dumps the documentation of the specified module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(moduleNames(), func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: moduleNames(),
	Run: func(cmd *cobra.Command, args []string) {
		doc := supportedModules[args[0]]()

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return
		}

		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()

		fmt.Fprintln(file, doc)
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
