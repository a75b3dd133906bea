package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/cmd/analyze"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/cmd/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "m68kregs",
	Short: "Checks m68k subroutines against the register calling convention",
	Long: `m68kregs scans Motorola 68000 assembly sources, finds subroutines (labels followed by rts/rte)
and reports, for every subroutine, which registers are untouched, used as scratch (d0-d1/a0-a1),
saved with movem, or modified without being saved (unsafe).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, analyze.AnalyzeCmd, analyze.WatchCmd, analyze.ViewCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.m68kregs.yaml)")
	RootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
	RootCmd.PersistentFlags().Bool("shared-labels", false, "Credit every label of a run of consecutive labels as an entry point")
	RootCmd.PersistentFlags().String("write-policy", "destination", "Operands counted as written: destination, any-operand")

	cobra.CheckErr(viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log.file", RootCmd.PersistentFlags().Lookup("log-file")))
	cobra.CheckErr(viper.BindPFlag("analyzer.shared-labels", RootCmd.PersistentFlags().Lookup("shared-labels")))
	cobra.CheckErr(viper.BindPFlag("analyzer.write-policy", RootCmd.PersistentFlags().Lookup("write-policy")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".m68kregs" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".m68kregs")
	}

	viper.SetEnvPrefix("M68KREGS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
