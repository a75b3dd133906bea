package tools

import (
	"github.com/spf13/cobra"
)

// ToolsCmd groups helper commands that do not analyze sources
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "m68kregs miscellaneous tools",
}
