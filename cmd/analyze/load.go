package analyze

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/annotate"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/asm"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/utils"
	"github.com/spf13/viper"
)

var ErrInvalidSettings = errors.New("invalid analyzer settings")

// Builds the analyzer settings from configuration (flags, env, config file)
func settingsFromConfig() (analyzer.Settings, error) {
	settings := analyzer.DefaultSettings
	settings.SharedLabels = viper.GetBool("analyzer.shared-labels")

	if name := viper.GetString("analyzer.write-policy"); name != "" {
		policy, ok := analyzer.WritePolicyByName(name)
		if !ok {
			return settings, utils.MakeError(ErrInvalidSettings, "unknown write policy '%v', expected destination or any-operand", name)
		}
		settings.WritePolicy = policy
	}

	return settings, nil
}

// Reads and analyzes one source file
func analyzeFile(a *analyzer.Analyzer, path string, severity annotate.Severity) (annotate.FileReport, error) {
	start := time.Now()

	lines, err := asm.ReadFile(path)
	if err != nil {
		return annotate.FileReport{}, err
	}

	reports := a.AnalyzeFile(lines)
	report := annotate.NewFileReport(path, lines, reports, severity)

	slog.Debug("analyzed file",
		"path", path,
		"lines", len(lines),
		"subroutines", len(reports),
		"diagnostics", len(report.Diagnostics),
		"settings", a.Settings(),
		"elapsed", time.Since(start))

	return report, nil
}

// Reads and analyzes all the given source files, in order
func analyzeFiles(a *analyzer.Analyzer, paths []string, severity annotate.Severity) ([]annotate.FileReport, error) {
	files := make([]annotate.FileReport, 0, len(paths))

	for _, path := range paths {
		file, err := analyzeFile(a, path, severity)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return files, nil
}
