package analyzer

// Runs the analysis steps with a fixed set of settings. An Analyzer holds no
// mutable state and can be shared between goroutines
type Analyzer struct {
	settings Settings
}

func New(settings Settings) *Analyzer {
	return &Analyzer{settings: settings}
}

func (a *Analyzer) Settings() Settings {
	return a.settings
}

// Analysis of one subroutine of a source file
type Report struct {
	Span   Span   `json:"span" yaml:"span"`
	State  State  `json:"state" yaml:"state"`
	Result Result `json:"registers" yaml:"registers"`

	// Unsafe sites, with line indices relative to the whole source
	UnsafeSites []UnsafeSite `json:"unsafeSites,omitempty" yaml:"unsafeSites,omitempty"`
}

// Analyzes the lines of one subroutine with the default settings
func AnalyzeSubroutine(lines []string) Result {
	return New(DefaultSettings).AnalyzeSubroutine(lines)
}

// Analyzes the lines of one subroutine, returning the status of every register
func (a *Analyzer) AnalyzeSubroutine(lines []string) Result {
	return Resolve(a.NewTracker().Track(lines))
}

// Analyzes every subroutine of a source file with the default settings
func AnalyzeFile(lines []string) []Report {
	return New(DefaultSettings).AnalyzeFile(lines)
}

// Locates and analyzes every subroutine of a source file, in source order
func (a *Analyzer) AnalyzeFile(lines []string) []Report {
	spans := a.LocateSubroutines(lines)
	reports := make([]Report, 0, len(spans))
	tracker := a.NewTracker()

	for _, span := range spans {
		body := span.Body(lines)
		state := tracker.Track(body)

		sites := a.LocateUnsafeSites(body, state)
		for i := range sites {
			sites[i].Line += span.BodyStart
		}

		reports = append(reports, Report{
			Span:        span,
			State:       state,
			Result:      Resolve(state),
			UnsafeSites: sites,
		})
	}

	return reports
}
