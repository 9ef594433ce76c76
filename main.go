package main

import (
	"fmt"
	"io"
	"os"

	"ostimeline/internal/applog"
	"ostimeline/internal/config"
	"ostimeline/internal/dataset"
	"ostimeline/internal/model"
	"ostimeline/internal/timeline"
	"ostimeline/internal/tui"
	"ostimeline/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "ostimeline",
		Repository: "ostimeline",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		applog.Log.Debugf("update check: %v", err)
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/ostimeline/ostimeline/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

// filterFlags are the CLI equivalents of the interactive filter controls.
type filterFlags struct {
	query    *string
	types    *[]string
	families *[]string
	from     *int
	to       *int
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ostimeline [options]\n\n")
		fmt.Fprintf(os.Stderr, "ostimeline is an interactive timeline of kernels and operating systems.\n")
		fmt.Fprintf(os.Stderr, "Filter by family, type and year range, and search names, features and versions.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ostimeline                          # Start TUI mode\n")
		fmt.Fprintf(os.Stderr, "  ostimeline --web --port 9000        # Serve the timeline page\n")
		fmt.Fprintf(os.Stderr, "  ostimeline -r -q zfs                # Print a text timeline of matches\n")
		fmt.Fprintf(os.Stderr, "  ostimeline -j --family BSD --from 1990 -o bsd.json\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Export the filtered entries as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print the filtered timeline as text (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report or JSON to the specified file")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include descriptions, versions and related entries in the report")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode on http://localhost:<port>")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	configFlag := pflag.String("config", "", "Config file (default $HOME/.ostimeline.yaml)")

	pflag.String(config.KeyData, "", "Dataset YAML file (default: built-in dataset)")
	pflag.Int(config.KeyPort, config.DefaultPort, "Port for web mode")
	pflag.StringP(config.KeyLogLevel, "l", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	pflag.String(config.KeyLogFile, "", "Write TUI mode logs to this file")

	filters := filterFlags{
		query:    pflag.StringP("query", "q", "", "Search names, descriptions, highlights and versions"),
		types:    pflag.StringSlice("type", nil, "Only these types (repeatable or comma separated)"),
		families: pflag.StringSlice("family", nil, "Only these families (repeatable or comma separated)"),
		from:     pflag.Int("from", 0, "First year of the range (default: earliest entry)"),
		to:       pflag.Int("to", 0, "Last year of the range (default: latest entry)"),
	}
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("ostimeline version %s\n", model.Version)
		return
	}

	cfg, err := config.Load(pflag.CommandLine, *configFlag)
	if err != nil {
		fatal(err)
	}
	if err := applog.SetLogLevel(cfg.LogLevel); err != nil {
		fatal(err)
	}
	if cfg.Source != "" {
		applog.Log.Debugf("using config file %s", cfg.Source)
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *webFlag {
		runWebMode(cfg)
		return
	}

	if *reportFlag {
		runReportMode(cfg, filters, *outputFlag, *verboseFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(cfg, filters, *outputFlag)
		return
	}

	// Default: TUI
	runTuiMode(cfg)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// buildState turns the filter flags into a snapshot. Facets are only
// narrowed when their flag was given.
func buildState(ds *dataset.Dataset, f filterFlags) (timeline.State, error) {
	minYear, maxYear := ds.Bounds()
	bounds := timeline.Bounds{Min: minYear, Max: maxYear}
	st := timeline.DefaultState(bounds).WithQuery(*f.query)

	if pflag.Lookup("type").Changed {
		types, err := timeline.ParseTypes(*f.types)
		if err != nil {
			return st, err
		}
		st.Types = types
	}
	if pflag.Lookup("family").Changed {
		families, err := timeline.ParseFamilies(*f.families)
		if err != nil {
			return st, err
		}
		st.Families = families
	}
	if pflag.Lookup("to").Changed {
		st = st.WithTo(*f.to, bounds)
	}
	if pflag.Lookup("from").Changed {
		st = st.WithFrom(*f.from, bounds)
	}
	return st, nil
}

func loadFiltered(cfg config.Config, f filterFlags) (*dataset.Dataset, timeline.State, []model.Entry) {
	ds, err := dataset.Load(cfg.DataFile)
	if err != nil {
		fatal(err)
	}
	st, err := buildState(ds, f)
	if err != nil {
		fatal(err)
	}
	return ds, st, timeline.Filter(ds.Entries(), st)
}

func writeOutput(outputFile string, data []byte) {
	if outputFile == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to %s: %v\n", outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Saved to %s\n", outputFile)
}

func runReportMode(cfg config.Config, f filterFlags, outputFile string, verbose bool) {
	ds, st, filtered := loadFiltered(cfg, f)

	report := timeline.GenerateReport(timeline.GroupByDecade(filtered), st, timeline.ReportOptions{
		Verbose: verbose,
		Related: ds.Related,
	})
	writeOutput(outputFile, []byte(report))
}

func runJsonMode(cfg config.Config, f filterFlags, outputFile string) {
	_, st, filtered := loadFiltered(cfg, f)

	data, name, err := timeline.Export(filtered, st.Range.From, st.Range.To)
	if err != nil {
		fatal(err)
	}
	applog.Log.Debugf("exporting %d entries as %s", len(filtered), name)
	writeOutput(outputFile, data)
}

func runWebMode(cfg config.Config) {
	ds, err := dataset.Load(cfg.DataFile)
	if err != nil {
		fatal(err)
	}
	if err := web.NewServer(ds, cfg.Addr()).Start(); err != nil {
		fatal(err)
	}
}

func runTuiMode(cfg config.Config) {
	closer, err := applog.Redirect(cfg.LogFile)
	if err != nil {
		fatal(err)
	}

	p := tea.NewProgram(tui.InitialModel(cfg.DataFile, "."), tea.WithAltScreen())
	run := func() error {
		_, err := p.Run()
		return err
	}
	if err := runAndClose(run, closer); err != nil {
		fatal(err)
	}
}

// runAndClose runs the program and closes the log file before returning,
// so callers may exit straight away on error.
func runAndClose(run func() error, closer io.Closer) error {
	runErr := run()
	closeErr := closer.Close()
	if runErr != nil {
		return fmt.Errorf("alas, there's been an error: %w", runErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close log file: %w", closeErr)
	}
	return nil
}
