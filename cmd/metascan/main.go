package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"metascan/internal/app"
	"metascan/internal/config"
	"metascan/internal/domain"
	appErrors "metascan/internal/errors"
	"metascan/internal/infra/exifdec"
	osfs "metascan/internal/infra/fs"
	"metascan/internal/infra/mp4dec"
	"metascan/internal/infra/tagdec"
	"metascan/internal/logging"
	"metascan/internal/presentation"
	"metascan/internal/report"
	"metascan/internal/tui"
)

var (
	appVersion = "0.1.0"

	output    string
	rulesFile string
	workers   int
	verbose   bool
	plain     bool
)

var rootCmd = &cobra.Command{
	Use:   "metascan [root]",
	Short: "Recursively extract file metadata into a report log",
	Long: `Metascan walks a directory tree, classifies files by extension and
extracts metadata (EXIF for images, tags for audio, container info for
video) into a human-readable report. A corrupt or unsupported file is
recorded and never aborts the scan.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runScan,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "report file path (default "+config.DefaultReportName+")")
	rootCmd.Flags().StringVarP(&rulesFile, "rules", "c", "", "YAML file with extra ignore rules")
	rootCmd.Flags().IntVarP(&workers, "workers", "j", 0, "decode workers per directory (0=auto)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose process output")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "plain console output instead of the TUI")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	cfg.Output = output
	cfg.RulesFile = rulesFile
	cfg.Workers = workers
	cfg.Verbose = verbose
	cfg.Plain = plain

	cfg, err := cfg.Resolve()
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "config", cfg.RulesFile, err)
	}

	filesystem := osfs.OSFS{}
	info, err := filesystem.Stat(cfg.Root)
	if err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.Root, err)
	}
	if !info.IsDir() {
		return appErrors.Wrap(appErrors.InvalidConfig, "stat", cfg.Root, errors.New("not a directory"))
	}

	scanner := &app.Scanner{
		FS: filesystem,
		Decoders: map[domain.Category]app.Decoder{
			domain.CategoryImage: exifdec.Reader{},
			domain.CategoryAudio: tagdec.Reader{},
			domain.CategoryVideo: mp4dec.Reader{},
		},
		Rules:   cfg.Rules(),
		Workers: cfg.Workers,
		Logger:  logging.New(os.Stderr, cfg.Verbose),
	}

	if cfg.Plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return runPlain(cmd.Context(), scanner, cfg)
	}
	return runTUI(scanner, cfg)
}

func runPlain(ctx context.Context, scanner *app.Scanner, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}
	printer.PrintStart(cfg.Root, cfg.Output)

	writer, err := report.Create(cfg.Output)
	if err != nil {
		return appErrors.Wrap(appErrors.WriteFailure, "create", cfg.Output, err)
	}

	summary, scanErr := scanner.Scan(ctx, cfg.Root, writer)
	closeErr := writer.Close()
	if scanErr != nil {
		return scanErr
	}
	if closeErr != nil {
		return appErrors.Wrap(appErrors.WriteFailure, "close", cfg.Output, closeErr)
	}

	summary.ReportPath = cfg.Output
	printer.PrintSummary(summary)
	return nil
}

func runTUI(scanner *app.Scanner, cfg config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer, err := report.Create(cfg.Output)
	if err != nil {
		return appErrors.Wrap(appErrors.WriteFailure, "create", cfg.Output, err)
	}
	defer writer.Close()

	prog := tea.NewProgram(tui.NewModel(tui.Config{
		Root:       cfg.Root,
		ReportPath: cfg.Output,
		Verbose:    cfg.Verbose,
	}))

	scanner.OnProgress = func(done, total int, dir string) {
		prog.Send(tui.ProgressMsg{Done: done, Total: total, Dir: dir})
	}

	scanDone := make(chan error, 1)
	go func() {
		summary, scanErr := scanner.Scan(ctx, cfg.Root, writer)
		if scanErr != nil {
			prog.Send(tui.ErrorMsg{Err: scanErr})
			scanDone <- scanErr
			return
		}
		summary.ReportPath = cfg.Output
		prog.Send(tui.DoneMsg{Summary: summary})
		scanDone <- nil
	}()

	finalModel, err := prog.Run()
	if err != nil {
		cancel()
		<-scanDone
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}

	cancel()
	scanErr := <-scanDone

	if m, ok := finalModel.(tui.Model); ok && m.Interrupted {
		// The partial report written so far stays on disk.
		return nil
	}
	if scanErr != nil && !errors.Is(scanErr, context.Canceled) {
		return scanErr
	}
	return nil
}
