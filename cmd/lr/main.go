package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/fennwick/longread/pkg/article"
	"github.com/fennwick/longread/pkg/config"
	"github.com/fennwick/longread/pkg/debug"
	"github.com/fennwick/longread/pkg/export"
	"github.com/fennwick/longread/pkg/share"
	"github.com/fennwick/longread/pkg/ui"
	"github.com/fennwick/longread/pkg/version"
	"github.com/fennwick/longread/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	setupFlag := flag.Bool("setup", false, "Run the interactive setup wizard")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	exportOutline := flag.String("export-outline", "", "Write a section outline image (.svg or .png) and exit")
	noWatch := flag.Bool("no-watch", false, "Disable live reload when the article file changes")
	flag.Parse()

	if *help {
		fmt.Println("Usage: lr [options] <article.md>")
		fmt.Println("\nA terminal reader for long-form articles.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("lr %s\n", version.Version)
		os.Exit(0)
	}

	if *setupFlag {
		if err := config.RunSetup(); err != nil {
			fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lr [options] <article.md>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	doc, err := article.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading article: %v\n", err)
		os.Exit(1)
	}

	if *exportOutline != "" {
		if err := export.WriteOutline(doc, *exportOutline); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Outline written to %s\n", *exportOutline)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "lr needs an interactive terminal; use --export-outline for non-TTY output.")
		os.Exit(1)
	}

	var cfg config.Config
	var cfgErr error
	if *configPath != "" {
		cfg, cfgErr = config.LoadFrom(*configPath)
	} else {
		cfg, cfgErr = config.Load()
	}
	if cfgErr != nil {
		// Non-fatal: read with defaults.
		debug.Log("config: %v", cfgErr)
		cfg = config.DefaultConfig()
	}

	svc := share.NewService(share.NewCommandSharer(cfg.ShareCommand), share.SystemClipboard{})
	m := ui.NewModel(doc, cfg, svc)

	if err := runTUIProgram(m, path, *noWatch); err != nil {
		fmt.Fprintf(os.Stderr, "Error running reader: %v\n", err)
		os.Exit(1)
	}
}

func runTUIProgram(m *ui.Model, path string, noWatch bool) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	if !noWatch {
		w, err := watcher.New(path,
			watcher.WithOnChange(func() {
				doc, err := article.Load(path)
				if err != nil {
					debug.Log("reload: %v", err)
					return
				}
				p.Send(ui.ArticleReloadedMsg{Doc: doc})
			}),
			watcher.WithOnError(func(err error) {
				debug.Log("watch: %v", err)
			}),
		)
		if err == nil && w.Start() == nil {
			defer w.Stop()
			debug.Log("watching %s (polling=%v)", w.Path(), w.IsPolling())
		} else {
			debug.Log("watch disabled: %v", err)
		}
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set LR_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("LR_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
