package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/mrdiff/internal/changes"
	"github.com/zjrosen/mrdiff/internal/comments"
	"github.com/zjrosen/mrdiff/internal/config"
	"github.com/zjrosen/mrdiff/internal/highlight"
	"github.com/zjrosen/mrdiff/internal/log"
	"github.com/zjrosen/mrdiff/internal/pubsub"
	"github.com/zjrosen/mrdiff/internal/render"
	"github.com/zjrosen/mrdiff/internal/review"
	"github.com/zjrosen/mrdiff/internal/tracing"
	"github.com/zjrosen/mrdiff/internal/ui/reviewer"
	"github.com/zjrosen/mrdiff/internal/ui/styles"
	"github.com/zjrosen/mrdiff/internal/watcher"
)

func init() {
	// Query the terminal background before bubbletea owns stdin, so the
	// OSC 11 reply cannot leak into the input stream.
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".mrdiff/config.yaml"
	stdinPath       = "-"
)

var (
	version      = "dev"
	cfgFile      string
	debugFlag    bool
	changesFile  string
	commentsFile string
	noWatch      bool

	cfg        config.Config
	configErr  error
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "mrdiff",
	Short: "Side-by-side review of merge request diffs",
	Long: `mrdiff shows the file changes of a merge request side by side, with
syntax highlighting and markers on lines that carry review comments.

Changes are read from a JSON or YAML document holding either a bare list of
file changes or a "changes:" list, as returned by the GitLab merge request
changes API. Use "-" to read them from stdin.

Example:
  mrdiff --changes mr.json --comments notes.yaml
  glab api projects/:id/merge_requests/42/changes | mrdiff --changes -`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runViewer,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .mrdiff/config.yaml, then ~/.config/mrdiff/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to debug.log (or $MRDIFF_LOG)")
	rootCmd.PersistentFlags().StringVar(&changesFile, "changes", "changes.json",
		`merge request changes document, "-" for stdin`)
	rootCmd.PersistentFlags().StringVar(&commentsFile, "comments", "",
		"review comments document")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"do not reload when the changes file is rewritten")
}

func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	v.SetEnvPrefix("MRDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// .mrdiff/config.yaml in the working directory wins over the user config.
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "mrdiff"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			configErr = fmt.Errorf("reading config: %w", err)
			return
		}
		// Missing config: continue with defaults. config init/set create it.
	}

	cfg, configErr = config.Load(v)
}

// setup runs before every command: logging first, then config checks and
// theme.
func setup(_ *cobra.Command, _ []string) error {
	if os.Getenv("MRDIFF_DEBUG") != "" || debugFlag {
		logPath := os.Getenv("MRDIFF_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "mrdiff")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "mrdiff starting", "version", version, "config", viper.ConfigFileUsed())
	}

	if configErr != nil {
		return configErr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(cfg.Theme.StylesTheme()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

// pipeline is the loaded input plus the renderer built from config.
type pipeline struct {
	changes  []changes.FileChange
	comments comments.Index
	renderer *review.Renderer
	tracer   *tracing.Provider
}

func newPipeline(ctx context.Context, stdin io.Reader) (*pipeline, error) {
	list, err := loadChanges(changesFile, stdin)
	if err != nil {
		return nil, err
	}

	idx := comments.Index{}
	if commentsFile != "" {
		if idx, err = comments.Load(commentsFile); err != nil {
			return nil, fmt.Errorf("loading comments: %w", err)
		}
	}

	provider, err := tracing.NewProvider(ctx, cfg.Tracing.ProviderConfig())
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	engine := highlight.New(
		highlight.WithEnabled(cfg.Highlight.Enabled),
		highlight.WithDisabledLanguages(cfg.Highlight.DisabledLanguages...),
		highlight.WithStyles(cfg.Theme.SyntaxStyles()),
	)
	r := review.NewRenderer(engine, render.New(render.DefaultTheme()), idx,
		review.WithTracer(provider.Tracer()))

	log.Debug(log.CatReview, "pipeline ready", "files", len(list), "commented_lines", len(idx), "tracing", provider.Enabled())
	return &pipeline{changes: list, comments: idx, renderer: r, tracer: provider}, nil
}

func (p *pipeline) Close(ctx context.Context) {
	if err := p.tracer.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
	}
}

func loadChanges(path string, stdin io.Reader) ([]changes.FileChange, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading changes from stdin: %w", err)
		}
		list, err := changes.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing changes from stdin: %w", err)
		}
		return list, nil
	}
	list, err := changes.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading changes: %w", err)
	}
	return list, nil
}

func runViewer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p, err := newPipeline(ctx, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer p.Close(context.Background())

	session := review.NewSession(p.changes)
	log.Info(log.CatReview, "review session started", "session", session.ID, "files", session.Len())

	viewerCfg := reviewer.Config{
		Renderer:      p.renderer,
		Session:       session,
		Comments:      p.comments,
		CommentsPath:  commentsFile,
		ScrollStep:    cfg.UI.ScrollStep,
		MarkdownStyle: cfg.UI.MarkdownStyle,
	}
	if changesFile != stdinPath {
		viewerCfg.ChangesPath = changesFile
	}

	if cfg.Watch.Enabled && !noWatch && viewerCfg.ChangesPath != "" {
		w, err := watcher.New(watcher.Config{Path: changesFile, Debounce: cfg.Watch.Debounce})
		if err == nil {
			if err = w.Start(); err == nil {
				defer func() { _ = w.Stop() }()
				viewerCfg.Events = pubsub.NewListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		// The viewer works without auto-reload.
		if err != nil {
			log.Warn(log.CatWatcher, "auto-reload disabled", "error", err)
		}
	}

	zone.NewGlobal()
	defer zone.Close()

	prog := tea.NewProgram(
		reviewer.New(viewerCfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
