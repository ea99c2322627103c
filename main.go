// Package main provides the entry point for the accesspanel demo: a
// storefront page with the in-page accessibility control panel.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/text/language"

	"github.com/webshoplabs/accesspanel/internal/announce"
	"github.com/webshoplabs/accesspanel/internal/dom"
	"github.com/webshoplabs/accesspanel/internal/narrate"
	"github.com/webshoplabs/accesspanel/internal/narrate/audio"
	"github.com/webshoplabs/accesspanel/internal/narrate/engines"
	"github.com/webshoplabs/accesspanel/internal/panel"
	"github.com/webshoplabs/accesspanel/internal/prefs"
	"github.com/webshoplabs/accesspanel/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	speech     string
	storeKind  string
	lang       string
	speechRate float64
	style      string
	width      uint
	mouse      bool

	rootCmd = &cobra.Command{
		Use:   "accesspanel [PAGE.md]",
		Short: "In-page accessibility control panel, in your terminal",
		Long: paragraph(
			fmt.Sprintf("\nBrowse a storefront page with the %s: adjust text size, contrast, spacing and more, and have focused elements %s.", keyword("accessibility panel"), keyword("read aloud")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	speech = viper.GetString("speech")
	storeKind = viper.GetString("store")
	lang = viper.GetString("lang")
	speechRate = viper.GetFloat64("rate")
	width = viper.GetUint("width")
	mouse = viper.GetBool("mouse")
	style = viper.GetString("style")

	switch speech {
	case "espeak", "mock", "off":
	default:
		return fmt.Errorf("unknown speech engine %q (espeak, mock or off)", speech)
	}
	switch storeKind {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown store %q (file, sqlite or memory)", storeKind)
	}
	if speechRate < 0.5 || speechRate > 2.0 {
		return fmt.Errorf("speech rate must be between 0.5 and 2.0, got %.2f", speechRate)
	}
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("invalid language tag %q: %w", lang, err)
	}

	// Detect terminal width.
	if !cmd.Flags().Changed("width") {
		if term.IsTerminal(int(os.Stdout.Fd())) && width == 0 {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = uint(w)
			}
			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func execute(_ *cobra.Command, args []string) error {
	content := samplePage
	path := ""
	if len(args) == 1 {
		path = expandPath(args[0])
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read page: %w", err)
		}
		content = string(b)
	}
	return runTUI(path, content)
}

// newBackend builds the preference backend selected by --store.
func newBackend() (prefs.Backend, error) {
	scope := gap.NewScope(gap.User, "accesspanel")

	switch storeKind {
	case "memory":
		return prefs.NewMemoryBackend(), nil

	case "sqlite":
		dbPath, err := scope.DataPath("accesspanel.db")
		if err != nil {
			return nil, fmt.Errorf("unable to resolve data path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("unable to create data directory: %w", err)
		}
		return prefs.NewSQLiteBackend(dbPath)

	default:
		dir, err := scope.DataPath("")
		if err != nil {
			return nil, fmt.Errorf("unable to resolve data path: %w", err)
		}
		return prefs.NewFileBackend(dir)
	}
}

// newSynthesizer builds the speech engine selected by --speech.
func newSynthesizer() (narrate.Synthesizer, error) {
	switch speech {
	case "espeak":
		player, err := audio.NewPlayer()
		if err != nil {
			return nil, fmt.Errorf("unable to open audio device: %w", err)
		}
		e := engines.NewEspeak(player)
		if !e.Available() {
			log.Warn("espeak binary not found, narration will be unavailable")
		}
		return e, nil
	case "mock":
		return engines.NewMock(), nil
	default:
		silent := engines.NewMock()
		silent.SetAvailable(false)
		return silent, nil
	}
}

func runTUI(path, content string) error {
	ctx := context.Background()

	backend, err := newBackend()
	if err != nil {
		return err
	}
	store := prefs.NewStore(backend)

	page := dom.NewPage()
	page.Mount(dom.FromMarkdown([]byte(content)))

	flush := ui.NewFlushQueue()
	announcer := announce.New(page, announce.WithScheduler(flush.Schedule))
	announcer.Mount(page.Body())

	synth, err := newSynthesizer()
	if err != nil {
		return err
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	reader := narrate.NewReader(page, synth,
		narrate.WithLanguage(tag),
		narrate.WithSpeechRate(speechRate),
	)
	defer reader.Close() //nolint:errcheck

	controller := panel.NewController(page, store, announcer, reader)
	controller.Start(ctx)
	defer store.Close() //nolint:errcheck

	// Another session rewriting the file slot is the desktop analog of a
	// cross-tab storage event; reconcile on the next UI tick.
	if fb, ok := backend.(*prefs.FileBackend); ok {
		if err := fb.Watch(prefs.DefaultKey, func() {
			flush.Schedule(func() { controller.Reload(ctx) })
		}); err != nil {
			log.Warn("unable to watch preference file", "error", err)
		}
	}

	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	if cfg.GlamourStyle == "" {
		cfg.GlamourStyle = style
	}
	cfg.Path = path
	cfg.GlamourMaxWidth = width
	cfg.EnableMouse = mouse
	cfg.Speech = speech
	cfg.Language = lang
	cfg.SpeechRate = speechRate

	session := ui.Session{
		Page:       page,
		Controller: controller,
		Flush:      flush,
		Content:    content,
	}
	if _, err := ui.NewProgram(cfg, session).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVar(&speech, "speech", "espeak", "speech engine (espeak, mock or off)")
	rootCmd.Flags().StringVar(&storeKind, "store", "file", "preference store (file, sqlite or memory)")
	rootCmd.Flags().StringVar(&lang, "lang", "en", "narration language tag")
	rootCmd.Flags().Float64Var(&speechRate, "rate", 1.0, "speech rate multiplier")
	rootCmd.Flags().StringVarP(&style, "style", "s", styles.AutoStyle, "style name or JSON path")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to disable)")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")

	_ = viper.BindPFlag("speech", rootCmd.Flags().Lookup("speech"))
	_ = viper.BindPFlag("store", rootCmd.Flags().Lookup("store"))
	_ = viper.BindPFlag("lang", rootCmd.Flags().Lookup("lang"))
	_ = viper.BindPFlag("rate", rootCmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("style", rootCmd.Flags().Lookup("style"))
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	viper.SetDefault("speech", "espeak")
	viper.SetDefault("store", "file")
	viper.SetDefault("lang", "en")
	viper.SetDefault("rate", 1.0)
	viper.SetDefault("style", styles.AutoStyle)
	viper.SetDefault("width", 0)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "accesspanel")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "accesspanel")}, dirs...)
	}
	if c := os.Getenv("ACCESSPANEL_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("accesspanel")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("accesspanel")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "accesspanel.yml")
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
