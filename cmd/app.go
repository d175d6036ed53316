// Package cmd implements the CLI application to rebalance a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/rebalancer"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&rebalanceCmd{}, "portfolio")
	c.Register(&holdingCmd{}, "portfolio")
	c.Register(&symbolsCmd{}, "portfolio")
	c.Register(&topicCmd{}, "help")
}

// Config holds the defaults of the global flags, read from the environment.
type Config struct {
	PortfolioFile string  `env:"RBL_PORTFOLIO_FILE" envDefault:"portfolio.jsonl"`
	Currency      string  `env:"RBL_CURRENCY" envDefault:"USD"`
	LogLevel      string  `env:"RBL_LOG_LEVEL" envDefault:"warn"`
	Tolerance     float64 `env:"RBL_TOLERANCE" envDefault:"0"`
}

// LoadConfig reads the configuration from the environment, after loading an
// optional .env file from the working directory. An invalid environment is
// reported and replaced by the defaults.
func LoadConfig() Config {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring invalid environment: %v\n", err)
		cfg = Config{}
		_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	}
	return cfg
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var config = LoadConfig()

var (
	portfolioFile = flag.String("portfolio-file", config.PortfolioFile, "Path to the portfolio file (JSONL format)")
	currency      = flag.String("currency", config.Currency, "Currency of the prices in the portfolio file")
	logLevel      = flag.String("v", config.LogLevel, "Log level: debug, info, warn or error")
	rawMarkdown   = flag.Bool("markdown", false, "Print raw markdown instead of rendering it for the terminal")
)

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// newLogger returns a logger writing human-readable lines to 'w'.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().
		Logger()
}

// loadPortfolio decodes the portfolio file selected by the global flags.
func loadPortfolio(log zerolog.Logger) (*rebalancer.Portfolio, error) {
	log.Debug().Str("file", *portfolioFile).Str("currency", *currency).Msg("loading portfolio")
	p, err := rebalancer.LoadPortfolio(*portfolioFile, *currency)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", *portfolioFile).Stringer("total", p.TotalValue()).Msg("portfolio loaded")
	return p, nil
}

// printMarkdown renders 'md' for the terminal, or prints it as is with -markdown.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
