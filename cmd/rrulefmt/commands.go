package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"github.com/urfave/cli/v2"

	"github.com/cyp0633/librecur/display"
	"github.com/cyp0633/librecur/internal/config"
	"github.com/cyp0633/librecur/internal/xml/xcal"
	"github.com/cyp0633/librecur/recurrence"
)

// env bundles what every command needs after flags, config and
// environment are merged.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	loc     *time.Location
	decoder *recurrence.Decoder
	out     io.Writer
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("timezone"); v != "" {
		cfg.Timezone = v
	}
	cfg.Normalize()

	logger := setupLogger(cfg.LogLevel)
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded", "language", cfg.Language, "timezone", loc.String())

	return &env{
		cfg:    cfg,
		logger: logger,
		loc:    loc,
		decoder: recurrence.NewDecoder(
			recurrence.WithLogger(logger),
			recurrence.WithLocation(loc),
		),
		out: c.App.Writer,
	}, nil
}

// readInput reads the file named by the first argument, or stdin.
func readInput(c *cli.Context) ([]byte, error) {
	if c.Args().Len() == 0 || c.Args().First() == "-" {
		return io.ReadAll(c.App.Reader)
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func (e *env) decodeText(c *cli.Context) (*recurrence.Recurrence, error) {
	data, err := readInput(c)
	if err != nil {
		return nil, err
	}
	return e.decoder.Decode(string(data))
}

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Print a sentence for every rule and date in the input.",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lang", Usage: "phrase table language"},
			&cli.StringFlag{Name: "phrases", Usage: "YAML phrase table"},
			&cli.BoolFlag{Name: "short", Usage: "abbreviate month and weekday names"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			if v := c.String("lang"); v != "" {
				e.cfg.Language = v
			}
			if v := c.String("phrases"); v != "" {
				e.cfg.PhrasesFile = v
			}
			short := e.cfg.Short || c.Bool("short")

			phrases, err := e.cfg.Phrases()
			if err != nil {
				return err
			}
			rec, err := e.decodeText(c)
			if err != nil {
				return err
			}

			for _, line := range describe(display.NewGenerator(phrases), rec, short) {
				fmt.Fprintln(e.out, line)
			}
			return nil
		},
	}
}

// describe lists the labels of rec in serialization order.
func describe(g *display.Generator, rec *recurrence.Recurrence, short bool) []string {
	var lines []string
	for _, r := range rec.RRules {
		lines = append(lines, g.Label(r, display.Inclusion, short))
	}
	for _, r := range rec.ExRules {
		lines = append(lines, g.Label(r, display.Exclusion, short))
	}
	for _, t := range rec.RDates {
		lines = append(lines, g.DateLabel(t, display.Inclusion))
	}
	for _, t := range rec.ExDates {
		lines = append(lines, g.DateLabel(t, display.Exclusion))
	}
	return lines
}

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Rewrite the input in canonical text form.",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			rec, err := e.decodeText(c)
			if err != nil {
				return err
			}
			if text := rec.Serialize(); text != "" {
				fmt.Fprintln(e.out, text)
			}
			return nil
		},
	}
}

func xcalCommand() *cli.Command {
	return &cli.Command{
		Name:      "xcal",
		Usage:     "Convert text to xCal, or xCal back to text with --decode.",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "decode", Aliases: []string{"d"}},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			if !c.Bool("decode") {
				rec, err := e.decodeText(c)
				if err != nil {
					return err
				}
				if err := xcal.Encode(e.out, rec); err != nil {
					return err
				}
				return nil
			}

			data, err := readInput(c)
			if err != nil {
				return err
			}
			recs, err := xcal.Decode(strings.NewReader(string(data)), e.loc)
			if err != nil {
				return err
			}
			return printRecurrences(e.out, recs)
		},
	}
}

func icsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ics",
		Usage:     "Convert text to an iCalendar event, or iCalendar back to text with --decode.",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "decode", Aliases: []string{"d"}},
			&cli.StringFlag{Name: "uid", Usage: "event UID, generated when empty"},
			&cli.StringFlag{Name: "summary", Usage: "event SUMMARY"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			if !c.Bool("decode") {
				rec, err := e.decodeText(c)
				if err != nil {
					return err
				}
				return recurrence.EncodeCalendar(e.out, []*recurrence.Recurrence{rec}, recurrence.EventOptions{
					UID:     c.String("uid"),
					Summary: c.String("summary"),
				})
			}

			data, err := readInput(c)
			if err != nil {
				return err
			}
			recs, err := e.decoder.DecodeCalendar(strings.NewReader(string(data)))
			if err != nil {
				return err
			}
			return printRecurrences(e.out, recs)
		},
	}
}

func rruleCommand() *cli.Command {
	return &cli.Command{
		Name:      "rrule",
		Usage:     "Print each RRULE as rrule-go normalizes it, or import rrule-go strings with --import.",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "import", Usage: "read one rrule-go string per line"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			if c.Bool("import") {
				data, err := readInput(c)
				if err != nil {
					return err
				}
				lines, err := importRRules(string(data))
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(e.out, line)
				}
				return nil
			}

			rec, err := e.decodeText(c)
			if err != nil {
				return err
			}
			for _, r := range rec.RRules {
				opt := r.ROption()
				fmt.Fprintln(e.out, opt.RRuleString())
			}
			return nil
		},
	}
}

// importRRules converts rrule-go strings, one per line, to RRULE lines.
func importRRules(text string) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "RRULE:")
		if line == "" {
			continue
		}
		opt, err := rrule.StrToROption(line)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", line, err)
		}
		r, err := recurrence.RuleFromROption(opt)
		if err != nil {
			return nil, err
		}
		out = append(out, recurrence.Serialize(r))
	}
	return out, scanner.Err()
}

func printRecurrences(w io.Writer, recs []*recurrence.Recurrence) error {
	for i, rec := range recs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, rec.Serialize()); err != nil {
			return err
		}
	}
	return nil
}
