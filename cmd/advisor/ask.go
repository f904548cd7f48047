package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/sant0-9/advisor/internal/advisor"
	"github.com/sant0-9/advisor/internal/credential"
	"github.com/sant0-9/advisor/internal/logging"
	"github.com/sant0-9/advisor/internal/persona"
)

// AskCmd sends one question and prints the answer.
// Usage: advisor ask -p culinary-expert "How do I julienne a carrot?"
type AskCmd struct {
	Persona string `short:"p" long:"persona" description:"expert persona id (see --list)"`
	List    bool   `short:"l" long:"list" description:"list personas and exit"`
	Args    struct {
		Question []string `positional-arg-name:"question" description:"question text, or - to read stdin"`
	} `positional-args:"yes"`

	root *Options
}

var (
	warnColor  = color.New(color.FgYellow, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	titleColor = color.New(color.FgMagenta, color.Bold)
)

func (c *AskCmd) Execute(_ []string) error {
	closer, err := logging.Setup(logging.ModeAsk, c.root.Debug, "")
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	if c.List {
		printPersonas(os.Stdout)
		return nil
	}

	cfg, err := c.root.load()
	if err != nil {
		return err
	}

	text, err := c.question(os.Stdin)
	if err != nil {
		return err
	}

	personaID := c.Persona
	if personaID == "" {
		personaID = cfg.Persona
	}

	if strings.TrimSpace(text) == "" {
		warnColor.Fprintln(os.Stderr, advisor.EmptyInputWarning)
		return errReported
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	key, ok := credential.FromConfig(cfg).Resolve(ctx)
	if !ok {
		errColor.Fprintln(os.Stderr, advisor.MissingCredentialHelp(cfg))
		return errReported
	}

	res := advisor.FromConfig(cfg).Ask(ctx, text, personaID, key)
	if !res.OK() {
		errColor.Fprintln(os.Stderr, res.Display())
		return errReported
	}

	titleColor.Fprintf(os.Stderr, "%s via %s\n", persona.DisplayName(personaID), res.Model)
	fmt.Fprint(os.Stdout, renderAnswer(res.Text))
	return nil
}

func (c *AskCmd) question(stdin io.Reader) (string, error) {
	if len(c.Args.Question) == 1 && c.Args.Question[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(c.Args.Question, " "), nil
}

// renderAnswer formats markdown for the terminal; piped output stays plain.
func renderAnswer(text string) string {
	if color.NoColor {
		return strings.TrimRight(text, "\n") + "\n"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func printPersonas(w io.Writer) {
	for _, p := range persona.All() {
		fmt.Fprintf(w, "%-22s %-22s %s\n", p.ID, p.Name, p.Description)
	}
}
