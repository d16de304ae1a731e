package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AAliKKhan/PassMeterX/pkg/meter"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const passwordPrompt = "ENTER PASSWORD: "

// ErrPasswordRequired is returned when no password was supplied at all.
var ErrPasswordRequired = errors.New("password required")

var checkCmd = &urfave.Command{
	Name:      "check",
	Aliases:   []string{"scan"},
	Usage:     "Score a password and print the result",
	ArgsUsage: "[password]",
	UsageText: `passmeter check 'Abcdefg1!'               # score an argument
   passmeter check                          # prompt without echo
   echo 'Abcdefg1!' | passmeter check --format yaml   # read from a pipe`,
	Description: fmt.Sprintf("Runs the %s checks and prints the score, strength and feedback.",
		strings.Join(meter.Checks(), ", ")),
	HideHelpCommand: true,
	Action:          cmdCheck,
}

// report is a result with the derived values added for output.
type report struct {
	meter.Result `yaml:",inline"`
	Percent      int         `json:"percent" yaml:"percent"`
	Level        meter.Level `json:"level" yaml:"level"`
}

func newReport(r *meter.Result) *report {
	return &report{
		Result:  *r,
		Percent: r.Percent(),
		Level:   r.Level(),
	}
}

func cmdCheck(_ context.Context, cmd *urfave.Command) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}

	password, err := readPassword(cmd)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if password == "" {
		return ErrPasswordRequired
	}

	r := meter.Evaluate(password)
	slog.Debug("password evaluated", "score", r.Score, "level", r.Level())

	if err := encode(writer(cmd), cmd.String(formatFlag.Name), newReport(r)); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// readPassword takes the first argument, or prompts on a terminal,
// or reads a single line from a pipe.
func readPassword(cmd *urfave.Command) (string, error) {
	if cmd.Args().Present() {
		return cmd.Args().First(), nil
	}

	in := reader(cmd)
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out := errWriter(cmd)
		fmt.Fprint(out, passwordPrompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	return readLine(in)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
