package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fadilmartias/review-composer/internal/service"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/spf13/cobra"
)

var errBlocked = errors.New("verdict is an unresolved Review, nothing to copy")

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [verdict.json|-]",
		Short: "Classify a verdict JSON document and print its Slack message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return renderVerdict(cmd.OutOrStdout(), cmd.ErrOrStderr(), raw)
		},
	}
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// renderVerdict writes the category to stderr and the message to stdout so
// the output can be piped straight into a clipboard tool.
func renderVerdict(stdout, stderr io.Writer, raw string) error {
	v, err := service.ParseDraft(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "category: %s\n", categoryColor(verdict.Classify(v)))
	for _, a := range verdict.Advisories(v) {
		fmt.Fprintf(stderr, "%s %s\n", yellow("warning:"), a)
	}
	text, ok := verdict.Render(v)
	if !ok {
		return errBlocked
	}
	_, err = fmt.Fprintln(stdout, text)
	return err
}
