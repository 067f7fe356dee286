// Package prompt asks the operator whether to view or save a chart.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Question is shown before reading the answer.
const Question = "Would you like to view or save the plot? (v/s): "

// Choice is the operator's answer.
type Choice int

const (
	ChoiceInvalid Choice = iota
	ChoiceView
	ChoiceSave
)

func (c Choice) String() string {
	switch c {
	case ChoiceView:
		return "view"
	case ChoiceSave:
		return "save"
	default:
		return "invalid"
	}
}

// Ask writes Question to out and reads one line from in. "v" selects view and
// "s" selects save, ignoring case and surrounding space; any other answer,
// including an empty line, is ChoiceInvalid. A nil reader or end of input
// before any character was typed selects view. Read failures and ctx
// cancellation are returned as errors.
//
// On cancellation the reading goroutine stays blocked until the process exits.
func Ask(ctx context.Context, in io.Reader, out io.Writer) (Choice, error) {
	if err := ctx.Err(); err != nil {
		return ChoiceInvalid, err
	}
	fmt.Fprint(out, Question)

	if in == nil {
		return ChoiceView, nil
	}

	type answer struct {
		line string
		err  error
	}
	done := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		done <- answer{line: line, err: err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		return ChoiceInvalid, ctx.Err()
	case a = <-done:
	}

	if a.err != nil {
		if !errors.Is(a.err, io.EOF) {
			return ChoiceInvalid, fmt.Errorf("read choice: %w", a.err)
		}
		if a.line == "" {
			return ChoiceView, nil
		}
	}

	return Parse(a.line), nil
}

// Parse maps a typed answer to a Choice.
func Parse(answer string) Choice {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "v":
		return ChoiceView
	case "s":
		return ChoiceSave
	default:
		return ChoiceInvalid
	}
}
