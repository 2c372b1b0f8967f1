package dashboard

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/insightboard/internal/client"
	"github.com/phrazzld/insightboard/internal/domain"
)

// maxTranscriptBytes caps how much transcript generate reads.
const maxTranscriptBytes = 1 << 20

// Board is the subset of the API client the dashboard needs.
type Board interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	CreateFromTranscript(ctx context.Context, transcript string) (*client.CreateResult, error)
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Summary(ctx context.Context) (domain.Summary, error)
}

// IO bundles the streams a command reads and writes.
type IO struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

type command struct {
	name     string
	usage    string
	synopsis string
	run      func(ctx context.Context, board Board, args []string, stdio IO) int
}

var commands = []command{
	{name: "list", usage: "list", synopsis: "Show all tasks, newest first", run: runList},
	{name: "generate", usage: "generate [-f file]", synopsis: "Extract tasks from a transcript (stdin by default)", run: runGenerate},
	{name: "toggle", usage: "toggle <id>", synopsis: "Flip a task between pending and done", run: runToggle},
	{name: "rm", usage: "rm <id>", synopsis: "Delete a task", run: runRemove},
	{name: "summary", usage: "summary", synopsis: "Show the completion chart", run: runSummary},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Run dispatches args to a command and returns the process exit code.
// No arguments runs list.
func Run(ctx context.Context, board Board, args []string, stdio IO) int {
	if len(args) == 0 {
		return runList(ctx, board, nil, stdio)
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		Usage(stdio.Out)
		return ExitSuccess
	}
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(stdio.ErrOut, "error: unknown command: %s\n", name)
		return ExitUserError
	}

	cmd, ok := findCommand(name)
	if !ok {
		fmt.Fprintf(stdio.ErrOut, "error: unknown command: %s\n", name)
		return ExitUserError
	}
	return cmd.run(ctx, board, args[1:], stdio)
}

// Usage writes the command overview.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: dashboard <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-20s %s\n", c.usage, c.synopsis)
	}
}

func runList(ctx context.Context, board Board, args []string, stdio IO) int {
	if len(args) > 0 {
		fmt.Fprintf(stdio.ErrOut, "error: list takes no arguments\n")
		return ExitUserError
	}

	tasks, err := board.ListTasks(ctx)
	if err != nil {
		return reportError(stdio.ErrOut, err)
	}
	RenderTasks(stdio.Out, tasks)
	return ExitSuccess
}

func runGenerate(ctx context.Context, board Board, args []string, stdio IO) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var file string
	fs.StringVar(&file, "f", "", "")
	fs.StringVar(&file, "file", "", "")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stdio.ErrOut, "error: %v\n", err)
		return ExitUserError
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stdio.ErrOut, "error: unexpected argument: %s\n", fs.Arg(0))
		return ExitUserError
	}

	transcript, err := readTranscript(file, stdio.In)
	if err != nil {
		fmt.Fprintf(stdio.ErrOut, "error: %v\n", err)
		return ExitUserError
	}
	if strings.TrimSpace(transcript) == "" {
		fmt.Fprintln(stdio.ErrOut, "error: transcript is empty")
		return ExitUserError
	}

	res, err := board.CreateFromTranscript(ctx, transcript)
	if err != nil {
		return reportError(stdio.ErrOut, err)
	}
	RenderCreated(stdio.Out, res)
	return ExitSuccess
}

func readTranscript(file string, stdin io.Reader) (string, error) {
	var r io.Reader = stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", fmt.Errorf("failed to open transcript: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	if r == nil {
		return "", errors.New("no transcript given")
	}

	raw, err := io.ReadAll(io.LimitReader(r, maxTranscriptBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(raw), nil
}

func runToggle(ctx context.Context, board Board, args []string, stdio IO) int {
	id, ok := singleID("toggle", args, stdio.ErrOut)
	if !ok {
		return ExitUserError
	}

	task, err := board.Toggle(ctx, id)
	if err != nil {
		return reportError(stdio.ErrOut, err)
	}
	fmt.Fprintf(stdio.Out, "%s %s\n", checkbox(task.Status), displayText(task.Text))
	return ExitSuccess
}

func runRemove(ctx context.Context, board Board, args []string, stdio IO) int {
	id, ok := singleID("rm", args, stdio.ErrOut)
	if !ok {
		return ExitUserError
	}

	if err := board.DeleteTask(ctx, id); err != nil {
		return reportError(stdio.ErrOut, err)
	}
	fmt.Fprintln(stdio.Out, "ok")
	return ExitSuccess
}

func runSummary(ctx context.Context, board Board, args []string, stdio IO) int {
	if len(args) > 0 {
		fmt.Fprintf(stdio.ErrOut, "error: summary takes no arguments\n")
		return ExitUserError
	}

	s, err := board.Summary(ctx)
	if err != nil {
		return reportError(stdio.ErrOut, err)
	}
	RenderSummary(stdio.Out, s)
	return ExitSuccess
}

func singleID(name string, args []string, errOut io.Writer) (string, bool) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintf(errOut, "error: usage: dashboard %s <id>\n", name)
		return "", false
	}
	return strings.TrimSpace(args[0]), true
}

// reportError prints err and maps it to an exit code.
func reportError(errOut io.Writer, err error) int {
	switch {
	case client.IsNotFound(err):
		fmt.Fprintln(errOut, "error: task not found")
		return ExitUserError
	case errors.Is(err, client.ErrBadRequest):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return ExitUserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return ExitBackendError
	}
}
