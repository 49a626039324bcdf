package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-agenda/internal/app"
	"github.com/jwalitptl/clinic-agenda/internal/locale"
	"github.com/jwalitptl/clinic-agenda/internal/ui"
	apperrors "github.com/jwalitptl/clinic-agenda/pkg/errors"
)

var errQuit = errors.New("quit")

type shell struct {
	app *app.App
	out io.Writer
	now func() time.Time

	// feed is the last listed notification order, for numeric references.
	feed []uuid.UUID
}

func newShell(a *app.App, out io.Writer) *shell {
	return &shell{app: a, out: out, now: time.Now}
}

// Run executes one command per line of in until quit, EOF or ctx is done.
func (s *shell) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	s.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			args, err := splitArgs(line)
			if err != nil {
				s.printf("error: %v\n", err)
				s.prompt()
				continue
			}
			if len(args) == 0 {
				s.prompt()
				continue
			}

			err = s.exec(ctx, args)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				s.printf("error: %v\n", err)
			}
			s.prompt()
		}
	}
}

// exec runs one command line through a fresh command tree, so flag state
// never leaks from one line into the next.
func (s *shell) exec(ctx context.Context, args []string) error {
	root := s.commands()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// splitArgs splits on spaces honouring double quotes. A quote inside a
// word is kept literally.
func splitArgs(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	fields, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bad quoting: %w", err)
	}

	args := fields[:0]
	for _, f := range fields {
		if f != "" {
			args = append(args, f)
		}
	}
	return args, nil
}

func (s *shell) prompt() {
	switch s.app.State.View() {
	case ui.ViewDashboard:
		s.printf("%s> ", s.app.State.User())
	case ui.ViewForgotPassword:
		s.printf("recovery> ")
	default:
		s.printf("login> ")
	}
}

func (s *shell) printf(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *shell) catalog() *locale.Catalog {
	return s.app.Renderer.Catalog()
}

// notificationID resolves a 1-based position from the last listing or a
// literal uuid.
func (s *shell) notificationID(ref string) (uuid.UUID, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.feed) {
			return uuid.Nil, apperrors.NewNotFound(fmt.Sprintf("notification %d", n), nil)
		}
		return s.feed[n-1], nil
	}

	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequest("invalid notification id", err)
	}
	return id, nil
}

func atoi(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.NewBadRequest(fmt.Sprintf("%s must be a number", name), err)
	}
	return n, nil
}
