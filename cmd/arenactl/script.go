package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/printer"
	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
)

// errScript marks a malformed script line. It is always fatal.
var errScript = errors.New("script")

// result is the outcome of one script line.
type result struct {
	Line   int    `json:"line"`
	Op     string `json:"op"`
	Name   string `json:"name,omitempty"`
	Bytes  int    `json:"bytes,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

// session replays a script against one allocator. Names bind to handles and
// keep their handle after free, so a second free of the same name exercises
// double-release detection.
type session struct {
	a       *arena.Allocator
	handles map[string]arena.Handle
	out     io.Writer
	popts   printer.Options
	strict  bool
	results []result
}

func newSession(a *arena.Allocator, out io.Writer, popts printer.Options) *session {
	return &session{
		a:       a,
		handles: make(map[string]arena.Handle),
		out:     out,
		popts:   popts,
	}
}

// run executes every line of r. Allocator errors are recorded and the
// script continues, unless strict is set. Malformed lines stop the run.
func (s *session) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := s.exec(line, text); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (s *session) exec(line int, text string) error {
	op, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	fields := strings.Fields(rest)
	res := result{Line: line, Op: op}

	var opErr error
	switch op {
	case "alloc":
		if len(fields) != 2 {
			return fmt.Errorf("%w: line %d: usage: alloc <name> <bytes>", errScript, line)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%w: line %d: bad size %q", errScript, line, fields[1])
		}
		res.Name, res.Bytes = fields[0], n
		h, _, err := s.a.Alloc(n)
		if err != nil {
			opErr = err
			break
		}
		s.handles[fields[0]] = h
		res.Offset = h.Offset()

	case "free":
		if len(fields) != 1 {
			return fmt.Errorf("%w: line %d: usage: free <name>", errScript, line)
		}
		res.Name = fields[0]
		h, err := s.handle(line, fields[0])
		if err != nil {
			return err
		}
		res.Offset = h.Offset()
		opErr = s.a.Free(h)

	case "write":
		name, data, _ := strings.Cut(rest, " ")
		if name == "" {
			return fmt.Errorf("%w: line %d: usage: write <name> <text>", errScript, line)
		}
		res.Name = name
		h, err := s.handle(line, name)
		if err != nil {
			return err
		}
		p, err := s.a.Bytes(h)
		if err != nil {
			opErr = err
			break
		}
		res.Bytes = copy(p[:cap(p)], data)
		if res.Bytes < len(data) {
			opErr = fmt.Errorf("payload holds %d of %d bytes", res.Bytes, len(data))
		}

	case "read":
		if len(fields) != 1 {
			return fmt.Errorf("%w: line %d: usage: read <name>", errScript, line)
		}
		res.Name = fields[0]
		h, err := s.handle(line, fields[0])
		if err != nil {
			return err
		}
		p, err := s.a.Bytes(h)
		if err != nil {
			opErr = err
			break
		}
		res.Bytes = len(p)
		res.Text = strings.TrimRight(string(p[:cap(p)]), "\x00")

	case "check":
		opErr = s.a.Check()

	case "map", "stats":
		if len(fields) != 0 {
			return fmt.Errorf("%w: line %d: %s takes no arguments", errScript, line, op)
		}
		if s.popts.Format != printer.FormatJSON {
			p := printer.New(s.a, s.out, s.popts)
			var err error
			if op == "map" {
				err = p.PrintMap()
			} else {
				err = p.PrintStats()
			}
			if err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("%w: line %d: unknown op %q", errScript, line, op)
	}

	if opErr != nil {
		res.Error = opErr.Error()
		logger.Debug("script op failed", "line", line, "op", op, "error", opErr)
	}
	s.results = append(s.results, res)
	s.report(res)

	if opErr != nil && s.strict {
		return fmt.Errorf("line %d: %s: %w", line, op, opErr)
	}
	return nil
}

func (s *session) handle(line int, name string) (arena.Handle, error) {
	h, ok := s.handles[name]
	if !ok {
		return arena.Handle{}, fmt.Errorf("%w: line %d: unknown name %q", errScript, line, name)
	}
	return h, nil
}

// report prints one result line in text mode.
func (s *session) report(r result) {
	if s.popts.Format == printer.FormatJSON || r.Op == "map" || r.Op == "stats" {
		return
	}
	switch {
	case r.Error != "":
		fmt.Fprintf(s.out, "%d: %s %s: %s\n", r.Line, r.Op, r.Name, r.Error)
	case r.Op == "alloc":
		fmt.Fprintf(s.out, "%d: alloc %s %d -> offset %d\n", r.Line, r.Name, r.Bytes, r.Offset)
	case r.Op == "free":
		fmt.Fprintf(s.out, "%d: free %s -> ok\n", r.Line, r.Name)
	case r.Op == "write":
		fmt.Fprintf(s.out, "%d: write %s -> %d bytes\n", r.Line, r.Name, r.Bytes)
	case r.Op == "read":
		fmt.Fprintf(s.out, "%d: read %s -> %q\n", r.Line, r.Name, r.Text)
	case r.Op == "check":
		fmt.Fprintf(s.out, "%d: check -> ok\n", r.Line)
	}
}

// failures counts results that carried an allocator error.
func (s *session) failures() int {
	n := 0
	for _, r := range s.results {
		if r.Error != "" {
			n++
		}
	}
	return n
}
