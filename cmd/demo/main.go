// Command demo feeds stdin tokens through a small bounded command queue,
// the way a game loop batches input events and dispatches them once per
// frame. Recognized tokens are "stuff", "things" and "exit", which are
// queued, and "dispatch", which drains the queue through the Handler.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/i5heu/GoEventQueue/pkg/eventqueue"
)

// Command identifies one queued action parsed from stdin.
type Command int

const (
	CommandStuff Command = iota
	CommandThings
	CommandExit
)

func (c Command) String() string {
	switch c {
	case CommandStuff:
		return "stuff"
	case CommandThings:
		return "things"
	case CommandExit:
		return "exit"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

var (
	errUnknownToken  = errors.New("unknown token")
	errExitRequested = errors.New("exit requested")
)

// parseToken maps an input token to its Command. Tokens are case sensitive.
func parseToken(token string) (Command, error) {
	switch token {
	case "stuff":
		return CommandStuff, nil
	case "things":
		return CommandThings, nil
	case "exit":
		return CommandExit, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownToken, token)
	}
}

// Handler consumes dispatched commands.
type Handler interface {
	DoStuff()
	DoThings()
}

// gameState stands in for the subsystems a real consumer would drive.
type gameState struct{}

func (*gameState) DoStuff()  { fmt.Println("world stuff") }
func (*gameState) DoThings() { fmt.Println("render things") }

// dispatch drains the queue in arrival order, handing each command to h.
// It returns errExitRequested as soon as an exit command comes up; commands
// queued behind it stay in the queue.
func dispatch(q *eventqueue.EventQueue[Command], h Handler) error {
	for {
		cmd, ok := q.Read()
		if !ok {
			return nil
		}
		switch cmd {
		case CommandStuff:
			h.DoStuff()
		case CommandThings:
			h.DoThings()
		case CommandExit:
			return errExitRequested
		}
	}
}

// run reads one token per line from in. "dispatch" drains the queue,
// everything else is parsed and queued. Unrecognized tokens are logged and
// skipped. run returns nil on a dispatched exit command or on end of input.
func run(q *eventqueue.EventQueue[Command], in io.Reader, h Handler, logger *slog.Logger) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		token := strings.TrimSpace(scanner.Text())
		switch token {
		case "":
			continue
		case "dispatch":
			if err := dispatch(q, h); err != nil {
				if errors.Is(err, errExitRequested) {
					logger.Info("goodnight")
					return nil
				}
				return err
			}
		default:
			cmd, err := parseToken(token)
			if err != nil {
				logger.Warn("ignoring unrecognized command", "token", token)
				continue
			}
			if q.Write(cmd) {
				logger.Info("queue full, dropped oldest command",
					"queued", cmd.String(),
					"capacity", q.Cap())
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Info("input closed, shutting down", "pending", q.Len())
	return nil
}

func main() {
	capacity := flag.Int("capacity", 5, "Command queue capacity")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	logger := setupLogger(*logLevel, *logFormat)

	q, err := eventqueue.New[Command](*capacity)
	if err != nil {
		logger.Error("invalid capacity", "capacity", *capacity, "error", err)
		os.Exit(1)
	}

	if err := run(q, os.Stdin, &gameState{}, logger); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}
