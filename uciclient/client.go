// Package uciclient drives an external UCI engine process (Stockfish or any
// other UCI-speaking binary) over its stdin and stdout.
package uciclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrNotReady   = errors.New("uciclient: engine not ready")
	ErrNoBestMove = errors.New("uciclient: engine returned no best move")
)

// DefaultStopGrace is how long the engine gets to answer "stop" before it is
// considered hung.
const DefaultStopGrace = 500 * time.Millisecond

// Engine is one UCI engine process. Requests are serialized; an Engine may be
// shared between goroutines. A request waiting for its turn gives up when its
// context ends.
type Engine struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	in     *bufio.Writer
	lines  chan string
	exited chan struct{}
	log    zerolog.Logger

	turn      chan struct{}
	ready     atomic.Bool
	stopGrace time.Duration
}

// Start launches the engine binary at path and completes the uci/isready
// handshake before ctx expires.
func Start(ctx context.Context, path string, logger zerolog.Logger) (*Engine, error) {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}

	e := newEngine(stdin, stdout, logger.With().Str("engine", path).Logger())
	e.cmd = cmd
	if err := e.handshake(ctx); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("uci handshake with %s: %w", path, err)
	}
	return e, nil
}

func newEngine(stdin io.WriteCloser, stdout io.Reader, logger zerolog.Logger) *Engine {
	e := &Engine{
		stdin:     stdin,
		in:        bufio.NewWriter(stdin),
		lines:     make(chan string, 128),
		exited:    make(chan struct{}),
		turn:      make(chan struct{}, 1),
		log:       logger,
		stopGrace: DefaultStopGrace,
	}
	go e.readLoop(stdout)
	return e
}

// readLoop pumps engine output into e.lines and closes it on EOF.
func (e *Engine) readLoop(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		e.lines <- strings.TrimSpace(sc.Text())
	}
	if err := sc.Err(); err != nil {
		e.log.Error().Err(err).Msg("reading engine output")
	}
	close(e.exited)
	close(e.lines)
}

// acquire takes the engine for one exchange, or fails with ctx's error.
func (e *Engine) acquire(ctx context.Context) error {
	select {
	case e.turn <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) release() { <-e.turn }

func (e *Engine) handshake(ctx context.Context) error {
	if err := e.acquire(ctx); err != nil {
		return err
	}
	defer e.release()

	if err := e.send("uci"); err != nil {
		return err
	}
	if _, err := e.waitFor(ctx, "uciok"); err != nil {
		return err
	}
	if err := e.syncReady(ctx); err != nil {
		return err
	}
	e.ready.Store(true)
	e.log.Debug().Msg("uci handshake complete")
	return nil
}

// Ready reports whether the engine finished its handshake and has not since
// hung or exited.
func (e *Engine) Ready() bool {
	select {
	case <-e.exited:
		return false
	default:
		return e.ready.Load()
	}
}

// NewGame tells the engine a new game starts and waits until it is ready.
func (e *Engine) NewGame(ctx context.Context) error {
	if err := e.acquire(ctx); err != nil {
		return err
	}
	defer e.release()
	if !e.Ready() {
		return ErrNotReady
	}
	if err := e.send("ucinewgame"); err != nil {
		return err
	}
	return e.syncReady(ctx)
}

// BestMove asks for the best move in fen. Zero depth or moveTime leaves that
// limit out of the go command. Progress lines are ignored. When ctx ends first
// the engine is told to stop; if it does not answer within the stop grace it
// is marked not ready. Waiting behind another request also ends with ctx.
func (e *Engine) BestMove(ctx context.Context, fen string, depth int, moveTime time.Duration) (string, error) {
	if err := e.acquire(ctx); err != nil {
		return "", fmt.Errorf("waiting for engine: %w", err)
	}
	defer e.release()

	if !e.Ready() {
		return "", ErrNotReady
	}
	e.drain()

	if err := e.send("position fen " + fen); err != nil {
		return "", err
	}
	if err := e.send(goCommand(depth, moveTime)); err != nil {
		return "", err
	}

	line, err := e.waitFor(ctx, "bestmove")
	if err != nil {
		if ctx.Err() != nil {
			e.stop()
		}
		return "", err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "(none)" || fields[1] == "0000" {
		return "", fmt.Errorf("%w: %q", ErrNoBestMove, line)
	}
	return fields[1], nil
}

// Close asks the engine to quit and waits for the process to exit.
func (e *Engine) Close() error {
	_ = e.acquire(context.Background())
	defer e.release()

	e.ready.Store(false)
	_ = e.send("quit")
	err := e.stdin.Close()
	if e.cmd != nil {
		return e.cmd.Wait()
	}
	return err
}

func goCommand(depth int, moveTime time.Duration) string {
	cmd := "go"
	if depth > 0 {
		cmd += fmt.Sprintf(" depth %d", depth)
	}
	if ms := moveTime.Milliseconds(); ms > 0 {
		cmd += fmt.Sprintf(" movetime %d", ms)
	}
	if cmd == "go" {
		cmd += " depth 1"
	}
	return cmd
}

// stop interrupts a running search and swallows its bestmove.
func (e *Engine) stop() {
	if err := e.send("stop"); err != nil {
		e.ready.Store(false)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.stopGrace)
	defer cancel()
	if _, err := e.waitFor(ctx, "bestmove"); err != nil {
		e.log.Warn().Err(err).Msg("engine did not answer stop, marking it not ready")
		e.ready.Store(false)
	}
}

func (e *Engine) syncReady(ctx context.Context) error {
	if err := e.send("isready"); err != nil {
		return err
	}
	_, err := e.waitFor(ctx, "readyok")
	return err
}

// waitFor reads lines until one starts with prefix.
func (e *Engine) waitFor(ctx context.Context, prefix string) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-e.lines:
			if !ok {
				return "", fmt.Errorf("%w: engine output closed", ErrNotReady)
			}
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
			e.log.Trace().Str("line", line).Msg("uci <")
		}
	}
}

// drain discards output left over from an earlier, abandoned request.
func (e *Engine) drain() {
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				return
			}
			e.log.Trace().Str("line", line).Msg("discarding stale engine output")
		default:
			return
		}
	}
}

func (e *Engine) send(cmd string) error {
	e.log.Trace().Str("cmd", cmd).Msg("uci >")
	if _, err := fmt.Fprintln(e.in, cmd); err != nil {
		return err
	}
	return e.in.Flush()
}
