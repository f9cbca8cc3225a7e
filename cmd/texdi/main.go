// ABOUTME: CLI entry point for texdi with terminal crash recovery
// ABOUTME: Loads settings, enters raw mode, runs the editor loop, and restores the terminal on every exit

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mauromedda/texdi/internal/config"
	"github.com/mauromedda/texdi/internal/editor"
	"github.com/mauromedda/texdi/internal/log"
	"github.com/mauromedda/texdi/pkg/tui"
	"github.com/mauromedda/texdi/pkg/tui/key"
	"github.com/mauromedda/texdi/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)

	err := newRootCmd(func(cmd *cobra.Command, s *config.Settings) error {
		return run(cmd.Context(), s)
	}).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "texdi: %v\n", err)
		os.Exit(1)
	}
}

// run owns the terminal for the lifetime of one editor session. The
// terminal is restored before run returns, whatever the outcome.
func run(ctx context.Context, s *config.Settings) error {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	logOut, closeLog, err := openLog(s.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	pt := terminal.NewProcessTerminal()
	pt.SetReadTimeout(uint8(s.ReadTimeout))
	defer terminal.RestoreOnPanic(pt)

	// Nothing may reach stderr while the display is raw.
	prevLog := log.SetOutput(logOut)
	defer log.SetOutput(prevLog)

	return runSession(ctx, pt, s)
}

// runSession enters raw mode on t and runs the editor. On failure it
// clears the screen before restoring t; a restore failure is joined into
// the returned error.
func runSession(ctx context.Context, t terminal.Terminal, s *config.Settings) (err error) {
	sess, err := terminal.Acquire(t)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		if err != nil {
			log.Error("fatal: %v", err)
			if cerr := terminal.ClearScreen(t); cerr != nil {
				log.Warn("clearing screen after failure: %v", cerr)
			}
		}
		if rerr := sess.Release(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore terminal: %w", rerr))
		}
	}()

	dims, err := terminal.QueryDimensions(t)
	if err != nil {
		return fmt.Errorf("get window size: %w", err)
	}
	log.Info("texdi %s: %dx%d, quit Ctrl+%c, read timeout %dds, wasd %t",
		version, dims.Cols, dims.Rows, s.QuitLetter()-'a'+'A', s.ReadTimeout, s.WASDEnabled())

	renderer := tui.NewRenderer(t, tui.WithBanner(s.Banner), tui.WithMarker(s.Marker))
	ed := editor.New(t, renderer, key.NewDecoder(t), dims,
		editor.WithQuitKey(s.QuitLetter()),
		editor.WithWASD(s.WASDEnabled()),
	)
	return ed.Run(ctx)
}

// openLog returns the destination for logs written while the terminal is
// raw: the configured file, or a discarding writer.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
