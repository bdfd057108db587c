package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Trispn/KERN/internal/compiler/source"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and re-check KERN files on change",
	Long: `Watches a directory for changes to .kern files and re-parses each
file once its edits settle. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := newWatcher(args[0])
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	logger.Info("watching for changes", zap.String("dir", args[0]))

	<-ctx.Done()
	w.Stop()
	logger.Info("watcher stopped")
	return nil
}

// watcher re-checks .kern files after their edits settle. Rapid saves are
// debounced so one editor write burst triggers one check.
type watcher struct {
	mu          sync.Mutex
	fs          *fsnotify.Watcher
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

func newWatcher(dir string) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, err
	}
	return &watcher{
		fs:          fs,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
func (w *watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain. Safe to
// call more than once.
func (w *watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.fs.Close(); err != nil {
		logger.Error("closing watcher", zap.Error(err))
	}
}

func (w *watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Error("watch error", zap.Error(err))
		case <-ticker.C:
			w.processSettled()
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".kern") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	logger.Debug("change event",
		zap.String("file", event.Name),
		zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

func (w *watcher) processSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.checkOnce(path)
	}
}

func (w *watcher) checkOnce(path string) {
	file, err := source.Load(path, cfg.Limits.MaxSourceLines)
	if err != nil {
		// removed between the event and the settle window, or unreadable
		logger.Warn("skipping file", zap.String("file", path), zap.Error(err))
		return
	}
	_, diags := parseContent(file.Content)
	if len(diags) > 0 {
		reportDiagnostics(diags, file)
		logger.Warn("syntax errors",
			zap.String("file", path),
			zap.Int("count", len(diags)))
		return
	}
	logger.Info("file OK", zap.String("file", path))
}
