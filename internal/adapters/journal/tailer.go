package journal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/architect-tracker/internal/application/logging"
)

const journalGlob = "Journal.*.log"

// TailerConfig controls how the journal directory is followed
type TailerConfig struct {
	Dir               string
	PollInterval      time.Duration
	MaxReadsPerSecond float64
}

// Tailer follows the newest journal file in the game directory and feeds
// every appended line to a Feeder. Lines already present when the tailer
// starts only update the game state, so deltas are never applied twice.
type Tailer struct {
	cfg     TailerConfig
	feeder  *Feeder
	logger  logging.Logger
	limiter *rate.Limiter

	path    string
	offset  int64
	partial []byte
}

// NewTailer creates a Tailer
func NewTailer(cfg TailerConfig, feeder *Feeder, logger logging.Logger) *Tailer {
	if cfg.MaxReadsPerSecond <= 0 {
		cfg.MaxReadsPerSecond = 4
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Tailer{
		cfg:     cfg,
		feeder:  feeder,
		logger:  logging.OrNoOp(logger),
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxReadsPerSecond), 1),
	}
}

// Run follows the journal until ctx is cancelled
func (t *Tailer) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create journal watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(t.cfg.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", t.cfg.Dir, err)
	}

	if err := t.attach(); err != nil {
		return err
	}

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isJournalFile(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) && ev.Name != t.path {
				t.switchTo(ctx, ev.Name)
				continue
			}
			if ev.Has(fsnotify.Write) && ev.Name == t.path {
				t.readAppended(ctx)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			t.logger.Log(logging.LevelWarn, "Journal watcher error", map[string]interface{}{
				"error": werr.Error(),
			})
		case <-ticker.C:
			// Some platforms only report writes when the game closes its handle
			if newest, err := NewestJournal(t.cfg.Dir); err == nil && newest != "" && newest != t.path {
				t.switchTo(ctx, newest)
				continue
			}
			t.readAppended(ctx)
		}
	}
}

// attach opens the newest journal and consumes its existing content as state only
func (t *Tailer) attach() error {
	newest, err := NewestJournal(t.cfg.Dir)
	if err != nil {
		return err
	}
	if newest == "" {
		t.logger.Log(logging.LevelInfo, "No journal yet, waiting for the game", map[string]interface{}{
			"dir": t.cfg.Dir,
		})
		return nil
	}

	data, err := os.ReadFile(newest)
	if err != nil {
		return fmt.Errorf("failed to read journal %s: %w", newest, err)
	}
	var complete []byte
	if idx := bytes.LastIndexByte(data, '\n'); idx >= 0 {
		complete = data[:idx+1]
	}
	for _, line := range bytes.Split(complete, []byte{'\n'}) {
		if line = bytes.TrimSpace(line); len(line) > 0 {
			t.feeder.ObserveLine(line)
		}
	}

	t.path = newest
	t.offset = int64(len(complete))
	t.partial = nil
	t.logger.Log(logging.LevelInfo, "Following journal", map[string]interface{}{
		"journal":   filepath.Base(newest),
		"commander": t.feeder.State().Commander(),
		"system":    t.feeder.State().System(),
	})
	return nil
}

// switchTo starts routing a new journal from its first line
func (t *Tailer) switchTo(ctx context.Context, path string) {
	if t.path != "" {
		t.readAppended(ctx)
	}
	t.logger.Log(logging.LevelInfo, "Switching to new journal", map[string]interface{}{
		"journal": filepath.Base(path),
	})
	t.path = path
	t.offset = 0
	t.partial = nil
	t.readAppended(ctx)
}

// readAppended routes complete lines written since the last read
func (t *Tailer) readAppended(ctx context.Context) {
	if t.path == "" {
		return
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return
	}

	f, err := os.Open(t.path)
	if err != nil {
		t.logger.Log(logging.LevelWarn, "Failed to open journal", map[string]interface{}{
			"journal": t.path,
			"error":   err.Error(),
		})
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err == nil && info.Size() < t.offset {
		// Truncated or replaced in place
		t.offset = 0
		t.partial = nil
	}

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return
	}
	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return
	}
	t.offset += int64(len(data))

	buf := append(t.partial, data...)
	lastNewline := bytes.LastIndexByte(buf, '\n')
	if lastNewline < 0 {
		t.partial = buf
		return
	}
	t.partial = append([]byte(nil), buf[lastNewline+1:]...)

	for _, line := range bytes.Split(buf[:lastNewline], []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if _, ok := t.feeder.FeedLine(ctx, line); !ok {
			t.logger.Log(logging.LevelWarn, "Skipping malformed journal line", map[string]interface{}{
				"journal": filepath.Base(t.path),
			})
		}
	}
}

// NewestJournal returns the most recent journal file in dir, or "" if none.
// Journal names embed their start time, so the lexical maximum is the newest.
func NewestJournal(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, journalGlob))
	if err != nil {
		return "", fmt.Errorf("failed to list journals in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func isJournalFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "Journal.") && strings.HasSuffix(base, ".log")
}
