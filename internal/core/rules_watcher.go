package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"gridnerd/internal/logging"
)

// RulesWatcher watches a directory of user rule files (*.gl) and pushes the
// concatenated rules into a Kernel whenever they change. It lets a user edit
// diagnostic Datalog rules while an interactive session is running.
type RulesWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	kernel      *Kernel
	dir         string
	debounceDur time.Duration
	lastEvent   map[string]time.Time
	onReload    func()
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewRulesWatcher creates a watcher for *.gl files under dir. onReload, if
// non-nil, is called after every successful reload.
func NewRulesWatcher(dir string, kernel *Kernel, onReload func()) (*RulesWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &RulesWatcher{
		watcher:     w,
		kernel:      kernel,
		dir:         dir,
		debounceDur: 250 * time.Millisecond, // collapse rapid editor saves
		lastEvent:   make(map[string]time.Time),
		onReload:    onReload,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start loads the current rules once and begins watching in a goroutine.
func (rw *RulesWatcher) Start() error {
	rw.mu.Lock()
	if rw.running {
		rw.mu.Unlock()
		return nil
	}
	rw.running = true
	rw.mu.Unlock()

	if err := os.MkdirAll(rw.dir, 0o755); err != nil {
		logging.KernelWarn("rules watcher: cannot create %s: %v", rw.dir, err)
	}
	if err := rw.watcher.Add(rw.dir); err != nil {
		return err
	}

	rw.reload()
	go rw.loop()
	return nil
}

// Stop shuts the watcher down and waits for its goroutine to exit.
func (rw *RulesWatcher) Stop() {
	rw.mu.Lock()
	if !rw.running {
		rw.mu.Unlock()
		return
	}
	rw.running = false
	rw.mu.Unlock()

	close(rw.stopCh)
	_ = rw.watcher.Close()
	<-rw.doneCh
}

func (rw *RulesWatcher) loop() {
	defer close(rw.doneCh)
	for {
		select {
		case <-rw.stopCh:
			return
		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".gl" {
				continue
			}
			if !rw.debounced(event.Name) {
				continue
			}
			logging.KernelDebug("rules watcher: %s %s", event.Op, event.Name)
			rw.reload()
		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			logging.KernelWarn("rules watcher error: %v", err)
		}
	}
}

// debounced reports whether the event for path should be acted on, absorbing
// bursts of events closer together than the debounce window.
func (rw *RulesWatcher) debounced(path string) bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	now := time.Now()
	if last, ok := rw.lastEvent[path]; ok && now.Sub(last) < rw.debounceDur {
		return false
	}
	rw.lastEvent[path] = now
	return true
}

// reload reads every .gl file under the directory, sorted by name so rule
// order is stable, and installs the concatenation as the kernel's user rules.
func (rw *RulesWatcher) reload() {
	entries, err := os.ReadDir(rw.dir)
	if err != nil {
		logging.KernelWarn("rules watcher: read %s: %v", rw.dir, err)
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".gl" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(rw.dir, name))
		if err != nil {
			logging.KernelWarn("rules watcher: read %s: %v", name, err)
			continue
		}
		sb.Write(data)
		sb.WriteString("\n")
	}

	rw.kernel.SetUserRules(sb.String())
	logging.Kernel("rules watcher: loaded %d rule file(s) from %s", len(names), rw.dir)
	if rw.onReload != nil {
		rw.onReload()
	}
}
