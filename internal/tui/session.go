// Package tui runs the interactive manifest editor on a tcell screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/claudius/internal/manifest"
	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/persistence"
	"github.com/temirov/claudius/internal/services/clipboard"
	"github.com/temirov/claudius/internal/state"
)

const (
	// DefaultNotificationTimeout is how long a notification stays in the status line.
	DefaultNotificationTimeout = 3 * time.Second

	manifestWrittenFormat     = "Wrote %d entries to %s"
	manifestWriteFailedFormat = "Failed to write %s: %v"
	manifestCopiedFormat      = "Copied %d entries to the clipboard"
	manifestCopyFailedFormat  = "Copy failed: %v"
	clipboardUnavailable      = "Clipboard is not available"

	logManifestWritten     = "manifest written"
	logManifestWriteFailed = "manifest write failed"
	logCopyFailed          = "clipboard copy failed"
	logStateSaveFailed     = "ui state save failed"
	logFieldEntries        = "entries"
	logFieldAction         = "action"
	logActionApplied       = "action applied"
)

// Screen is the part of tcell.Screen the session drives.
type Screen interface {
	canvas
	PollEvent() tcell.Event
	PostEvent(event tcell.Event) error
	Show()
	Fini()
}

// SessionOptions configures a session.
type SessionOptions struct {
	RootDirectory       string
	ManifestFileName    string
	Write               manifest.WriteOptions
	NotificationTimeout time.Duration
}

// Session owns the current snapshot. Only the consumer goroutine started by
// Run reads or replaces it.
type Session struct {
	screen   Screen
	store    StateStore
	copier   clipboard.Copier
	logger   *zap.Logger
	options  SessionOptions
	snapshot state.AppState
	view     viewport

	notificationGeneration int
	timerMutex             sync.Mutex
	notificationTimer      *time.Timer
}

// notificationExpired is posted as interrupt data when a notification times out.
type notificationExpired struct {
	generation int
}

// NewSession prepares a session over an initialized screen. The screen is
// finalized when Run returns.
func NewSession(terminalScreen Screen, initial state.AppState, store StateStore, copier clipboard.Copier, logger *zap.Logger, options SessionOptions) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.NotificationTimeout <= 0 {
		options.NotificationTimeout = DefaultNotificationTimeout
	}
	return &Session{
		screen:   terminalScreen,
		store:    store,
		copier:   copier,
		logger:   logger,
		options:  options,
		snapshot: initial,
	}
}

// Snapshot returns the current snapshot. It is safe to call once Run has returned.
func (session *Session) Snapshot() state.AppState {
	return session.snapshot
}

// Run pumps terminal events into a single consumer until the user quits or ctx
// is cancelled. The UI state is saved on the way out.
func (session *Session) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	consumerDone := make(chan struct{})
	group, groupContext := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(events)
		for {
			event := session.screen.PollEvent()
			if event == nil {
				return nil
			}
			select {
			case events <- event:
			case <-consumerDone:
				return nil
			}
		}
	})

	group.Go(func() error {
		defer session.screen.Fini()
		defer close(consumerDone)
		defer session.stopNotificationTimer()
		defer session.saveUIState()
		session.draw()
		for {
			select {
			case <-groupContext.Done():
				return nil
			case event, open := <-events:
				if !open || !session.handleEvent(event) {
					return nil
				}
				session.draw()
			}
		}
	})

	return group.Wait()
}

// handleEvent applies one event and reports whether the session continues.
func (session *Session) handleEvent(event tcell.Event) bool {
	switch typedEvent := event.(type) {
	case *tcell.EventKey:
		selectedCommand := commandForKey(typedEvent)
		if selectedCommand == commandQuit {
			return false
		}
		session.execute(selectedCommand)
	case *tcell.EventInterrupt:
		if expired, ok := typedEvent.Data().(notificationExpired); ok && expired.generation == session.notificationGeneration {
			session.dispatch(state.ClearNotification{})
		}
	}
	return true
}

func (session *Session) execute(selectedCommand command) {
	switch selectedCommand {
	case commandMoveDown:
		session.dispatch(state.MoveSelection{Direction: state.DirectionDown})
	case commandMoveUp:
		session.dispatch(state.MoveSelection{Direction: state.DirectionUp})
	case commandToggleExpand:
		session.revealSelection()
		if selectedPath, hasSelection := session.snapshot.SelectedItem(); hasSelection {
			session.dispatch(state.ToggleExpand{Path: selectedPath})
		}
	case commandToggleInclude:
		session.revealSelection()
		if selectedPath, hasSelection := session.snapshot.SelectedItem(); hasSelection {
			session.dispatch(state.ToggleInclude{Path: selectedPath})
		}
	case commandExpandAll:
		session.dispatch(state.ExpandAll{})
	case commandCollapseAll:
		session.dispatch(state.CollapseAll{})
		session.revealSelection()
	case commandWriteManifest:
		session.writeManifest()
	case commandCopyManifest:
		session.copyManifest()
	}
}

// revealSelection moves a selection hidden inside a collapsed folder to its
// nearest visible ancestor.
func (session *Session) revealSelection() {
	selectedPath, hasSelection := session.snapshot.SelectedItem()
	if !hasSelection {
		return
	}
	visiblePaths := model.NewPathSet(session.snapshot.VisibleItems()...)
	revealedPath := selectedPath
	for revealedPath != model.RootPath && !visiblePaths.Has(revealedPath) {
		revealedPath = parentPath(revealedPath)
	}
	if revealedPath != selectedPath {
		session.dispatch(state.Select{Path: revealedPath})
	}
}

// parentPath returns the parent of a root-relative path.
func parentPath(pathValue string) string {
	parent := path.Dir(pathValue)
	if parent == "." {
		return model.RootPath
	}
	return parent
}

func (session *Session) dispatch(action state.Action) {
	session.snapshot = state.Reduce(session.snapshot, action)
	session.logger.Debug(logActionApplied, zap.String(logFieldAction, state.ActionName(action)))
}

// notify shows message and schedules its removal.
func (session *Session) notify(message string) {
	session.dispatch(state.SetNotification{Message: message})
	session.notificationGeneration++
	generation := session.notificationGeneration

	session.timerMutex.Lock()
	defer session.timerMutex.Unlock()
	if session.notificationTimer != nil {
		session.notificationTimer.Stop()
	}
	session.notificationTimer = time.AfterFunc(session.options.NotificationTimeout, func() {
		_ = session.screen.PostEvent(tcell.NewEventInterrupt(notificationExpired{generation: generation}))
	})
}

func (session *Session) stopNotificationTimer() {
	session.timerMutex.Lock()
	defer session.timerMutex.Unlock()
	if session.notificationTimer != nil {
		session.notificationTimer.Stop()
		session.notificationTimer = nil
	}
}

func (session *Session) writeManifest() {
	included := session.snapshot.Included
	writeError := manifest.Write(session.options.RootDirectory, session.options.ManifestFileName, included, session.options.Write)
	if writeError != nil {
		session.logger.Error(logManifestWriteFailed, zap.Error(writeError))
		session.notify(fmt.Sprintf(manifestWriteFailedFormat, session.options.ManifestFileName, writeError))
		return
	}
	session.logger.Info(logManifestWritten, zap.Int(logFieldEntries, len(included)))
	session.notify(fmt.Sprintf(manifestWrittenFormat, len(included), session.options.ManifestFileName))
}

func (session *Session) copyManifest() {
	if session.copier == nil {
		session.notify(clipboardUnavailable)
		return
	}
	lines := manifest.Lines(session.options.RootDirectory, session.snapshot.Included, session.options.Write)
	if copyError := session.copier.Copy(manifest.Content(lines)); copyError != nil {
		if errors.Is(copyError, clipboard.ErrUnavailable) {
			session.notify(clipboardUnavailable)
			return
		}
		session.logger.Error(logCopyFailed, zap.Error(copyError))
		session.notify(fmt.Sprintf(manifestCopyFailedFormat, copyError))
		return
	}
	session.notify(fmt.Sprintf(manifestCopiedFormat, len(lines)))
}

func (session *Session) saveUIState() {
	if session.store == nil {
		return
	}
	selectedPath, hasSelection := session.snapshot.SelectedItem()
	uiState := persistence.NewUIState(session.snapshot.Expanded, selectedPath, hasSelection)
	if saveError := session.store.Save(uiState); saveError != nil {
		session.logger.Error(logStateSaveFailed, zap.Error(saveError))
	}
}

func (session *Session) draw() {
	drawSnapshot(session.screen, session.snapshot, &session.view)
	session.screen.Show()
}
