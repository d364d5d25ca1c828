package tui

import (
	"errors"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/temirov/claudius/internal/persistence"
)

type fakeCell struct {
	character rune
	style     tcell.Style
}

// fakeScreen records drawn cells and serves queued events.
type fakeScreen struct {
	width    int
	height   int
	mutex    sync.Mutex
	cells    map[[2]int]fakeCell
	events   chan tcell.Event
	quit     chan struct{}
	finiOnce sync.Once
	shows    int
}

func newFakeScreen(width int, height int, queued ...tcell.Event) *fakeScreen {
	fake := &fakeScreen{
		width:  width,
		height: height,
		cells:  map[[2]int]fakeCell{},
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
	for _, event := range queued {
		fake.events <- event
	}
	return fake
}

func (fake *fakeScreen) SetContent(x int, y int, primary rune, _ []rune, style tcell.Style) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()
	fake.cells[[2]int{x, y}] = fakeCell{character: primary, style: style}
}

func (fake *fakeScreen) Size() (int, int) {
	return fake.width, fake.height
}

func (fake *fakeScreen) PollEvent() tcell.Event {
	select {
	case event := <-fake.events:
		return event
	case <-fake.quit:
		return nil
	}
}

func (fake *fakeScreen) PostEvent(event tcell.Event) error {
	select {
	case <-fake.quit:
		return errors.New("screen finalized")
	case fake.events <- event:
		return nil
	default:
		return errors.New("event queue full")
	}
}

func (fake *fakeScreen) Show() {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()
	fake.shows++
}

func (fake *fakeScreen) Fini() {
	fake.finiOnce.Do(func() { close(fake.quit) })
}

// row returns the text of line y with trailing spaces removed.
func (fake *fakeScreen) row(y int) string {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()
	var builder strings.Builder
	for x := 0; x < fake.width; x++ {
		cell, drawn := fake.cells[[2]int{x, y}]
		if !drawn {
			builder.WriteRune(' ')
			continue
		}
		builder.WriteRune(cell.character)
	}
	return strings.TrimRight(builder.String(), " ")
}

func (fake *fakeScreen) styleAt(x int, y int) tcell.Style {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()
	return fake.cells[[2]int{x, y}].style
}

// memoryStore keeps UI state in memory.
type memoryStore struct {
	loaded    persistence.UIState
	loadError error
	saved     []persistence.UIState
	saveError error
}

func (store *memoryStore) Load() (persistence.UIState, error) {
	return store.loaded, store.loadError
}

func (store *memoryStore) Save(uiState persistence.UIState) error {
	store.saved = append(store.saved, uiState)
	return store.saveError
}

// recordingCopier remembers the copied text.
type recordingCopier struct {
	copied    []string
	copyError error
}

func (copier *recordingCopier) Copy(text string) error {
	if copier.copyError != nil {
		return copier.copyError
	}
	copier.copied = append(copier.copied, text)
	return nil
}
