package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/projection"
	"github.com/temirov/claudius/internal/state"
)

const (
	indentWidth          = 2
	collapsedFolderGlyph = '▸'
	expandedFolderGlyph  = '▾'
	fileGlyph            = '·'
	folderSuffix         = "/"
)

var (
	defaultStyle  = tcell.StyleDefault
	includedStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

// canvas is the part of tcell.Screen the renderer draws on.
type canvas interface {
	SetContent(x int, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// viewport tracks the first visible row so the selection stays on screen.
type viewport struct {
	offset int
}

// follow scrolls so that selectedIndex lies within rows lines.
func (view *viewport) follow(selectedIndex int, rows int, total int) {
	if rows <= 0 {
		view.offset = 0
		return
	}
	if selectedIndex >= 0 {
		if selectedIndex < view.offset {
			view.offset = selectedIndex
		}
		if selectedIndex >= view.offset+rows {
			view.offset = selectedIndex - rows + 1
		}
	}
	maximumOffset := max(total-rows, 0)
	view.offset = min(max(view.offset, 0), maximumOffset)
}

// drawSnapshot renders the visible items and the status line. The bottom row
// holds the status line; every other row shows one item.
func drawSnapshot(target canvas, snapshot state.AppState, view *viewport) {
	width, height := target.Size()
	if width <= 0 || height <= 0 {
		return
	}
	visibleItems := snapshot.VisibleItems()
	selectedPath, hasSelection := snapshot.SelectedItem()
	selectedIndex := -1
	if hasSelection {
		for index, item := range visibleItems {
			if item == selectedPath {
				selectedIndex = index
				break
			}
		}
	}

	listRows := height - 1
	view.follow(selectedIndex, listRows, len(visibleItems))
	for row := 0; row < listRows; row++ {
		itemIndex := view.offset + row
		if itemIndex >= len(visibleItems) {
			drawLine(target, row, width, "", defaultStyle)
			continue
		}
		item := visibleItems[itemIndex]
		style := defaultStyle
		if snapshot.IsIncluded(item) {
			style = includedStyle
		}
		if itemIndex == selectedIndex {
			style = style.Reverse(true)
		}
		drawLine(target, row, width, itemLine(snapshot, item), style)
	}

	status := snapshot.Notification
	if status == "" {
		status = keyHelp
	}
	drawLine(target, height-1, width, status, statusStyle)
}

// itemLine formats one row: indentation, glyph and name.
func itemLine(snapshot state.AppState, item string) string {
	glyph := fileGlyph
	name := projection.DisplayName(item)
	if snapshot.IsFolder(item) || item == model.RootPath {
		glyph = collapsedFolderGlyph
		if item == model.RootPath || snapshot.IsExpanded(item) {
			glyph = expandedFolderGlyph
		}
		if item != model.RootPath {
			name += folderSuffix
		}
	}
	indentation := strings.Repeat(" ", indentWidth*projection.IndentationLevel(item))
	return indentation + string(glyph) + " " + name
}

// drawLine writes text at row and pads the rest of the row with spaces.
func drawLine(target canvas, row int, width int, text string, style tcell.Style) {
	column := 0
	for _, character := range text {
		characterWidth := runewidth.RuneWidth(character)
		if characterWidth == 0 {
			continue
		}
		if column+characterWidth > width {
			break
		}
		target.SetContent(column, row, character, nil, style)
		column += characterWidth
	}
	for ; column < width; column++ {
		target.SetContent(column, row, ' ', nil, style)
	}
}
