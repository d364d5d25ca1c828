package tui

import "github.com/gdamore/tcell/v2"

// command is the editor operation bound to a key.
type command int

const (
	commandNone command = iota
	commandMoveDown
	commandMoveUp
	commandToggleExpand
	commandToggleInclude
	commandWriteManifest
	commandExpandAll
	commandCollapseAll
	commandCopyManifest
	commandQuit
)

var runeCommands = map[rune]command{
	'j': commandMoveDown,
	'k': commandMoveUp,
	'l': commandToggleExpand,
	' ': commandToggleInclude,
	'w': commandWriteManifest,
	'o': commandExpandAll,
	'p': commandCollapseAll,
	'y': commandCopyManifest,
	'q': commandQuit,
}

var keyCommands = map[tcell.Key]command{
	tcell.KeyDown:   commandMoveDown,
	tcell.KeyUp:     commandMoveUp,
	tcell.KeyTab:    commandToggleExpand,
	tcell.KeyRight:  commandToggleExpand,
	tcell.KeyEnter:  commandToggleInclude,
	tcell.KeyEscape: commandQuit,
	tcell.KeyCtrlC:  commandQuit,
}

// commandForKey maps a key event to a command. Runes combined with Ctrl or Alt
// are ignored.
func commandForKey(event *tcell.EventKey) command {
	if event.Key() == tcell.KeyRune {
		if event.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return commandNone
		}
		return runeCommands[event.Rune()]
	}
	return keyCommands[event.Key()]
}

// keyHelp is shown in the status line when no notification is pending.
const keyHelp = "j/k move  tab expand  enter include  w write  o/p expand/collapse all  y copy  q quit"
