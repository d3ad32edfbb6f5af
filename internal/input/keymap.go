package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

// ModKeymap maps modifier combinations to their key bindings.
type ModKeymap map[tcell.ModMask]Keymap

// ToolRunes are the runes bound to ActionSelectTool.
var ToolRunes = []rune{'v', 'l', 'r', 'e', 'i', 't', 'p', 'h', 'o', 's', 'f'}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionNudgeUp
	p.keymap[tcell.KeyDown] = ActionNudgeDown
	p.keymap[tcell.KeyLeft] = ActionNudgeLeft
	p.keymap[tcell.KeyRight] = ActionNudgeRight
	p.keymap[tcell.KeyPgUp] = ActionPanUp
	p.keymap[tcell.KeyPgDn] = ActionPanDown
	p.keymap[tcell.KeyHome] = ActionPanLeft
	p.keymap[tcell.KeyEnd] = ActionPanRight
	p.keymap[tcell.KeyEnter] = ActionEnter
	p.keymap[tcell.KeyBackspace] = ActionBackspace
	p.keymap[tcell.KeyBackspace2] = ActionBackspace
	p.keymap[tcell.KeyDelete] = ActionDelete
	p.keymap[tcell.KeyEscape] = ActionEscape

	// --- Ctrl bindings ---
	// tcell reports Ctrl+letter as a dedicated key with ModCtrl set.
	ctrlMap := Keymap{
		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlQ: ActionQuit,
		tcell.KeyCtrlZ: ActionUndo,
		tcell.KeyCtrlY: ActionRedo,
		tcell.KeyCtrlA: ActionSelectAll,
		tcell.KeyCtrlC: ActionCopy,
		tcell.KeyCtrlX: ActionCut,
		tcell.KeyCtrlV: ActionPaste,
		tcell.KeyCtrlG: ActionGroup,
	}
	p.modKeymap[tcell.ModCtrl] = ctrlMap
	p.modKeymap[tcell.ModCtrl|tcell.ModShift] = Keymap{
		tcell.KeyCtrlZ: ActionRedo,
		tcell.KeyCtrlG: ActionUngroup,
	}

	// --- Runes ---
	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['U'] = ActionRedo
	p.runeKeymap['x'] = ActionDelete
	p.runeKeymap['g'] = ActionGroup
	p.runeKeymap['G'] = ActionUngroup
	p.runeKeymap['k'] = ActionLock
	p.runeKeymap['K'] = ActionUnlockAll
	p.runeKeymap['z'] = ActionHide
	p.runeKeymap['Z'] = ActionShowAll
	p.runeKeymap[']'] = ActionBringForward
	p.runeKeymap['['] = ActionSendBackward
	p.runeKeymap['}'] = ActionBringToFront
	p.runeKeymap['{'] = ActionSendToBack
	p.runeKeymap['+'] = ActionZoomIn
	p.runeKeymap['='] = ActionZoomIn
	p.runeKeymap['-'] = ActionZoomOut
	p.runeKeymap['0'] = ActionZoomReset
	for _, r := range ToolRunes {
		p.runeKeymap[r] = ActionSelectTool
	}
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// The mode handler decides how to interpret the action in the current mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()
	shift := mod&tcell.ModShift != 0

	// 1. Modifier + Key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action, Shift: shift}
		}
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Simple keys, allowing Shift (Shift+arrow nudges further)
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Shift: shift}
		}
	}

	// 3. Runes. Uppercase runes arrive with Shift set on some terminals.
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}
