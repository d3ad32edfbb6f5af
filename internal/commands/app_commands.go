package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/plugin"
)

// ErrNoFileName is returned when a command needs a path and the project has none.
var ErrNoFileName = errors.New("no file name")

// RegisterAppCommands registers the built-in commands.
func RegisterAppCommands(api AppAPI) {
	RegisterThemeCommands(api, api)
	registerFileCommands(api)
	registerHistoryCommands(api)
	registerSnapshotCommands(api)
}

func register(api plugin.EditorAPI, name string, fn plugin.CommandFunc) {
	if err := api.RegisterCommand(name, fn); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	register(api, "theme", func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}
		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themeAPI.ListThemes(), ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	})
	register(api, "themes", func([]string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	})
}

func registerFileCommands(api AppAPI) {
	write := func(args []string) error {
		path := api.FilePath()
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return ErrNoFileName
		}
		if err := api.SaveProject(path); err != nil {
			return err
		}
		api.SetStatusMessage("Saved %d object(s) to %s", api.ObjectCount(), path)
		return nil
	}
	register(api, "w", write)
	register(api, "wq", func(args []string) error {
		if err := write(args); err != nil {
			return err
		}
		api.RequestQuit(true)
		return nil
	})

	edit := func(force bool) plugin.CommandFunc {
		return func(args []string) error {
			if len(args) == 0 {
				return ErrNoFileName
			}
			if !force && api.IsModified() {
				return errors.New("unsaved changes, use :e! to discard them")
			}
			if err := api.LoadProject(args[0]); err != nil {
				return err
			}
			api.SetStatusMessage("Opened %s (%d object(s))", args[0], api.ObjectCount())
			return nil
		}
	}
	register(api, "e", edit(false))
	register(api, "e!", edit(true))

	register(api, "export", func(args []string) error {
		if len(args) == 0 {
			return ErrNoFileName
		}
		if err := api.ExportPNG(args[0]); err != nil {
			return err
		}
		api.SetStatusMessage("Exported %s", args[0])
		return nil
	})

	register(api, "q", func([]string) error {
		api.RequestQuit(false)
		return nil
	})
	register(api, "q!", func([]string) error {
		api.RequestQuit(true)
		return nil
	})

	register(api, "tool", func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: tool <name>")
		}
		if err := api.SetTool(args[0]); err != nil {
			return err
		}
		api.SetStatusMessage("Tool: %s", args[0])
		return nil
	})
}

func registerHistoryCommands(api AppAPI) {
	ed := api.Editor()

	register(api, "history", func([]string) error {
		h := ed.History()
		log := ed.DrawLog()
		current := "empty"
		if a, ok := log.CurrentAction(); ok {
			current = a.String()
		}
		api.SetStatusMessage("Undo %d/%d (max %d) | Log %d/%d: %s",
			h.CurrentIndex()+1, h.Len(), h.MaxHistorySize(), log.CurrentIndex()+1, log.Len(), current)
		return nil
	})

	register(api, "goto", func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: goto <n|first|last|prev|next>")
		}
		log := ed.DrawLog()
		var ok bool
		switch args[0] {
		case "first":
			ok = log.GoToFirst()
		case "last":
			ok = log.GoToLast()
		case "prev":
			ok = log.GoToPrevious()
		case "next":
			ok = log.GoToNext()
		default:
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid action index '%s'", args[0])
			}
			ok = log.GoToAction(n - 1)
		}
		if !ok {
			return fmt.Errorf("no action at '%s'", args[0])
		}
		a, _ := log.CurrentAction()
		api.SetStatusMessage("Action %d/%d: %s", log.CurrentIndex()+1, log.Len(), a)
		return nil
	})

	register(api, "max-history", func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Max history: %d", ed.History().MaxHistorySize())
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid history size '%s'", args[0])
		}
		ed.SetMaxHistorySize(n)
		api.SetStatusMessage("Max history set to %d", ed.History().MaxHistorySize())
		return nil
	})

	register(api, "clear-history", func([]string) error {
		ed.ClearHistory()
		api.SetStatusMessage("History cleared")
		return nil
	})
}
