// Package hotkey registers global shortcuts with github.com/robotn/gohook.
package hotkey

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/sim4gh/bettershot-go/internal/logutil"
)

// primaryModifier is what CommandOrControl resolves to.
var primaryModifier = func() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}()

// Binding ties an accelerator like "CommandOrControl+Shift+2" to an action.
type Binding struct {
	Name        string
	Accelerator string
	Action      func()
}

var (
	mu      sync.Mutex
	running bool
)

// Parse converts an accelerator into gohook key names: modifiers first, the
// trigger key last.
func Parse(accelerator string) ([]string, error) {
	accelerator = strings.TrimSpace(accelerator)
	if accelerator == "" {
		return nil, fmt.Errorf("empty shortcut")
	}

	var mods []string
	var key string
	for _, part := range strings.Split(strings.ToLower(accelerator), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "commandorcontrol", "cmdorctrl":
			mods = append(mods, primaryModifier)
		case "command", "cmd", "super", "meta":
			mods = append(mods, "cmd")
		case "control", "ctrl":
			mods = append(mods, "ctrl")
		case "alt", "option":
			mods = append(mods, "alt")
		case "shift":
			mods = append(mods, "shift")
		case "":
			return nil, fmt.Errorf("invalid shortcut %q", accelerator)
		default:
			if key != "" {
				return nil, fmt.Errorf("shortcut %q has more than one key", accelerator)
			}
			name, ok := keyName(part)
			if !ok {
				return nil, fmt.Errorf("unknown key %q in shortcut %q", part, accelerator)
			}
			key = name
		}
	}

	if key == "" {
		return nil, fmt.Errorf("shortcut %q has no key", accelerator)
	}
	return append(mods, key), nil
}

func keyName(part string) (string, bool) {
	if len(part) == 1 {
		c := part[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return part, true
		}
		return "", false
	}
	switch part {
	case "space", "enter", "tab", "esc", "delete", "home", "end", "up", "down", "left", "right":
		return part, true
	case "return":
		return "enter", true
	case "escape":
		return "esc", true
	case "pageup", "pagedown":
		return part, true
	}
	if strings.HasPrefix(part, "f") && len(part) <= 3 {
		var n int
		if _, err := fmt.Sscanf(part[1:], "%d", &n); err == nil && n >= 1 && n <= 24 {
			return part, true
		}
	}
	return "", false
}

// Listen registers every binding with a non-empty accelerator and starts
// the event loop in the background. Bindings that fail to parse are
// skipped and reported in the returned error; the rest stay active.
func Listen(bindings []Binding) (stop func(), err error) {
	mu.Lock()
	defer mu.Unlock()
	if running {
		return nil, fmt.Errorf("hotkey listener already running")
	}

	var failed []string
	registered := 0
	for _, b := range bindings {
		if b.Accelerator == "" || b.Action == nil {
			continue
		}
		keys, err := Parse(b.Accelerator)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", b.Name, err))
			continue
		}

		action := b.Action
		name := b.Name
		hook.Register(hook.KeyDown, keys, func(hook.Event) {
			logutil.L().Debug().Str("shortcut", name).Msg("shortcut pressed")
			go action()
		})
		logutil.L().Info().Str("shortcut", name).Strs("keys", keys).Msg("shortcut registered")
		registered++
	}

	if len(failed) > 0 {
		err = fmt.Errorf("invalid shortcuts: %s", strings.Join(failed, "; "))
	}
	if registered == 0 {
		return func() {}, err
	}

	events := hook.Start()
	go func() {
		<-hook.Process(events)
		logutil.L().Debug().Msg("hotkey event loop stopped")
	}()
	running = true

	var once sync.Once
	stop = func() {
		once.Do(func() {
			hook.End()
			mu.Lock()
			running = false
			mu.Unlock()
		})
	}
	return stop, err
}
