package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/getlantern/systray"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/config"
	"github.com/sim4gh/bettershot-go/internal/hotkey"
	"github.com/sim4gh/bettershot-go/internal/logutil"
	"github.com/sim4gh/bettershot-go/internal/platform"
	"github.com/sim4gh/bettershot-go/internal/tray"
)

func addTrayCommand() {
	trayCmd := &cobra.Command{
		Use:   "tray",
		Short: "Run the menu-bar icon with global shortcuts",
		Long: `Run the menu-bar icon with global shortcuts

Default shortcuts:
  ` + config.DefaultShortcutRegion + `   Capture region
  ` + config.DefaultShortcutScreen + `   Capture screen (off until set)
  ` + config.DefaultShortcutWindow + `   Capture window (off until set)

Change them with "bettershot config set shortcut_<region|screen|window> <keys>".`,
		Args: cobra.NoArgs,
		RunE: runTray,
	}

	rootCmd.AddCommand(trayCmd)
}

func runTray(cmd *cobra.Command, args []string) error {
	if !platform.IsScreenshotSupported() {
		return platform.ErrNotSupported
	}

	cfg := config.Get()
	dir, err := cfg.ResolveSaveDir()
	if err != nil {
		return err
	}

	app := tray.New(service, tray.Settings{
		SaveDir:         dir,
		CopyToClipboard: cfg.CopyToClipboard,
		PlaySound:       cfg.PlaySound,
	})
	app.OpenFolder = browser.OpenFile
	app.OnChange = persistTraySettings
	app.OnSaved = func(path string) {
		logutil.L().Info().Str("path", path).Msg("capture saved")
	}

	ctx := cmd.Context()
	stopHotkeys, err := hotkey.Listen([]hotkey.Binding{
		{Name: "region", Accelerator: cfg.ShortcutRegion, Action: func() { app.Capture(ctx, platform.ModeInteractive) }},
		{Name: "screen", Accelerator: cfg.ShortcutScreen, Action: func() { app.Capture(ctx, platform.ModeFullscreen) }},
		{Name: "window", Accelerator: cfg.ShortcutWindow, Action: func() { app.Capture(ctx, platform.ModeWindow) }},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		systray.Quit()
	}()

	fmt.Printf("Bettershot is running in the menu bar. Saving to %s\n", dir)
	systray.Run(func() { onTrayReady(app) }, func() {
		if stopHotkeys != nil {
			stopHotkeys()
		}
		logutil.L().Info().Msg("tray exited")
	})
	return nil
}

func persistTraySettings(s tray.Settings) {
	for key, value := range map[string]bool{
		"copy_to_clipboard": s.CopyToClipboard,
		"play_sound":        s.PlaySound,
	} {
		if err := config.Set(key, fmt.Sprintf("%v", value)); err != nil {
			logutil.L().Error().Err(err).Str("key", key).Msg("failed to save setting")
		}
	}
}

func onTrayReady(app *tray.App) {
	systray.SetTitle("Bettershot")
	systray.SetTooltip("Bettershot")

	mRegion := systray.AddMenuItem("Capture Region", "Select an area to capture")
	mScreen := systray.AddMenuItem("Capture Screen", "Capture the whole screen")
	mWindow := systray.AddMenuItem("Capture Window", "Capture a single window")
	systray.AddSeparator()

	s := app.Settings()
	mCopy := systray.AddMenuItemCheckbox("Copy to Clipboard", "Copy captures to the clipboard", s.CopyToClipboard)
	mSound := systray.AddMenuItemCheckbox("Play Sound", "Play the shutter sound", s.PlaySound)
	mFolder := systray.AddMenuItem("Open Save Folder", s.SaveDir)
	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Quit Bettershot")

	capture := func(mode platform.Mode) {
		go app.Capture(context.Background(), mode)
	}

	go func() {
		for {
			select {
			case <-mRegion.ClickedCh:
				capture(platform.ModeInteractive)
			case <-mScreen.ClickedCh:
				capture(platform.ModeFullscreen)
			case <-mWindow.ClickedCh:
				capture(platform.ModeWindow)
			case <-mCopy.ClickedCh:
				setChecked(mCopy, app.ToggleClipboard())
			case <-mSound.ClickedCh:
				setChecked(mSound, app.ToggleSound())
			case <-mFolder.ClickedCh:
				if err := app.OpenFolder(app.Settings().SaveDir); err != nil {
					logutil.L().Error().Err(err).Msg("failed to open save folder")
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func setChecked(item *systray.MenuItem, on bool) {
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}
