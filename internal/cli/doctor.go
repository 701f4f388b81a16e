package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/config"
	"github.com/sim4gh/bettershot-go/internal/logutil"
	"github.com/sim4gh/bettershot-go/internal/platform"
	"github.com/sim4gh/bettershot-go/internal/util"
)

type check struct {
	name   string
	ok     bool
	detail string
}

func addDoctorCommand() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Check that captures can run",
	Aliases: []string{"health"},
	Args:    cobra.NoArgs,
	RunE:    runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	checks := []check{
		checkCaptureTool(),
		checkPermission(),
		checkDir("Save directory", cfg.ResolveSaveDir),
		checkDir("Temp directory", cfg.ResolveTempDir),
		{name: "Config file", ok: true, detail: config.Path()},
	}
	if dir, err := config.Dir(); err == nil {
		checks = append(checks, check{name: "Log file", ok: true, detail: filepath.Join(dir, logutil.LogFileName)})
	}

	failed := 0
	for _, c := range checks {
		mark := color.GreenString("ok")
		if !c.ok {
			mark = color.RedString("!!")
			failed++
		}
		fmt.Printf("[%s] %s: %s\n", mark, c.name, c.detail)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func checkCaptureTool() check {
	c := check{name: "Capture tool"}
	if !platform.IsScreenshotSupported() {
		c.detail = platform.ErrNotSupported.Error()
		return c
	}
	path, err := exec.LookPath(platform.CaptureTool)
	if err != nil {
		c.detail = fmt.Sprintf("%s not found in PATH", platform.CaptureTool)
		return c
	}
	c.ok, c.detail = true, path
	return c
}

func checkPermission() check {
	if platform.HasScreenRecording() {
		return check{name: "Screen recording", ok: true, detail: "granted"}
	}
	return check{name: "Screen recording", detail: platform.ErrPermissionDenied.Error()}
}

// checkDir verifies the directory exists (or can be created) and accepts
// a file.
func checkDir(name string, resolve func() (string, error)) check {
	c := check{name: name}
	dir, err := resolve()
	if err != nil {
		c.detail = err.Error()
		return c
	}
	if err := util.EnsureDir(dir); err != nil {
		c.detail = err.Error()
		return c
	}

	f, err := os.CreateTemp(dir, ".bettershot-doctor-*")
	if err != nil {
		c.detail = fmt.Sprintf("%s is not writable: %v", dir, err)
		return c
	}
	f.Close()
	os.Remove(f.Name())

	c.ok, c.detail = true, dir
	return c
}
