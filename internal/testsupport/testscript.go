package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"techroadmap/tech"
)

var (
	buildOnce   sync.Once
	roadmapPath string
	buildErr    error
)

// BuildRoadmap builds the roadmap binary once and returns its path.
func BuildRoadmap(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "roadmap-bin-")
		if err != nil {
			buildErr = err
			return
		}

		roadmapPath = filepath.Join(binDir, "roadmap")
		cmd := exec.Command("go", "build", "-o", roadmapPath, "./cmd/roadmap")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build roadmap: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return roadmapPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("ROADMAP", BuildRoadmap(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(filepath.Join(homeDir, ".local", "share", "roadmap"), 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTechID finds a technology by title in an exported JSON array and
// stores its id in an env var.
func CmdTechID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("techid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: techid FILE TITLE VAR")
	}

	var records []tech.Technology
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		ts.Fatalf("parse technology list: %v", err)
	}

	title := args[1]
	for _, record := range records {
		if record.Title == title {
			ts.Setenv(args[2], fmt.Sprintf("%d", record.ID))
			return
		}
	}

	ts.Fatalf("technology with title %q not found", title)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
