package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"artalign/internal/config"
	"artalign/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	source     string
	target     string
	trans      string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("ARTALIGN_DB", "")
	t.Setenv("ARTALIGN_LOG_LEVEL", "")
	t.Setenv("XDG_DATA_HOME", "")
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "artalign.toml")
	writeTestConfig(t, configPath, cfg)

	env := &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
	env.source = testsupport.WriteCorpus(t, filepath.Join(base, "in", "source.txt"), testsupport.Book{
		Name: "1900_de.xml",
		Articles: [][]string{
			{"data/de/1900/01/01/a1.txt", "Der Bundesrat beschliesst heute das neue Eisenbahngesetz."},
			{"data/de/1900/01/02/a2.txt", "Das kantonale Parlament genehmigte gestern das jaehrliche Budget."},
		},
	})
	env.trans = testsupport.WriteCorpus(t, filepath.Join(base, "in", "translation.txt"), testsupport.Book{
		Name: "1900_de.xml",
		Articles: [][]string{
			{"data/de/1900/01/01/a1.txt", "the federal council decides on the new railway law today."},
			{"data/de/1900/01/02/a2.txt", "the cantonal parliament approved the annual budget yesterday."},
		},
	})
	env.target = testsupport.WriteCorpus(t, filepath.Join(base, "in", "target.txt"), testsupport.Book{
		Name: "1900_fr.xml",
		Articles: [][]string{
			{"data/fr/1900/01/01/b1.txt", "the federal council decides on the new railway law today."},
			{"data/fr/1900/01/02/b2.txt", "the cantonal parliament approved the annual budget yesterday."},
		},
	})
	return env
}

func (e *cliTestEnv) alignArgs(extra ...string) []string {
	return append([]string{"align", e.source, e.target, e.trans}, extra...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
