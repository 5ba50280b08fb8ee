package wick

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wick.yaml")
	data := "project:\n  framerate: 30\n  background: \"#000\"\nhistoryLimit: 5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Project.Framerate != 30 || cfg.HistoryLimit != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Project.Width != DefaultWidth || cfg.StorePath != "wick.db" {
		t.Error("unset fields lost their defaults")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"framerate": "project:\n  framerate: 0\n",
		"color":     "project:\n  background: nope\n",
		"level":     "logLevel: loud\n",
		"yaml":      "project: [\n",
	}
	for name, data := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wick.yaml")
	cfg := DefaultConfig()
	cfg.Project.Name = "Saved"
	cfg.OnionSkin.Enabled = true
	cfg.Debug = true
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestConfigNewProject(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Project.Name = "Configured"
	cfg.Project.Framerate = 60
	cfg.Project.Background = "#102030"
	cfg.OnionSkin = OnionSkinConfig{Enabled: true, SeekBackwards: 2, SeekForwards: 3}
	cfg.HistoryLimit = 2

	p, err := cfg.NewProject()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Configured" || p.Framerate() != 60 || p.BackgroundColor.Hex() != "#102030" {
		t.Errorf("project = %q %d %s", p.Name, p.Framerate(), p.BackgroundColor.Hex())
	}
	if !p.OnionSkinEnabled || p.OnionSkinSeekBackwards != 2 || p.OnionSkinSeekForwards != 3 {
		t.Error("onion skin settings not applied")
	}
	if p.History().Limit != 2 || p.History().CanUndo() {
		t.Error("history not configured")
	}
	// The configured state is the bottom of the history.
	p.Name = "edited"
	_ = p.History().PushState()
	if !p.Undo() || p.Name != "Configured" {
		t.Errorf("undo name = %q, want Configured", p.Name)
	}

	cfg.Project.Framerate = 0
	if _, err := cfg.NewProject(); !errors.Is(err, ErrInvalidFramerate) {
		t.Errorf("NewProject err = %v", err)
	}
}
