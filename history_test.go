package wick

import "testing"

// rename sets the project name and records the edit.
func rename(t *testing.T, p *Project, name string) {
	t.Helper()
	p.Name = name
	if err := p.History().PushState(); err != nil {
		t.Fatal(err)
	}
}

func TestUndoRedo(t *testing.T) {
	p := NewProject()
	rename(t, p, "one")
	rename(t, p, "two")

	if !p.Undo() || p.Name != "one" {
		t.Fatalf("after undo name = %q, want one", p.Name)
	}
	if !p.Undo() || p.Name != DefaultProjectName {
		t.Fatalf("after second undo name = %q", p.Name)
	}
	if p.Undo() {
		t.Error("undo past the initial state")
	}
	if !p.Redo() || p.Name != "one" {
		t.Fatalf("after redo name = %q, want one", p.Name)
	}
	if !p.Redo() || p.Name != "two" {
		t.Fatalf("after second redo name = %q, want two", p.Name)
	}
	if p.Redo() {
		t.Error("redo with nothing undone")
	}
}

func TestPushClearsRedo(t *testing.T) {
	p := NewProject()
	rename(t, p, "one")
	p.Undo()
	if !p.History().CanRedo() {
		t.Fatal("expected redo after undo")
	}
	rename(t, p, "other")
	if p.History().CanRedo() {
		t.Error("push did not clear the redo stack")
	}
}

func TestUndoRestoresContent(t *testing.T) {
	p := NewProject()
	c := NewClip("ball")
	p.ActiveFrame().AddClip(c)
	if err := p.History().PushState(); err != nil {
		t.Fatal(err)
	}
	p.Selection().Select(c)
	p.DeleteSelectedObjects()
	if err := p.History().PushState(); err != nil {
		t.Fatal(err)
	}

	p.Undo()
	clips := p.ActiveFrame().Clips()
	if len(clips) != 1 || clips[0].UUID() != c.UUID() {
		t.Fatal("undo did not restore the deleted clip")
	}
	if _, ok := p.Cache().Get(c.UUID()); !ok {
		t.Error("restored clip not in cache")
	}
	if clips[0] == c {
		t.Error("undo should rebuild entities")
	}
}

func TestUndoClearsSelection(t *testing.T) {
	p := NewProject()
	c := NewClip("ball")
	p.ActiveFrame().AddClip(c)
	rename(t, p, "x")
	p.Selection().Select(p.ActiveFrame().Clips()[0])
	p.Undo()
	if p.Selection().NumObjects() != 0 {
		t.Error("undo kept the selection")
	}
}

func TestHistoryLimit(t *testing.T) {
	p := NewProject()
	p.History().Limit = 3
	for _, name := range []string{"1", "2", "3", "4", "5"} {
		rename(t, p, name)
	}

	if !p.Undo() || p.Name != "4" {
		t.Fatalf("name = %q, want 4", p.Name)
	}
	if !p.Undo() || p.Name != DefaultProjectName {
		t.Fatalf("name = %q, want the initial state", p.Name)
	}
	if p.Undo() {
		t.Error("undo went past the limit")
	}
}

func TestSnapshots(t *testing.T) {
	p := NewProject()
	p.Name = "saved"
	if err := p.History().SaveSnapshot("checkpoint"); err != nil {
		t.Fatal(err)
	}
	p.Name = "changed"

	if !p.History().LoadSnapshot("checkpoint") || p.Name != "saved" {
		t.Errorf("LoadSnapshot name = %q", p.Name)
	}
	if p.History().LoadSnapshot("missing") {
		t.Error("loaded a missing snapshot")
	}
	if _, ok := p.History().Snapshot("checkpoint"); !ok {
		t.Error("Snapshot lookup failed")
	}
	if p.History().CanUndo() {
		t.Error("snapshots should not touch the undo stack")
	}
}

func TestHistoryReset(t *testing.T) {
	p := NewProject()
	rename(t, p, "one")
	_ = p.History().SaveSnapshot("s")
	if err := p.History().Reset(); err != nil {
		t.Fatal(err)
	}
	if p.History().CanUndo() || p.History().CanRedo() {
		t.Error("Reset left states behind")
	}
	if _, ok := p.History().Snapshot("s"); ok {
		t.Error("Reset left a snapshot behind")
	}
	if p.Undo() || p.Name != "one" {
		t.Error("Reset should make the current state the bottom")
	}
}

func TestHistoryLimitOneKeepsLatestEdit(t *testing.T) {
	p := NewProject()
	p.History().Limit = 1
	rename(t, p, "first")
	rename(t, p, "second")

	if !p.History().CanUndo() {
		t.Fatal("the latest edit cannot be undone")
	}
	if !p.Undo() || p.Name != DefaultProjectName {
		t.Errorf("name = %q, want the initial state", p.Name)
	}
	if p.Undo() {
		t.Error("undo went past the limit")
	}
}
