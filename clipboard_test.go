package wick

import (
	"slices"
	"testing"
)

func TestCopyPaste(t *testing.T) {
	p := NewProject()
	c := NewClip("ball")
	c.SetPosition(7, 8)
	path := NewPath(nil, Rect{Width: 2, Height: 2})
	p.ActiveFrame().AddClip(c)
	p.ActiveFrame().AddPath(path)
	p.Selection().Select(c)
	p.Selection().Select(path)

	if !p.CopySelectionToClipboard() {
		t.Fatal("nothing copied")
	}
	if !p.PasteClipboardContents() {
		t.Fatal("paste failed")
	}

	content := p.ActiveFrame().Content()
	if len(content) != 4 {
		t.Fatalf("content = %d entities, want 4", len(content))
	}
	pasted := p.Selection().SelectedObjects()
	if len(pasted) != 2 || pasted[0] != content[2] || pasted[1] != content[3] {
		t.Fatal("pasted objects should be appended and selected")
	}
	cp := pasted[0].(*Clip)
	if cp.UUID() == c.UUID() || cp.Transformation.X != 7 || cp.Project() != p {
		t.Error("pasted clip should be an attached copy with a fresh identifier")
	}
}

func TestPasteTwiceGivesDistinctCopies(t *testing.T) {
	p := NewProject()
	c := NewClip("ball")
	p.ActiveFrame().AddClip(c)
	p.Selection().Select(c)
	p.CopySelectionToClipboard()

	p.PasteClipboardContents()
	first := p.Selection().UUIDs()
	p.PasteClipboardContents()
	second := p.Selection().UUIDs()
	if slices.Equal(first, second) {
		t.Error("second paste reused identifiers")
	}
	if len(p.ActiveFrame().Clips()) != 3 {
		t.Errorf("clips = %d, want 3", len(p.ActiveFrame().Clips()))
	}
}

func TestCopyIgnoresOtherKinds(t *testing.T) {
	p := NewProject()
	p.Selection().Select(p.ActiveLayer())
	p.Selection().Select(p.ActiveFrame())
	if p.CopySelectionToClipboard() {
		t.Error("copied layers or frames")
	}
	if p.PasteClipboardContents() {
		t.Error("pasted from an empty clipboard")
	}
}

func TestClipboardSetData(t *testing.T) {
	p := NewProject()
	c := NewClip("ball")
	p.ActiveFrame().AddClip(c)
	p.Selection().Select(c)
	p.CopySelectionToClipboard()
	data := p.Clipboard().Data()

	q := NewProject()
	if err := q.Clipboard().SetData([]byte("not json")); err == nil {
		t.Error("SetData accepted foreign text")
	}
	if !q.Clipboard().Empty() {
		t.Error("rejected data replaced the clipboard")
	}
	if err := q.Clipboard().SetData(data); err != nil {
		t.Fatal(err)
	}
	if !q.PasteClipboardContents() || len(q.ActiveFrame().Clips()) != 1 {
		t.Error("paste across projects failed")
	}
}
