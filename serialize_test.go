package wick

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// buildScene returns a project exercising every serialized field: nested
// clips, tweens, scripts, sounds, assets and multiple layers.
func buildScene(t *testing.T) *Project {
	t.Helper()
	p := NewProject()
	p.Name = "Scene"
	p.BackgroundColor = Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	p.OnionSkinEnabled = true
	if err := p.SetFramerate(24); err != nil {
		t.Fatal(err)
	}

	img := NewImageAsset("hero", 16, 16)
	snd := NewSoundAsset("jump", 1500*time.Millisecond)
	p.AddAsset(img)
	p.AddAsset(snd)

	f := p.ActiveFrame()
	if err := f.SetRange(1, 10); err != nil {
		t.Fatal(err)
	}
	f.Identifier = "intro"
	f.Scripts.Set(ScriptLoad, "Stop()")
	if err := f.SetSound(snd); err != nil {
		t.Fatal(err)
	}
	f.SoundStartMS = 120

	path := NewPath(json.RawMessage(`["Path",{"segments":[[0,0],[10,10]]}]`), Rect{Width: 10, Height: 10})
	path.StrokeWidth = 2
	path.FillColor = Color{R: 1, A: 0.5}
	f.AddPath(path)
	if _, err := p.CreateImagePathFromAsset(img, 3, 4); err != nil {
		t.Fatal(err)
	}

	c := NewClip("ball")
	c.SetPosition(12, 34)
	c.Scripts.Set(ScriptTick, "GotoNextFrame()")
	f.AddClip(c)
	end := IdentityTransformation()
	end.X = 100
	tw := mustTween(t, 10, end, "in-out")
	tw.FullRotations = 2
	if err := f.AddTween(mustTween(t, 1, IdentityTransformation(), "out")); err != nil {
		t.Fatal(err)
	}
	if err := f.AddTween(tw); err != nil {
		t.Fatal(err)
	}

	top := NewLayer("top")
	top.Locked = true
	p.ActiveTimeline().AddLayer(top)
	stop := NewFrame(4, 6)
	stop.Stop = true
	if err := top.AddFrame(stop); err != nil {
		t.Fatal(err)
	}
	if err := p.ActiveTimeline().SetPlayheadPosition(5); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSerializeRoundTrip(t *testing.T) {
	p := buildScene(t)
	data, err := p.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	q, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}
	again, err := q.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("round trip changed the record:\n%s\n%s", data, again)
	}
	if q.UUID() != p.UUID() || q.Root().UUID() != p.Root().UUID() {
		t.Error("identifiers not preserved")
	}
	if q.ActiveTimeline().Playhead() != 5 || q.Framerate() != 24 {
		t.Error("playhead or framerate lost")
	}
	if q.History().CanUndo() {
		t.Error("deserialized project should start with a fresh history")
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	p := buildScene(t)
	a, _ := p.Serialize()
	b, _ := p.Serialize()
	if !bytes.Equal(a, b) {
		t.Error("Serialize is not deterministic")
	}
}

func TestSerializeOmitsSelection(t *testing.T) {
	p := buildScene(t)
	before, _ := p.Serialize()
	p.SelectAll()
	after, _ := p.Serialize()
	if !bytes.Equal(before, after) {
		t.Error("selection changed the serialized record")
	}
}

func TestSerializeFieldNames(t *testing.T) {
	data, err := buildScene(t).Serialize()
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		`"classname":"Project"`, `"playheadPosition":5`, `"easingType":"in-out"`,
		`"backgroundColor":"#336699"`, `"classname":"SoundAsset"`, `"durationMS":1500`,
		`"fillColor":"#ff000080"`, `"stop":true`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("record missing %s", key)
		}
	}
}

func TestDeserializeRebuildsCache(t *testing.T) {
	p := buildScene(t)
	data, _ := p.Serialize()
	q, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}
	if q.Cache().Len() != p.Cache().Len() {
		t.Errorf("cache size = %d, want %d", q.Cache().Len(), p.Cache().Len())
	}
	for f := range q.Frames() {
		if f.Project() != q {
			t.Fatal("frame not attached to the loaded project")
		}
	}
	if q.ActiveFrame().Sound() == nil {
		t.Error("frame sound link not resolved")
	}
}

func TestLoadErrorsLeaveProjectUntouched(t *testing.T) {
	p := buildScene(t)
	before, _ := p.Serialize()

	cases := map[string]string{
		"invalid json":  `{`,
		"wrong class":   `{"classname":"Clip"}`,
		"bad framerate": `{"classname":"Project","framerate":0}`,
	}
	for name, data := range cases {
		if err := p.Load([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	// A structurally valid record with an overlapping frame.
	q := NewProject()
	if err := q.ActiveFrame().SetRange(1, 3); err != nil {
		t.Fatal(err)
	}
	rec, _ := q.Serialize()
	bad := strings.Replace(string(rec), `"frames":[`, `"frames":[{"uuid":"x","classname":"Frame","start":2,"end":2},`, 1)
	err := p.Load([]byte(bad))
	if !errors.Is(err, ErrFrameOverlap) {
		t.Errorf("overlap err = %v", err)
	}

	after, _ := p.Serialize()
	if !bytes.Equal(before, after) {
		t.Error("failed load modified the project")
	}
}

func TestLoadUnknownFocus(t *testing.T) {
	p := NewProject()
	data, _ := p.Serialize()
	bad := strings.Replace(string(data), p.Root().UUID(), "elsewhere", 1)
	// The root record's uuid comes after focus; only focus is replaced.
	if err := NewProject().Load([]byte(bad)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load err = %v", err)
	}
}

func TestLoadKeepsCollaborators(t *testing.T) {
	p := buildScene(t)
	v := &fakeView{}
	p.SetView(v)
	data, _ := buildScene(t).Serialize()
	if err := p.Load(data); err != nil {
		t.Fatal(err)
	}
	if p.View() != View(v) {
		t.Error("Load dropped the view")
	}
}

func TestCloneViaRecordsGetsFreshIdentifiers(t *testing.T) {
	p := buildScene(t)
	c := p.ActiveFrame().Clips()[0]
	cp, err := c.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if cp.Timeline().UUID() == c.Timeline().UUID() {
		t.Error("cloned timeline reuses identifier")
	}
	if cp.Project() != nil {
		t.Error("clone should be detached")
	}
}
