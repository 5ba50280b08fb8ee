package wick

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// wavBytes encodes d of silence. wav.Encode needs a seekable writer, so the
// stream goes through a temp file.
func wavBytes(t *testing.T, d time.Duration) []byte {
	t.Helper()
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDecodeImageAsset(t *testing.T) {
	a, err := DecodeAsset("sprites/hero.png", "image/png", pngBytes(t, 12, 7))
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsImage() || a.Width != 12 || a.Height != 7 {
		t.Errorf("asset = %s %dx%d", a.Kind(), a.Width, a.Height)
	}
	if a.Name != "hero" || a.Filename != "sprites/hero.png" {
		t.Errorf("name = %q filename = %q", a.Name, a.Filename)
	}
}

func TestDecodeAssetSniffsMIME(t *testing.T) {
	a, err := DecodeAsset("noext", "", pngBytes(t, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if a.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", a.MIME)
	}
}

func TestDecodeSoundAsset(t *testing.T) {
	a, err := DecodeAsset("jump.wav", "audio/wav", wavBytes(t, 500*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsSound() {
		t.Fatalf("kind = %s", a.Kind())
	}
	if diff := a.Duration - 500*time.Millisecond; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", a.Duration)
	}
}

func TestDecodeAssetErrors(t *testing.T) {
	if _, err := DecodeAsset("notes.txt", "text/plain", []byte("hi")); !errors.Is(err, ErrUnsupportedAsset) {
		t.Errorf("text err = %v", err)
	}
	if _, err := DecodeAsset("broken.png", "image/png", []byte("garbage")); err == nil || errors.Is(err, ErrUnsupportedAsset) {
		t.Errorf("corrupt image err = %v", err)
	}
}

func TestImportFile(t *testing.T) {
	p := NewProject()
	a, err := p.ImportFile("hero.png", "image/png", pngBytes(t, 4, 4))
	if err != nil || a == nil {
		t.Fatalf("ImportFile = %v, %v", a, err)
	}
	if p.GetAsset(a.UUID()) != a || p.AssetByName("hero") != a {
		t.Error("imported asset not in library")
	}

	a, err = p.ImportFile("notes.txt", "text/plain", []byte("hi"))
	if a != nil || err != nil {
		t.Errorf("unsupported import = %v, %v; want nil, nil", a, err)
	}
	if len(p.Assets()) != 1 {
		t.Errorf("assets = %d, want 1", len(p.Assets()))
	}
}

func TestAssetDataSurvivesSerialize(t *testing.T) {
	p := NewProject()
	data := pngBytes(t, 2, 2)
	a, err := p.ImportFile("dot.png", "", data)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := p.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	q, err := Deserialize(rec)
	if err != nil {
		t.Fatal(err)
	}
	got := q.GetAsset(a.UUID())
	if got == nil || !bytes.Equal(got.Data, data) || got.Width != 2 {
		t.Error("asset data lost in round trip")
	}
}
