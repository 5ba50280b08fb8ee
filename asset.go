package wick

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	// Image decoders registered for DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/h2non/filetype"
)

// ImageMIMETypes lists the MIME types accepted as image assets.
var ImageMIMETypes = []string{
	"image/png", "image/jpeg", "image/gif", "image/bmp", "image/webp",
}

// SoundMIMETypes lists the MIME types accepted as sound assets.
var SoundMIMETypes = []string{
	"audio/wav", "audio/x-wav", "audio/wave", "audio/mpeg", "audio/mp3", "audio/ogg",
}

// Asset is an imported image or sound held in the project library. Kind is
// KindImageAsset or KindSoundAsset. Image paths and frame sounds refer to it
// by identifier.
type Asset struct {
	Base

	Name     string
	Filename string
	MIME     string
	Data     []byte

	// Width and Height are set for images, Duration for sounds.
	Width, Height int
	Duration      time.Duration
}

// NewImageAsset creates an image asset without data, for images measured
// elsewhere.
func NewImageAsset(name string, width, height int) *Asset {
	return &Asset{Base: newBase(KindImageAsset), Name: name, Width: width, Height: height}
}

// NewSoundAsset creates a sound asset without data.
func NewSoundAsset(name string, duration time.Duration) *Asset {
	return &Asset{Base: newBase(KindSoundAsset), Name: name, Duration: duration}
}

// Children returns nil; assets are leaves.
func (a *Asset) Children() []Entity { return nil }

// IsImage reports whether a is an image asset.
func (a *Asset) IsImage() bool { return a.kind == KindImageAsset }

// IsSound reports whether a is a sound asset.
func (a *Asset) IsSound() bool { return a.kind == KindSoundAsset }

// Remove removes the asset from its project's library.
func (a *Asset) Remove() {
	removeFromParent(a)
}

// DecodeAsset classifies data as an image or sound and measures it. An empty
// mime is sniffed from the content. Types outside ImageMIMETypes and
// SoundMIMETypes fail with ErrUnsupportedAsset.
func DecodeAsset(filename, mime string, data []byte) (*Asset, error) {
	if mime == "" {
		t, err := filetype.Match(data)
		if err != nil {
			return nil, fmt.Errorf("sniff %s: %w", filename, err)
		}
		mime = t.MIME.Value
	}
	mime = strings.ToLower(mime)

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	a := &Asset{Name: name, Filename: filename, MIME: mime, Data: data}

	switch {
	case slices.Contains(ImageMIMETypes, mime):
		a.Base = newBase(KindImageAsset)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode image %s: %w", filename, err)
		}
		a.Width, a.Height = cfg.Width, cfg.Height
	case slices.Contains(SoundMIMETypes, mime):
		a.Base = newBase(KindSoundAsset)
		d, err := soundDuration(mime, data)
		if err != nil {
			return nil, fmt.Errorf("decode sound %s: %w", filename, err)
		}
		a.Duration = d
	default:
		return nil, fmt.Errorf("%w: %s (%q)", ErrUnsupportedAsset, filename, mime)
	}
	return a, nil
}

// soundDuration decodes the stream header and returns the sound's length.
func soundDuration(mime string, data []byte) (time.Duration, error) {
	rc := io.NopCloser(bytes.NewReader(data))
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch mime {
	case "audio/mpeg", "audio/mp3":
		s, format, err = mp3.Decode(rc)
	case "audio/ogg":
		s, format, err = vorbis.Decode(rc)
	default:
		s, format, err = wav.Decode(rc)
	}
	if err != nil {
		return 0, err
	}
	defer s.Close()
	return format.SampleRate.D(s.Len()), nil
}
