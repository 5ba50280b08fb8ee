package view

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/wickgo/wick"
)

// DefaultSampleRate is the sample rate of the audio context.
const DefaultSampleRate = 44100

// Audio plays sound assets through an Ebitengine audio context. Players are
// grouped by owner so frame sounds stop when their frame is exited.
type Audio struct {
	ctx *audio.Context

	mu      sync.Mutex
	players map[string][]*audio.Player
}

// NewAudio returns an audio player on the process audio context, creating
// the context on first use.
func NewAudio() *Audio {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(DefaultSampleRate)
	}
	return &Audio{ctx: ctx, players: make(map[string][]*audio.Player)}
}

// Play decodes a and starts playing it offset into the stream.
func (a *Audio) Play(owner string, asset *wick.Asset, offset time.Duration) error {
	stream, err := a.decode(asset)
	if err != nil {
		return err
	}
	p, err := a.ctx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("audio player %s: %w", asset.Name, err)
	}
	if offset > 0 {
		if err := p.SetPosition(offset); err != nil {
			p.Close()
			return fmt.Errorf("seek %s: %w", asset.Name, err)
		}
	}
	p.Play()

	a.mu.Lock()
	a.players[owner] = append(a.players[owner], p)
	a.mu.Unlock()
	return nil
}

func (a *Audio) decode(asset *wick.Asset) (io.Reader, error) {
	src := bytes.NewReader(asset.Data)
	rate := a.ctx.SampleRate()
	var (
		s   io.Reader
		err error
	)
	switch asset.MIME {
	case "audio/mpeg", "audio/mp3":
		s, err = mp3.DecodeWithSampleRate(rate, src)
	case "audio/ogg":
		s, err = vorbis.DecodeWithSampleRate(rate, src)
	default:
		s, err = wav.DecodeWithSampleRate(rate, src)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", asset.Name, err)
	}
	return s, nil
}

// Stop stops every sound started by owner.
func (a *Audio) Stop(owner string) {
	a.mu.Lock()
	ps := a.players[owner]
	delete(a.players, owner)
	a.mu.Unlock()
	for _, p := range ps {
		p.Close()
	}
}

// StopAll stops every sound.
func (a *Audio) StopAll() {
	a.mu.Lock()
	all := a.players
	a.players = make(map[string][]*audio.Player)
	a.mu.Unlock()
	for _, ps := range all {
		for _, p := range ps {
			p.Close()
		}
	}
}

// Playing returns the number of players that have not finished.
func (a *Audio) Playing() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for owner, ps := range a.players {
		live := ps[:0]
		for _, p := range ps {
			if p.IsPlaying() {
				live = append(live, p)
			}
		}
		a.players[owner] = live
		n += len(live)
	}
	return n
}
