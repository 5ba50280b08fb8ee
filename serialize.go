package wick

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// The serialized record mirrors the entity tree. Every record carries the
// entity's identifier and classname; content records are told apart by
// classname.

type projectRecord struct {
	UUID                   string        `json:"uuid"`
	Classname              string        `json:"classname"`
	Name                   string        `json:"name"`
	Width                  int           `json:"width"`
	Height                 int           `json:"height"`
	Framerate              int           `json:"framerate"`
	BackgroundColor        Color         `json:"backgroundColor"`
	Pan                    Vec2          `json:"pan"`
	Zoom                   float64       `json:"zoom"`
	OnionSkinEnabled       bool          `json:"onionSkinEnabled"`
	OnionSkinSeekBackwards int           `json:"onionSkinSeekBackwards"`
	OnionSkinSeekForwards  int           `json:"onionSkinSeekForwards"`
	Focus                  string        `json:"focus"`
	Root                   clipRecord    `json:"root"`
	Assets                 []assetRecord `json:"assets"`
}

type clipRecord struct {
	UUID           string         `json:"uuid"`
	Classname      string         `json:"classname"`
	Identifier     string         `json:"identifier"`
	Transformation Transformation `json:"transformation"`
	Scripts        Scripts        `json:"scripts"`
	Timeline       timelineRecord `json:"timeline"`
}

type timelineRecord struct {
	UUID             string        `json:"uuid"`
	Classname        string        `json:"classname"`
	Playhead         int           `json:"playheadPosition"`
	ActiveLayerIndex int           `json:"activeLayerIndex"`
	Layers           []layerRecord `json:"layers"`
}

type layerRecord struct {
	UUID      string        `json:"uuid"`
	Classname string        `json:"classname"`
	Name      string        `json:"name"`
	Locked    bool          `json:"locked"`
	Hidden    bool          `json:"hidden"`
	Frames    []frameRecord `json:"frames"`
}

type frameRecord struct {
	UUID         string          `json:"uuid"`
	Classname    string          `json:"classname"`
	Identifier   string          `json:"identifier"`
	Start        int             `json:"start"`
	End          int             `json:"end"`
	Stop         bool            `json:"stop"`
	Scripts      Scripts         `json:"scripts"`
	Sound        string          `json:"sound,omitempty"`
	SoundStartMS int             `json:"soundStartMS,omitempty"`
	Content      []contentRecord `json:"content"`
	Tweens       []tweenRecord   `json:"tweens"`
}

type tweenRecord struct {
	UUID           string         `json:"uuid"`
	Classname      string         `json:"classname"`
	Position       int            `json:"playheadPosition"`
	Transformation Transformation `json:"transformation"`
	Easing         string         `json:"easingType"`
	FullRotations  int            `json:"fullRotations"`
}

type pathRecord struct {
	UUID        string          `json:"uuid"`
	Classname   string          `json:"classname"`
	Type        PathType        `json:"pathType"`
	Geometry    json.RawMessage `json:"json,omitempty"`
	FillColor   Color           `json:"fillColor"`
	StrokeColor Color           `json:"strokeColor"`
	StrokeWidth float64         `json:"strokeWidth"`
	Opacity     float64         `json:"opacity"`
	FontFamily  string          `json:"fontFamily,omitempty"`
	FontSize    float64         `json:"fontSize,omitempty"`
	FontWeight  int             `json:"fontWeight"`
	FontStyle   string          `json:"fontStyle"`
	Asset       string          `json:"asset,omitempty"`
	Matrix      Matrix          `json:"matrix"`
	Bounds      Rect            `json:"bounds"`
}

type assetRecord struct {
	UUID       string `json:"uuid"`
	Classname  string `json:"classname"`
	Name       string `json:"name"`
	Filename   string `json:"filename"`
	MIME       string `json:"mimeType"`
	Data       []byte `json:"src"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	DurationMS int64  `json:"durationMS,omitempty"`
}

// contentRecord holds exactly one of a path or clip record.
type contentRecord struct {
	Path *pathRecord
	Clip *clipRecord
}

func (r contentRecord) MarshalJSON() ([]byte, error) {
	switch {
	case r.Path != nil:
		return json.Marshal(r.Path)
	case r.Clip != nil:
		return json.Marshal(r.Clip)
	}
	return nil, fmt.Errorf("encode content: empty record")
}

func (r *contentRecord) UnmarshalJSON(data []byte) error {
	var head struct {
		Classname string `json:"classname"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	switch head.Classname {
	case KindPath.String():
		r.Path = &pathRecord{}
		return json.Unmarshal(data, r.Path)
	case KindClip.String():
		r.Clip = &clipRecord{}
		return json.Unmarshal(data, r.Clip)
	}
	return fmt.Errorf("decode content: %w: classname %q", ErrWrongKind, head.Classname)
}

// --- Encoding ---

// Serialize encodes the project and its whole entity tree. The output is
// deterministic: equal models produce equal bytes.
func (p *Project) Serialize() ([]byte, error) {
	rec := projectRecord{
		UUID:                   p.uuid,
		Classname:              KindProject.String(),
		Name:                   p.Name,
		Width:                  p.Width,
		Height:                 p.Height,
		Framerate:              p.framerate,
		BackgroundColor:        p.BackgroundColor,
		Pan:                    p.Pan,
		Zoom:                   p.Zoom,
		OnionSkinEnabled:       p.OnionSkinEnabled,
		OnionSkinSeekBackwards: p.OnionSkinSeekBackwards,
		OnionSkinSeekForwards:  p.OnionSkinSeekForwards,
		Focus:                  p.focus,
		Root:                   encodeClip(p.root),
		Assets:                 make([]assetRecord, 0, len(p.assets)),
	}
	for _, a := range p.assets {
		rec.Assets = append(rec.Assets, encodeAsset(a))
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("serialize project: %w", err)
	}
	return data, nil
}

func encodeClip(c *Clip) clipRecord {
	return clipRecord{
		UUID:           c.uuid,
		Classname:      KindClip.String(),
		Identifier:     c.Identifier,
		Transformation: c.Transformation,
		Scripts:        nonNil(c.Scripts),
		Timeline:       encodeTimeline(c.timeline),
	}
}

func encodeTimeline(t *Timeline) timelineRecord {
	rec := timelineRecord{
		UUID:             t.uuid,
		Classname:        KindTimeline.String(),
		Playhead:         t.playhead,
		ActiveLayerIndex: t.activeLayer,
		Layers:           make([]layerRecord, 0, len(t.layers)),
	}
	for _, l := range t.layers {
		lr := layerRecord{
			UUID:      l.uuid,
			Classname: KindLayer.String(),
			Name:      l.Name,
			Locked:    l.Locked,
			Hidden:    l.Hidden,
			Frames:    make([]frameRecord, 0, len(l.frames)),
		}
		for _, f := range l.frames {
			lr.Frames = append(lr.Frames, encodeFrame(f))
		}
		rec.Layers = append(rec.Layers, lr)
	}
	return rec
}

func encodeFrame(f *Frame) frameRecord {
	rec := frameRecord{
		UUID:         f.uuid,
		Classname:    KindFrame.String(),
		Identifier:   f.Identifier,
		Start:        f.start,
		End:          f.end,
		Stop:         f.Stop,
		Scripts:      nonNil(f.Scripts),
		Sound:        f.SoundAssetUUID,
		SoundStartMS: f.SoundStartMS,
		Content:      make([]contentRecord, 0, len(f.content)),
		Tweens:       make([]tweenRecord, 0, len(f.tweens)),
	}
	for _, e := range f.content {
		// Content is always a Path or Clip; InsertContent enforces it.
		cr, _ := encodeContent(e)
		rec.Content = append(rec.Content, cr)
	}
	for _, tw := range f.tweens {
		rec.Tweens = append(rec.Tweens, tweenRecord{
			UUID:           tw.uuid,
			Classname:      KindTween.String(),
			Position:       tw.Position,
			Transformation: tw.Transformation,
			Easing:         tw.easing,
			FullRotations:  tw.FullRotations,
		})
	}
	return rec
}

func encodeContent(e Entity) (contentRecord, error) {
	switch v := e.(type) {
	case *Path:
		return contentRecord{Path: encodePath(v)}, nil
	case *Clip:
		cr := encodeClip(v)
		return contentRecord{Clip: &cr}, nil
	}
	return contentRecord{}, fmt.Errorf("encode content: %w: %s", ErrWrongKind, e.Kind())
}

func encodePath(p *Path) *pathRecord {
	return &pathRecord{
		UUID:        p.uuid,
		Classname:   KindPath.String(),
		Type:        p.Type,
		Geometry:    p.Geometry,
		FillColor:   p.FillColor,
		StrokeColor: p.StrokeColor,
		StrokeWidth: p.StrokeWidth,
		Opacity:     p.Opacity,
		FontFamily:  p.FontFamily,
		FontSize:    p.FontSize,
		FontWeight:  p.FontWeight,
		FontStyle:   p.FontStyle,
		Asset:       p.AssetUUID,
		Matrix:      p.Matrix,
		Bounds:      p.Bounds,
	}
}

func encodeAsset(a *Asset) assetRecord {
	return assetRecord{
		UUID:       a.uuid,
		Classname:  a.kind.String(),
		Name:       a.Name,
		Filename:   a.Filename,
		MIME:       a.MIME,
		Data:       a.Data,
		Width:      a.Width,
		Height:     a.Height,
		DurationMS: a.Duration.Milliseconds(),
	}
}

func nonNil(s Scripts) Scripts {
	if s == nil {
		return Scripts{}
	}
	return s
}

// --- Decoding ---

// decoder rebuilds entities from records. With fresh set, every entity gets
// a new identifier instead of the recorded one.
type decoder struct {
	fresh bool
	clips map[string]*Clip
}

func newDecoder(fresh bool) *decoder {
	return &decoder{fresh: fresh, clips: make(map[string]*Clip)}
}

func (d *decoder) base(kind Kind, id, classname string) (Base, error) {
	if classname != kind.String() {
		return Base{}, fmt.Errorf("%w: expected %s, got classname %q", ErrWrongKind, kind, classname)
	}
	if d.fresh {
		return newBase(kind), nil
	}
	if id == "" {
		return Base{}, fmt.Errorf("%s record without uuid", kind)
	}
	return Base{uuid: id, kind: kind}, nil
}

func (d *decoder) content(rec contentRecord) (Entity, error) {
	switch {
	case rec.Path != nil:
		return d.path(rec.Path)
	case rec.Clip != nil:
		return d.clip(rec.Clip)
	}
	return nil, fmt.Errorf("decode content: empty record")
}

func (d *decoder) clip(rec *clipRecord) (*Clip, error) {
	b, err := d.base(KindClip, rec.UUID, rec.Classname)
	if err != nil {
		return nil, err
	}
	c := &Clip{
		Base:           b,
		Identifier:     rec.Identifier,
		Transformation: rec.Transformation,
		Scripts:        rec.Scripts,
	}
	tl, err := d.timeline(&rec.Timeline)
	if err != nil {
		return nil, fmt.Errorf("clip %s: %w", rec.UUID, err)
	}
	c.setTimeline(tl)
	d.clips[c.uuid] = c
	return c, nil
}

func (d *decoder) timeline(rec *timelineRecord) (*Timeline, error) {
	b, err := d.base(KindTimeline, rec.UUID, rec.Classname)
	if err != nil {
		return nil, err
	}
	t := &Timeline{Base: b, playhead: 1, playing: true}
	for i := range rec.Layers {
		l, err := d.layer(&rec.Layers[i])
		if err != nil {
			return nil, err
		}
		t.AddLayer(l)
	}
	if err := t.SetPlayheadPosition(rec.Playhead); err != nil {
		return nil, fmt.Errorf("timeline %s: %w", rec.UUID, err)
	}
	if len(t.layers) > 0 {
		if err := t.SetActiveLayerIndex(rec.ActiveLayerIndex); err != nil {
			return nil, fmt.Errorf("timeline %s: %w", rec.UUID, err)
		}
	}
	return t, nil
}

func (d *decoder) layer(rec *layerRecord) (*Layer, error) {
	b, err := d.base(KindLayer, rec.UUID, rec.Classname)
	if err != nil {
		return nil, err
	}
	l := &Layer{Base: b, Name: rec.Name, Locked: rec.Locked, Hidden: rec.Hidden}
	for i := range rec.Frames {
		f, err := d.frame(&rec.Frames[i])
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", rec.Name, err)
		}
		if err := l.AddFrame(f); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (d *decoder) frame(rec *frameRecord) (*Frame, error) {
	b, err := d.base(KindFrame, rec.UUID, rec.Classname)
	if err != nil {
		return nil, err
	}
	if err := validRange(rec.Start, rec.End); err != nil {
		return nil, fmt.Errorf("frame %s: %w", rec.UUID, err)
	}
	f := &Frame{
		Base:           b,
		Identifier:     rec.Identifier,
		Scripts:        rec.Scripts,
		Stop:           rec.Stop,
		SoundAssetUUID: rec.Sound,
		SoundStartMS:   rec.SoundStartMS,
		start:          rec.Start,
		end:            rec.End,
	}
	for _, cr := range rec.Content {
		e, err := d.content(cr)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", rec.UUID, err)
		}
		f.InsertContent(e, len(f.content))
	}
	for i := range rec.Tweens {
		tr := &rec.Tweens[i]
		tb, err := d.base(KindTween, tr.UUID, tr.Classname)
		if err != nil {
			return nil, err
		}
		tw := &Tween{Base: tb, Position: tr.Position, Transformation: tr.Transformation, FullRotations: tr.FullRotations}
		if err := tw.SetEasing(tr.Easing); err != nil {
			return nil, fmt.Errorf("tween %s: %w", tr.UUID, err)
		}
		if err := f.AddTween(tw); err != nil {
			return nil, fmt.Errorf("tween %s: %w", tr.UUID, err)
		}
	}
	return f, nil
}

func (d *decoder) path(rec *pathRecord) (*Path, error) {
	b, err := d.base(KindPath, rec.UUID, rec.Classname)
	if err != nil {
		return nil, err
	}
	return &Path{
		Base:        b,
		Type:        rec.Type,
		Geometry:    bytes.Clone(rec.Geometry),
		FillColor:   rec.FillColor,
		StrokeColor: rec.StrokeColor,
		StrokeWidth: rec.StrokeWidth,
		Opacity:     rec.Opacity,
		FontFamily:  rec.FontFamily,
		FontSize:    rec.FontSize,
		FontWeight:  rec.FontWeight,
		FontStyle:   rec.FontStyle,
		AssetUUID:   rec.Asset,
		Matrix:      rec.Matrix,
		Bounds:      rec.Bounds,
	}, nil
}

func (d *decoder) asset(rec *assetRecord) (*Asset, error) {
	kind, ok := ParseKind(rec.Classname)
	if !ok || (kind != KindImageAsset && kind != KindSoundAsset) {
		return nil, fmt.Errorf("asset %s: %w: classname %q", rec.UUID, ErrWrongKind, rec.Classname)
	}
	b, err := d.base(kind, rec.UUID, rec.Classname)
	if err != nil {
		return nil, err
	}
	return &Asset{
		Base:     b,
		Name:     rec.Name,
		Filename: rec.Filename,
		MIME:     rec.MIME,
		Data:     rec.Data,
		Width:    rec.Width,
		Height:   rec.Height,
		Duration: time.Duration(rec.DurationMS) * time.Millisecond,
	}, nil
}

// Deserialize builds a new project from a record produced by Serialize. The
// loaded state becomes the bottom of the project's history.
func Deserialize(data []byte) (*Project, error) {
	p := newBareProject()
	if err := p.Load(data); err != nil {
		return nil, err
	}
	if err := p.history.PushState(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load replaces the project's settings and entity tree with the record in
// data. The record is fully decoded and validated before anything changes;
// on error the project is left untouched. The object cache is rebuilt from
// scratch. History, collaborators and input state are kept.
func (p *Project) Load(data []byte) error {
	var rec projectRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	if rec.Classname != KindProject.String() {
		return fmt.Errorf("load project: %w: classname %q", ErrWrongKind, rec.Classname)
	}
	if rec.UUID == "" {
		rec.UUID = uuid.NewString()
	}
	if rec.Framerate <= 0 {
		return fmt.Errorf("load project: %w: %d", ErrInvalidFramerate, rec.Framerate)
	}

	d := newDecoder(false)
	root, err := d.clip(&rec.Root)
	if err != nil {
		return fmt.Errorf("load project: root: %w", err)
	}
	assets := make([]*Asset, 0, len(rec.Assets))
	for i := range rec.Assets {
		a, err := d.asset(&rec.Assets[i])
		if err != nil {
			return fmt.Errorf("load project: %w", err)
		}
		assets = append(assets, a)
	}
	if _, ok := d.clips[rec.Focus]; !ok {
		return fmt.Errorf("load project: focus %q: %w", rec.Focus, ErrNotFound)
	}

	for _, old := range p.Children() {
		old.base().parent = nil
		release(old)
	}
	p.cache.Reset()
	p.uuid = rec.UUID
	p.cache.Add(p)
	p.assets = nil
	p.setRoot(root)
	for _, a := range assets {
		p.AddAsset(a)
	}

	p.Name = rec.Name
	p.Width = rec.Width
	p.Height = rec.Height
	p.framerate = rec.Framerate
	p.BackgroundColor = rec.BackgroundColor
	p.Pan = rec.Pan
	p.Zoom = rec.Zoom
	p.OnionSkinEnabled = rec.OnionSkinEnabled
	p.OnionSkinSeekBackwards = rec.OnionSkinSeekBackwards
	p.OnionSkinSeekForwards = rec.OnionSkinSeekForwards
	p.focus = rec.Focus
	return nil
}
