package wick

import (
	"encoding/json"

	"github.com/jinzhu/copier"
)

// PathType describes what a path's geometry represents.
type PathType string

const (
	PathTypePath  PathType = "path"
	PathTypeText  PathType = "text"
	PathTypeImage PathType = "image"
)

// Path is leaf vector content held by a Frame. Geometry is opaque to the
// model: it is produced and consumed by the render collaborator. Bounds are
// the local-space bounds the collaborator reported for the geometry; Matrix
// places them in the owning frame's space.
type Path struct {
	Base `copier:"-"`

	Type     PathType
	Geometry json.RawMessage

	FillColor   Color
	StrokeColor Color
	StrokeWidth float64
	Opacity     float64

	FontFamily string
	FontSize   float64
	FontWeight int
	FontStyle  string

	// AssetUUID links image paths to their ImageAsset.
	AssetUUID string

	Matrix Matrix
	Bounds Rect
}

// NewPath creates a path with the given geometry and local bounds.
func NewPath(geometry json.RawMessage, bounds Rect) *Path {
	return &Path{
		Base:       newBase(KindPath),
		Type:       PathTypePath,
		Geometry:   geometry,
		FillColor:  ColorBlack,
		Opacity:    1,
		FontWeight: 400,
		FontStyle:  "normal",
		Matrix:     IdentityMatrix,
		Bounds:     bounds,
	}
}

// NewImagePath creates a path displaying an image asset at its natural size.
func NewImagePath(asset *Asset) *Path {
	p := NewPath(nil, Rect{Width: float64(asset.Width), Height: float64(asset.Height)})
	p.Type = PathTypeImage
	p.AssetUUID = asset.UUID()
	return p
}

// NewTextPath creates a text path. The content is stored as the path's
// geometry; bounds come from the caller's text measurement.
func NewTextPath(content string, fontSize float64, bounds Rect) *Path {
	geometry, _ := json.Marshal(textGeometry{Content: content})
	p := NewPath(geometry, bounds)
	p.Type = PathTypeText
	p.FontFamily = "sans-serif"
	p.FontSize = fontSize
	return p
}

type textGeometry struct {
	Content string `json:"content"`
}

// Text returns the content of a text path, or "" for other path types.
func (p *Path) Text() string {
	if p.Type != PathTypeText {
		return ""
	}
	var g textGeometry
	if err := json.Unmarshal(p.Geometry, &g); err != nil {
		return ""
	}
	return g.Content
}

// Children returns nil; paths are leaves.
func (p *Path) Children() []Entity { return nil }

// ParentFrame returns the frame holding this path, or nil.
func (p *Path) ParentFrame() *Frame {
	f, _ := p.parent.(*Frame)
	return f
}

// FrameBounds returns the path's bounds in its frame's space.
func (p *Path) FrameBounds() Rect {
	return p.Matrix.TransformRect(p.Bounds)
}

// Clone returns a detached deep copy with a fresh identifier.
func (p *Path) Clone() *Path {
	c := &Path{}
	if err := copier.CopyWithOption(c, p, copier.Option{DeepCopy: true}); err != nil {
		panic("wick: clone path: " + err.Error())
	}
	c.Base = newBase(KindPath)
	return c
}

// Remove detaches the path from its frame.
func (p *Path) Remove() {
	removeFromParent(p)
}
