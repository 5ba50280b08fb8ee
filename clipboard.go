package wick

import (
	"encoding/json"
	"fmt"
)

// Clipboard holds serialized copies of paths and clips. Pasting decodes them
// with fresh identifiers, so one copy can be pasted any number of times.
type Clipboard struct {
	project *Project
	data    []byte
}

func newClipboard(p *Project) *Clipboard {
	return &Clipboard{project: p}
}

// Empty reports whether nothing has been copied.
func (c *Clipboard) Empty() bool { return len(c.data) == 0 }

// Data returns the serialized clipboard contents.
func (c *Clipboard) Data() []byte { return c.data }

// SetData replaces the clipboard with serialized contents previously
// returned by Data, for example read back from the system clipboard.
func (c *Clipboard) SetData(data []byte) error {
	var recs []contentRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	c.data = data
	return nil
}

// Copy stores copies of the paths and clips among objs. Other kinds are
// ignored. Returns false when nothing was copied.
func (c *Clipboard) Copy(objs []Entity) bool {
	var recs []contentRecord
	for _, e := range objs {
		if e.Kind() != KindPath && e.Kind() != KindClip {
			continue
		}
		rec, err := encodeContent(e)
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return false
	}
	data, err := json.Marshal(recs)
	if err != nil {
		logger.Error("clipboard copy failed", "err", err)
		return false
	}
	c.data = data
	return true
}

// Paste decodes the clipboard into new entities and appends them to f.
// Returns the pasted entities.
func (c *Clipboard) Paste(f *Frame) ([]Entity, error) {
	if c.Empty() {
		return nil, nil
	}
	var recs []contentRecord
	if err := json.Unmarshal(c.data, &recs); err != nil {
		return nil, fmt.Errorf("clipboard paste: %w", err)
	}
	d := newDecoder(true)
	out := make([]Entity, 0, len(recs))
	for _, rec := range recs {
		e, err := d.content(rec)
		if err != nil {
			return nil, fmt.Errorf("clipboard paste: %w", err)
		}
		out = append(out, e)
	}
	for _, e := range out {
		f.InsertContent(e, len(f.content))
	}
	return out, nil
}

// CopySelectionToClipboard copies the selected paths and clips. Returns
// false when there was nothing to copy.
func (p *Project) CopySelectionToClipboard() bool {
	return p.clipboard.Copy(p.selection.SelectedObjects())
}

// PasteClipboardContents pastes the clipboard into the active frame and
// selects the pasted objects. Returns false when the clipboard is empty,
// there is no active frame, or the contents cannot be decoded.
func (p *Project) PasteClipboardContents() bool {
	f := p.ActiveFrame()
	if f == nil || p.clipboard.Empty() {
		return false
	}
	out, err := p.clipboard.Paste(f)
	if err != nil {
		logger.Warn("paste failed", "err", err)
		return false
	}
	p.selection.Clear()
	for _, e := range out {
		p.selection.Select(e)
	}
	return len(out) > 0
}
