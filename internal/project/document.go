// Package project converts a canvas to and from its JSON document form.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// Version is the document format version written by Encode.
const Version = 1

// Document is a serialized canvas.
type Document struct {
	Version int           `json:"version"`
	SavedAt time.Time     `json:"savedAt"`
	View    View          `json:"view"`
	Objects []Record      `json:"objects"`
	Groups  []GroupRecord `json:"groups,omitempty"`
}

// View is the saved viewport.
type View struct {
	Scale float64    `json:"scale"`
	Pan   [2]float64 `json:"pan"`
}

// Style mirrors scene.Style.
type Style struct {
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
}

// Record is one object in paint order.
type Record struct {
	ID          string       `json:"id"`
	Type        canvas.Type  `json:"type"`
	Name        string       `json:"name,omitempty"`
	Locked      bool         `json:"locked,omitempty"`
	Visible     bool         `json:"visible"`
	ParentGroup string       `json:"parentGroup,omitempty"`
	Shape       string       `json:"shape"`
	Rect        *types.Rect  `json:"rect,omitempty"`
	Points      [][2]float64 `json:"points,omitempty"`
	Matrix      [6]float64   `json:"matrix"`
	Style       Style        `json:"style"`
}

// GroupRecord is a saved group.
type GroupRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ObjectIDs []string `json:"objectIds"`
}

// Capture builds a document from store in paint order.
func Capture(store *canvas.Store, view View) *Document {
	doc := &Document{Version: Version, SavedAt: time.Now().UTC(), View: view}
	for _, n := range store.Layer().Children() {
		obj, ok := store.Lookup(n)
		if !ok {
			continue
		}
		doc.Objects = append(doc.Objects, NewRecord(obj))
	}
	for _, g := range store.Groups() {
		doc.Groups = append(doc.Groups, GroupRecord{ID: g.ID, Name: g.Name, ObjectIDs: append([]string(nil), g.ObjectIDs...)})
	}
	return doc
}

// CaptureObjects builds a document holding only objs.
func CaptureObjects(objs []*canvas.Object) *Document {
	doc := &Document{Version: Version, SavedAt: time.Now().UTC(), View: View{Scale: 1}}
	for _, obj := range objs {
		if obj != nil && obj.Item != nil {
			doc.Objects = append(doc.Objects, NewRecord(obj))
		}
	}
	return doc
}

// NewRecord serializes obj. obj.Item must not be nil.
func NewRecord(obj *canvas.Object) Record {
	n := obj.Item
	m := n.Matrix()
	r := Record{
		ID:          obj.ID,
		Type:        obj.Type,
		Name:        obj.Name,
		Locked:      obj.Locked,
		Visible:     obj.Visible,
		ParentGroup: obj.ParentGroup,
		Shape:       n.Shape().String(),
		Matrix:      [6]float64{m.A, m.B, m.C, m.D, m.E, m.F},
		Style: Style{
			Fill:        n.Style.Fill,
			Stroke:      n.Style.Stroke,
			StrokeWidth: n.Style.StrokeWidth,
			Dash:        append([]float64(nil), n.Style.Dash...),
		},
	}
	switch n.Shape() {
	case scene.ShapeRect, scene.ShapeEllipse:
		local := n.Local()
		r.Rect = &local
	default:
		for _, p := range n.Points() {
			r.Points = append(r.Points, [2]float64{p.X, p.Y})
		}
	}
	return r
}

// Object rebuilds a detached object from r.
func (r Record) Object() (*canvas.Object, error) {
	shape, ok := scene.ParseShape(r.Shape)
	if !ok {
		return nil, fmt.Errorf("object %s: unknown shape %q", r.ID, r.Shape)
	}
	var n *scene.Node
	switch shape {
	case scene.ShapeRect, scene.ShapeEllipse:
		if r.Rect == nil {
			return nil, fmt.Errorf("object %s: %s without rect", r.ID, r.Shape)
		}
		if shape == scene.ShapeRect {
			n = scene.NewRect(*r.Rect)
		} else {
			n = scene.NewEllipse(*r.Rect)
		}
	default:
		pts := make([]types.Point, len(r.Points))
		for i, p := range r.Points {
			pts[i] = types.Pt(p[0], p[1])
		}
		if shape == scene.ShapePolygon {
			n = scene.NewPolygon(pts)
		} else {
			n = scene.NewPath(pts...)
		}
	}
	n.SetMatrix(gg.Matrix{A: r.Matrix[0], B: r.Matrix[1], C: r.Matrix[2], D: r.Matrix[3], E: r.Matrix[4], F: r.Matrix[5]})
	n.Style = scene.Style{
		Fill:        r.Style.Fill,
		Stroke:      r.Style.Stroke,
		StrokeWidth: r.Style.StrokeWidth,
		Dash:        append([]float64(nil), r.Style.Dash...),
	}
	n.Hidden = !r.Visible

	return &canvas.Object{
		ID:          r.ID,
		Type:        r.Type,
		Name:        r.Name,
		Locked:      r.Locked,
		Visible:     r.Visible,
		ParentGroup: r.ParentGroup,
		Item:        n,
	}, nil
}

// CountByType returns the number of objects per type.
func (d *Document) CountByType() map[string]int {
	out := make(map[string]int)
	for _, r := range d.Objects {
		out[string(r.Type)]++
	}
	return out
}

// DecodeObjects rebuilds every record as a detached object.
func (d *Document) DecodeObjects() ([]*canvas.Object, error) {
	out := make([]*canvas.Object, 0, len(d.Objects))
	for _, r := range d.Objects {
		obj, err := r.Object()
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// Restore replaces the contents of store with doc.
func Restore(doc *Document, store *canvas.Store) error {
	objs, err := doc.DecodeObjects()
	if err != nil {
		return err
	}
	store.Clear()
	for _, obj := range objs {
		// Membership comes from doc.Groups.
		obj.ParentGroup = ""
		store.Layer().Add(obj.Item)
		store.AddObject(obj)
	}
	for _, g := range doc.Groups {
		store.RestoreGroup(&canvas.Group{ID: g.ID, Name: g.Name, ObjectIDs: g.ObjectIDs})
	}
	logger.DebugTagf("project", "Project: restored %d object(s), %d group(s)", len(objs), len(doc.Groups))
	return nil
}

// Encode marshals doc as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a document and checks its version.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if doc.Version == 0 || doc.Version > Version {
		return nil, fmt.Errorf("unsupported project version %d", doc.Version)
	}
	if doc.View.Scale == 0 {
		doc.View.Scale = 1
	}
	return &doc, nil
}

// SaveFile writes doc to path atomically.
func SaveFile(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create project dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write project %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write project %s: %w", path, err)
	}
	logger.Infof("Project: saved %d object(s) to %s", len(doc.Objects), path)
	return nil
}

// LoadFile reads a document from path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
