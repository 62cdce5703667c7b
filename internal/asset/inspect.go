// Package asset inspects glTF/GLB files before they are handed to the GPU
// loader: version, extensions, mesh counts and bounds, and whether the meshes
// are compressed with an extension the loader cannot read directly.
package asset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"model-viewer/internal/framing"
)

// Mesh compression extensions.
const (
	ExtDraco   = "KHR_draco_mesh_compression"
	ExtMeshopt = "EXT_meshopt_compression"
)

var compressionExtensions = []string{ExtDraco, ExtMeshopt}

// ErrUnsupportedVersion is returned for assets that are not glTF 2.x.
var ErrUnsupportedVersion = errors.New("asset: unsupported glTF version")

// Info summarizes a glTF document.
type Info struct {
	Path               string
	Version            string
	Generator          string
	ExtensionsUsed     []string
	ExtensionsRequired []string
	Scenes             int
	Nodes              int
	Meshes             int
	Primitives         int
	Materials          int
	Vertices           int
	// Bounds is the scene's axis aligned box from accessor min/max, with node
	// transforms applied. Empty when no POSITION accessor declares bounds.
	Bounds framing.Box
}

// Compression returns the mesh compression extension the asset requires, or "".
// Extensions that are only used, not required, have an uncompressed fallback.
func (i *Info) Compression() string {
	for _, ext := range compressionExtensions {
		if slices.Contains(i.ExtensionsRequired, ext) {
			return ext
		}
	}
	return ""
}

// Inspect reads the glTF or GLB file at path.
func Inspect(path string) (*Info, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open %s: %w", path, err)
	}
	info, err := describe(doc)
	if err != nil {
		return nil, fmt.Errorf("asset: %s: %w", path, err)
	}
	info.Path = path
	return info, nil
}

func describe(doc *gltf.Document) (*Info, error) {
	v, err := semver.NewVersion(doc.Asset.Version)
	if err != nil || v.Major() != 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, doc.Asset.Version)
	}
	info := &Info{
		Version:            doc.Asset.Version,
		Generator:          doc.Asset.Generator,
		ExtensionsUsed:     doc.ExtensionsUsed,
		ExtensionsRequired: doc.ExtensionsRequired,
		Scenes:             len(doc.Scenes),
		Nodes:              len(doc.Nodes),
		Meshes:             len(doc.Meshes),
		Materials:          len(doc.Materials),
		Bounds:             framing.EmptyBox(),
	}
	for _, m := range doc.Meshes {
		info.Primitives += len(m.Primitives)
		for _, p := range m.Primitives {
			if a := positionAccessor(doc, p); a != nil {
				info.Vertices += a.Count
			}
		}
	}
	for _, root := range sceneRoots(doc) {
		walk(doc, root, mgl32.Ident4(), 0, func(n *gltf.Node, world mgl32.Mat4) {
			if n.Mesh == nil || *n.Mesh >= len(doc.Meshes) {
				return
			}
			for _, p := range doc.Meshes[*n.Mesh].Primitives {
				a := positionAccessor(doc, p)
				if a == nil || len(a.Min) < 3 || len(a.Max) < 3 {
					continue
				}
				local := framing.NewBox(
					mgl32.Vec3{float32(a.Min[0]), float32(a.Min[1]), float32(a.Min[2])},
					mgl32.Vec3{float32(a.Max[0]), float32(a.Max[1]), float32(a.Max[2])},
				)
				info.Bounds = info.Bounds.Union(transformBox(local, world))
			}
		})
	}
	return info, nil
}

func positionAccessor(doc *gltf.Document, p *gltf.Primitive) *gltf.Accessor {
	idx, ok := p.Attributes[gltf.POSITION]
	if !ok || idx < 0 || idx >= len(doc.Accessors) {
		return nil
	}
	return doc.Accessors[idx]
}

// sceneRoots returns the root nodes of the default scene, or of every scene
// when no default is set.
func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	var roots []int
	for _, s := range doc.Scenes {
		roots = append(roots, s.Nodes...)
	}
	return roots
}

// maxDepth guards against cyclic node graphs in malformed files.
const maxDepth = 64

func walk(doc *gltf.Document, idx int, parent mgl32.Mat4, depth int, fn func(*gltf.Node, mgl32.Mat4)) {
	if idx < 0 || idx >= len(doc.Nodes) || depth > maxDepth {
		return
	}
	n := doc.Nodes[idx]
	world := parent.Mul4(localMatrix(n))
	fn(n, world)
	for _, c := range n.Children {
		walk(doc, c, world, depth+1, fn)
	}
}

func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != gltf.DefaultMatrix && n.Matrix != ([16]float64{}) {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t := mgl32.Translate3D(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))
	r := mgl32.Quat{
		W: float32(n.Rotation[3]),
		V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])},
	}.Mat4()
	s := mgl32.Scale3D(float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]))
	return t.Mul4(r).Mul4(s)
}

func transformBox(b framing.Box, m mgl32.Mat4) framing.Box {
	out := framing.EmptyBox()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out = out.ExpandByPoint(mgl32.TransformCoordinate(corner, m))
	}
	return out
}
