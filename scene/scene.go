// Package scene rebuilds a host-tool scene graph from a decoded save:
// bodies become empties, shapes become point-cloud meshes, lights keep
// their photometric parameters. The package drives a Host collaborator
// and never touches any UI or file dialog itself.
package scene

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/teardown_browser/tdbin"
)

const (
	DefaultMaxVoxels  = 500000
	DefaultVoxelScale = float32(0.1)

	// maxMeshVoxels caps a single shape independently of MaxVoxels.
	// MaxVoxels can only lower the effective limit, never raise it.
	maxMeshVoxels = 8192

	// lightIntensity is the fixed placeholder intensity assigned to
	// every imported light. It is not derived from any save field.
	lightIntensity = 100
)

type LightKind int

const (
	LightPoint LightKind = iota + 1
	LightSpot
	LightArea
)

func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	case LightArea:
		return "area"
	}
	return "unknown"
}

// LightParams carries the mapped photometric parameters of a light.
// Color is nil when the source maps none (area lights).
type LightParams struct {
	Color     *[3]float32
	Intensity float32
	SoftSize  float32
	SpotAngle float32
	SpotBlend float32
}

// Payload is the content variant of an Object.
type Payload interface{ payload() }

type MeshPayload struct{ Mesh *Mesh }

type LightPayload struct {
	Kind   LightKind
	Params LightParams
}

type EmptyPayload struct{}

func (MeshPayload) payload()  {}
func (LightPayload) payload() {}
func (EmptyPayload) payload() {}

// Object is one node of the rebuilt scene graph. Parent is a weak
// back-reference; children are owned.
type Object struct {
	Name     string
	Payload  Payload
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Host     Handle
	Parent   *Object
	Children []*Object
}

type Options struct {
	// ParentLargeRootBodies is reserved for a future policy of leaving
	// children of very large root bodies unparented. The current build
	// always parents regardless of the value.
	ParentLargeRootBodies bool
	MaxVoxels             int
	VoxelScale            float32
	Host                  Host
	Context               context.Context
	// Progress, when set, is called once per visited entity.
	Progress func(processed, total int)
}

func (o *Options) fillDefaults() {
	if o.MaxVoxels == 0 {
		o.MaxVoxels = DefaultMaxVoxels
	}
	if o.VoxelScale == 0 {
		o.VoxelScale = DefaultVoxelScale
	}
	if o.Host == nil {
		o.Host = NewCollectHost()
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
}

// Report is the per-import diagnostic context. A fresh Report is
// allocated for every import; nothing here is global.
type Report struct {
	Processed int
	Meshes    int
	Lights    int
	Empties   int
	Skipped   int
	Errored   int
	Voxels    int
	Warnings  []string
}

func (rep *Report) warnf(format string, args ...interface{}) {
	rep.Warnings = append(rep.Warnings, fmt.Sprintf(format, args...))
}

// Import decodes a save and rebuilds its scene graph through opts.Host.
// The returned root carries the global basis correction; entity-level
// decode failures degrade to placeholders and are counted in the
// Report, while stream-alignment failures abort with an error.
func Import(b []byte, opts Options) (*Object, *Report, error) {
	s, err := tdbin.DecodeScene(b)
	if err != nil {
		return nil, nil, err
	}
	return Build(s, opts)
}
