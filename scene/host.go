package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Handle identifies an object on the host side.
type Handle int

const NoHandle Handle = -1

// Host is the collaborator the builder drives. Implementations exist
// for glTF and FBX export and for in-memory collection; the builder
// treats a Host error as fatal to the import.
type Host interface {
	CreateMesh(name string, mesh *Mesh) (Handle, error)
	CreateLight(name string, kind LightKind, params LightParams) (Handle, error)
	CreateEmpty(name string) (Handle, error)
	SetTransform(h Handle, position mgl32.Vec3, rotation mgl32.Quat) error
	LinkParent(child, parent Handle) error
	AddToCollection(h Handle) error
}

// CollectedObject is one object recorded by CollectHost.
type CollectedObject struct {
	Name         string
	Mesh         *Mesh
	LightKind    LightKind
	LightParams  *LightParams
	Position     mgl32.Vec3
	Rotation     mgl32.Quat
	Parent       Handle
	InCollection bool
}

// CollectHost records every builder call in memory. It backs tests and
// the web UI's scene browsing.
type CollectHost struct {
	Objects []*CollectedObject
}

func NewCollectHost() *CollectHost {
	return &CollectHost{}
}

func (c *CollectHost) add(o *CollectedObject) Handle {
	o.Parent = NoHandle
	o.Rotation = mgl32.QuatIdent()
	c.Objects = append(c.Objects, o)
	return Handle(len(c.Objects) - 1)
}

func (c *CollectHost) CreateMesh(name string, mesh *Mesh) (Handle, error) {
	return c.add(&CollectedObject{Name: name, Mesh: mesh}), nil
}

func (c *CollectHost) CreateLight(name string, kind LightKind, params LightParams) (Handle, error) {
	return c.add(&CollectedObject{Name: name, LightKind: kind, LightParams: &params}), nil
}

func (c *CollectHost) CreateEmpty(name string) (Handle, error) {
	return c.add(&CollectedObject{Name: name}), nil
}

func (c *CollectHost) SetTransform(h Handle, position mgl32.Vec3, rotation mgl32.Quat) error {
	c.Objects[h].Position = position
	c.Objects[h].Rotation = rotation
	return nil
}

func (c *CollectHost) LinkParent(child, parent Handle) error {
	c.Objects[child].Parent = parent
	return nil
}

func (c *CollectHost) AddToCollection(h Handle) error {
	c.Objects[h].InCollection = true
	return nil
}
