package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
)

// Drawable is anything a renderer can draw against a camera. mesh.Mesh implements it.
type Drawable interface {
	// Draw issues a single draw call for the object.
	Draw(cam camera.Camera)

	// DrawInstance issues an instanced draw call for the object.
	DrawInstance(cam camera.Camera)

	// Instanced reports whether DrawInstance should be used instead of Draw.
	Instanced() bool

	// Dispose releases the GPU resources of the object.
	Dispose()
}

// Scene is an insertion-ordered list of drawables together with the transform graph their
// nodes live in and an optional camera. It performs no sorting or culling.
// Scenes can be hot-swapped via the Active flag to switch between different views or levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera, or nil if none was set.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Graph returns the transform graph meshes of this scene should be created in.
	//
	// Returns:
	//   - *transform.Graph: the graph
	Graph() *transform.Graph

	// Add appends objects in order. Adding an object that is already present appends it again.
	//
	// Parameters:
	//   - objects: the objects to add
	Add(objects ...Drawable)

	// Remove removes the first occurrence of obj by identity and optionally disposes it.
	//
	// Parameters:
	//   - obj: the object to remove
	//   - dispose: whether to call obj.Dispose after removal
	//
	// Returns:
	//   - bool: true if the object was found
	Remove(obj Drawable, dispose bool) bool

	// Objects returns a snapshot of the objects in insertion order.
	//
	// Returns:
	//   - []Drawable: the objects
	Objects() []Drawable

	// Len returns the number of objects in the scene.
	Len() int

	// Clear removes every object, disposing each one when dispose is true.
	//
	// Parameters:
	//   - dispose: whether to dispose the removed objects
	Clear(dispose bool)
}

type scene struct {
	name    string
	active  bool
	camera  camera.Camera
	graph   *transform.Graph
	objects []Drawable

	mu *sync.RWMutex
}

var _ Scene = &scene{}

// NewScene creates an empty, active scene.
//
// Parameters:
//   - name: the scene identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:   name,
		active: true,
		mu:     &sync.RWMutex{},
	}
	for _, option := range options {
		option(s)
	}
	if s.graph == nil {
		s.graph = transform.NewGraph()
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = cam
}

func (s *scene) Graph() *transform.Graph {
	return s.graph
}

func (s *scene) Add(objects ...Drawable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range objects {
		if obj != nil {
			s.objects = append(s.objects, obj)
		}
	}
}

func (s *scene) Remove(obj Drawable, dispose bool) bool {
	s.mu.Lock()
	i := slices.Index(s.objects, obj)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	s.mu.Unlock()

	if dispose {
		obj.Dispose()
	}
	return true
}

func (s *scene) Objects() []Drawable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Clear(dispose bool) {
	s.mu.Lock()
	objects := s.objects
	s.objects = nil
	s.mu.Unlock()

	if !dispose {
		return
	}
	for _, obj := range objects {
		obj.Dispose()
	}
}
