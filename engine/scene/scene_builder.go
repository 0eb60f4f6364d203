package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
)

// SceneBuilderOption configures a Scene at construction.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the engine renders the scene. Inactive scenes keep their objects
// and GPU resources but are skipped by the frame loop.
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera sets the camera the scene is rendered from. Without one, rendering the scene
// issues no draw calls.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithGraph shares a transform graph between scenes. Objects can only be parented to nodes of
// the same graph, so meshes that move together across scenes need a shared one.
//
// Parameters:
//   - graph: the graph meshes of this scene are created in
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGraph(graph *transform.Graph) SceneBuilderOption {
	return func(s *scene) {
		s.graph = graph
	}
}

// WithObjects appends initial drawables in draw order. Nil entries are dropped.
func WithObjects(objects ...Drawable) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj != nil {
				s.objects = append(s.objects, obj)
			}
		}
	}
}
