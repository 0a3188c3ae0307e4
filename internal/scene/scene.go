package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"premierepad/internal/pose"
)

var (
	cameraPosition = rl.NewVector3(0, 0, 0.175)
	// modelOffset centers the pad on the pivot.
	modelOffset = rl.NewVector3(-0.055, 0, 0)
	lightPosition = rl.NewVector3(10, 10, 10)
	clearColor    = rl.NewColor(0, 0, 0, 0)
)

const (
	cameraFovy = 75
	// panButton drags the camera; rotation and zoom input are never applied.
	panButton = rl.MouseButtonRight
)

// Pivot is the group the model hangs from. The pose animator drives it.
type Pivot struct {
	RotationX float32
	RotationY float32
	Scale     float32
}

// SetRotation implements pose.Target.
func (p *Pivot) SetRotation(x, y float32) { p.RotationX, p.RotationY = x, y }

// SetScale implements pose.Target.
func (p *Pivot) SetScale(s float32) { p.Scale = s }

// Scene holds the camera and the pad model and renders them to an offscreen surface
// that sits under the nav bar. The model file is uploaded to the GPU on the first Draw
// after SetModel, once the window and OpenGL context exist.
type Scene struct {
	Camera rl.Camera3D
	// ControlsEnabled allows camera panning with the right mouse button.
	ControlsEnabled bool

	pivot        Pivot
	model        rl.Model
	modelLoaded  bool
	modelPending bool
	modelPath    string
	loadFailed   bool

	lit       rl.Shader
	litLoaded bool

	surface       rl.RenderTexture2D
	surfaceLoaded bool
	surfaceW      int32
	surfaceH      int32
}

// New returns a scene with a perspective camera a few centimetres in front of the origin.
func New() *Scene {
	s := &Scene{ControlsEnabled: true}
	s.resetCamera()
	s.pivot.Scale = 1
	return s
}

func (s *Scene) resetCamera() {
	s.Camera.Position = cameraPosition
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = cameraFovy
	s.Camera.Projection = rl.CameraPerspective
}

// SetModel queues path for upload on the next Draw. Later calls are ignored once a
// model is loaded or queued.
func (s *Scene) SetModel(path string) {
	if s.modelLoaded || s.modelPending {
		return
	}
	s.modelPath = path
	s.modelPending = true
}

// HasModel reports whether the model has been uploaded and is being drawn.
func (s *Scene) HasModel() bool { return s.modelLoaded }

// ModelQueued reports whether SetModel has been called.
func (s *Scene) ModelQueued() bool { return s.modelLoaded || s.modelPending || s.loadFailed }

// LoadFailed reports whether raylib could not build a model from the file.
func (s *Scene) LoadFailed() bool { return s.loadFailed }

// Target returns the pivot once the model is drawable, or nil before that.
func (s *Scene) Target() pose.Target {
	if !s.modelLoaded {
		return nil
	}
	return &s.pivot
}

// Pivot returns the current pivot transform.
func (s *Scene) Pivot() Pivot { return s.pivot }

func (s *Scene) ensureModelLoaded() {
	if !s.modelPending {
		return
	}
	s.modelPending = false
	m := rl.LoadModel(s.modelPath)
	if m.MeshCount == 0 {
		s.loadFailed = true
		return
	}
	s.model = m
	s.ensureLitShader()
	if s.litLoaded {
		mats := s.model.GetMaterials()
		for i := range mats {
			mats[i].Shader = s.lit
		}
	}
	s.modelLoaded = true
}

// Update pans the camera while controls are enabled. Call once per frame.
func (s *Scene) Update(surfaceHeight float32) {
	if !s.ControlsEnabled || !rl.IsMouseButtonDown(panButton) || surfaceHeight <= 0 {
		return
	}
	delta := rl.GetMouseDelta()
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	offset := panOffset(s.Camera, delta, surfaceHeight)
	s.Camera.Position = rl.Vector3Add(s.Camera.Position, offset)
	s.Camera.Target = rl.Vector3Add(s.Camera.Target, offset)
}

// ResetCamera undoes any panning.
func (s *Scene) ResetCamera() { s.resetCamera() }

// panOffset moves the camera so the point under the cursor follows it, like a
// screen-space drag at the target's depth.
func panOffset(cam rl.Camera3D, delta rl.Vector2, surfaceHeight float32) rl.Vector3 {
	toTarget := rl.Vector3Subtract(cam.Target, cam.Position)
	distance := rl.Vector3Length(toTarget)
	worldPerPixel := 2 * distance * math32.Tan(cam.Fovy*rl.Deg2rad/2) / surfaceHeight
	forward := rl.Vector3Normalize(toTarget)
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, cam.Up))
	up := rl.Vector3CrossProduct(right, forward)
	return rl.Vector3Add(
		rl.Vector3Scale(right, -delta.X*worldPerPixel),
		rl.Vector3Scale(up, delta.Y*worldPerPixel),
	)
}

func (s *Scene) ensureSurface(w, h int32) {
	if s.surfaceLoaded && s.surfaceW == w && s.surfaceH == h {
		return
	}
	if s.surfaceLoaded {
		rl.UnloadRenderTexture(s.surface)
	}
	s.surface = rl.LoadRenderTexture(w, h)
	s.surfaceW, s.surfaceH = w, h
	s.surfaceLoaded = true
}

// Draw renders the model into a transparent surface and blits it to the screen at
// bounds. Without a loaded model only the surface is cleared.
func (s *Scene) Draw(bounds rl.Rectangle) {
	w, h := int32(bounds.Width), int32(bounds.Height)
	if w <= 0 || h <= 0 {
		return
	}
	s.ensureModelLoaded()
	s.ensureSurface(w, h)

	rl.BeginTextureMode(s.surface)
	rl.ClearBackground(clearColor)
	if s.modelLoaded && s.pivot.Scale > 0 {
		s.setLightUniforms()
		rl.BeginMode3D(s.Camera)
		s.model.Transform = s.pivotTransform()
		rl.DrawModel(s.model, rl.NewVector3(0, 0, 0), 1, rl.White)
		rl.EndMode3D()
	}
	rl.EndTextureMode()

	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(w), -float32(h))
	rl.DrawTextureRec(s.surface.Texture, src, rl.NewVector2(bounds.X, bounds.Y), rl.White)
}

// pivotTransform applies the child offset, then the uniform scale, then yaw and pitch.
func (s *Scene) pivotTransform() rl.Matrix {
	offset := rl.MatrixTranslate(modelOffset.X, modelOffset.Y, modelOffset.Z)
	scale := rl.MatrixScale(s.pivot.Scale, s.pivot.Scale, s.pivot.Scale)
	rot := rl.MatrixMultiply(rl.MatrixRotateY(s.pivot.RotationY), rl.MatrixRotateX(s.pivot.RotationX))
	return rl.MatrixMultiply(rl.MatrixMultiply(offset, scale), rot)
}

// Unload releases GPU resources. Call before the window closes.
func (s *Scene) Unload() {
	if s.modelLoaded {
		rl.UnloadModel(s.model)
		s.modelLoaded = false
	}
	if s.litLoaded {
		rl.UnloadShader(s.lit)
		s.litLoaded = false
	}
	if s.surfaceLoaded {
		rl.UnloadRenderTexture(s.surface)
		s.surfaceLoaded = false
	}
}
