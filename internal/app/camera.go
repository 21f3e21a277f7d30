package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxPitch keeps the orbit off the poles where Up degenerates
const maxPitch = math.Pi/2 - 0.1

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Scene.center
}

// setCameraTopView looks straight down
func (app *App) setCameraTopView() {
	app.Camera.angleX = maxPitch
	app.Camera.angleY = 0
	app.Camera.target = app.Scene.center
}

// setCameraBottomView looks straight up
func (app *App) setCameraBottomView() {
	app.Camera.angleX = -maxPitch
	app.Camera.angleY = 0
	app.Camera.target = app.Scene.center
}

// setCameraFrontView looks along -Z
func (app *App) setCameraFrontView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
	app.Camera.target = app.Scene.center
}

// setCameraSideView looks along -X
func (app *App) setCameraSideView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi / 2
	app.Camera.target = app.Scene.center
}

// frameScene points the camera at the scene and stores the framing as the
// default view
func (app *App) frameScene() {
	distance := app.Scene.size * 2
	if distance <= 0 {
		distance = 2
	}
	app.Camera.target = app.Scene.center
	app.Camera.distance = distance
	app.Camera.angleX = 0.3
	app.Camera.angleY = 0.3
	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3
	app.Camera.camera = rl.Camera3D{
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.updateCamera()
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Sin(float64(c.angleY)))
	y := c.distance * float32(math.Sin(float64(c.angleX)))
	z := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Cos(float64(c.angleY)))

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// rotate orbits the camera, keeping it off the poles
func (app *App) rotate(delta rl.Vector2) {
	app.Camera.angleY += delta.X * 0.01
	app.Camera.angleX -= delta.Y * 0.01
	app.Camera.angleX = float32(math.Max(-maxPitch, math.Min(maxPitch, float64(app.Camera.angleX))))
}

// zoom scales the orbit distance by a wheel step
func (app *App) zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	app.Camera.distance *= 1 - wheel*0.1
	if closest := app.Scene.size * 0.01; app.Camera.distance < closest {
		app.Camera.distance = closest
	}
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	cam := app.Camera.camera
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, cam.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, cam.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}
