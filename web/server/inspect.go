package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
	"github.com/df07/go-sphere-marcher/pkg/integrator"
	"github.com/df07/go-sphere-marcher/pkg/renderer"
	"github.com/df07/go-sphere-marcher/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	SurfaceIndex int                    `json:"surfaceIndex"`
	Point        [3]float64             `json:"point"`
	Distance     float64                `json:"distance"` // From the camera to the hit
	Steps        int                    `json:"steps"`
	Lit          bool                   `json:"lit"`   // Whether the hit sees the light
	Color        string                 `json:"color"` // Final shaded pixel color
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractGeometryInfo describes a surface for the inspector
func extractGeometryInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":        hexColor(surface.Color()),
		"reflectivity": surface.Reflectivity(),
	}

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties
	case *geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		return "plane", properties
	case *geometry.Box:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["size"] = [3]float64{geom.Size.X, geom.Size.Y, geom.Size.Z}
		return "box", properties
	default:
		return "unknown", properties
	}
}

func hexColor(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// inspectPixel marches the primary ray of pixel (x, y) and gathers what it found
func inspectPixel(sceneObj *scene.Scene, req *RenderRequest, x, y int) InspectResponse {
	config := integrator.DefaultMarchConfig()
	config.Bounces = req.Bounces
	config.MaxSteps = req.MaxSteps

	pitch, yaw := renderer.PixelAngles(req.Camera, x, y, req.Width, req.Height)
	march := integrator.March(req.Camera.Position, pitch, yaw, sceneObj, config)
	shaded := integrator.Shade(req.Camera.Position, pitch, yaw, sceneObj, sceneObj.Light, config.Bounces, config)

	response := InspectResponse{
		Hit:          march.Hit,
		SurfaceIndex: march.SurfaceIndex,
		Steps:        march.Steps,
		Color:        hexColor(shaded.Color),
	}
	if !march.Hit {
		return response
	}

	response.Point = [3]float64{march.Position.X, march.Position.Y, march.Position.Z}
	response.Distance = req.Camera.Position.Distance(march.Position)
	response.Lit = integrator.CanSee(march.Position, sceneObj.Light.Position, sceneObj, config)
	response.GeometryType, response.Properties = extractGeometryInfo(sceneObj.Surface(march.SurfaceIndex))
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	sceneObj, err := s.parseCommonSceneParams(r, inspectReq)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("px"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid px coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("py"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid py coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, inspectReq, pixelX, pixelY))
}
