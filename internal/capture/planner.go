package capture

// PlanViewport computes the viewport size to request from the browser for
// a display of width x height. In fixed-zoom mode the viewport is scaled
// inversely to the zoom factor, so zoom 0.5 requests a 2x viewport that
// shows more of the page and is shrunk back down afterwards. In
// device-scale mode the browser applies the zoom itself and the viewport
// stays at the display size.
//
// Callers must reject zoom <= 0 before planning; the orientation swap must
// already be applied to width and height.
func PlanViewport(width, height int, zoom float64, deviceScale bool) (int, int) {
	if deviceScale {
		return width, height
	}
	return int(float64(width) / zoom), int(float64(height) / zoom)
}
