// Package liquidglass renders a stylized "liquid glass" panel with a
// four-pass [Ebitengine] shader pipeline, driven either by live pointer
// input or by a frame-indexed animation timeline.
//
// # Pipeline
//
// Every frame flows through a fixed [PassGraph]: the backdrop is drawn with
// a signed-distance-field drop shadow, blurred by a separable Gaussian
// (vertical then horizontal), and composited by the glass shader, which
// refracts the blurred backdrop through up to [MaxShapes] rounded-rectangle
// shapes with Fresnel edge brightening, specular glare, chromatic
// aberration, and tinting. Declaration order is execution order; input
// references are resolved to indices once at construction and a forward or
// unknown reference fails fast.
//
// # Two modes
//
// [Session] is live mode: a continuous redraw loop where the panel follows
// the pointer and clicking toggles a spring-driven expansion. [Renderer] is
// render mode: a deterministic frame-by-frame walk of a
// [timeline.Document] captured as a PNG sequence. Both modes evaluate the
// same spring specification — see the timeline package — so authored motion
// looks identical in either.
//
// # Readiness
//
// The backdrop texture loads asynchronously. Render mode wraps each frame
// in a [Gate] token so no frame is captured before the texture exists; live
// mode skips the gate and shows a checkerboard placeholder until the
// texture arrives.
//
// [Ebitengine]: https://ebitengine.org
package liquidglass
