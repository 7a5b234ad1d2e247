package liquidglass

// Kage sources for the four fixed passes. All shaders use //kage:unit pixels
// as required by Ebitengine. The backdrop is treated as opaque, so none of
// the passes need the un-premultiply dance that alpha-carrying effects do.

// backgroundShaderSrc draws the backdrop (Images[0]) and darkens it with a
// signed-distance-field drop shadow under every active glass shape.
// Shapes[i] packs (centerX, centerY, halfW, halfH) in pixels.
const backgroundShaderSrc = `//kage:unit pixels
package main

var ShapeCount float
var Shapes [8]vec4
var CornerRadius float
var ShadowOffset vec2
var ShadowSoftness float
var ShadowStrength float

func roundedRect(p vec2, half vec2, r float) float {
	q := abs(p) - half + vec2(r, r)
	return length(max(q, vec2(0, 0))) + min(max(q.x, q.y), 0.0) - r
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	shadow := 0.0
	for i := 0; i < 8; i++ {
		active := 1.0 - step(ShapeCount, float(i))
		s := Shapes[i]
		d := roundedRect(dst.xy-s.xy-ShadowOffset, vec2(s.z, s.w), CornerRadius)
		shadow += active * ShadowStrength * (1.0 - smoothstep(-ShadowSoftness, ShadowSoftness, d))
	}
	shadow = clamp(shadow, 0.0, 1.0)
	return vec4(c.rgb*(1.0-shadow), c.a)
}
`

// blurShaderSrc is one half of a separable 9-tap Gaussian. The same source
// serves both blur passes; the Direction uniform selects the axis and Step
// the sample spacing in pixels.
const blurShaderSrc = `//kage:unit pixels
package main

var Direction vec2
var Step float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	d := Direction * Step
	sum := imageSrc0At(src) * 0.2270270270
	sum += imageSrc0At(src+d) * 0.1945945946
	sum += imageSrc0At(src-d) * 0.1945945946
	sum += imageSrc0At(src+d*2.0) * 0.1216216216
	sum += imageSrc0At(src-d*2.0) * 0.1216216216
	sum += imageSrc0At(src+d*3.0) * 0.0540540541
	sum += imageSrc0At(src-d*3.0) * 0.0540540541
	sum += imageSrc0At(src+d*4.0) * 0.0162162162
	sum += imageSrc0At(src-d*4.0) * 0.0162162162
	return sum
}
`

// glassShaderSrc is the final composite. Images[0] is the sharp shadowed
// backdrop, Images[1] the blurred one. Outside every shape the sharp
// backdrop passes through untouched; inside, the blurred backdrop is
// refracted toward the shape interior, brightened at the rim (Fresnel),
// lit along LightDir (glare), split per channel (chromatic aberration),
// and tinted.
const glassShaderSrc = `//kage:unit pixels
package main

var ShapeCount float
var Shapes [8]vec4
var CornerRadius float
var EdgeWidth float
var RefractionStrength float
var FresnelIntensity float
var GlareIntensity float
var LightDir vec2
var Aberration float
var Tint vec4
var TintStrength float

func roundedRect(p vec2, half vec2, r float) float {
	q := abs(p) - half + vec2(r, r)
	return length(max(q, vec2(0, 0))) + min(max(q.x, q.y), 0.0) - r
}

func fieldAt(p vec2) float {
	d := 1.0e6
	for i := 0; i < 8; i++ {
		active := 1.0 - step(ShapeCount, float(i))
		s := Shapes[i]
		di := roundedRect(p-s.xy, vec2(s.z, s.w), CornerRadius)
		d = min(d, mix(1.0e6, di, active))
	}
	return d
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	p := dst.xy
	d := fieldAt(p)
	if d > 0.0 {
		return imageSrc0At(src)
	}

	// Outward normal from the numerical gradient of the distance field.
	n := normalize(vec2(
		fieldAt(p+vec2(1.0, 0.0))-fieldAt(p-vec2(1.0, 0.0)),
		fieldAt(p+vec2(0.0, 1.0))-fieldAt(p-vec2(0.0, 1.0)),
	) + vec2(1.0e-6, 0.0))

	// 1 at the rim, 0 deep inside the shape.
	rim := 1.0 - clamp(-d/EdgeWidth, 0.0, 1.0)

	// Refraction bends the blurred backdrop toward the shape interior,
	// strongest at the rim. Chromatic aberration offsets R and B along the
	// normal on top of that.
	offset := -n * RefractionStrength * rim * rim
	rs := imageSrc1At(src + offset + n*Aberration*rim)
	gs := imageSrc1At(src + offset)
	bs := imageSrc1At(src + offset - n*Aberration*rim)

	glass := mix(vec3(rs.r, gs.g, bs.b), Tint.rgb, TintStrength*Tint.a)

	fres := FresnelIntensity * rim * rim
	glare := GlareIntensity * rim * rim * clamp(dot(n, -normalize(LightDir)), 0.0, 1.0)
	bright := fres + glare

	out := min(glass+vec3(bright, bright, bright), vec3(1.0, 1.0, 1.0))
	return vec4(out, gs.a)
}
`
