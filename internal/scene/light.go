package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Lighting: one white point light plus a flat ambient term, sampled over the glTF
// base color texture and factor.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightPos;
uniform vec4 ambient;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightPos - fragPosition);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightIntensity;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), 32.0) * 0.25 * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(ambient.rgb * tint.rgb + diffuse + vec3(spec), tint.a);
}
`
)

var ambientColor = [4]float32{0.45, 0.45, 0.5, 1.0}

const lightIntensity = float32(0.8)

func (s *Scene) ensureLitShader() {
	if s.litLoaded {
		return
	}
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(sh) {
		return
	}
	s.lit = sh
	s.litLoaded = true
}

// setLightUniforms sets camera and light uniforms (cgo-safe: local arrays).
func (s *Scene) setLightUniforms() {
	if !s.litLoaded {
		return
	}
	viewPos := [3]float32{s.Camera.Position.X, s.Camera.Position.Y, s.Camera.Position.Z}
	light := [3]float32{lightPosition.X, lightPosition.Y, lightPosition.Z}
	amb := ambientColor
	if loc := rl.GetShaderLocation(s.lit, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(s.lit, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(s.lit, "lightPos"); loc >= 0 {
		rl.SetShaderValueV(s.lit, loc, light[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(s.lit, "ambient"); loc >= 0 {
		rl.SetShaderValueV(s.lit, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(s.lit, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(s.lit, loc, []float32{lightIntensity}, rl.ShaderUniformFloat)
	}
}
