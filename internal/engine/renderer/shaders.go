package renderer

const fruitVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * uView * world;
}
`

const fruitFragmentShader = `#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uGradient;
uniform vec3 uAmbient;
uniform vec3 uLightPos;
uniform vec3 uLightColor;
uniform vec3 uViewPos;
uniform vec3 uSpecular;
uniform vec3 uEmissive;
uniform float uShininess;
uniform bool uWireframe;

out vec4 FragColor;

void main() {
    vec3 base = texture(uGradient, vTexCoord).rgb;
    if (uWireframe) {
        FragColor = vec4(base, 1.0);
        return;
    }

    vec3 n = normalize(vNormal);
    if (!gl_FrontFacing) {
        n = -n;
    }
    vec3 l = normalize(uLightPos - vWorldPos);
    vec3 v = normalize(uViewPos - vWorldPos);
    vec3 h = normalize(l + v);

    float diff = max(dot(n, l), 0.0);
    float spec = diff > 0.0 ? pow(max(dot(n, h), 0.0), uShininess) : 0.0;

    vec3 color = uAmbient * base
        + uLightColor * diff * base
        + uLightColor * spec * uSpecular
        + uEmissive;

    FragColor = vec4(color, 1.0);
}
`
