package opengl

import (
	"testing"

	"github.com/go-theft-auto/engine"
)

func TestKeyMappingRoundTrip(t *testing.T) {
	for k := engine.KeyNone + 1; k < engine.KeyCount; k++ {
		gk, ok := keyToGLFW(k)
		if !ok {
			t.Errorf("%v has no GLFW key", k)
			continue
		}
		if back := glfwKeyToKey(gk); back != k {
			t.Errorf("%v -> %v -> %v", k, gk, back)
		}
	}
	if _, ok := keyToGLFW(engine.KeyNone); ok {
		t.Error("KeyNone should not map to a GLFW key")
	}
}
