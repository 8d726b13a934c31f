package physics

import (
	"encoding/json"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Position   [3]float32        `json:"position"`
	Components []json.RawMessage `json:"components"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type boxColliderDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type sphereColliderDef struct {
	Type   string  `json:"type"`
	Radius float32 `json:"radius"`
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Loading ---

// LoadScene reads a JSON scene and builds a collider world from its
// BoxCollider and SphereCollider components. Other component types are skipped.
func LoadScene(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*World, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	w := NewWorld()
	for _, obj := range sf.Objects {
		pos := vec3(obj.Position)
		for _, raw := range obj.Components {
			var header componentHeader
			if err := json.Unmarshal(raw, &header); err != nil {
				return nil, fmt.Errorf("object %q: %w", obj.Name, err)
			}

			switch header.Type {
			case "BoxCollider":
				var def boxColliderDef
				if err := json.Unmarshal(raw, &def); err != nil {
					return nil, fmt.Errorf("object %q box collider: %w", obj.Name, err)
				}
				w.AddBox(obj.Name, rl.Vector3Add(pos, vec3(def.Offset)), vec3(def.Size))
			case "SphereCollider":
				var def sphereColliderDef
				if err := json.Unmarshal(raw, &def); err != nil {
					return nil, fmt.Errorf("object %q sphere collider: %w", obj.Name, err)
				}
				if def.Radius <= 0 {
					return nil, fmt.Errorf("object %q: sphere radius must be positive", obj.Name)
				}
				w.AddSphere(obj.Name, pos, def.Radius)
			}
		}
	}
	return w, nil
}
