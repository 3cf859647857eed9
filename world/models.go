package world

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ModelPart is a single block of a model, relative to the model origin.
type ModelPart struct {
	DX, DY, DZ int8
	Block      BlockID
}

type Model struct {
	Name  string
	Parts []ModelPart
}

// Models holds the vegetation models used during generation.
type Models struct {
	Oak           Model
	BoulderSmall  Model
	BoulderMedium Model
	BushShort     Model
	BushTall      Model
	TallGrass     Model
}

// All returns the models in a stable order.
func (m *Models) All() []*Model {
	return []*Model{&m.Oak, &m.BoulderSmall, &m.BoulderMedium, &m.BushShort, &m.BushTall, &m.TallGrass}
}

// Encode serializes the model as (dx, dy, dz, block) byte quadruples.
func (m Model) Encode() []byte {
	buf := make([]byte, 0, len(m.Parts)*4)
	for _, p := range m.Parts {
		buf = append(buf, byte(p.DX), byte(p.DY), byte(p.DZ), byte(p.Block))
	}

	return buf
}

// DecodeModel parses a model written by Encode.
func DecodeModel(name string, buf []byte) (Model, error) {
	if len(buf)%4 != 0 {
		return Model{}, fmt.Errorf("decode model %q: length %d is not a multiple of 4", name, len(buf))
	}

	parts := make([]ModelPart, 0, len(buf)/4)
	for i := 0; i < len(buf); i += 4 {
		parts = append(parts, ModelPart{
			DX:    int8(buf[i]),
			DY:    int8(buf[i+1]),
			DZ:    int8(buf[i+2]),
			Block: BlockID(buf[i+3]),
		})
	}

	return Model{Name: name, Parts: parts}, nil
}

func parts(id BlockID, coords ...int8) []ModelPart {
	result := make([]ModelPart, 0, len(coords)/3)
	for i := 0; i+2 < len(coords); i += 3 {
		result = append(result, ModelPart{DX: coords[i], DY: coords[i+1], DZ: coords[i+2], Block: id})
	}

	return result
}

func oakTree() Model {
	trunk := parts(Log, 0, 0, 0, 0, 1, 0, 0, 2, 0, 0, 3, 0, 0, 4, 0, 0, 5, 0)

	leaves := parts(Leaves,
		// lower crown, y=3
		-2, 3, -1, -2, 3, 0, -2, 3, 1,
		-1, 3, -2, -1, 3, -1, -1, 3, 0, -1, 3, 1, -1, 3, 2,
		0, 3, -2, 0, 3, -1, 0, 3, 1, 0, 3, 2,
		1, 3, -2, 1, 3, -1, 1, 3, 0, 1, 3, 1, 1, 3, 2,
		2, 3, -1, 2, 3, 0, 2, 3, 1,

		// y=4
		-2, 4, 0,
		-1, 4, -1, -1, 4, 0, -1, 4, 1,
		0, 4, -2, 0, 4, -1, 0, 4, 1, 0, 4, 2,
		1, 4, -1, 1, 4, 0, 1, 4, 1,
		2, 4, 0,

		// y=5
		-1, 5, 0, 0, 5, -1, 0, 5, 1, 1, 5, 0,

		// tip
		0, 6, 0,
	)

	return Model{Name: "oak", Parts: append(trunk, leaves...)}
}

func bush(name string, height int8) Model {
	p := parts(Log, 0, 0, 0)
	p = append(p, parts(Leaves, 1, 0, 0, -1, 0, 0, 0, 0, 1, 0, 0, -1)...)

	for dy := int8(1); dy <= height; dy++ {
		p = append(p, ModelPart{DY: dy, Block: Leaves})
	}

	return Model{Name: name, Parts: p}
}

// BuiltinModels returns the models compiled into the binary.
func BuiltinModels() *Models {
	return &Models{
		Oak:          oakTree(),
		BoulderSmall: Model{Name: "boulder_small", Parts: parts(Stone, 0, 0, 0, 0, 0, 1)},
		BoulderMedium: Model{Name: "boulder_med", Parts: parts(Stone,
			0, 0, 0, 1, 0, 0,
			0, 0, 1, 1, 0, 1,
			0, 1, 0,
		)},
		BushShort: bush("bush_short", 1),
		BushTall:  bush("bush_tall", 2),
		TallGrass: Model{Name: "tall_grass", Parts: []ModelPart{
			{Block: PlantTallBottom},
			{DY: 1, Block: PlantTallTop},
		}},
	}
}

// LoadModels reads each model from <dir>/<name>.model. Missing files are
// created from the builtin definition.
func LoadModels(dir string) (*Models, error) {
	models := BuiltinModels()

	for _, model := range models.All() {
		loaded, err := loadOrGenerate(dir, *model)
		if err != nil {
			return nil, err
		}

		*model = loaded
	}

	return models, nil
}

// WriteModels (re)writes all builtin models into dir.
func WriteModels(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	for _, model := range BuiltinModels().All() {
		path := modelPath(dir, model.Name)
		if err := os.WriteFile(path, model.Encode(), 0o644); err != nil {
			return fmt.Errorf("write model %q: %w", path, err)
		}
	}

	return nil
}

func modelPath(dir, name string) string {
	return filepath.Join(dir, name+".model")
}

func loadOrGenerate(dir string, builtin Model) (Model, error) {
	path := modelPath(dir, builtin.Name)

	buf, err := os.ReadFile(path)
	switch {
	case err == nil:
		return DecodeModel(builtin.Name, buf)

	case !errors.Is(err, fs.ErrNotExist):
		return Model{}, fmt.Errorf("read model %q: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Model{}, fmt.Errorf("create model directory: %w", err)
	}

	if err := os.WriteFile(path, builtin.Encode(), 0o644); err != nil {
		return Model{}, fmt.Errorf("write model %q: %w", path, err)
	}

	slog.Debug("Generated model file", slog.String("path", path), slog.Int("parts", len(builtin.Parts)))

	return builtin, nil
}
