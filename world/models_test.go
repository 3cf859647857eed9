package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinModels(t *testing.T) {
	models := BuiltinModels()

	// trunk plus crown
	assert.Len(t, models.Oak.Parts, 43)
	assert.Equal(t, ModelPart{Block: Log}, models.Oak.Parts[0])
	assert.Equal(t, ModelPart{DY: 6, Block: Leaves}, models.Oak.Parts[len(models.Oak.Parts)-1])

	assert.Len(t, models.BoulderSmall.Parts, 2)
	assert.Len(t, models.BoulderMedium.Parts, 5)
	assert.Len(t, models.BushShort.Parts, 6)
	assert.Len(t, models.BushTall.Parts, 7)

	assert.Equal(t, []ModelPart{{Block: PlantTallBottom}, {DY: 1, Block: PlantTallTop}}, models.TallGrass.Parts)
}

func TestModelEncoding(t *testing.T) {
	model := BuiltinModels().BushShort

	buf := model.Encode()
	assert.Equal(t, []byte{0, 0, 0, byte(Log), 1, 0, 0, byte(Leaves), 0xff, 0, 0, byte(Leaves)}, buf[:12])

	decoded, err := DecodeModel(model.Name, buf)
	require.NoError(t, err)
	assert.Equal(t, model, decoded)

	_, err = DecodeModel("broken", []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestLoadModelsWritesMissingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")

	models, err := LoadModels(dir)
	require.NoError(t, err)
	assert.Equal(t, BuiltinModels(), models)

	for _, model := range models.All() {
		buf, err := os.ReadFile(filepath.Join(dir, model.Name+".model"))
		require.NoError(t, err)
		assert.Equal(t, model.Encode(), buf)
	}
}

func TestLoadModelsPrefersFiles(t *testing.T) {
	dir := t.TempDir()

	custom := []byte{0, 0, 0, byte(Stone), 0, 1, 0, byte(Sand)}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oak.model"), custom, 0o644))

	models, err := LoadModels(dir)
	require.NoError(t, err)

	assert.Equal(t, []ModelPart{{Block: Stone}, {DY: 1, Block: Sand}}, models.Oak.Parts)
	assert.Equal(t, BuiltinModels().TallGrass, models.TallGrass)
}

func TestLoadModelsRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tall_grass.model"), []byte{0, 0, 0}, 0o644))

	_, err := LoadModels(dir)
	assert.ErrorContains(t, err, "tall_grass")
}

func TestWriteModelsOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oak.model"), []byte{1, 2, 3}, 0o644))

	require.NoError(t, WriteModels(dir))

	models, err := LoadModels(dir)
	require.NoError(t, err)
	assert.Equal(t, BuiltinModels().Oak, models.Oak)
}
