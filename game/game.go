package game

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/xylo/glimpse"
	"github.com/oliverbestmann/xylo/glm"
	"github.com/oliverbestmann/xylo/internal/config"
	"github.com/oliverbestmann/xylo/orion"
	"github.com/oliverbestmann/xylo/presence"
	"github.com/oliverbestmann/xylo/pulse"
	"github.com/oliverbestmann/xylo/pulse/commands"
	"github.com/oliverbestmann/xylo/world"
)

const (
	nearPlane = 0.1
	farPlane  = 1000

	hudScale = 2
)

var skyColor = pulse.ColorRGBA(0.53, 0.81, 0.92, 1)

var (
	textColor   = pulse.ColorWhite
	shadowColor = pulse.ColorBlack.WithAlpha(0.6)
	dimColor    = pulse.ColorBlack.WithAlpha(0.5)
)

// Game is the voxel explorer. It implements orion.Game.
type Game struct {
	cfg *config.Config

	world    *world.World
	camera   *Camera
	controls Controls
	hud      HUD
	mapView  *MapView
	presence *presence.Presence

	blocks     *pulse.Texture
	mapTexture *pulse.Texture
	voxels     *commands.VoxelCommand

	started time.Time

	closeOnce sync.Once
	closeErr  error
}

// ResolveSeed returns the seed to use for a world, a random one for zero.
func ResolveSeed(seed int64) int64 {
	for seed == 0 {
		seed = rand.Int64()
	}

	return seed
}

// New creates the world and the cpu side of the game. GPU resources are
// created in Initialize once a window exists.
func New(cfg *config.Config, rich *presence.Presence) (*Game, error) {
	models, err := world.LoadModels(cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}

	w, err := world.New(world.Options{
		Seed:            ResolveSeed(cfg.World.Seed),
		RenderDistance:  cfg.World.RenderDistance,
		GenerateWorkers: cfg.World.GenerateWorkers,
		MeshWorkers:     cfg.World.MeshWorkers,
		Models:          models,
	})
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}

	return &Game{
		cfg:      cfg,
		world:    w,
		camera:   NewCamera(cfg.Camera.Speed, cfg.Camera.Sensitivity),
		mapView:  NewMapView(w),
		presence: rich,
	}, nil
}

func (g *Game) Initialize() error {
	ctx := orion.CurrentContext()

	blocks, err := pulse.NewTextureArray(ctx, "Blocks", BlockTextures(g.cfg.TexturesDir))
	if err != nil {
		return fmt.Errorf("create block textures: %w", err)
	}

	g.blocks = blocks
	g.voxels = commands.NewVoxelCommand(ctx, blocks, g.cfg.UploadsPerFrame)

	g.mapTexture = pulse.NewTexture(ctx, pulse.NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  MapSamples,
		Height: MapSamples,
		Label:  "Map",
	})

	g.controls.Captured = true
	orion.CaptureCursor(true)

	g.started = time.Now()

	if g.presence != nil {
		// a failing presence is logged and disables itself
		_ = g.presence.Start("In World", "Playing best game ever")
	}

	slog.Info("Game initialized", slog.Int64("seed", g.world.Seed()))

	return nil
}

func (g *Game) Update() error {
	focus := orion.Focus()

	tr := g.controls.Step(ControlInput{
		ToggleMap:   orion.IsKeyJustPressed(glimpse.KeyM),
		Escape:      orion.IsKeyJustPressed(glimpse.KeyEscape),
		FocusLost:   focus.JustUnfocused,
		FocusGained: focus.JustFocused,
	})

	if tr.Quit {
		slog.Info("Exit requested")
		orion.Exit()
	}

	if tr.CaptureChanged {
		orion.CaptureCursor(g.controls.Captured)
	}

	if g.controls.CanLook() {
		delta := orion.MouseDelta()
		g.camera.Rotate(delta[0], delta[1])
	}

	if g.controls.CanMove() {
		g.camera.Move(Movement{
			Forward:  orion.IsKeyPressed(glimpse.KeyW),
			Backward: orion.IsKeyPressed(glimpse.KeyS),
			Left:     orion.IsKeyPressed(glimpse.KeyA),
			Right:    orion.IsKeyPressed(glimpse.KeyD),
			Up:       orion.IsKeyPressed(glimpse.KeySpace),
			Down:     orion.IsKeyPressed(glimpse.KeyLeftControl),
			Sprint:   orion.IsKeyPressed(glimpse.KeyLeftShift),
		})
	}

	pos := g.camera.Position

	if err := g.world.Update(float64(pos[0]), float64(pos[2])); err != nil {
		return fmt.Errorf("update world: %w", err)
	}

	if g.hud.Tick(time.Now(), pos) {
		g.logStats()
	}

	if g.controls.MapOpen {
		if err := g.updateMap(); err != nil {
			return err
		}
	}

	if g.presence != nil {
		g.presence.Update("In World", fmt.Sprintf("Exploring %s", g.currentBiome()))
		g.presence.Tick()
	}

	return nil
}

func (g *Game) logStats() {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	worldStats := g.world.Stats()

	var voxelStats commands.VoxelStats
	if g.voxels != nil {
		voxelStats = g.voxels.Stats()
	}

	slog.Debug(
		"Frame stats",
		slog.Int("fps", g.hud.FPS()),
		slog.Int("chunksLoaded", worldStats.Loaded),
		slog.Int("chunksLoading", worldStats.Loading),
		slog.Int("chunksOnGPU", voxelStats.Chunks),
		slog.Int("chunksVisible", voxelStats.Visible),
	)
}

func (g *Game) column() (x, z int) {
	pos := g.camera.Position
	return int(math.Floor(float64(pos[0]))), int(math.Floor(float64(pos[2])))
}

func (g *Game) currentBiome() world.Biome {
	return g.world.BiomeAt(g.column())
}

func (g *Game) updateMap() error {
	x, z := g.column()

	changed, err := g.mapView.Update(context.Background(), x, z)
	if err != nil {
		return fmt.Errorf("update map: %w", err)
	}

	if !changed {
		return nil
	}

	if err := g.mapTexture.WritePixels(orion.CurrentContext(), g.mapView.Image().Pix); err != nil {
		return fmt.Errorf("upload map: %w", err)
	}

	return nil
}

func (g *Game) Draw(screen *orion.RenderTarget) {
	orion.Clear(screen, skyColor)

	width, height := screen.Size()
	pos := g.camera.Position

	projection := glm.Perspective[float32](
		glm.DegToRad(g.cfg.Camera.FieldOfView),
		width/height,
		nearPlane,
		farPlane,
	)

	g.voxels.Sync(g.world.Chunks(), pos)

	g.voxels.Draw(screen, commands.DrawVoxelOptions{
		ViewProj: projection.Mul(g.camera.View()),
		Camera:   pos,
		Time:     float32(time.Since(g.started).Seconds()),
	})

	ui := orion.UI()

	if g.controls.MapOpen {
		g.drawMap(ui, width, height)
	} else {
		text := g.hud.Text(pos, g.currentBiome(), g.camera.Heading())
		drawShadowedText(ui, text, glm.Vec2f{10, 10}, hudScale)
	}

	ui.Flush(screen)
}

func (g *Game) drawMap(ui *commands.UICommand, width, height float32) {
	ui.DrawRect(pulse.RectangleFromXYWH[float32](0, 0, width, height), dimColor)

	rect := MapRect(width, height)
	ui.DrawImage(g.mapTexture, rect, pulse.ColorWhite)

	// the player is always at the center of the map
	center := rect.Center()
	marker := ui.MeasureText("+", hudScale)
	drawShadowedText(ui, "+", center.Sub(marker.Scale(0.5)), hudScale)

	cursor := orion.MousePosition()
	if text, ok := g.mapView.Hover(cursor, rect); ok {
		drawShadowedText(ui, text, cursor.Add(glm.Vec2f{16, 16}), hudScale)
	}
}

func drawShadowedText(ui *commands.UICommand, text string, origin glm.Vec2f, scale float32) {
	ui.DrawText(text, origin.Add(glm.Vec2f{scale, scale}), scale, shadowColor)
	ui.DrawText(text, origin, scale, textColor)
}

// Close releases the gpu resources and stops the world and presence.
// It is safe to call Close more than once.
func (g *Game) Close() error {
	g.closeOnce.Do(func() {
		if g.voxels != nil {
			g.voxels.Release()
		}

		if g.mapTexture != nil {
			g.mapTexture.Release()
		}

		if g.blocks != nil {
			g.blocks.Release()
		}

		if g.presence != nil {
			g.presence.Stop()
		}

		g.closeErr = g.world.Close()
	})

	return g.closeErr
}
