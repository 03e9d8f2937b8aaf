// Package playing provides the main gameplay scene: it assembles the
// world, the simulation pipeline, and the supporting services, then
// drives them at a fixed step and renders the result.
package playing

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/xml300/dao-game/internal/application/scene"
	"github.com/xml300/dao-game/internal/application/state"
	"github.com/xml300/dao-game/internal/application/system"
	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/infrastructure/config"
	"github.com/xml300/dao-game/internal/pathfind"
	"github.com/xml300/dao-game/internal/physics"
	"github.com/xml300/dao-game/internal/progression"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{22, 24, 35, 255}
	colorWall       = color.RGBA{70, 72, 92, 255}
	colorPlayer     = color.RGBA{120, 210, 160, 255}
	colorEnemy      = color.RGBA{200, 90, 90, 255}
	colorHitbox     = color.RGBA{255, 200, 80, 110}
	colorProjectile = color.RGBA{240, 150, 90, 255}
	colorBarBG      = color.RGBA{50, 50, 50, 255}
	colorHealthFG   = color.RGBA{110, 200, 110, 255}
	colorQiFG       = color.RGBA{110, 140, 230, 255}
	colorStaminaFG  = color.RGBA{220, 200, 100, 255}
	colorInvuln     = color.RGBA{255, 255, 255, 200}
)

type spriteInfo struct {
	w, h float64
	c    color.RGBA
}

// Playing is the main gameplay scene.
type Playing struct {
	cfg      *config.GameConfig
	stageCfg *config.StageConfig
	log      *zap.Logger
	state    state.GameState

	world  *ecs.World
	space  *physics.Space
	grid   *pathfind.Grid
	paths  *pathfind.Service
	store  *progression.MemoryStore
	render *system.RenderBridgeSystem
	anims  *system.AnimRegistry

	pipeline *system.Pipeline

	sprites  map[string]spriteInfo
	screenW  int
	screenH  int
	tileSize int

	rng  *rand.Rand
	seed int64
}

// New assembles a play session from loaded configuration. The seed
// drives every random roll in the session, so identical seeds replay
// identically given identical inputs.
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, log *zap.Logger, seed int64) *Playing {
	rng := rand.New(rand.NewSource(seed))

	tileSize := stageCfg.TileSize
	worldW := float64(stageCfg.Width() * tileSize)
	worldH := float64(stageCfg.Height() * tileSize)

	world := ecs.NewWorld()
	space := physics.NewSpace(worldW, worldH)

	grid := pathfind.NewGrid(stageCfg.Width(), stageCfg.Height(), tileSize)
	for y := 0; y < stageCfg.Height(); y++ {
		for x := 0; x < stageCfg.Width(); x++ {
			grid.SetWalkable(pathfind.Tile{X: x, Y: y}, !stageCfg.Solid(x, y))
		}
	}

	budget := cfg.Settings.Game.PathBudget
	if budget <= 0 {
		budget = pathfind.DefaultBudget
	}
	paths := pathfind.NewService(grid, budget)

	store := newStore(cfg)

	bridge := system.NewPhysicsBridgeSystem(space)
	registry := system.NewHitRegistry()
	resolver := system.NewResolver(world, bridge, registry)
	space.SetOverlapFunc(resolver.HandleOverlap)

	anims := system.NewAnimRegistry()
	for _, name := range []string{
		system.AnimIdle, system.AnimRun, system.AnimFly, system.AnimDodge,
		system.AnimHurt, system.AnimDead, system.AnimAttackHeavy,
		"attack_light_1", "attack_light_2", "attack_light_3",
	} {
		anims.Register(name)
	}

	render := system.NewRenderBridgeSystem()

	pipeline := system.NewPipeline().
		Add(system.NewInputSystem(system.NewKeyboardDevice())).
		Add(system.NewRegenSystem(cfg.Combat.Regen, store)).
		Add(system.NewCooldownSystem()).
		Add(system.NewAISystem(paths, space, log)).
		Add(system.NewCombatSystem(cfg.Combat, store, space, log)).
		Add(bridge).
		Add(system.NewMovementSystem(cfg.Combat, store, space, grid, log)).
		Add(system.NewHitboxSystem(space, bridge, registry, log)).
		Add(system.NewPhysicsStepSystem(space)).
		Add(system.NewPositionSyncSystem(space)).
		Add(system.NewDamageSystem(cfg.Combat, store, space, rng, log)).
		Add(system.NewAnimationSystem(anims)).
		Add(render).
		AddPump(paths.Calculate)

	p := &Playing{
		cfg:      cfg,
		stageCfg: stageCfg,
		log:      log,
		state:    state.StatePlaying,
		world:    world,
		space:    space,
		grid:     grid,
		paths:    paths,
		store:    store,
		render:   render,
		anims:    anims,
		pipeline: pipeline,
		sprites:  buildSpriteTable(cfg),
		screenW:  cfg.Settings.Display.ScreenWidth,
		screenH:  cfg.Settings.Display.ScreenHeight,
		tileSize: tileSize,
		rng:      rng,
		seed:     seed,
	}

	p.spawnEntities()
	return p
}

// newStore seeds the in-memory progression store from the player's
// configured stats and the technique registry.
func newStore(cfg *config.GameConfig) *progression.MemoryStore {
	st := cfg.Entities.Player.Stats
	store := progression.NewMemoryStore(progression.CoreStats{
		Realm:      st.Realm,
		Affinity:   st.Affinity,
		Resilience: st.Resilience,
		Mastery:    st.Mastery,
		Health:     st.MaxHealth,
		MaxHealth:  st.MaxHealth,
		Qi:         st.MaxQi,
		MaxQi:      st.MaxQi,
		Stamina:    st.MaxStamina,
		MaxStamina: st.MaxStamina,
	})

	for id, tc := range cfg.Techniques.Techniques {
		store.RegisterTechnique(progression.Technique{
			ID:       id,
			Name:     tc.Name,
			QiCost:   tc.QiCost,
			Cooldown: tc.Cooldown,
			Effect:   progression.EffectKind(tc.Effect),
			Damage:   tc.Damage,
			Speed:    tc.Speed,
			Width:    tc.Width,
			Height:   tc.Height,
			Duration: tc.Duration,
			CastTime: tc.CastTime,
		})
	}
	for slot, id := range cfg.Entities.Player.Slots {
		if id != "" {
			store.Equip(slot, id)
		}
	}

	return store
}

func buildSpriteTable(cfg *config.GameConfig) map[string]spriteInfo {
	table := make(map[string]spriteInfo)

	pc := cfg.Entities.Player
	table[pc.Sprite] = spriteInfo{w: pc.Body.Width, h: pc.Body.Height, c: colorPlayer}

	for _, ec := range cfg.Entities.Enemies {
		table[ec.Sprite] = spriteInfo{w: ec.Body.Width, h: ec.Body.Height, c: colorEnemy}
	}

	// Projectile techniques draw under their technique id.
	for id, tc := range cfg.Techniques.Techniques {
		if tc.Effect == "projectile" {
			table[id] = spriteInfo{w: tc.Width, h: tc.Height, c: colorProjectile}
		}
	}

	return table
}

func (p *Playing) spawnEntities() {
	pc := p.cfg.Entities.Player
	px, py := p.grid.TileCenter(pathfind.Tile{X: p.stageCfg.Spawn.X, Y: p.stageCfg.Spawn.Y})
	p.world.CreatePlayer(px, py, ecs.PlayerConfig{
		MaxHealth:  pc.Stats.MaxHealth,
		MaxQi:      pc.Stats.MaxQi,
		MaxStamina: pc.Stats.MaxStamina,
		BodyWidth:  pc.Body.Width,
		BodyHeight: pc.Body.Height,
		Sprite:     pc.Sprite,
	})

	for _, spawn := range p.stageCfg.Enemies {
		ec, ok := p.cfg.Entities.Enemies[spawn.Type]
		if !ok {
			p.log.Warn("unknown enemy archetype in stage", zap.String("type", spawn.Type))
			continue
		}
		ex, ey := p.grid.TileCenter(pathfind.Tile{X: spawn.X, Y: spawn.Y})
		p.world.CreateEnemy(ex, ey, ecs.EnemyConfig{
			MaxHealth:        ec.MaxHealth,
			MoveSpeed:        ec.MoveSpeed,
			PerceptionRadius: ec.PerceptionRadius,
			AttackRadius:     ec.AttackRadius,
			AttackInterval:   ec.AttackInterval,
			AttackDamage:     ec.Damage,
			BodyWidth:        ec.Body.Width,
			BodyHeight:       ec.Body.Height,
			Sprite:           ec.Sprite,
		})
	}
}

// Update advances the session (implements scene.Scene).
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateGameOver, state.StateVictory:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return New(p.cfg, p.stageCfg, p.log, p.seed+1), nil
		}
	}

	return nil, nil
}

func (p *Playing) updatePlaying(dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = state.StatePaused
		return
	}

	p.pipeline.Tick(p.world, dt)

	if mov, ok := p.world.Movement[p.world.PlayerID]; !ok || mov.Dead {
		p.state = state.StateGameOver
		p.log.Info("player defeated", zap.Float64("clock_ms", p.world.Clock))
		return
	}
	if p.world.CountEnemies() == 0 {
		p.state = state.StateVictory
		p.log.Info("stage cleared",
			zap.Float64("clock_ms", p.world.Clock),
			zap.Float64("realm_progress", p.store.RealmProgress()))
	}
}

// camera returns the top-left world offset, centered on the player and
// clamped to stage bounds.
func (p *Playing) camera() (int, int) {
	pos := p.world.Position[p.world.PlayerID]
	camX := int(pos.X) - p.screenW/2
	camY := int(pos.Y) - p.screenH/2

	maxCamX := p.stageCfg.Width()*p.tileSize - p.screenW
	maxCamY := p.stageCfg.Height()*p.tileSize - p.screenH
	if camX < 0 {
		camX = 0
	}
	if camY < 0 {
		camY = 0
	}
	if camX > maxCamX {
		camX = maxCamX
	}
	if camY > maxCamY {
		camY = maxCamY
	}
	return camX, camY
}

// Draw renders the session (implements scene.Scene).
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()

	p.drawTiles(screen, camX, camY)
	p.drawEntities(screen, camX, camY)
	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		p.drawHitboxes(screen, camX, camY)
	}
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, "DEFEATED\n\nPress R to try again")
	case state.StateVictory:
		p.drawOverlay(screen, color.RGBA{0, 60, 30, 180}, "STAGE CLEARED\n\nPress R to go again")
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY int) {
	startTX := camX / p.tileSize
	startTY := camY / p.tileSize
	endTX := (camX+p.screenW)/p.tileSize + 1
	endTY := (camY+p.screenH)/p.tileSize + 1

	for ty := startTY; ty <= endTY && ty < p.stageCfg.Height(); ty++ {
		for tx := startTX; tx <= endTX && tx < p.stageCfg.Width(); tx++ {
			if tx < 0 || ty < 0 || !p.stageCfg.Solid(tx, ty) {
				continue
			}
			x := float64(tx*p.tileSize - camX)
			y := float64(ty*p.tileSize - camY)
			ebitenutil.DrawRect(screen, x, y, float64(p.tileSize), float64(p.tileSize), colorWall)
		}
	}
}

func (p *Playing) drawEntities(screen *ebiten.Image, camX, camY int) {
	playerCombat := p.world.Combat[p.world.PlayerID]

	for _, inst := range p.render.Instances() {
		if !inst.Visible {
			continue
		}
		info, ok := p.sprites[inst.Sprite]
		if !ok {
			continue
		}

		c := info.c
		// Flash during dodge invulnerability frames.
		if inst.Sprite == p.cfg.Entities.Player.Sprite &&
			playerCombat.Invulnerable && int(p.world.Clock/100)%2 == 0 {
			c = colorInvuln
		}

		x := inst.X - info.w/2 - float64(camX)
		y := inst.Y - info.h/2 - float64(camY)
		ebitenutil.DrawRect(screen, x, y, info.w, info.h, c)

		// A short bar above the sprite marks facing.
		markX := x + info.w - 4
		if inst.FlipX {
			markX = x
		}
		ebitenutil.DrawRect(screen, markX, y-3, 4, 2, c)
	}
}

func (p *Playing) drawHitboxes(screen *ebiten.Image, camX, camY int) {
	for id, hb := range p.world.HitboxOf {
		pos, ok := p.world.Position[id]
		if !ok {
			continue
		}
		x := pos.X - hb.Width/2 - float64(camX)
		y := pos.Y - hb.Height/2 - float64(camY)
		ebitenutil.DrawRect(screen, x, y, hb.Width, hb.Height, colorHitbox)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	id := p.world.PlayerID
	p.drawBar(screen, 10, float64(p.screenH-44), p.world.Health[id].Pool, colorHealthFG)
	p.drawBar(screen, 10, float64(p.screenH-30), p.world.Qi[id].Pool, colorQiFG)
	p.drawBar(screen, 10, float64(p.screenH-16), p.world.Stamina[id].Pool, colorStaminaFG)

	ebitenutil.DebugPrint(screen,
		"WASD: Move | Shift: Sprint | J/K: Attack | Space: Dodge | L: Blink | F: Flight | 1-4: Techniques")
}

func (p *Playing) drawBar(screen *ebiten.Image, x, y float64, pool ecs.Pool, fg color.RGBA) {
	const barW, barH = 120.0, 10.0
	ebitenutil.DrawRect(screen, x, y, barW, barH, colorBarBG)
	if pool.Max <= 0 {
		return
	}
	ratio := pool.Current / pool.Max
	if ratio < 0 {
		ratio = 0
	}
	ebitenutil.DrawRect(screen, x, y, barW*ratio, barH, fg)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-20)
}

// OnEnter is called when entering this scene.
func (p *Playing) OnEnter() {
	p.log.Info("play session started",
		zap.String("stage", p.stageCfg.Name),
		zap.Int64("seed", p.seed),
		zap.Int("enemies", p.world.CountEnemies()))
}

// OnExit is called when leaving this scene.
func (p *Playing) OnExit() {}

// World exposes the entity store for tests and tooling.
func (p *Playing) World() *ecs.World { return p.world }

// State reports the current flow state.
func (p *Playing) State() state.GameState { return p.state }
