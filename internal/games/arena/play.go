package arena

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/engine"
	"github.com/wesleyshynes/based-engine-2/physics"
	"github.com/wesleyshynes/based-engine-2/sound"
	"github.com/wesleyshynes/based-engine-2/ui"
)

const (
	arenaW    = 1600.0
	arenaH    = 1200.0
	wallThick = 48.0
	roundTime = 60.0
	coinCount = 24
	crateMin  = 6
	coinValue = 10
)

// PlayLevel runs one round: collect every coin before the clock runs
// out. Collecting all of them banks the remaining seconds as bonus.
type PlayLevel struct {
	engine.BaseLevel

	world  *physics.World
	player *player

	score     int
	coinsLeft int
	timeLeft  float64
	over      bool

	scoreLabel *ui.Label
	bestLabel  *ui.Label
	timeBar    *ui.ProgressBar
	hintLabel  *ui.Label
	hintFade   float64
}

// NewPlay constructs the round level.
func NewPlay(e *engine.Engine) engine.Level {
	return &PlayLevel{}
}

func (l *PlayLevel) Preload(ctx context.Context) error {
	// Everything is generated, so preload only flashes the bar.
	l.Engine().SetLoadingProgress(1, "generating arena")
	return nil
}

func (l *PlayLevel) Create() {
	e := l.Engine()
	l.world = physics.NewWorld(0, 0)
	l.world.SetDamping(0.3)
	l.timeLeft = roundTime
	l.hintFade = 3

	cx, cy := arenaW/2, arenaH/2

	l.Add(newWall(l.world, "wall-top", cx, wallThick/2, arenaW, wallThick))
	l.Add(newWall(l.world, "wall-bottom", cx, arenaH-wallThick/2, arenaW, wallThick))
	l.Add(newWall(l.world, "wall-left", wallThick/2, cy, wallThick, arenaH))
	l.Add(newWall(l.world, "wall-right", arenaW-wallThick/2, cy, wallThick, arenaH))

	l.player = newPlayer(l.world, e.Input(), cx, cy)
	l.Add(l.player)

	l.spawnCoins()
	l.spawnCrates()

	cam := e.Camera()
	cam.SetBounds(0, 0, arenaW, arenaH)
	cam.SnapTo(cx, cy)
	cam.SetZoom(1)
	cam.SetFollowSpeed(6)
	cam.Follow(l.player)

	l.buildHUD()
}

// spawnCoins scatters coins clear of the walls and the player start.
func (l *PlayLevel) spawnCoins() {
	l.coinsLeft = 0
	for i := 0; i < coinCount; i++ {
		x, y := l.spawnPoint(140)
		l.Add(newCoin(l.world, fmt.Sprintf("coin-%d", i), x, y, l.collect))
		l.coinsLeft++
	}
}

func (l *PlayLevel) spawnCrates() {
	n := crateMin + rand.Intn(4)
	for i := 0; i < n; i++ {
		x, y := l.spawnPoint(200)
		l.Add(newCrate(l.world, fmt.Sprintf("crate-%d", i), x, y))
	}
}

// spawnPoint picks a random arena position at least clear units from
// the player start.
func (l *PlayLevel) spawnPoint(clear float64) (float64, float64) {
	margin := wallThick + 60
	for {
		x := margin + rand.Float64()*(arenaW-2*margin)
		y := margin + rand.Float64()*(arenaH-2*margin)
		if math.Hypot(x-arenaW/2, y-arenaH/2) >= clear {
			return x, y
		}
	}
}

func (l *PlayLevel) buildHUD() {
	l.scoreLabel = ui.NewLabel("hud-score", "Score 0", 20, 16)
	l.scoreLabel.SetDepth(100)
	l.Add(l.scoreLabel)

	l.bestLabel = ui.NewLabel("hud-best", "", 20, 42)
	l.bestLabel.Size = 13
	l.bestLabel.Color = ui.ColorMuted
	l.bestLabel.SetDepth(100)
	var best int
	if l.Engine().Save().Load(SaveKeyHighScore, &best) {
		l.bestLabel.Text = fmt.Sprintf("Best %d", best)
	}
	l.Add(l.bestLabel)

	l.timeBar = ui.NewProgressBar("hud-time")
	l.timeBar.Value = 1
	l.timeBar.SetDepth(100)
	l.Add(l.timeBar)
	l.layoutHUD(l.Engine().Size())

	l.hintLabel = ui.NewLabel("hud-hint", "arrows or drag to move, grab every coin", 0, 0)
	l.hintLabel.Align = ui.AlignCenter
	l.hintLabel.Color = ui.ColorMuted
	l.hintLabel.SetDepth(100)
	w, h := l.Engine().Size()
	l.hintLabel.X, l.hintLabel.Y = w/2, h-48
	l.Add(l.hintLabel)
}

func (l *PlayLevel) layoutHUD(w, h float64) {
	if l.timeBar != nil {
		l.timeBar.W = 220
		l.timeBar.X = w - l.timeBar.W - 20
		l.timeBar.Y = 20
	}
	if l.hintLabel != nil {
		l.hintLabel.X, l.hintLabel.Y = w/2, h-48
	}
}

func (l *PlayLevel) Update(dt float64) {
	if l.over {
		return
	}
	e := l.Engine()

	if e.Input().KeyJustPressed(ebiten.KeyEscape) {
		l.finish(false)
		return
	}

	l.world.Step()

	l.timeLeft -= dt
	l.timeBar.Value = l.timeLeft / roundTime
	l.scoreLabel.Text = fmt.Sprintf("Score %d", l.score)

	if l.hintFade > 0 {
		l.hintFade -= dt
		if l.hintFade <= 0 {
			l.hintLabel.SetVisible(false)
		}
	}

	if l.timeLeft <= 0 {
		l.timeLeft = 0
		l.finish(false)
	}
}

// collect runs inside the physics step when the player touches a coin.
// Mutations are queued, so touching two coins in one step is safe.
func (l *PlayLevel) collect(c *coin) {
	e := l.Engine()
	l.score += coinValue
	l.coinsLeft--
	l.RemoveEntity(c)
	e.Sound().Tone(880, 0.08, sound.Square, 0.4)
	e.Camera().Shake(4, 0.15)

	if l.coinsLeft <= 0 {
		// Bank the remaining time.
		l.score += int(l.timeLeft)
		l.finish(true)
	}
}

// finish ends the round exactly once, persists the score and returns
// to the menu.
func (l *PlayLevel) finish(cleared bool) {
	if l.over {
		return
	}
	l.over = true
	e := l.Engine()

	store := e.Save()
	store.Save(SaveKeyLastScore, l.score)
	var played int
	store.Load(SaveKeyPlayed, &played)
	store.Save(SaveKeyPlayed, played+1)
	var best int
	store.Load(SaveKeyHighScore, &best)
	if l.score > best {
		store.Save(SaveKeyHighScore, l.score)
		e.Log().Info("new high score", "score", l.score)
	}

	if cleared {
		e.Sound().Tone(1320, 0.3, sound.Sine, 0.5)
	} else {
		e.Sound().Tone(220, 0.3, sound.Sawtooth, 0.4)
	}
	e.LoadLevel(LevelMenu)
}

func (l *PlayLevel) Draw(s *draw.Surface) {
	s.FillRect(0, 0, arenaW, arenaH, colorFloor)
	for x := 100.0; x < arenaW; x += 100 {
		s.Line(x, 0, x, arenaH, 1, colorGrid)
	}
	for y := 100.0; y < arenaH; y += 100 {
		s.Line(0, y, arenaW, y, 1, colorGrid)
	}
}

func (l *PlayLevel) DrawUI(s *draw.Surface) {
	if l.timeLeft < 10 && !l.over {
		// Pulse the clock red when time is short.
		if int(l.timeLeft*4)%2 == 0 {
			w, _ := l.Engine().Size()
			s.TextCentered(fmt.Sprintf("%d", int(math.Ceil(l.timeLeft))), w/2, 16, 26, colorCoin)
		}
	}
}

func (l *PlayLevel) Resize(w, h float64) {
	l.layoutHUD(w, h)
}

func (l *PlayLevel) Destroy() {
	cam := l.Engine().Camera()
	cam.Unfollow()
	cam.ClearBounds()
	l.world = nil
}
