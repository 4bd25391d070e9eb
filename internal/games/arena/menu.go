package arena

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/engine"
	"github.com/wesleyshynes/based-engine-2/ui"
)

// MenuLevel is the title screen: high score readout, a play button
// and a slow starfield so the screen is not dead while idle.
type MenuLevel struct {
	engine.BaseLevel

	best   int
	played int
	drift  float64

	stars   []star
	title   *ui.Label
	scores  *ui.Label
	playBtn *ui.Button
	quitBtn *ui.Button
}

type star struct {
	x, y, r, speed float64
}

// NewMenu constructs the title screen level.
func NewMenu(e *engine.Engine) engine.Level {
	return &MenuLevel{}
}

func (l *MenuLevel) Create() {
	e := l.Engine()
	store := e.Save()
	store.Load(SaveKeyHighScore, &l.best)
	store.Load(SaveKeyPlayed, &l.played)

	w, h := e.Size()
	l.stars = make([]star, 70)
	for i := range l.stars {
		l.stars[i] = star{
			x:     rand.Float64() * w,
			y:     rand.Float64() * h,
			r:     0.5 + rand.Float64()*1.8,
			speed: 4 + rand.Float64()*14,
		}
	}

	cam := e.Camera()
	cam.Unfollow()
	cam.SnapTo(w/2, h/2)
	cam.SetZoom(1)

	l.title = ui.NewLabel("title", "ORBIT ARENA", 0, 0)
	l.title.Size = 44
	l.title.Align = ui.AlignCenter
	l.title.Color = ui.ColorAccent
	l.Add(l.title)

	l.scores = ui.NewLabel("scores", "", 0, 0)
	l.scores.Align = ui.AlignCenter
	l.scores.Size = 15
	l.scores.Color = ui.ColorMuted
	if l.played > 0 {
		l.scores.Text = fmt.Sprintf("best %d  ·  rounds %d", l.best, l.played)
	} else {
		l.scores.Text = "no rounds played yet"
	}
	l.Add(l.scores)

	l.playBtn = ui.NewButton("play", "Play", e.Input())
	l.playBtn.OnClick = func() { e.LoadLevel(LevelPlay) }
	l.Add(l.playBtn)

	l.quitBtn = ui.NewButton("quit", "Quit", e.Input())
	l.quitBtn.H = 36
	l.quitBtn.Size = 15
	l.quitBtn.OnClick = func() { e.Stop() }
	l.Add(l.quitBtn)

	l.layout(w, h)
}

func (l *MenuLevel) layout(w, h float64) {
	if l.title == nil {
		return
	}
	l.title.X, l.title.Y = w/2, h*0.24
	l.scores.X, l.scores.Y = w/2, h*0.24+64
	l.playBtn.X = w/2 - l.playBtn.W/2
	l.playBtn.Y = h * 0.52
	l.quitBtn.X = w/2 - l.quitBtn.W/2
	l.quitBtn.Y = l.playBtn.Y + l.playBtn.H + 16
}

func (l *MenuLevel) Update(dt float64) {
	e := l.Engine()
	l.drift += dt

	_, h := e.Size()
	for i := range l.stars {
		l.stars[i].y += l.stars[i].speed * dt
		if l.stars[i].y > h+2 {
			l.stars[i].y = -2
		}
	}

	if e.Input().KeyJustPressed(ebiten.KeyEnter) || e.Input().KeyJustPressed(ebiten.KeySpace) {
		e.LoadLevel(LevelPlay)
	}
}

// Draw renders the starfield. The camera is pinned to the view
// center at unit zoom, so world space lines up with the screen and
// the stars land behind every widget.
func (l *MenuLevel) Draw(s *draw.Surface) {
	for _, st := range l.stars {
		s.FillCircle(st.x, st.y, st.r, colorGrid)
	}
}

func (l *MenuLevel) DrawUI(s *draw.Surface) {
	w, h := l.Engine().Size()
	pulse := 0.5 + 0.5*math.Sin(l.drift*2)
	c := uint8(0x6a + pulse*0x60)
	s.TextCentered("press enter to start", w/2, h*0.52-36, 13,
		color.RGBA{R: c, G: c, B: uint8(float64(c) * 1.1), A: 0xff})
}

func (l *MenuLevel) Resize(w, h float64) {
	l.Engine().Camera().SnapTo(w/2, h/2)
	l.layout(w, h)
}
