// Package field implements the particle network drawn behind the portfolio page:
// a set of drifting points joined by distance-faded links, reacting to viewport
// resizes, pointer movement, scrolling and the page section currently in view.
package field

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/particlenet/internal/paint"
	"github.com/decker502/particlenet/pkg/config"
)

// pointerOffscreen 指针初始位置，远离画布，首次移动前不会产生连线
const pointerOffscreen = -1000

// Settings is the live field configuration. It starts from the FieldConfig
// and is replaced wholesale when a section theme is applied.
type Settings struct {
	ParticleColor paint.Color
	LinkColor     paint.Color
	Speed         float64
	LinkRadius    float64
	PointerRadius float64
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRand sets the random source used to spawn particles.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = rng
	}
}

// WithSeed seeds the spawn random source; the same seed and inputs give the same frames.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithClock replaces time.Now, used for the scroll debounce.
func WithClock(clock func() time.Time) Option {
	return func(s *Simulator) {
		s.clock = clock
	}
}

// Simulator owns the particle set and all state of the field.
//
// A frame is Step (integrate and reflect every particle) followed by Render
// (clear, discs, particle links, pointer links); Tick does both. All methods
// must be called from the goroutine that drives the frames.
//
// A Simulator created without a surface or host is inert: it registers no
// listeners and every method is a no-op.
type Simulator struct {
	host    Host
	surface Surface
	cfg     *config.FieldConfig

	rng   *rand.Rand
	clock func() time.Time

	width, height float64
	particles     []Particle
	settings      Settings

	pointerX, pointerY float64
	lastScroll         time.Time

	inert    bool
	running  bool
	disposed bool
	cancels  []func()
}

// NewSimulator binds a field to surface and host and starts it.
//
// If surface or host is nil the returned Simulator is inert. A nil cfg uses
// config.DefaultFieldConfig().
func NewSimulator(host Host, surface Surface, cfg *config.FieldConfig, opts ...Option) *Simulator {
	s := &Simulator{
		host:     host,
		surface:  surface,
		cfg:      cfg,
		clock:    time.Now,
		pointerX: pointerOffscreen,
		pointerY: pointerOffscreen,
	}
	for _, opt := range opts {
		opt(s)
	}

	if surface == nil || host == nil {
		log.Printf("[Field] Drawing surface unavailable, particle field disabled")
		s.inert = true
		return s
	}

	if s.cfg == nil {
		s.cfg = config.DefaultFieldConfig()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.settings = Settings{
		ParticleColor: s.cfg.ParticleColor,
		LinkColor:     s.cfg.LinkColor,
		Speed:         s.cfg.Speed,
		LinkRadius:    s.cfg.LinkRadius,
		PointerRadius: s.cfg.PointerRadius,
	}

	width, height := host.Viewport()
	s.resize(width, height)
	s.listen()
	s.running = true

	log.Printf("[Field] Started: %.0fx%.0f, %d particles", s.width, s.height, len(s.particles))
	return s
}

// listen 注册 resize / pointer / scroll / section 四个监听器
func (s *Simulator) listen() {
	s.cancels = append(s.cancels,
		s.host.OnResize(s.Resize),
		s.host.OnPointerMove(s.MovePointer),
		s.host.OnScroll(s.Scroll),
		s.host.ObserveSections(s.cfg.SectionIDs(), s.cfg.SectionThreshold, s.SectionVisible),
	)
}

// Inert reports whether the simulator was created without a surface.
func (s *Simulator) Inert() bool {
	return s.inert
}

// active 是否可以接收信号（非 inert 且未销毁）
func (s *Simulator) active() bool {
	return !s.inert && !s.disposed
}

// Start resumes the frame loop after Stop.
func (s *Simulator) Start() {
	if !s.active() {
		return
	}
	s.running = true
}

// Stop pauses the simulation: Step and Tick do nothing until Start.
// Render still draws the frozen field and signals are still applied.
func (s *Simulator) Stop() {
	s.running = false
}

// Running reports whether the simulation advances on Step.
func (s *Simulator) Running() bool {
	return s.running && s.active()
}

// Dispose stops the field for good and unregisters every host listener.
func (s *Simulator) Dispose() {
	if !s.active() {
		return
	}
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.running = false
	s.disposed = true
	log.Printf("[Field] Disposed")
}

// Tick runs one full frame: Step then Render.
func (s *Simulator) Tick() {
	if !s.Running() {
		return
	}
	s.Step()
	s.Render()
}

// Step advances every particle by velocity × speed × scroll multiplier and
// reflects it off the edges.
func (s *Simulator) Step() {
	if !s.Running() {
		return
	}

	factor := s.settings.Speed * s.ScrollMultiplier()
	for i := range s.particles {
		s.particles[i].Update(s.width, s.height, factor)
	}
}

// Render clears the surface and draws the particles, the particle links and
// the pointer links.
func (s *Simulator) Render() {
	if !s.active() {
		return
	}

	s.surface.Clear()

	for i := range s.particles {
		p := &s.particles[i]
		s.surface.FillCircle(p.X, p.Y, p.Radius, p.Color)
	}

	lineWidth := s.cfg.LineWidth

	// O(n²) 两两连线，n ≤ 80
	for i := 0; i < len(s.particles); i++ {
		a := &s.particles[i]
		for j := i + 1; j < len(s.particles); j++ {
			b := &s.particles[j]
			opacity, ok := LinkOpacity(a.Distance(b.X, b.Y), s.settings.LinkRadius)
			if !ok {
				continue
			}
			s.surface.StrokeLine(a.X, a.Y, b.X, b.Y, lineWidth, s.settings.LinkColor.ScaleAlpha(opacity))
		}
	}

	// 指针连线：白色，最大透明度 PointerLinkAlpha
	for i := range s.particles {
		p := &s.particles[i]
		opacity, ok := LinkOpacity(p.Distance(s.pointerX, s.pointerY), s.settings.PointerRadius)
		if !ok {
			continue
		}
		clr := paint.White.WithAlpha(opacity * s.cfg.PointerLinkAlpha)
		s.surface.StrokeLine(p.X, p.Y, s.pointerX, s.pointerY, lineWidth, clr)
	}
}

// Resize adopts a new viewport size and regenerates the whole particle set.
func (s *Simulator) Resize(width, height float64) {
	if !s.active() {
		return
	}
	s.resize(width, height)
	log.Printf("[Field] Resized to %.0fx%.0f, %d particles", s.width, s.height, len(s.particles))
}

func (s *Simulator) resize(width, height float64) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.width, s.height = width, height
	s.surface.SetSize(int(width), int(height))
	s.spawn(s.cfg.ParticleCount(width))
}

// spawn 丢弃现有粒子，重新生成 count 个
func (s *Simulator) spawn(count int) {
	particles := make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		particles = append(particles, newParticle(s.rng, s.width, s.height, s.cfg.Spawn, s.settings.ParticleColor))
	}
	s.particles = particles
}

// MovePointer records the pointer position in surface coordinates.
func (s *Simulator) MovePointer(x, y float64) {
	if !s.active() {
		return
	}
	s.pointerX, s.pointerY = x, y
}

// Scroll marks a scroll signal; the speed stays boosted until the configured
// debounce has elapsed since the most recent one.
func (s *Simulator) Scroll() {
	if !s.active() {
		return
	}
	s.lastScroll = s.clock()
}

// ScrollMultiplier returns the current scroll speed multiplier.
func (s *Simulator) ScrollMultiplier() float64 {
	if !s.active() {
		return 1
	}
	return ScrollMultiplier(s.clock(), s.lastScroll, s.cfg.Scroll.Boost, s.cfg.Scroll.Debounce)
}

// SectionVisible handles a visibility change of a page section. When the
// section becomes visible and has a theme, the theme is applied immediately.
func (s *Simulator) SectionVisible(id string, visible bool) {
	if !s.active() || !visible {
		return
	}
	theme, ok := s.cfg.ThemeFor(id)
	if !ok {
		return
	}
	s.ApplyTheme(theme)
}

// ApplyTheme replaces particle color, link color and speed, and recolors
// every live particle.
func (s *Simulator) ApplyTheme(theme config.ThemeConfig) {
	if !s.active() {
		return
	}
	s.settings.ParticleColor = theme.ParticleColor
	s.settings.LinkColor = theme.LinkColor
	s.settings.Speed = theme.Speed

	for i := range s.particles {
		s.particles[i].Color = theme.ParticleColor
	}
}

// Particles returns a copy of the live particles.
func (s *Simulator) Particles() []Particle {
	particles := make([]Particle, len(s.particles))
	copy(particles, s.particles)
	return particles
}

// Settings returns the live field configuration.
func (s *Simulator) Settings() Settings {
	return s.settings
}

// Pointer returns the last known pointer position.
func (s *Simulator) Pointer() (x, y float64) {
	return s.pointerX, s.pointerY
}

// Size returns the current surface size.
func (s *Simulator) Size() (width, height float64) {
	return s.width, s.height
}
