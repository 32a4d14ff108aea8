package render

import (
	"hash/fnv"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/plumber/common"
	"github.com/milk9111/plumber/obj"
	"golang.org/x/image/colornames"
)

var placeholderPalette = []color.RGBA{
	colornames.Crimson,
	colornames.Darkorange,
	colornames.Gold,
	colornames.Mediumseagreen,
	colornames.Royalblue,
	colornames.Orchid,
}

var contactColors = map[obj.ContactSide]color.RGBA{
	obj.ContactNone:  colornames.Lime,
	obj.ContactLeft:  colornames.Yellow,
	obj.ContactRight: colornames.Yellow,
	obj.ContactTop:   colornames.Red,
}

// Renderer draws every registered drawable through the camera. It implements
// obj.RenderTarget.
type Renderer struct {
	children []obj.Drawable
	camera   *obj.Camera
	level    *obj.Level
	images   *ImageCache
	debug    bool
	logger   *log.Logger
}

func NewRenderer(screenW, screenH int, zoom float64, images *ImageCache) *Renderer {
	cam := obj.NewCamera(screenW, screenH, zoom)
	cam.SetSmooth(0)
	if images == nil {
		images = NewImageCache(nil)
	}
	return &Renderer{
		camera: cam,
		images: images,
		logger: log.Default(),
	}
}

func (r *Renderer) SetLevel(l *obj.Level) { r.level = l }
func (r *Renderer) SetDebug(on bool)      { r.debug = on }
func (r *Renderer) Debug() bool           { return r.debug }

// AddChild registers d, keeping children sorted by z-index. Adding the same
// drawable twice is a no-op.
func (r *Renderer) AddChild(d obj.Drawable) {
	if d == nil {
		return
	}
	for _, c := range r.children {
		if c == d {
			return
		}
	}
	r.children = append(r.children, d)
	sort.SliceStable(r.children, func(i, j int) bool {
		return r.children[i].AnimationObject().ZIndex() < r.children[j].AnimationObject().ZIndex()
	})
}

func (r *Renderer) RemoveChild(d obj.Drawable) {
	for i, c := range r.children {
		if c == d {
			r.children = append(r.children[:i], r.children[i+1:]...)
			return
		}
	}
}

// Update stores the world point to center the next Draw on.
func (r *Renderer) Update(camera common.Vec2) {
	r.camera.SnapTo(camera)
}

// Camera returns the camera used for drawing.
func (r *Renderer) Camera() *obj.Camera { return r.camera }

func (r *Renderer) Draw(screen *ebiten.Image) {
	r.drawLevel(screen)
	for _, d := range r.children {
		r.drawChild(screen, d)
	}
}

func (r *Renderer) drawLevel(screen *ebiten.Image) {
	if r.level == nil {
		return
	}
	for _, b := range r.level.Blocks {
		x, y, w, h := r.screenRect(b.Rect())
		clr := colornames.Steelblue
		if b.Hazard {
			clr = colornames.Red
		}
		vector.FillRect(screen, x, y, w, h, clr, false)
		if r.debug {
			vector.StrokeRect(screen, x, y, w, h, 1, colornames.White, false)
		}
	}
}

func (r *Renderer) drawChild(screen *ebiten.Image, d obj.Drawable) {
	anim := d.AnimationObject()
	box := d.Box()
	if anim == nil || box == nil {
		return
	}

	path := anim.CurrentSprite()
	img, err := r.images.Get(path)
	if err != nil {
		img = r.images.Placeholder(int(box.Width), int(box.Height), placeholderColor(path))
	}

	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	scale := anim.Scale()
	zoom := r.camera.Zoom()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(scale.X*box.Width/iw*zoom, scale.Y*box.Height/ih*zoom)
	sx, sy := r.camera.WorldToScreen(anim.Position())
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(img, op)

	if r.debug {
		x, y, w, h := r.screenRect(box.Rect())
		vector.StrokeRect(screen, x, y, w, h, 1, contactColors[box.State], false)
	}
}

// screenRect converts a y-up world rect to a y-down screen rect.
func (r *Renderer) screenRect(rect common.Rect) (x, y, w, h float32) {
	zoom := r.camera.Zoom()
	sx, sy := r.camera.WorldToScreen(common.Vec2{X: rect.Left(), Y: rect.Top()})
	return float32(sx), float32(sy), float32(rect.Width * zoom), float32(rect.Height * zoom)
}

func placeholderColor(path string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
}
