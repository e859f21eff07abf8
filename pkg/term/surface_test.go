package term

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/particlenet/internal/paint"
)

var black = paint.Color{A: 1}

func newTestSurface() *Surface {
	s := NewSurface(black)
	s.SetSize(80, 48) // 10 × 3 单元格，10 × 6 像素
	return s
}

func TestSurfaceSetSize(t *testing.T) {
	tests := []struct {
		width, height int
		cols, rows    int
	}{
		{80, 48, 10, 3},
		{81, 49, 11, 4},
		{0, 0, 0, 0},
		{-8, 16, 0, 1},
	}

	for _, tt := range tests {
		s := NewSurface(black)
		s.SetSize(tt.width, tt.height)
		cols, rows := s.Cells()
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("SetSize(%d, %d): got %dx%d cells, want %dx%d",
				tt.width, tt.height, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestSurfaceFillCircle(t *testing.T) {
	s := newTestSurface()

	// 小圆只占圆心像素
	s.FillCircle(12, 12, 2, paint.White)
	if got := s.Pixel(1, 1); got != paint.White {
		t.Errorf("pixel (1,1): got %v, want white", got)
	}
	if got := s.Pixel(0, 0); got != black {
		t.Errorf("pixel (0,0): got %v, want background", got)
	}

	// 半径 16 虚拟像素 = 2 终端像素
	s.Clear()
	s.FillCircle(40, 24, 16, paint.White)
	for _, p := range [][2]int{{5, 3}, {4, 2}, {3, 3}, {6, 3}} {
		if got := s.Pixel(p[0], p[1]); got != paint.White {
			t.Errorf("pixel %v: got %v, want white", p, got)
		}
	}
	if got := s.Pixel(0, 0); got != black {
		t.Errorf("pixel (0,0) outside circle: got %v", got)
	}
}

func TestSurfaceStrokeLine(t *testing.T) {
	s := newTestSurface()

	s.StrokeLine(4, 4, 76, 4, 1, paint.White)
	for px := 0; px < 10; px++ {
		if got := s.Pixel(px, 0); got != paint.White {
			t.Errorf("pixel (%d,0): got %v, want white", px, got)
		}
		if got := s.Pixel(px, 1); got != black {
			t.Errorf("pixel (%d,1): got %v, want background", px, got)
		}
	}
}

func TestSurfaceAlphaBlend(t *testing.T) {
	s := newTestSurface()

	s.FillCircle(4, 4, 1, paint.White.WithAlpha(0.5))
	got := s.Pixel(0, 0)
	if got.R < 127 || got.R > 128 || got.A != 1 {
		t.Errorf("half white over black: got %v, want ~rgb(128,128,128)", got)
	}

	// 完全透明不绘制
	s.Clear()
	s.StrokeLine(0, 0, 80, 48, 1, paint.White.WithAlpha(0))
	if got := s.Pixel(0, 0); got != black {
		t.Errorf("transparent line drew: %v", got)
	}
}

func TestSurfaceOutOfBoundsIgnored(t *testing.T) {
	s := newTestSurface()

	s.FillCircle(-100, -100, 50, paint.White)
	s.StrokeLine(-50, -50, -10, -10, 1, paint.White)
	for py := 0; py < 6; py++ {
		for px := 0; px < 10; px++ {
			if got := s.Pixel(px, py); got != black {
				t.Fatalf("pixel (%d,%d) touched: %v", px, py, got)
			}
		}
	}
}

func TestToPaint(t *testing.T) {
	got := toPaint(color.RGBA{R: 255, A: 255})
	want := paint.Color{R: 255, A: 1}
	if got != want {
		t.Errorf("toPaint(red): got %v, want %v", got, want)
	}

	if got := toPaint(color.Transparent); got.A != 0 {
		t.Errorf("toPaint(transparent): got alpha %v", got.A)
	}
}

func TestSurfaceFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 3)

	s := newTestSurface()
	s.FillCircle(12, 4, 1, paint.White) // 单元格 (1,0) 上半
	s.Flush(screen)

	mainc, _, style, _ := screen.GetContent(1, 0)
	if mainc != upperHalfBlock {
		t.Fatalf("cell rune: got %q, want %q", mainc, upperHalfBlock)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("foreground: got %v, want white", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("background: got %v, want black", bg)
	}
}
