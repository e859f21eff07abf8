package render

import (
	"image/color"
	"testing"

	"github.com/decker502/particlenet/pkg/field"
)

// 编译期检查接口实现
var _ field.Surface = (*EbitenSurface)(nil)

// TestUnboundSurfaceIsNoop 未绑定目标图像时绘制操作不应 panic
func TestUnboundSurfaceIsNoop(t *testing.T) {
	s := NewEbitenSurface(color.Black)

	if s.Bound() {
		t.Fatal("new surface should not be bound")
	}

	s.Clear()
	s.FillCircle(10, 10, 2, color.White)
	s.StrokeLine(0, 0, 10, 10, 1, color.White)
}

func TestSetSize(t *testing.T) {
	s := NewEbitenSurface(nil)
	s.SetSize(1280, 720)

	if w, h := s.Size(); w != 1280 || h != 720 {
		t.Errorf("Size: got %dx%d, want 1280x720", w, h)
	}
	if !s.AntiAlias {
		t.Error("AntiAlias should default to true")
	}
}
