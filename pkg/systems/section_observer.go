package systems

import (
	"math"

	"github.com/decker502/particlenet/pkg/config"
	"github.com/decker502/particlenet/pkg/field"
)

// Section 页面上的一个区块（纵向堆叠）
type Section struct {
	ID     string
	Height float64
}

// observation 一次 Observe 调用的状态
type observation struct {
	ids       map[string]bool
	threshold float64
	fn        func(id string, visible bool)
	// 已上报的可见状态；未出现的 id 表示尚未上报过（首次 Update 会上报）
	reported map[string]bool
}

// SectionObserver 在桌面端和终端上模拟浏览器的 IntersectionObserver
//
// 页面由若干区块从上到下堆叠而成，视口在页面上纵向滚动。
// 每次 Update 计算每个区块的可见比例（可见高度 / 区块高度），
// 当比例越过阈值时通知观察者：
//   - 首次 Update：为每个被观察的区块上报一次当前状态
//   - 之后：仅在状态变化时上报
//
// 非并发安全，应在驱动帧的 goroutine 中调用。
type SectionObserver struct {
	sections     []Section
	viewport     float64
	offset       float64
	observations field.Signal[*observation]
}

// NewSectionObserver 创建区块观察器
//
// 参数:
//   - sections: 从上到下排列的区块
//   - viewportHeight: 视口高度（像素）
func NewSectionObserver(sections []Section, viewportHeight float64) *SectionObserver {
	o := &SectionObserver{
		sections: append([]Section(nil), sections...),
		viewport: math.Max(0, viewportHeight),
	}
	return o
}

// SectionsFromConfig 把配置中的区块转换为观察器的页面布局
func SectionsFromConfig(cfg *config.FieldConfig) []Section {
	sections := make([]Section, 0, len(cfg.Sections))
	for _, s := range cfg.Sections {
		sections = append(sections, Section{ID: s.ID, Height: s.Height})
	}
	return sections
}

// Observe 注册观察者，返回注销函数
//
// 回调在下一次 Update 时首次触发。
func (o *SectionObserver) Observe(ids []string, threshold float64, fn func(id string, visible bool)) (cancel func()) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return o.observations.Add(&observation{
		ids:       set,
		threshold: threshold,
		fn:        fn,
		reported:  make(map[string]bool, len(ids)),
	})
}

// Observers 返回当前注册的观察者数量
func (o *SectionObserver) Observers() int {
	return o.observations.Len()
}

// PageHeight 页面总高度
func (o *SectionObserver) PageHeight() float64 {
	total := 0.0
	for _, s := range o.sections {
		total += s.Height
	}
	return total
}

// maxOffset 最大滚动距离
func (o *SectionObserver) maxOffset() float64 {
	return math.Max(0, o.PageHeight()-o.viewport)
}

// Offset 当前滚动位置（视口顶部在页面上的 Y 坐标）
func (o *SectionObserver) Offset() float64 {
	return o.offset
}

// SetViewport 更新视口高度，滚动位置随之限制在合法范围内
func (o *SectionObserver) SetViewport(height float64) {
	o.viewport = math.Max(0, height)
	o.offset = math.Min(o.offset, o.maxOffset())
}

// ScrollTo 滚动到指定位置，返回位置是否发生变化
func (o *SectionObserver) ScrollTo(y float64) bool {
	clamped := math.Max(0, math.Min(y, o.maxOffset()))
	if clamped == o.offset {
		return false
	}
	o.offset = clamped
	return true
}

// ScrollBy 相对滚动，返回位置是否发生变化
func (o *SectionObserver) ScrollBy(dy float64) bool {
	return o.ScrollTo(o.offset + dy)
}

// Ratio 返回区块当前的可见比例（0-1），未知区块返回 0
func (o *SectionObserver) Ratio(id string) float64 {
	top := 0.0
	for _, s := range o.sections {
		if s.ID == id {
			return visibleRatio(top, s.Height, o.offset, o.viewport)
		}
		top += s.Height
	}
	return 0
}

// visibleRatio 计算 [top, top+height] 与视口 [offset, offset+viewport] 的交集占区块高度的比例
func visibleRatio(top, height, offset, viewport float64) float64 {
	if height <= 0 {
		return 0
	}
	overlap := math.Min(top+height, offset+viewport) - math.Max(top, offset)
	if overlap <= 0 {
		return 0
	}
	return math.Min(1, overlap/height)
}

// Update 计算可见比例并通知状态发生变化的观察者
func (o *SectionObserver) Update() {
	top := 0.0
	ratios := make(map[string]float64, len(o.sections))
	order := make([]string, 0, len(o.sections))
	for _, s := range o.sections {
		ratios[s.ID] = visibleRatio(top, s.Height, o.offset, o.viewport)
		order = append(order, s.ID)
		top += s.Height
	}

	o.observations.Each(func(obs *observation) {
		for _, id := range order {
			if !obs.ids[id] {
				continue
			}
			visible := ratios[id] >= obs.threshold
			if prev, seen := obs.reported[id]; seen && prev == visible {
				continue
			}
			obs.reported[id] = visible
			obs.fn(id, visible)
		}
	})
}
