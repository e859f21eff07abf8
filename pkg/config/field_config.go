package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/particlenet/internal/paint"
)

// FieldConfig 粒子网络背景配置
//
// 包含粒子/连线颜色、速度、连线半径、粒子数量阈值、滚动加速参数，
// 以及页面区块（section）到主题的映射表。
//
// 配置文件位置: data/field.yaml
type FieldConfig struct {
	// ParticleColor 粒子颜色（css rgba 描述）
	ParticleColor paint.Color `yaml:"particleColor"`

	// LinkColor 粒子间连线颜色，绘制时 alpha 乘以距离衰减系数
	LinkColor paint.Color `yaml:"linkColor"`

	// Background 清屏颜色，透明时由页面背景透出
	Background paint.Color `yaml:"background"`

	// Speed 基础速度倍率
	Speed float64 `yaml:"speed"`

	// LinkRadius 两个粒子之间产生连线的最大距离（像素）
	LinkRadius float64 `yaml:"linkRadius"`

	// PointerRadius 粒子与指针之间产生连线的最大距离（像素）
	PointerRadius float64 `yaml:"pointerRadius"`

	// PointerLinkAlpha 指针连线在距离为 0 时的最大透明度（白色）
	PointerLinkAlpha float64 `yaml:"pointerLinkAlpha"`

	// LineWidth 连线宽度（像素）
	LineWidth float64 `yaml:"lineWidth"`

	// Count 粒子数量阈值
	Count CountConfig `yaml:"count"`

	// Spawn 粒子初始随机范围
	Spawn SpawnConfig `yaml:"spawn"`

	// Scroll 滚动加速配置
	Scroll ScrollConfig `yaml:"scroll"`

	// SectionThreshold 区块可见比例阈值（0-1），达到后切换主题
	SectionThreshold float64 `yaml:"sectionThreshold"`

	// Themes 主题表
	// key: 主题名
	Themes map[string]ThemeConfig `yaml:"themes"`

	// Sections 被观察的页面区块（按页面从上到下排列）
	Sections []SectionConfig `yaml:"sections"`
}

// CountConfig 粒子数量配置
//
// 视口宽度小于 Breakpoint 时使用 Mobile 数量，否则使用 Desktop 数量。
type CountConfig struct {
	Breakpoint float64 `yaml:"breakpoint"`
	Mobile     int     `yaml:"mobile"`
	Desktop    int     `yaml:"desktop"`
}

// SpawnConfig 粒子生成参数
type SpawnConfig struct {
	// MaxVelocity 每个轴上的速度范围为 [-MaxVelocity, MaxVelocity]（像素/帧）
	MaxVelocity float64 `yaml:"maxVelocity"`

	// MinRadius / MaxRadius 粒子半径范围
	MinRadius float64 `yaml:"minRadius"`
	MaxRadius float64 `yaml:"maxRadius"`
}

// ScrollConfig 滚动加速配置
type ScrollConfig struct {
	// Boost 滚动期间的速度倍率
	Boost float64 `yaml:"boost"`

	// Debounce 最后一次滚动后恢复正常速度的延迟
	Debounce time.Duration `yaml:"debounce"`
}

// ThemeConfig 区块主题：粒子颜色、连线颜色、速度
type ThemeConfig struct {
	ParticleColor paint.Color `yaml:"particleColor"`
	LinkColor     paint.Color `yaml:"linkColor"`
	Speed         float64     `yaml:"speed"`
}

// SectionConfig 页面区块
type SectionConfig struct {
	// ID 区块元素 id（如 "hero", "about"）
	ID string `yaml:"id"`

	// Theme 区块进入视口时应用的主题名
	Theme string `yaml:"theme"`

	// Height 区块高度（像素），桌面端和终端用来模拟页面滚动
	Height float64 `yaml:"height"`
}

// DefaultThemeName 默认主题名
const DefaultThemeName = "cyan"

// DefaultSectionHeight 未指定 height 的区块高度（像素）
const DefaultSectionHeight = 900

// DefaultSectionIDs 默认观察的页面区块
var DefaultSectionIDs = []string{"hero", "about", "projects", "contact", "project-details", "ai-integration"}

// DefaultFieldConfig 返回默认配置（与 data/field.yaml 一致）
//
// 所有区块都映射到同一个青色主题。
func DefaultFieldConfig() *FieldConfig {
	particle := paint.Color{R: 0, G: 255, B: 255, A: 0.5}
	link := paint.Color{R: 0, G: 255, B: 255, A: 0.15}

	sections := make([]SectionConfig, 0, len(DefaultSectionIDs))
	for _, id := range DefaultSectionIDs {
		sections = append(sections, SectionConfig{ID: id, Theme: DefaultThemeName, Height: DefaultSectionHeight})
	}

	return &FieldConfig{
		ParticleColor:    particle,
		LinkColor:        link,
		Background:       paint.Color{R: 10, G: 10, B: 15, A: 1},
		Speed:            0.5,
		LinkRadius:       150,
		PointerRadius:    200,
		PointerLinkAlpha: 0.3,
		LineWidth:        1,
		Count: CountConfig{
			Breakpoint: 768,
			Mobile:     40,
			Desktop:    80,
		},
		Spawn: SpawnConfig{
			MaxVelocity: 0.5,
			MinRadius:   1,
			MaxRadius:   3,
		},
		Scroll: ScrollConfig{
			Boost:    1.5,
			Debounce: 200 * time.Millisecond,
		},
		SectionThreshold: 0.3,
		Themes: map[string]ThemeConfig{
			DefaultThemeName: {ParticleColor: particle, LinkColor: link, Speed: 0.5},
		},
		Sections: sections,
	}
}

// LoadFieldConfig 加载粒子网络配置
//
// 参数:
//   - path: 配置文件路径（如 "data/field.yaml"）
//
// 返回:
//   - *FieldConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadFieldConfig(path string) (*FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field config: %w", err)
	}
	return ParseFieldConfig(data)
}

// ParseFieldConfig 解析 YAML 配置内容
//
// 未出现在文件中的字段保持默认值；sections 列表整体替换，
// 其中未写 height 的区块使用 DefaultSectionHeight。
func ParseFieldConfig(data []byte) (*FieldConfig, error) {
	cfg := DefaultFieldConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse field config: %w", err)
	}

	for i := range cfg.Sections {
		if cfg.Sections[i].Height == 0 {
			cfg.Sections[i].Height = DefaultSectionHeight
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *FieldConfig) Validate() error {
	if err := c.checkFinite(); err != nil {
		return err
	}

	if c.Speed < 0 {
		return fmt.Errorf("speed must not be negative, got %.2f", c.Speed)
	}
	if c.LinkRadius <= 0 {
		return fmt.Errorf("linkRadius must be positive, got %.2f", c.LinkRadius)
	}
	if c.PointerRadius <= 0 {
		return fmt.Errorf("pointerRadius must be positive, got %.2f", c.PointerRadius)
	}
	if c.PointerLinkAlpha < 0 || c.PointerLinkAlpha > 1 {
		return fmt.Errorf("pointerLinkAlpha must be within [0, 1], got %.2f", c.PointerLinkAlpha)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("lineWidth must be positive, got %.2f", c.LineWidth)
	}

	if c.Count.Breakpoint < 0 {
		return fmt.Errorf("count.breakpoint must not be negative, got %.1f", c.Count.Breakpoint)
	}
	if c.Count.Mobile <= 0 || c.Count.Desktop <= 0 {
		return fmt.Errorf("particle counts must be positive, got mobile=%d desktop=%d",
			c.Count.Mobile, c.Count.Desktop)
	}

	if c.Spawn.MaxVelocity < 0 {
		return fmt.Errorf("spawn.maxVelocity must not be negative, got %.2f", c.Spawn.MaxVelocity)
	}
	if c.Spawn.MinRadius <= 0 || c.Spawn.MinRadius > c.Spawn.MaxRadius {
		return fmt.Errorf("spawn radius range invalid: min(%.2f) max(%.2f)",
			c.Spawn.MinRadius, c.Spawn.MaxRadius)
	}

	if c.Scroll.Boost <= 0 {
		return fmt.Errorf("scroll.boost must be positive, got %.2f", c.Scroll.Boost)
	}
	if c.Scroll.Debounce < 0 {
		return fmt.Errorf("scroll.debounce must not be negative, got %v", c.Scroll.Debounce)
	}

	if c.SectionThreshold <= 0 || c.SectionThreshold > 1 {
		return fmt.Errorf("sectionThreshold must be within (0, 1], got %.2f", c.SectionThreshold)
	}

	for name, theme := range c.Themes {
		if theme.Speed < 0 {
			return fmt.Errorf("theme %q: speed must not be negative, got %.2f", name, theme.Speed)
		}
	}

	seen := make(map[string]bool, len(c.Sections))
	for i, section := range c.Sections {
		if section.ID == "" {
			return fmt.Errorf("section %d: id is required", i)
		}
		if seen[section.ID] {
			return fmt.Errorf("section %q declared twice", section.ID)
		}
		seen[section.ID] = true

		if section.Theme != "" {
			if _, ok := c.Themes[section.Theme]; !ok {
				return fmt.Errorf("section %q references unknown theme %q", section.ID, section.Theme)
			}
		}
		if section.Height <= 0 {
			return fmt.Errorf("section %q: height must be positive, got %.1f", section.ID, section.Height)
		}
	}

	return nil
}

// numericField 参与有限性检查的数值字段
type numericField struct {
	name  string
	value float64
}

// checkFinite NaN 让所有大小比较为 false，±Inf 能越过范围检查，需要单独拒绝
func (c *FieldConfig) checkFinite() error {
	fields := []numericField{
		{"speed", c.Speed},
		{"linkRadius", c.LinkRadius},
		{"pointerRadius", c.PointerRadius},
		{"pointerLinkAlpha", c.PointerLinkAlpha},
		{"lineWidth", c.LineWidth},
		{"count.breakpoint", c.Count.Breakpoint},
		{"spawn.maxVelocity", c.Spawn.MaxVelocity},
		{"spawn.minRadius", c.Spawn.MinRadius},
		{"spawn.maxRadius", c.Spawn.MaxRadius},
		{"scroll.boost", c.Scroll.Boost},
		{"sectionThreshold", c.SectionThreshold},
		{"particleColor.alpha", c.ParticleColor.A},
		{"linkColor.alpha", c.LinkColor.A},
		{"background.alpha", c.Background.A},
	}
	for name, theme := range c.Themes {
		fields = append(fields,
			numericField{"themes." + name + ".speed", theme.Speed},
			numericField{"themes." + name + ".particleColor.alpha", theme.ParticleColor.A},
			numericField{"themes." + name + ".linkColor.alpha", theme.LinkColor.A},
		)
	}
	for _, section := range c.Sections {
		fields = append(fields, numericField{"sections." + section.ID + ".height", section.Height})
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.value)
		}
	}
	return nil
}

// SectionIDs 返回被观察区块的 id 列表（保持配置顺序）
func (c *FieldConfig) SectionIDs() []string {
	ids := make([]string, 0, len(c.Sections))
	for _, section := range c.Sections {
		ids = append(ids, section.ID)
	}
	return ids
}

// ThemeFor 查找区块对应的主题
//
// 返回:
//   - ThemeConfig: 区块主题
//   - bool: 区块未配置或未指定主题时返回 false
func (c *FieldConfig) ThemeFor(sectionID string) (ThemeConfig, bool) {
	for _, section := range c.Sections {
		if section.ID != sectionID {
			continue
		}
		if section.Theme == "" {
			return ThemeConfig{}, false
		}
		theme, ok := c.Themes[section.Theme]
		return theme, ok
	}
	return ThemeConfig{}, false
}

// ParticleCount 根据视口宽度返回粒子数量
func (c *FieldConfig) ParticleCount(viewportWidth float64) int {
	if viewportWidth < c.Count.Breakpoint {
		return c.Count.Mobile
	}
	return c.Count.Desktop
}
