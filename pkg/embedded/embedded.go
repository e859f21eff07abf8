// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）或 mobile 包中。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/decker502/particlenet/pkg/config"
)

// FieldConfigPath 默认粒子场配置
const FieldConfigPath = "data/field.yaml"

// ErrNotInitialized 未调用 Init
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入的文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并检查前缀
// 路径必须以 "data/" 开头
func normalize(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}

	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开嵌入的文件
func Open(path string) (fs.File, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取嵌入的文件内容
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// LoadFieldConfig 解析嵌入的默认粒子场配置
//
// 未调用 Init 时返回 ErrNotInitialized；
// 嵌入的文件系统中没有配置文件时使用代码中的默认配置。
func LoadFieldConfig() (*config.FieldConfig, error) {
	if !IsInitialized() {
		return nil, ErrNotInitialized
	}
	if !Exists(FieldConfigPath) {
		log.Printf("[Embedded] %s not embedded, using built-in defaults", FieldConfigPath)
		return config.DefaultFieldConfig(), nil
	}

	data, err := ReadFile(FieldConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded field config: %w", err)
	}
	cfg, err := config.ParseFieldConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded field config: %w", err)
	}
	return cfg, nil
}
