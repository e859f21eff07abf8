//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前确保 Android 上的 saves 目录存在且可写
//
// gdata 在 Android 上使用 /data/data/{package}/ 作为根目录，但不会创建子目录。
func EnsureStorageDir() error {
	root, err := androidDataRoot()
	if err != nil {
		return fmt.Errorf("failed to resolve android data dir: %w", err)
	}

	savesDir := filepath.Join(root, "saves")
	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", savesDir, err)
	}

	probe := filepath.Join(savesDir, ".probe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", savesDir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回 Android 数据根目录（用于日志）
func GetStoragePath() string {
	root, err := androidDataRoot()
	if err != nil {
		return ""
	}
	return root
}

// androidDataRoot 通过 /proc/self/cmdline 中的包名拼出 /data/data/{package}
func androidDataRoot() (string, error) {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	// cmdline 以 NUL 分隔，第一个字段即包名
	pkg := string(bytes.TrimSpace(bytes.SplitN(cmdline, []byte{0}, 2)[0]))
	if pkg == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return filepath.Join("/data/data", pkg), nil
}
