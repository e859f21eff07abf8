//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设置为 1 时桌面端按手机视口运行（用于本地调试移动端粒子数量）
const MobileEmulateEnv = "PARTICLENET_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，除非设置了 MobileEmulateEnv
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
