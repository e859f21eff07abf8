//go:build !(js && wasm)

package app

// bridgeEnabled 桌面端和移动端使用虚拟页面观察器
const bridgeEnabled = false

// installBridge 非浏览器构建中没有页面可以桥接
func installBridge(_ *EbitenHost, _ float64) (release func()) {
	return func() {}
}
