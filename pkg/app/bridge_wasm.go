//go:build js && wasm

package app

import (
	"log"
	"syscall/js"
)

// bridgeEnabled 浏览器中由页面自己的 IntersectionObserver 驱动区块可见性
const bridgeEnabled = true

// bridgeGlobal 页面脚本可见的全局对象名
const bridgeGlobal = "particleNet"

// installBridge 在 window.particleNet 上注册回调：
//
//	particleNet.scroll()
//	particleNet.sectionVisible(id, visible)
//	particleNet.pointer(x, y)
//	particleNet.threshold  // 区块可见比例阈值，供页面的 IntersectionObserver 使用
//
// 回调运行在 JS 事件循环上，只向宿主队列投递事件。
// 返回的函数注销回调并删除全局对象。
func installBridge(h *EbitenHost, threshold float64) (release func()) {
	var callbacks []js.Func

	register := func(obj js.Value, name string, fn func(args []js.Value)) {
		cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
			fn(args)
			return nil
		})
		callbacks = append(callbacks, cb)
		obj.Set(name, cb)
	}

	obj := js.Global().Get("Object").New()
	register(obj, "scroll", func(_ []js.Value) {
		h.QueueScroll()
	})
	register(obj, "sectionVisible", func(args []js.Value) {
		if len(args) < 2 {
			return
		}
		h.QueueSection(args[0].String(), args[1].Truthy())
	})
	register(obj, "pointer", func(args []js.Value) {
		if len(args) < 2 {
			return
		}
		h.QueuePointer(args[0].Float(), args[1].Float())
	})
	obj.Set("threshold", threshold)
	js.Global().Set(bridgeGlobal, obj)
	log.Printf("[Bridge] window.%s installed (threshold %.2f)", bridgeGlobal, threshold)

	return func() {
		js.Global().Delete(bridgeGlobal)
		for _, cb := range callbacks {
			cb.Release()
		}
	}
}
