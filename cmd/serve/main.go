// Package main 是浏览器版本的本地开发服务器
//
// Usage:
//
//	GOOS=js GOARCH=wasm go build -o web/static/particlenet.wasm .
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/static/
//	go run ./cmd/serve [--web web]
//
// 环境变量（可写在 .env 中）：
//
//	PORT    监听端口，默认 8080
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
)

var webFlag = flag.String("web", "web", "Directory containing index.html and static/")

func main() {
	flag.Parse()

	r := newRouter(*webFlag)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("[Serve] Serving %s on :%s", *webFlag, port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// newRouter 页面、wasm 静态资源和健康检查
func newRouter(webDir string) *gin.Engine {
	r := gin.Default()

	r.StaticFile("/", filepath.Join(webDir, "index.html"))
	r.Static("/static", filepath.Join(webDir, "static"))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
