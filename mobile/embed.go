//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// mobile/data/field.yaml 与项目根目录的 data/field.yaml 保持一致。
package mobile

import "embed"

//go:embed data/field.yaml
var dataFS embed.FS
