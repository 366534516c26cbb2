//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 桌面端入口是根目录的 main.go，这里只保留导出符号，
// 让 ./... 在不带 mobile 标签时也能编译此包。
package mobile

// Dummy 与 mobile.go 中的同名函数对应
func Dummy() {}
