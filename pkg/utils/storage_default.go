//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需准备目录
// 设置文件由 gdata 写到用户数据目录，目录不存在时 gdata 会自行创建
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台由 gdata 决定位置，这里返回空字符串
func GetStoragePath() string {
	return ""
}
