package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 傳回原始碼專案根目錄（/project/utils/path/path.go → /project）
// 只在 go run / 測試時有意義，部署後的 binary 應以工作目錄為準
func RootPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Resolve 找設定檔：絕對路徑直接用；否則依序嘗試工作目錄、工作目錄/dir、專案根目錄/dir
func Resolve(name string, dir string) string {
	if filepath.IsAbs(name) {
		return name
	}
	candidates := []string{name}
	if dir != "" {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	candidates = append(candidates, filepath.Join(RootPath(), dir, name))
	for _, candidate := range candidates {
		if ok, _ := Exists(candidate); ok {
			return candidate
		}
	}
	// 都找不到時回傳最後一個，讓呼叫端的讀檔錯誤帶出完整路徑
	return candidates[len(candidates)-1]
}

// Exists 路徑是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
