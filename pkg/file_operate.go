package pkg

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "stat %s", filePath)
	}
	return true, nil
}

// ReadFile 读取整个文件, 文件不存在时返回明确的错误
func ReadFile(filePath string) ([]byte, error) {
	if len(filePath) == 0 {
		return nil, errors.New("no input file path")
	}
	exist, err := CheckFileExist(filePath)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, errors.Errorf("input file %s not exist", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filePath)
	}
	return data, nil
}

// WriteFileOrStdout 写入文件, 路径为空时写到 stdout
func WriteFileOrStdout(filePath string, data []byte, stdout io.Writer) error {
	if len(filePath) == 0 {
		_, err := stdout.Write(data)
		return errors.Wrap(err, "write output")
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filePath)
	}
	return nil
}
