package errors

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable 记录存储不可用（连接失败、查询出错或超时）
var ErrStoreUnavailable = errors.New("记录存储不可用")

// StoreUnavailable 包装底层存储错误，errors.Is 同时匹配 ErrStoreUnavailable 与原始错误
func StoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
