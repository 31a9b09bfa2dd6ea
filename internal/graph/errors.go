package graph

import (
	"errors"
	"fmt"
)

// ErrNotFound 根实体（课程或模块）不存在
var ErrNotFound = errors.New("根实体不存在")

// 根实体种类
const (
	KindCourse = "course"
	KindModule = "module"
)

// NotFoundError 携带未找到的实体种类与代码，errors.Is(err, ErrNotFound) 成立
type NotFoundError struct {
	Kind string
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q 不存在", e.Kind, e.Code)
}

// Is 使 errors.Is(err, ErrNotFound) 匹配
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
