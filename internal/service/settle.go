package service

import (
	"context"
	"sync"
)

// settled 单个工作单元的结果。Err 与 Value 二选一有效。
type settled[R any] struct {
	Value R
	Err   error
}

// settleAll 并发执行所有工作单元并收集每个单元的结果或错误。
// 单个单元失败不会取消其余单元，结果顺序与输入顺序一致。
func settleAll[T any, R any](ctx context.Context, units []T, fn func(context.Context, T) (R, error)) []settled[R] {
	results := make([]settled[R], len(units))
	if len(units) == 0 {
		return results
	}
	var wg sync.WaitGroup
	for i := range units {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			value, err := fn(ctx, units[idx])
			results[idx] = settled[R]{Value: value, Err: err}
		}(i)
	}
	wg.Wait()
	return results
}
