// Package keys 在多个受限额约束的 API Key 之间轮转。
package keys

import (
	"errors"
	"strings"
	"sync"
)

// ErrEmptyPool 凭证池为空或包含空 Key
var ErrEmptyPool = errors.New("credential pool is empty")

// Pool 凭证池：有序的 Key 列表与当前轮转下标
type Pool struct {
	mu     sync.Mutex
	tokens []string
	index  int
}

// NewPool 创建凭证池，空池视为配置错误
func NewPool(tokens []string) (*Pool, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyPool
	}
	cp := make([]string, len(tokens))
	for i, t := range tokens {
		if strings.TrimSpace(t) == "" {
			return nil, ErrEmptyPool
		}
		cp[i] = t
	}
	return &Pool{tokens: cp}, nil
}

// Size 池中 Key 的数量
func (p *Pool) Size() int { return len(p.tokens) }

// advance 返回当前 Key 并将下标加一（取模）
func (p *Pool) advance() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.tokens[p.index]
	p.index = (p.index + 1) % len(p.tokens)
	return t
}

// Rotator 轮询分发凭证，是修改池下标的唯一入口
type Rotator struct {
	pool *Pool
}

// NewRotator 基于凭证池创建轮转器
func NewRotator(pool *Pool) *Rotator {
	return &Rotator{pool: pool}
}

// NewRotatorFromKeys 便捷构造
func NewRotatorFromKeys(tokens []string) (*Rotator, error) {
	pool, err := NewPool(tokens)
	if err != nil {
		return nil, err
	}
	return NewRotator(pool), nil
}

// Next 返回当前 Key 并前进一位，并发安全
func (r *Rotator) Next() string {
	return r.pool.advance()
}

// Size 轮转周期
func (r *Rotator) Size() int {
	return r.pool.Size()
}
