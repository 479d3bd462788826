// Package circuitbreaker 熔断器，保护Blob存储等远程依赖
//
// 状态机：
//
//	CLOSED --连续失败达到阈值--> OPEN --Timeout到期--> HALF_OPEN
//	HALF_OPEN --探测成功--> CLOSED
//	HALF_OPEN --探测失败--> OPEN
//
// OPEN状态下Execute直接返回ErrOpenState，不调用远程服务
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开，请求被拒绝
var ErrOpenState = errors.New("circuit breaker is open")

// Settings 熔断器配置
type Settings struct {
	// MaxRequests 半开状态允许通过的探测请求数，0视为1
	MaxRequests uint32
	// Interval 关闭状态下统计窗口长度，0表示不按时间重置
	Interval time.Duration
	// Timeout 打开状态持续时间，之后进入半开
	Timeout time.Duration
	// FailureThreshold 连续失败多少次后打开，0视为5
	FailureThreshold uint32
	// IsSuccessful 判断调用结果是否算成功，nil时err==nil即成功
	// Blob后端用它把"对象不存在"归为成功，避免误熔断
	IsSuccessful func(err error) bool
	// OnStateChange 状态变化回调（更新指标、写日志）
	OnStateChange func(name string, from, to State)
}

// Counts 当前窗口内的统计
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

func (c *Counts) success() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) failure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// Breaker 熔断器（并发安全）
type Breaker struct {
	name     string
	settings Settings
	now      func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃跨代的结果
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
func New(name string, settings Settings) *Breaker {
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 1
	}
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	if settings.IsSuccessful == nil {
		settings.IsSuccessful = func(err error) bool { return err == nil }
	}

	b := &Breaker{
		name:     name,
		settings: settings,
		now:      time.Now,
		state:    StateClosed,
	}
	b.resetWindow(b.now())
	return b
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.name
}

// Execute 在熔断保护下执行fn
// 熔断器打开时返回ErrOpenState，fn不会被调用
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	err = fn()
	b.after(generation, b.settings.IsSuccessful(err))
	return err
}

// State 当前状态（会触发OPEN → HALF_OPEN的超时判断）
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, _ := b.current(b.now())
	return state
}

// Counts 当前窗口统计
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, generation := b.current(b.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && b.counts.Requests >= b.settings.MaxRequests:
		return generation, ErrOpenState
	}

	b.counts.Requests++
	return generation, nil
}

func (b *Breaker) after(before uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state, generation := b.current(now)
	if generation != before {
		return
	}

	if success {
		b.counts.success()
		if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxRequests {
			b.setState(StateClosed, now)
		}
		return
	}

	b.counts.failure()
	switch state {
	case StateClosed:
		if b.counts.ConsecutiveFailures >= b.settings.FailureThreshold {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

func (b *Breaker) current(now time.Time) (State, uint64) {
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.resetWindow(now)
		}
	case StateOpen:
		if b.expiry.Before(now) {
			b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.generation++

	switch state {
	case StateClosed:
		b.resetWindow(now)
	case StateOpen:
		b.counts = Counts{}
		b.expiry = now.Add(b.settings.Timeout)
	case StateHalfOpen:
		b.counts = Counts{}
		b.expiry = time.Time{}
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}

func (b *Breaker) resetWindow(now time.Time) {
	b.counts = Counts{}
	if b.settings.Interval > 0 {
		b.expiry = now.Add(b.settings.Interval)
	} else {
		b.expiry = time.Time{}
	}
}
