// Package circuitbreaker 为外部服务调用（支付网关）提供熔断保护
//
// 状态转换：CLOSED → OPEN → HALF_OPEN → CLOSED
//   - CLOSED: 请求正常通过，统计失败次数
//   - OPEN: 快速失败，Timeout之后转为HALF_OPEN
//   - HALF_OPEN: 放行MaxRequests个探测请求，成功则关闭，失败则重新打开
//
// 状态机由sony/gobreaker实现，本包负责配置、Prometheus指标和状态变化日志。
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/xiebiao/ebookstore/pkg/metrics"
)

// State 熔断器状态
type State = gobreaker.State

const (
	StateClosed   = gobreaker.StateClosed
	StateHalfOpen = gobreaker.StateHalfOpen
	StateOpen     = gobreaker.StateOpen
)

// Counts 统计数据
type Counts = gobreaker.Counts

var (
	// ErrOpenState 熔断器打开
	ErrOpenState = gobreaker.ErrOpenState
	// ErrTooManyRequests 半开状态下探测请求已满
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
)

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大请求数
	MaxRequests uint32

	// Interval 关闭状态下的统计窗口，0表示从不清零
	Interval time.Duration

	// Timeout OPEN状态持续时间
	Timeout time.Duration

	// ReadyToTrip 判断是否应该打开熔断器，为nil时连续失败5次熔断
	ReadyToTrip func(counts Counts) bool

	// IsSuccessful 判断一次调用是否计为成功
	// 为nil时只有err == nil计为成功；调用方可以把4xx类业务错误也计为成功
	IsSuccessful func(err error) bool
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
	}
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name          string
	breaker       *gobreaker.CircuitBreaker[any]
	onStateChange func(name string, from State, to State)
}

// NewCircuitBreaker 创建熔断器
//
// 示例：
//
//	cb := NewCircuitBreaker("stripe", Config{
//	    MaxRequests: 1,
//	    Interval:    60 * time.Second,
//	    Timeout:     30 * time.Second,
//	    ReadyToTrip: func(counts Counts) bool {
//	        return counts.ConsecutiveFailures >= 5
//	    },
//	})
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	cb := &CircuitBreaker{name: name}

	readyToTrip := config.ReadyToTrip
	if readyToTrip == nil {
		readyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		}
	}

	cb.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:         name,
		MaxRequests:  config.MaxRequests,
		Interval:     config.Interval,
		Timeout:      config.Timeout,
		ReadyToTrip:  readyToTrip,
		IsSuccessful: config.IsSuccessful,
		OnStateChange: func(name string, from State, to State) {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, stateValue(to))
			if cb.onStateChange != nil {
				cb.onStateChange(name, from, to)
			}
		},
	})
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, stateValue(StateClosed))

	return cb
}

// SetStateChangeCallback 设置状态变化回调（记录日志、告警）
// 需要在第一次Execute之前调用
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.onStateChange = fn
}

// Execute 在熔断保护下执行请求
// 熔断器打开时返回ErrOpenState，不调用req
func (cb *CircuitBreaker) Execute(req func() error) error {
	_, err := cb.breaker.Execute(func() (any, error) {
		return nil, req()
	})
	cb.record(err)
	return err
}

// Call 在熔断保护下执行带返回值的请求
func Call[T any](cb *CircuitBreaker, req func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(func() error {
		var err error
		result, err = req()
		return err
	})
	return result, err
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// State 获取当前状态
func (cb *CircuitBreaker) State() State {
	return cb.breaker.State()
}

// Counts 获取当前统计数据
func (cb *CircuitBreaker) Counts() Counts {
	return cb.breaker.Counts()
}

// IsRejected 是否为熔断器拒绝的请求
func IsRejected(err error) bool {
	return errors.Is(err, ErrOpenState) || errors.Is(err, ErrTooManyRequests)
}

func (cb *CircuitBreaker) record(err error) {
	result := "success"
	switch {
	case IsRejected(err):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": cb.name, "result": result})
}

// stateValue 状态映射为Gauge值
func stateValue(state State) float64 {
	switch state {
	case StateClosed:
		return 0
	case StateHalfOpen:
		return 1
	case StateOpen:
		return 2
	default:
		return -1
	}
}
