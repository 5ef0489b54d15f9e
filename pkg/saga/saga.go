// Package saga 实现本地Saga编排
//
// 一个业务操作拆分为多个步骤，每个步骤带补偿操作；某一步失败时，
// 按逆序执行已完成步骤的补偿。MongoDB单文档写入是原子的，跨文档的
// 一致性（如"创建作者 + 升级用户角色"）由Saga保证最终一致。
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/pkg/metrics"
)

// Step 表示Saga中的一个步骤
// Action和Compensate都必须幂等
type Step struct {
	Name       string                          // 步骤名称（用于日志）
	Action     func(ctx context.Context) error // 正向操作
	Compensate func(ctx context.Context) error // 补偿操作，可以为nil
}

// Saga 表示一次Saga执行
// 不可复用，也不支持并发调用Execute
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
	logger   *zap.Logger
}

// NewSaga 创建Saga
//
// 示例：
//
//	s := saga.NewSaga("register_author", 10*time.Second, logger)
//	s.AddStep("create_author", createAuthor, deleteAuthor)
//	s.AddStep("promote_user", promoteUser, nil)
//	err := s.Execute(ctx)
func NewSaga(name string, timeout time.Duration, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{
		name:    name,
		steps:   make([]Step, 0),
		timeout: timeout,
		logger:  logger,
	}
}

// AddStep 添加一个步骤，按添加顺序执行，按逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga
// 步骤失败或超时时触发补偿，返回的错误包装了失败步骤的原始错误
func (s *Saga) Execute(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.IncCounterVec(metrics.SagaExecutionsTotal, map[string]string{"saga": s.name, "result": result})
		metrics.ObserveHistogram(metrics.SagaExecutionDuration, time.Since(start).Seconds())
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.compensate(context.WithoutCancel(ctx))
			return fmt.Errorf("saga %s timed out: %w", s.name, ctxErr)
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				// 补偿使用不可取消的Context
				s.compensate(context.WithoutCancel(ctx))
				return &StepError{Saga: s.name, Index: i, Step: step.Name, Err: err}
			}
		}

		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 逆序执行补偿
// 某个补偿失败时记录日志并继续执行其余补偿
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}

		metrics.IncCounter(metrics.SagaCompensationsTotal)
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
		}
	}

	s.executed = nil
}

// StepError 步骤执行失败
type StepError struct {
	Saga  string
	Index int
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("saga %s step[%d:%s] failed: %v", e.Saga, e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep 返回失败步骤的名称，不是StepError时返回空字符串
func FailedStep(err error) string {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}
	return ""
}
