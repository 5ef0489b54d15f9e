// Package payment 基于Stripe实现payment.Gateway
package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/domain/payment"
	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	"github.com/xiebiao/ebookstore/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

const breakerName = "stripe"

// sessionGetter 查询Checkout Session（*session.Client实现）
type sessionGetter interface {
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// customerGetter 查询Customer（*customer.Client实现）
type customerGetter interface {
	Get(id string, params *stripe.CustomerParams) (*stripe.Customer, error)
}

// Gateway Stripe支付网关
// 设计说明：
// 1. 每次调用经过熔断器，Stripe不可用时快速失败
// 2. 资源不存在（404）是业务结果，不计入熔断失败
// 3. Stripe错误转换为payment领域错误
type Gateway struct {
	sessions  sessionGetter
	customers customerGetter
	breaker   *circuitbreaker.CircuitBreaker
	logger    *zap.Logger
}

var _ payment.Gateway = (*Gateway)(nil)

// NewGateway 创建Stripe网关
func NewGateway(cfg config.PaymentConfig, logger *zap.Logger) *Gateway {
	api := client.New(cfg.StripeSecretKey, nil)
	return newGateway(api.CheckoutSessions, api.Customers, newBreaker(cfg.Breaker), logger)
}

func newGateway(sessions sessionGetter, customers customerGetter, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) *Gateway {
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	return &Gateway{sessions: sessions, customers: customers, breaker: breaker, logger: logger}
}

func newBreaker(cfg config.BreakerConfig) *circuitbreaker.CircuitBreaker {
	cbCfg := circuitbreaker.DefaultConfig()
	if cfg.MaxRequests > 0 {
		cbCfg.MaxRequests = cfg.MaxRequests
	}
	if cfg.Interval > 0 {
		cbCfg.Interval = cfg.Interval
	}
	if cfg.Timeout > 0 {
		cbCfg.Timeout = cfg.Timeout
	}
	if threshold := cfg.FailureThreshold; threshold > 0 {
		cbCfg.ReadyToTrip = func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		}
	}
	cbCfg.IsSuccessful = func(err error) bool {
		return err == nil || isNotFound(err)
	}
	return circuitbreaker.NewCircuitBreaker(breakerName, cbCfg)
}

// CheckoutSession 查询结账会话
func (g *Gateway) CheckoutSession(ctx context.Context, sessionID string) (*payment.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := circuitbreaker.Call(g.breaker, func() (*stripe.CheckoutSession, error) {
		return g.sessions.Get(sessionID, params)
	})
	if err != nil {
		return nil, g.mapError(err, "checkout session")
	}

	out := &payment.CheckoutSession{ID: s.ID}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	return out, nil
}

// Customer 查询客户，已删除的客户视为不存在
func (g *Gateway) Customer(ctx context.Context, customerID string) (*payment.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	c, err := circuitbreaker.Call(g.breaker, func() (*stripe.Customer, error) {
		return g.customers.Get(customerID, params)
	})
	if err != nil {
		return nil, g.mapError(err, "customer")
	}
	if c.Deleted {
		return nil, payment.ErrSessionNotFound
	}

	return &payment.Customer{ID: c.ID, Metadata: c.Metadata}, nil
}

// mapError Stripe错误 → 领域错误
func (g *Gateway) mapError(err error, resource string) error {
	switch {
	case isNotFound(err):
		return apperrors.WithCause(payment.ErrSessionNotFound, err)
	case circuitbreaker.IsRejected(err):
		g.logger.Warn("stripe call rejected by circuit breaker", zap.String("resource", resource))
		return apperrors.WithCause(payment.ErrGatewayUnavailable, err)
	default:
		g.logger.Error("stripe call failed", zap.String("resource", resource), zap.Error(err))
		return apperrors.WithCause(payment.ErrGatewayUnavailable, err)
	}
}

func isNotFound(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing
}
