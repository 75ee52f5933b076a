// Package quote evaluates financing quotes: it resolves the configured rate,
// composes the principal and builds the amortization schedule. Interactive
// evaluation and document generation both go through Evaluate so their
// numbers cannot drift apart.
package quote

import (
	"context"
	"fmt"

	"github.com/iwvelando/financing-schedule/internal/config"
	"github.com/iwvelando/financing-schedule/internal/ratesource"
	"github.com/iwvelando/financing-schedule/pkg/amortization"
	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/datetime"
	"github.com/iwvelando/financing-schedule/pkg/mathutil"
	"github.com/iwvelando/financing-schedule/pkg/rate"
	"go.uber.org/zap"
)

// Result holds everything shown for one evaluated quote.
type Result struct {
	Name        string                `json:"name"`
	Client      string                `json:"client,omitempty"`
	Principal   float64               `json:"principal"`
	Rate        rate.Rate             `json:"rate"`
	MonthlyRate float64               `json:"monthlyRate"`
	Schedule    amortization.Schedule `json:"schedule"`
	DueDates    []string              `json:"dueDates,omitempty"`
}

// Evaluator evaluates quotes against a rate source.
type Evaluator struct {
	logger *zap.Logger
	source ratesource.Source
}

// NewEvaluator constructs an Evaluator. A nil source only supports quotes
// carrying an inline rate.
func NewEvaluator(logger *zap.Logger, source ratesource.Source) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if source == nil {
		source = ratesource.NewStatic(nil)
	}
	return &Evaluator{logger: logger, source: source}
}

// Evaluate computes the schedule for a single quote.
func (e *Evaluator) Evaluate(ctx context.Context, q config.Quote) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}

	r, err := e.resolveRate(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("quote %q: %w", q.Name, err)
	}
	if err := r.Validate(); err != nil {
		return Result{}, fmt.Errorf("quote %q: %w", q.Name, err)
	}

	result := Result{
		Name:        q.Name,
		Client:      q.Client,
		Principal:   q.Components.Principal(),
		Rate:        r,
		MonthlyRate: r.Monthly(),
	}
	result.Schedule = amortization.BuildSchedule(result.Principal, result.MonthlyRate, q.TermMonths, q.MonthlyInsurance)

	if q.StartDate != "" {
		result.DueDates, err = datetime.DueDates(q.StartDate, len(result.Schedule.Rows))
		if err != nil {
			return Result{}, fmt.Errorf("quote %q: invalid start date: %w", q.Name, err)
		}
	}

	if !result.Schedule.Empty() &&
		!mathutil.WithinTolerance(result.Schedule.TotalPrincipal(), result.Principal, constants.BalanceDustThreshold) {
		e.logger.Warn(fmt.Sprintf("quote %s repays a different principal than it finances", q.Name),
			zap.String("op", "quote.Evaluate"),
			zap.Float64("principal", result.Principal),
			zap.Float64("repaid", result.Schedule.TotalPrincipal()),
		)
	}

	if result.Schedule.Empty() {
		e.logger.Warn(fmt.Sprintf("quote %s produced an empty schedule", q.Name),
			zap.String("op", "quote.Evaluate"),
			zap.Float64("principal", result.Principal),
			zap.Float64("monthlyRate", result.MonthlyRate),
			zap.Int("termMonths", q.TermMonths),
		)
	} else {
		e.logger.Debug(fmt.Sprintf("evaluated quote %s", q.Name),
			zap.String("op", "quote.Evaluate"),
			zap.Float64("principal", result.Principal),
			zap.Float64("baseInstallment", result.Schedule.BaseInstallment),
			zap.Float64("totalInstallment", result.Schedule.TotalInstallment),
			zap.Int("periods", len(result.Schedule.Rows)),
		)
	}

	return result, nil
}

// EvaluateAll evaluates quotes in order and stops at the first failure.
func (e *Evaluator) EvaluateAll(ctx context.Context, quotes []config.Quote) ([]Result, error) {
	results := make([]Result, 0, len(quotes))
	for _, q := range quotes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := e.Evaluate(ctx, q)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Evaluator) resolveRate(ctx context.Context, q config.Quote) (rate.Rate, error) {
	if q.Rate != nil {
		return q.Rate.ToRate()
	}
	return e.source.Lookup(ctx, q.RateKey)
}

// NewSource builds the rate source described by the configuration: the
// static rate table, preceded by Redis when an address is configured.
func NewSource(logger *zap.Logger, conf *config.Configuration) (ratesource.Source, error) {
	table, err := conf.RateTable()
	if err != nil {
		return nil, err
	}
	static := ratesource.NewStatic(table)
	if conf.Redis.Address == "" {
		return static, nil
	}

	client := ratesource.NewRedisClient(ratesource.RedisOptions{
		Address:  conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	return ratesource.Chain{ratesource.NewRedis(logger, client, conf.Redis.KeyPrefix), static}, nil
}
