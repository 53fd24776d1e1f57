package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// StepColumn is the only required learning-curve column.
const StepColumn = "step"

// Known metric columns of a learning-curve table.
const (
	MetricReward      = "reward"
	MetricSuccessRate = "success_rate"
	MetricDistilLoss  = "distil_loss"
	MetricBCFlowLoss  = "bc_flow_loss"
	MetricQLoss       = "q_loss"
	MetricCriticLoss  = "critic_loss"
	MetricMSE         = "mse"
)

// Metrics lists the known metric columns in display order.
var Metrics = []string{
	MetricReward,
	MetricSuccessRate,
	MetricDistilLoss,
	MetricBCFlowLoss,
	MetricQLoss,
	MetricCriticLoss,
	MetricMSE,
}

// CurveRow is one logged training step. Metrics absent from the row are nil.
type CurveRow struct {
	Step        int64          `mapstructure:"step"`
	Reward      *float64       `mapstructure:"reward"`
	SuccessRate *float64       `mapstructure:"success_rate"`
	DistilLoss  *float64       `mapstructure:"distil_loss"`
	BCFlowLoss  *float64       `mapstructure:"bc_flow_loss"`
	QLoss       *float64       `mapstructure:"q_loss"`
	CriticLoss  *float64       `mapstructure:"critic_loss"`
	MSE         *float64       `mapstructure:"mse"`
	Extra       map[string]any `mapstructure:",remain"`
}

// Metric returns the value of a named column for this row.
func (r CurveRow) Metric(name string) (float64, bool) {
	var p *float64
	switch name {
	case MetricReward:
		p = r.Reward
	case MetricSuccessRate:
		p = r.SuccessRate
	case MetricDistilLoss:
		p = r.DistilLoss
	case MetricBCFlowLoss:
		p = r.BCFlowLoss
	case MetricQLoss:
		p = r.QLoss
	case MetricCriticLoss:
		p = r.CriticLoss
	case MetricMSE:
		p = r.MSE
	default:
		v, ok := r.Extra[name].(float64)
		return v, ok
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// LearningCurve is a parsed learning-curve table.
type LearningCurve struct {
	Columns []string
	Rows    []CurveRow
	// Dropped counts data rows discarded for lacking an integer step.
	Dropped int
}

// MetricColumns returns the header columns other than step, in header order.
func (c *LearningCurve) MetricColumns() []string {
	if c == nil {
		return nil
	}
	cols := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		if col != StepColumn {
			cols = append(cols, col)
		}
	}
	return cols
}

// ParseCurves reads a delimited learning-curve table with a header row.
func ParseCurves(r io.Reader) (*LearningCurve, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]string, len(header))
	stepIdx := -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cols[i] = h
		if h == StepColumn && stepIdx < 0 {
			stepIdx = i
		}
	}
	if stepIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, StepColumn)
	}

	curve := &LearningCurve{Columns: cols}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if stepIdx >= len(record) {
			curve.Dropped++
			continue
		}
		step, ok := parseStep(record[stepIdx])
		if !ok {
			curve.Dropped++
			continue
		}

		fields := map[string]any{StepColumn: step}
		for i, col := range cols {
			if i == stepIdx || i >= len(record) || col == "" {
				continue
			}
			cell := strings.TrimSpace(record[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			fields[col] = v
		}

		var row CurveRow
		if err := mapstructure.Decode(fields, &row); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", len(curve.Rows)+curve.Dropped+1, err)
		}
		curve.Rows = append(curve.Rows, row)
	}

	return curve, nil
}

// parseStep accepts integers and integral floats such as "10000.0".
func parseStep(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
