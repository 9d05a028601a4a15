package aggregate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/tabular"
)

// build makes a dataset from literal rows: strings become text cells,
// ints and decimals numbers, times dates, nil an empty cell.
func build(names []string, rows ...[]any) *tabular.Dataset {
	ds := tabular.New(names)
	for _, row := range rows {
		vals := make([]tabular.Value, len(row))
		for i, c := range row {
			switch v := c.(type) {
			case nil:
			case string:
				vals[i] = tabular.Text(v)
			case int:
				vals[i] = tabular.Number(decimal.NewFromInt(int64(v)))
			case decimal.Decimal:
				vals[i] = tabular.Number(v)
			case time.Time:
				vals[i] = tabular.Time(v)
			default:
				panic(fmt.Sprintf("unsupported cell %T", c))
			}
		}
		ds.AppendRow(vals)
	}
	return ds
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
