package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

// Ages returns whole days between each row's date and ref, comparing
// calendar dates. Rows without a date get Age{Days: 0, Known: false}.
func Ages(ds *tabular.Dataset, dateCol string, ref time.Time) []model.Age {
	ages := make([]model.Age, ds.Len())
	today := civil(ref)
	for r := range ages {
		v := ds.Value(dateCol, r)
		if v.Kind != tabular.KindTime {
			continue
		}
		ages[r] = model.Age{Days: int(today.Sub(civil(v.Time)).Hours() / 24), Known: true}
	}
	return ages
}

// AddAgeColumn stores Ages as a numeric column named ageCol.
func AddAgeColumn(ds *tabular.Dataset, dateCol, ageCol string, ref time.Time) ([]model.Age, error) {
	ages := Ages(ds, dateCol, ref)
	vals := make([]tabular.Value, len(ages))
	for i, a := range ages {
		vals[i] = tabular.Number(decimal.NewFromInt(int64(a.Days)))
	}
	if err := ds.AddColumn(ageCol, vals); err != nil {
		return nil, err
	}
	return ages, nil
}

// MeanAge averages known ages. ok is false when none are known.
func MeanAge(ages []model.Age) (mean decimal.Decimal, ok bool) {
	total, n := 0, 0
	for _, a := range ages {
		if a.Known {
			total += a.Days
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(n))), true
}

// UnknownAges counts rows whose age was defaulted.
func UnknownAges(ages []model.Age) int {
	n := 0
	for _, a := range ages {
		if !a.Known {
			n++
		}
	}
	return n
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
