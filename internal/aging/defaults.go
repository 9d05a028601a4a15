package aging

// Receivables is the bucket layout of the overdue payment and overdue
// creditor extracts.
func Receivables() Spec {
	return MustValid(Spec{
		{Label: "0 To 10 Days", Lower: 0, Upper: 11, AmountColumn: "0 To 10 Days"},
		{Label: "11 To 25 Days", Lower: 11, Upper: 26, AmountColumn: "11 To 25 Days"},
		{Label: "26 To 45 Days", Lower: 26, Upper: 46, AmountColumn: "26 To 45 Days"},
		{Label: "46 To 60 Days", Lower: 46, Upper: 61, AmountColumn: "46 To 60 Days"},
		{Label: "61 To 90 Days", Lower: 61, Upper: 91, AmountColumn: "61 To 90 Days"},
		{Label: "91 To 120 Days", Lower: 91, Upper: 121, AmountColumn: "91 To 120 Days"},
		{Label: "121 Days and above", Lower: 121, Upper: Unbounded, AmountColumn: "121 Days and above"},
	})
}

// SalesOverdue buckets open sales-order lines by days since posting.
// Lines posted today (age 0) fall below the first bucket.
func SalesOverdue() Spec {
	return MustValid(Spec{
		{Label: "1-15 Days", Lower: 1, Upper: 16},
		{Label: "16-30 Days", Lower: 16, Upper: 31},
		{Label: "31-60 Days", Lower: 31, Upper: 61},
		{Label: "61-90 Days", Lower: 61, Upper: 91},
		{Label: "90+ Days", Lower: 91, Upper: Unbounded},
	})
}

// Stock is the eight-bucket layout of the inventory ageing extract.
func Stock() Spec {
	return MustValid(Spec{
		{Label: "0–15 Days", Lower: 0, Upper: 16, QuantityColumn: "0-15Qty", AmountColumn: "0-15Value"},
		{Label: "16–30 Days", Lower: 16, Upper: 31, QuantityColumn: "16-30Qty", AmountColumn: "16-30Value"},
		{Label: "31–60 Days", Lower: 31, Upper: 61, QuantityColumn: "31-60Qty", AmountColumn: "31-60Value"},
		{Label: "61–90 Days", Lower: 61, Upper: 91, QuantityColumn: "61-90Qty", AmountColumn: "61-90Value"},
		{Label: "91–180 Days", Lower: 91, Upper: 181, QuantityColumn: "91-180Qty", AmountColumn: "91-180Value"},
		{Label: "181–360 Days", Lower: 181, Upper: 361, QuantityColumn: "181-360Qty", AmountColumn: "181-360Value"},
		{Label: "361–720 Days", Lower: 361, Upper: 721, QuantityColumn: "361-720Qty", AmountColumn: "361-720Value"},
		{Label: "721+ Days", Lower: 721, Upper: Unbounded, QuantityColumn: "721+Qty", AmountColumn: "721+DaysValue"},
	})
}

// FreshBoundary splits stock into fresh (under 31 days) and old.
const FreshBoundary = 31

// Tier groups adjacent stock buckets under one risk label.
type Tier struct {
	Label string
	Lower int
	Upper int
}

// StockTiers are the fresh / slow / risk / dead groupings of Stock().
func StockTiers() []Tier {
	return []Tier{
		{Label: "Fresh Stock Value", Lower: 0, Upper: 31},
		{Label: "Slow Moving Stock Value", Lower: 31, Upper: 91},
		{Label: "Risk Stock Value", Lower: 91, Upper: 361},
		{Label: "Dead Stock Value", Lower: 361, Upper: Unbounded},
	}
}
