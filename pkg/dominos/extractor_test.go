package dominos

import "testing"

func TestExtractPercentCoupons(t *testing.T) {
	tests := []struct {
		name    string
		entries []CouponEntry
		want    []CouponEntry
	}{
		{
			name: "keeps only percent descriptions",
			entries: []CouponEntry{
				{Description: "20% off any large pizza", Code: "ABC", Price: "$5"},
				{Description: "Free delivery", Code: "XYZ"},
			},
			want: []CouponEntry{
				{Description: "20% off any large pizza", Code: "ABC", Price: "$5"},
			},
		},
		{
			name: "source order preserved",
			entries: []CouponEntry{
				{Description: "10% off", Code: "Q1"},
				{Description: "2 for 1 Tuesday", Code: "T2"},
				{Description: "30% off online orders", Code: "Q3"},
			},
			want: []CouponEntry{
				{Description: "10% off", Code: "Q1"},
				{Description: "30% off online orders", Code: "Q3"},
			},
		},
		{
			name: "no qualifying entries yields empty",
			entries: []CouponEntry{
				{Description: "Free breadsticks", Code: "BS"},
			},
			want: nil,
		},
		{
			name:    "empty listing",
			entries: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPercentCoupons(tt.entries)
			if len(got) != len(tt.want) {
				t.Fatalf("unexpected count: got %d want %d (values: %v)", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("idx %d: got %+v want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
