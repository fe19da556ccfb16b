package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one sales transaction of a single product.
type Sale struct {
	ID        int                 `json:"id"`
	ProductID int                 `json:"productId"`
	SaleQty   int                 `json:"saleQty"`
	SalePrice decimal.NullDecimal `json:"salePrice"`
	SaleDate  *Timestamp          `json:"saleDate"`
}

// Timestamp decodes the date formats the sales API has been seen to emit,
// including zone-less ISO timestamps, which time.Time rejects.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// ChartSeries is a chart-ready time series: Labels[i] pairs with Values[i].
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}
