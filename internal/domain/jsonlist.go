package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/lv"
)

// The embedded list columns (positions, assigned trades, order products)
// are stored as JSON documents, matching the shape the upstream estimating
// and ordering systems deliver. The Valuer/Scanner implementations keep the
// models portable between postgres (jsonb) and the sqlite test databases.

// PositionList is an embedded list of LV positions.
type PositionList []lv.Position

func (l PositionList) Value() (driver.Value, error) { return jsonValue(l) }

func (l *PositionList) Scan(value interface{}) error { return jsonScan(value, l) }

// AssignedTradeList is an embedded list of assigned trades.
type AssignedTradeList []lv.AssignedTrade

func (l AssignedTradeList) Value() (driver.Value, error) { return jsonValue(l) }

func (l *AssignedTradeList) Scan(value interface{}) error { return jsonScan(value, l) }

// OrderProductList is an embedded list of order product lines.
type OrderProductList []finance.OrderProduct

func (l OrderProductList) Value() (driver.Value, error) { return jsonValue(l) }

func (l *OrderProductList) Scan(value interface{}) error { return jsonScan(value, l) }

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedded list: %w", err)
	}
	return string(data), nil
}

func jsonScan(value interface{}, target interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T for embedded list", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
