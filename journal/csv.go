package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV writes the two tables as flat files, one row per record,
// flushed on every write.
type CSV struct {
	txns   *csv.Writer
	orders *csv.Writer
	tf, of *os.File
}

func NewCSV(txnsPath, ordersPath string) (*CSV, error) {
	tf, err := os.Create(txnsPath)
	if err != nil {
		return nil, err
	}
	of, err := os.Create(ordersPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ow := csv.NewWriter(of)

	if err := tw.Write([]string{"id", "time", "kind", "amount", "balance", "note"}); err != nil {
		return nil, err
	}
	if err := ow.Write([]string{"id", "symbol", "side", "quantity", "price", "limit", "tif", "status", "created_at", "closed_at", "note"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ow.Flush()
	if err := ow.Error(); err != nil {
		return nil, err
	}

	return &CSV{txns: tw, orders: ow, tf: tf, of: of}, nil
}

func (j *CSV) RecordTransaction(t TransactionRecord) error {
	err := j.txns.Write([]string{
		t.ID,
		t.Time.Format(time.RFC3339),
		t.Kind,
		f(t.Amount),
		f(t.Balance),
		t.Note,
	})
	if err != nil {
		return err
	}
	j.txns.Flush()
	return j.txns.Error()
}

func (j *CSV) RecordOrder(o OrderRecord) error {
	limit := ""
	if o.Limit != nil {
		limit = f(*o.Limit)
	}
	closed := ""
	if o.ClosedAt != nil {
		closed = o.ClosedAt.Format(time.RFC3339)
	}

	err := j.orders.Write([]string{
		o.ID,
		o.Symbol,
		o.Side,
		f(o.Quantity),
		f(o.Price),
		limit,
		o.TIF,
		o.Status,
		o.CreatedAt.Format(time.RFC3339),
		closed,
		o.Note,
	})
	if err != nil {
		return err
	}
	j.orders.Flush()
	return j.orders.Error()
}

func (j *CSV) Close() error {
	j.txns.Flush()
	if err := j.txns.Error(); err != nil {
		return err
	}
	j.orders.Flush()
	if err := j.orders.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.of.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
