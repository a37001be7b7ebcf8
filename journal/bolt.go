package journal

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/rustyeddy/papertrader/internal/id"
)

const (
	bucketTransactions = "transactions"
	bucketOrders       = "orders"
)

// Bolt is the structured-JSON journal backend: one bbolt bucket per
// table, ULID keys so records iterate in write order, JSON values.
type Bolt struct {
	db *bolt.DB
}

func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketTransactions)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketOrders))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (j *Bolt) RecordTransaction(t TransactionRecord) error {
	return j.put(bucketTransactions, t)
}

func (j *Bolt) RecordOrder(o OrderRecord) error {
	return j.put(bucketOrders, o)
}

func (j *Bolt) put(bucket string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(id.New()), data)
	})
}

// Transactions reads back every transaction record in write order.
func (j *Bolt) Transactions() ([]TransactionRecord, error) {
	var out []TransactionRecord
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTransactions)).ForEach(func(_, v []byte) error {
			var rec TransactionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, rec)
			return nil
		})
	})
	return out, err
}

// Orders reads back every order record in write order.
func (j *Bolt) Orders() ([]OrderRecord, error) {
	var out []OrderRecord
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketOrders)).ForEach(func(_, v []byte) error {
			var rec OrderRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, rec)
			return nil
		})
	})
	return out, err
}

func (j *Bolt) Close() error {
	return j.db.Close()
}
