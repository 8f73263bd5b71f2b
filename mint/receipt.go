package mint

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Model identifies which distribution algorithm produced a receipt.
type Model uint8

const (
	FlatModel     Model = 1
	WeightedModel Model = 2
)

func (m Model) String() string {
	switch m {
	case FlatModel:
		return "flat"
	case WeightedModel:
		return "weighted"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (m Model) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Payout is a single BNC deposit made during a distribution round. Asset is
// zero for flat rounds.
type Payout struct {
	Asset   AssetID
	Account common.Address
	Amount  *big.Int
}

// Receipt summarises a completed distribution round.
type Receipt struct {
	Block   uint64
	Model   Model
	Pool    *big.Int // drained pool
	Paid    *big.Int // sum of payouts
	Dust    *big.Int // Pool - Paid, lost to truncation
	Payouts []Payout
}

func newReceipt(block uint64, model Model, pool *uint256.Int) *Receipt {
	return &Receipt{
		Block: block,
		Model: model,
		Pool:  pool.ToBig(),
		Paid:  new(big.Int),
		Dust:  new(big.Int),
	}
}

func (r *Receipt) add(asset AssetID, account common.Address, amount *uint256.Int) {
	amt := amount.ToBig()
	r.Payouts = append(r.Payouts, Payout{Asset: asset, Account: account, Amount: amt})
	r.Paid.Add(r.Paid, amt)
}

func (r *Receipt) seal() {
	r.Dust = new(big.Int).Sub(r.Pool, r.Paid)
}

// PaidTo sums every payout made to account in the round.
func (r *Receipt) PaidTo(account common.Address) *big.Int {
	sum := new(big.Int)
	for _, p := range r.Payouts {
		if p.Account == account {
			sum.Add(sum, p.Amount)
		}
	}
	return sum
}

var receiptPrefix = []byte("mint-receipt-") // receiptPrefix + num (uint64 big endian) -> rlp(Receipt)

func receiptKey(block uint64) []byte {
	key := make([]byte, len(receiptPrefix)+8)
	copy(key, receiptPrefix)
	binary.BigEndian.PutUint64(key[len(receiptPrefix):], block)
	return key
}

// WriteReceipt stores the RLP encoding of r keyed by its block number.
func WriteReceipt(db ethdb.KeyValueWriter, r *Receipt) error {
	data, err := rlp.EncodeToBytes(r)
	if err != nil {
		return err
	}
	return db.Put(receiptKey(r.Block), data)
}

// ReadReceipt loads the receipt of the round issued at block.
func ReadReceipt(db ethdb.KeyValueReader, block uint64) (*Receipt, error) {
	data, err := db.Get(receiptKey(block))
	if err != nil {
		return nil, err
	}
	r := new(Receipt)
	if err := rlp.DecodeBytes(data, r); err != nil {
		return nil, err
	}
	return r, nil
}
