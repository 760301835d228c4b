package model

import (
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// IndexedBlock is the persisted document for one block in the `{prefix}-blocks` namespace.
type IndexedBlock struct {
	Number           uint64               `json:"number"`
	Hash             string               `json:"hash"`
	ParentHash       string               `json:"parent_hash"`
	Timestamp        uint64               `json:"timestamp"`
	Miner            *string              `json:"miner,omitempty"`
	GasUsed          uint64               `json:"gas_used"`
	GasLimit         uint64               `json:"gas_limit"`
	Difficulty       string               `json:"difficulty"`
	TotalDifficulty  *string              `json:"total_difficulty,omitempty"`
	Size             uint64               `json:"size"`
	Uncles           []string             `json:"uncles"`
	TransactionCount uint64               `json:"transaction_count"`
	Transactions     []IndexedTransaction `json:"transactions"`
	IndexedAt        time.Time            `json:"indexed_at"`
}

// IndexedTransaction is a transaction nested in an IndexedBlock. Position is the sequence
// position inside the block and orders transactions whose TransactionIndex is absent.
type IndexedTransaction struct {
	Hash             string  `json:"hash"`
	From             string  `json:"from"`
	To               *string `json:"to,omitempty"`
	Value            string  `json:"value"`
	Gas              uint64  `json:"gas"`
	GasPrice         string  `json:"gas_price"`
	Nonce            uint64  `json:"nonce"`
	TransactionIndex *uint64 `json:"transaction_index,omitempty"`
	Position         uint64  `json:"position"`
	Input            string  `json:"input"`
}

// DocumentID is the stable destination identifier of the block document.
func (b IndexedBlock) DocumentID() string {
	return strconv.FormatUint(b.Number, 10)
}

// NewIndexedBlock projects a Block into its document form. It fails with ErrSerialization
// when a required field is missing or a quantity is not a base-10 integer.
func NewIndexedBlock(b Block, indexedAt time.Time) (IndexedBlock, error) {
	if b.Hash == "" {
		return IndexedBlock{}, fmt.Errorf("%w: block %d has no hash", ErrSerialization, b.Number)
	}
	if b.ParentHash == "" && b.Number > 0 {
		return IndexedBlock{}, fmt.Errorf("%w: block %d has no parent hash", ErrSerialization, b.Number)
	}
	difficulty, err := quantity(b.Difficulty, "difficulty")
	if err != nil {
		return IndexedBlock{}, fmt.Errorf("%w: block %d: %v", ErrSerialization, b.Number, err)
	}
	if b.TotalDifficulty != nil {
		if _, err := quantity(*b.TotalDifficulty, "total difficulty"); err != nil {
			return IndexedBlock{}, fmt.Errorf("%w: block %d: %v", ErrSerialization, b.Number, err)
		}
	}

	txs := make([]IndexedTransaction, 0, len(b.Transactions))
	for i, tx := range b.Transactions {
		itx, err := newIndexedTransaction(tx, uint64(i))
		if err != nil {
			return IndexedBlock{}, fmt.Errorf("%w: block %d transaction %d: %v", ErrSerialization, b.Number, i, err)
		}
		txs = append(txs, itx)
	}

	uncles := make([]string, len(b.Uncles))
	copy(uncles, b.Uncles)

	return IndexedBlock{
		Number:           b.Number,
		Hash:             b.Hash,
		ParentHash:       b.ParentHash,
		Timestamp:        b.Timestamp,
		Miner:            cloneString(b.Miner),
		GasUsed:          b.GasUsed,
		GasLimit:         b.GasLimit,
		Difficulty:       difficulty,
		TotalDifficulty:  cloneString(b.TotalDifficulty),
		Size:             b.Size,
		Uncles:           uncles,
		TransactionCount: uint64(len(txs)),
		Transactions:     txs,
		IndexedAt:        indexedAt.UTC(),
	}, nil
}

func newIndexedTransaction(tx Transaction, position uint64) (IndexedTransaction, error) {
	if tx.Hash == "" {
		return IndexedTransaction{}, fmt.Errorf("missing hash")
	}
	if tx.From == "" {
		return IndexedTransaction{}, fmt.Errorf("transaction %s has no sender", tx.Hash)
	}
	value, err := quantity(tx.Value, "value")
	if err != nil {
		return IndexedTransaction{}, fmt.Errorf("transaction %s: %v", tx.Hash, err)
	}
	gasPrice, err := quantity(tx.GasPrice, "gas price")
	if err != nil {
		return IndexedTransaction{}, fmt.Errorf("transaction %s: %v", tx.Hash, err)
	}

	var index *uint64
	if tx.Index != nil {
		v := *tx.Index
		index = &v
	}

	return IndexedTransaction{
		Hash:             tx.Hash,
		From:             tx.From,
		To:               cloneString(tx.To),
		Value:            value,
		Gas:              tx.Gas,
		GasPrice:         gasPrice,
		Nonce:            tx.Nonce,
		TransactionIndex: index,
		Position:         position,
		Input:            tx.Input,
	}, nil
}

// Block restores the chain view of the document. Transactions come back in position order.
func (b IndexedBlock) Block() Block {
	var txs []Transaction
	if len(b.Transactions) > 0 {
		txs = make([]Transaction, len(b.Transactions))
		for i, itx := range b.Transactions {
			pos := itx.Position
			if pos >= uint64(len(txs)) {
				pos = uint64(i)
			}
			txs[pos] = itx.Transaction()
		}
	}

	var uncles []string
	if len(b.Uncles) > 0 {
		uncles = make([]string, len(b.Uncles))
		copy(uncles, b.Uncles)
	}

	return Block{
		Number:          b.Number,
		Hash:            b.Hash,
		ParentHash:      b.ParentHash,
		Timestamp:       b.Timestamp,
		Miner:           cloneString(b.Miner),
		GasUsed:         b.GasUsed,
		GasLimit:        b.GasLimit,
		Difficulty:      b.Difficulty,
		TotalDifficulty: cloneString(b.TotalDifficulty),
		Size:            b.Size,
		Uncles:          uncles,
		Transactions:    txs,
	}
}

// Transaction restores the chain view of the nested document.
func (t IndexedTransaction) Transaction() Transaction {
	var index *uint64
	if t.TransactionIndex != nil {
		v := *t.TransactionIndex
		index = &v
	}
	return Transaction{
		Hash:     t.Hash,
		From:     t.From,
		To:       cloneString(t.To),
		Value:    t.Value,
		Gas:      t.Gas,
		GasPrice: t.GasPrice,
		Nonce:    t.Nonce,
		Index:    index,
		Input:    t.Input,
	}
}

// quantity normalizes a base-10 unsigned integer. Empty means zero.
func quantity(v, field string) (string, error) {
	if v == "" {
		return "0", nil
	}
	n, ok := new(big.Int).SetString(v, 10)
	if !ok || n.Sign() < 0 {
		return "", fmt.Errorf("%s %q is not an unsigned base-10 integer", field, v)
	}
	return n.String(), nil
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
