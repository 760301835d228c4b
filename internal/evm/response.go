package evm

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/blockindexer/internal/model"
)

type (
	transactionResponse struct {
		Hash             string          `json:"hash"`
		From             string          `json:"from"`
		To               *string         `json:"to"`
		Value            *hexutil.Big    `json:"value"`
		Gas              hexutil.Uint64  `json:"gas"`
		GasPrice         *hexutil.Big    `json:"gasPrice"`
		Nonce            hexutil.Uint64  `json:"nonce"`
		TransactionIndex *hexutil.Uint64 `json:"transactionIndex"`
		Input            hexutil.Bytes   `json:"input"`
	}

	blockResponse struct {
		Number          *hexutil.Uint64       `json:"number"`
		Hash            string                `json:"hash"`
		ParentHash      string                `json:"parentHash"`
		Timestamp       hexutil.Uint64        `json:"timestamp"`
		Miner           *string               `json:"miner"`
		GasUsed         hexutil.Uint64        `json:"gasUsed"`
		GasLimit        hexutil.Uint64        `json:"gasLimit"`
		Difficulty      *hexutil.Big          `json:"difficulty"`
		TotalDifficulty *hexutil.Big          `json:"totalDifficulty"`
		Size            *hexutil.Uint64       `json:"size"`
		Uncles          []string              `json:"uncles"`
		Transactions    []transactionResponse `json:"transactions"`
	}
)

func (t transactionResponse) toModel() model.Transaction {
	var index *uint64
	if t.TransactionIndex != nil {
		v := uint64(*t.TransactionIndex)
		index = &v
	}
	return model.Transaction{
		Hash:     t.Hash,
		From:     t.From,
		To:       optionalAddress(t.To),
		Value:    decimal(t.Value),
		Gas:      uint64(t.Gas),
		GasPrice: decimal(t.GasPrice),
		Nonce:    uint64(t.Nonce),
		Index:    index,
		Input:    hexutil.Encode(t.Input),
	}
}

func (b blockResponse) toModel(number uint64) *model.Block {
	txs := make([]model.Transaction, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		txs = append(txs, tx.toModel())
	}
	if len(txs) == 0 {
		txs = nil
	}

	var size uint64
	if b.Size != nil {
		size = uint64(*b.Size)
	}
	var totalDifficulty *string
	if b.TotalDifficulty != nil {
		v := decimal(b.TotalDifficulty)
		totalDifficulty = &v
	}
	var uncles []string
	if len(b.Uncles) > 0 {
		uncles = b.Uncles
	}

	return &model.Block{
		Number:          number,
		Hash:            b.Hash,
		ParentHash:      b.ParentHash,
		Timestamp:       uint64(b.Timestamp),
		Miner:           optionalAddress(b.Miner),
		GasUsed:         uint64(b.GasUsed),
		GasLimit:        uint64(b.GasLimit),
		Difficulty:      decimal(b.Difficulty),
		TotalDifficulty: totalDifficulty,
		Size:            size,
		Uncles:          uncles,
		Transactions:    txs,
	}
}

func decimal(v *hexutil.Big) string {
	if v == nil {
		return "0"
	}
	return v.ToInt().String()
}

func optionalAddress(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	s := *v
	return &s
}
