// Package model defines the chain and document models of the indexer.
package model

// Block is a chain block as reported by the Block Source.
type Block struct {
	Number          uint64
	Hash            string
	ParentHash      string
	Timestamp       uint64
	Miner           *string
	GasUsed         uint64
	GasLimit        uint64
	Difficulty      string
	TotalDifficulty *string
	Size            uint64
	Uncles          []string
	Transactions    []Transaction
}

// Transaction is a transaction inside a Block, in on-chain order.
type Transaction struct {
	Hash     string
	From     string
	To       *string
	Value    string
	Gas      uint64
	GasPrice string
	Nonce    uint64
	Index    *uint64
	Input    string
}

// ContractCreation reports whether the transaction deploys a contract.
func (t Transaction) ContractCreation() bool {
	return t.To == nil
}
