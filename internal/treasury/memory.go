package treasury

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/blues/mfs/internal/logger"
)

// Transfer 一笔已执行的出账
type Transfer struct {
	To     common.Address
	Amount *big.Int
}

// MemoryTreasury 进程内资金出口，开发模式和测试使用
type MemoryTreasury struct {
	mu        sync.Mutex
	transfers []Transfer
}

// NewMemoryTreasury 创建进程内资金出口
func NewMemoryTreasury() *MemoryTreasury {
	return &MemoryTreasury{}
}

// Transfer 记录一笔出账
func (t *MemoryTreasury) Transfer(to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.transfers = append(t.transfers, Transfer{To: to, Amount: new(big.Int).Set(amount)})
	logger.Info("Recorded transfer of %s to %s", amount.String(), to.Hex())
	return nil
}

// Transfers 已执行出账的副本
func (t *MemoryTreasury) Transfers() []Transfer {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Transfer, len(t.transfers))
	copy(out, t.transfers)
	return out
}
