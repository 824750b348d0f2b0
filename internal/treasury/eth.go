package treasury

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/blues/mfs/internal/config"
	"github.com/blues/mfs/internal/logger"
)

// transferGasLimit 原生转账固定 gas 上限
const transferGasLimit = 21000

// EthTreasury 以太坊资金出口，签名并发送原生转账
type EthTreasury struct {
	client        *ethclient.Client
	privateKey    *ecdsa.PrivateKey
	fromAddr      common.Address
	chainID       *big.Int
	confirmations int
	timeout       time.Duration
}

// NewEthTreasury 创建以太坊资金出口
func NewEthTreasury(cfg config.TreasuryConfig) (*EthTreasury, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &EthTreasury{
		client:        client,
		privateKey:    privateKey,
		fromAddr:      crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:       big.NewInt(cfg.ChainID),
		confirmations: cfg.Confirmations,
		timeout:       30 * time.Second,
	}, nil
}

// Transfer 向目标地址发送原生转账
func (t *EthTreasury) Transfer(to common.Address, amount *big.Int) error {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	nonce, err := t.client.PendingNonceAt(ctx, t.fromAddr)
	if err != nil {
		return fmt.Errorf("failed to fetch nonce: %w", err)
	}

	gasPrice, err := t.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, to, amount, transferGasLimit, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(t.chainID), t.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := t.client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.Info("Sent transfer of %s to %s, tx %s", amount.String(), to.Hex(), signedTx.Hash().Hex())

	if t.confirmations > 0 {
		if err := t.waitMined(ctx, signedTx.Hash()); err != nil {
			return err
		}
	}
	return nil
}

// waitMined 等待交易上链
func (t *EthTreasury) waitMined(ctx context.Context, hash common.Hash) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := t.client.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", hash.Hex())
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for transaction %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// Close 关闭客户端连接
func (t *EthTreasury) Close() {
	t.client.Close()
}
