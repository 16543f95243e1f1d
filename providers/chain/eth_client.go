package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Amity808/crypt-bappgift/services/monitoring/logging"
)

// EthClient talks to the gift escrow contract over JSON-RPC.
type EthClient struct {
	client      *ethclient.Client
	contract    *bind.BoundContract
	abi         abi.ABI
	address     common.Address
	chainID     *big.Int
	network     Network
	privateKey  *ecdsa.PrivateKey
	fromAddress common.Address
	transacts   *bind.TransactOpts
	logger      *logging.Logger
}

type EthClientConfig struct {
	RPCURL          string
	PrivateKeyHex   string
	ContractAddress string
}

func NewEthClient(ctx context.Context, cfg EthClientConfig, logger *logging.Logger) (*EthClient, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("gift contract address is required")
	}
	if cfg.PrivateKeyHex == "" {
		return nil, fmt.Errorf("operator private key is required")
	}

	cli, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	chainID, err := cli.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}

	// Refuse to operate against a network the contract is not deployed on.
	network, ok := NetworkByID(chainID.Int64())
	if !ok {
		return nil, NewChainError(ErrUnsupportedNetwork, "", chainID.String())
	}

	parsedABI, err := abi.JSON(strings.NewReader(GiftABI))
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}

	address := common.HexToAddress(cfg.ContractAddress)
	bound := bind.NewBoundContract(address, parsedABI, cli, cli, cli)

	pk, err := parsePrivateKey(cfg.PrivateKeyHex)
	if err != nil {
		return nil, err
	}

	publicKey, ok := pk.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to cast public key to ECDSA")
	}
	fromAddress := crypto.PubkeyToAddress(*publicKey)

	txOpts, err := bind.NewKeyedTransactorWithChainID(pk, chainID)
	if err != nil {
		return nil, fmt.Errorf("transactor: %w", err)
	}
	txOpts.GasLimit = 0 // let node estimate
	txOpts.GasPrice = nil
	txOpts.Nonce = nil

	logger.Info("chain client initialized",
		"chain_id", chainID.String(),
		"network", network.Name,
		"operator", fromAddress.Hex())

	return &EthClient{
		client:      cli,
		contract:    bound,
		abi:         parsedABI,
		address:     address,
		chainID:     chainID,
		network:     network,
		privateKey:  pk,
		fromAddress: fromAddress,
		transacts:   txOpts,
		logger:      logger,
	}, nil
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(hexKey, "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// Network returns the configured network descriptor.
func (c *EthClient) Network() Network {
	return c.network
}

// OperatorAddress is the address signing on behalf of this service.
func (c *EthClient) OperatorAddress() string {
	return c.fromAddress.Hex()
}

func (c *EthClient) Close() {
	c.client.Close()
}

func (c *EthClient) Ping(ctx context.Context) error {
	_, err := c.client.BlockNumber(ctx)
	return err
}

func (c *EthClient) CreateGiftCard(ctx context.Context, req CreateGiftCardRequest) (CreateGiftCardResponse, error) {
	if !common.IsHexAddress(req.Recipient) {
		return CreateGiftCardResponse{}, fmt.Errorf("invalid recipient address: %s", req.Recipient)
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return CreateGiftCardResponse{}, fmt.Errorf("amount must be positive")
	}

	opts := *c.transacts
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, "createGiftCard", common.HexToAddress(req.Recipient), req.Amount, req.Mail)
	if err != nil {
		return CreateGiftCardResponse{}, mapRevert("", err)
	}

	receipt, err := c.waitForReceipt(ctx, tx)
	if err != nil {
		return CreateGiftCardResponse{}, fmt.Errorf("create gift card tx %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return CreateGiftCardResponse{}, fmt.Errorf("create gift card tx %s reverted", tx.Hash().Hex())
	}

	cardID, err := c.cardIDFromReceipt(receipt)
	if err != nil {
		return CreateGiftCardResponse{}, err
	}

	return CreateGiftCardResponse{
		CardID: cardID,
		TxHash: tx.Hash().Hex(),
	}, nil
}

func (c *EthClient) SimulateRedeem(ctx context.Context, cardID string) (*PreparedCall, error) {
	id, err := parseCardID(cardID)
	if err != nil {
		return nil, err
	}

	data, err := c.abi.Pack("redeemGiftCard", id)
	if err != nil {
		return nil, fmt.Errorf("pack redeemGiftCard: %w", err)
	}

	msg := ethereum.CallMsg{
		From: c.fromAddress,
		To:   &c.address,
		Data: data,
	}

	// Dry run first so a reverting redemption never reaches the mempool.
	if _, err := c.client.CallContract(ctx, msg, nil); err != nil {
		return nil, mapRevert(cardID, err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, msg)
	if err != nil {
		return nil, mapRevert(cardID, err)
	}

	// Add 20% buffer
	gasLimit = gasLimit * 120 / 100

	return &PreparedCall{
		CardID:   cardID,
		To:       c.address,
		Data:     data,
		GasLimit: gasLimit,
		Value:    big.NewInt(0),
	}, nil
}

func (c *EthClient) Redeem(ctx context.Context, prepared *PreparedCall) (RedeemResponse, error) {
	if prepared == nil {
		return RedeemResponse{}, ErrNilPreparedCall
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.fromAddress)
	if err != nil {
		return RedeemResponse{}, fmt.Errorf("fetch nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return RedeemResponse{}, fmt.Errorf("suggest gas price: %w", err)
	}

	// Submit the simulated call exactly as prepared.
	tx := types.NewTransaction(nonce, prepared.To, prepared.Value, prepared.GasLimit, gasPrice, prepared.Data)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.privateKey)
	if err != nil {
		return RedeemResponse{}, fmt.Errorf("sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return RedeemResponse{}, mapRevert(prepared.CardID, err)
	}

	receipt, err := c.waitForReceipt(ctx, signedTx)
	if err != nil {
		return RedeemResponse{}, fmt.Errorf("redeem tx %s: %w", signedTx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		// A failed receipt carries no revert reason. Re-run the call to
		// recover one; an unrecognised failure stays generic.
		msg := ethereum.CallMsg{From: c.fromAddress, To: &prepared.To, Data: prepared.Data}
		if _, callErr := c.client.CallContract(ctx, msg, nil); callErr != nil {
			return RedeemResponse{}, mapRevert(prepared.CardID, callErr)
		}
		return RedeemResponse{}, fmt.Errorf("redeem tx %s reverted", signedTx.Hash().Hex())
	}

	c.logger.Info("gift card redeemed",
		"card_id", prepared.CardID,
		"tx_hash", signedTx.Hash().Hex())

	return RedeemResponse{TxHash: signedTx.Hash().Hex()}, nil
}

func (c *EthClient) GetGiftCard(ctx context.Context, cardID string) (*GiftCard, error) {
	id, err := parseCardID(cardID)
	if err != nil {
		return nil, err
	}

	data, err := c.abi.Pack("getGiftCard", id)
	if err != nil {
		return nil, fmt.Errorf("pack getGiftCard: %w", err)
	}

	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, mapRevert(cardID, err)
	}
	if len(out) == 0 {
		return nil, NewChainError(ErrCardNotFound, cardID, "empty call result")
	}

	vals, err := c.abi.Unpack("getGiftCard", out)
	if err != nil {
		return nil, fmt.Errorf("unpack getGiftCard: %w", err)
	}
	if len(vals) != 5 {
		return nil, fmt.Errorf("unexpected getGiftCard result arity: %d", len(vals))
	}

	poolBalance, _ := vals[0].(*big.Int)
	owner, _ := vals[1].(common.Address)
	recipient, _ := vals[2].(common.Address)
	mail, _ := vals[3].(string)
	redeemed, _ := vals[4].(bool)

	return &GiftCard{
		CardID:      cardID,
		PoolBalance: poolBalance,
		Owner:       owner.Hex(),
		Recipient:   recipient.Hex(),
		Mail:        mail,
		Redeemed:    redeemed,
	}, nil
}

func (c *EthClient) cardIDFromReceipt(receipt *types.Receipt) (string, error) {
	event, ok := c.abi.Events["GiftCardCreated"]
	if !ok {
		return "", fmt.Errorf("abi is missing GiftCardCreated event")
	}

	for _, lg := range receipt.Logs {
		if lg.Address != c.address || len(lg.Topics) < 2 {
			continue
		}
		if lg.Topics[0] != event.ID {
			continue
		}
		cardID := new(big.Int).SetBytes(lg.Topics[1].Bytes())
		return cardID.String(), nil
	}

	return "", fmt.Errorf("GiftCardCreated event not found in receipt %s", receipt.TxHash.Hex())
}

func (c *EthClient) waitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, tx.Hash())
		if receipt != nil {
			return receipt, nil
		}
		if err != nil && !strings.Contains(err.Error(), "not found") {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func parseCardID(cardID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(cardID, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid card id: %q", cardID)
	}
	return id, nil
}

// mapRevert translates node errors into the package's structured errors where
// the revert reason is recognisable.
func mapRevert(cardID string, err error) error {
	reason := strings.ToLower(err.Error())
	switch {
	case strings.Contains(reason, "already redeemed"):
		return NewChainError(ErrAlreadyRedeemed, cardID, err.Error())
	case strings.Contains(reason, "does not exist"), strings.Contains(reason, "invalid card"):
		return NewChainError(ErrCardNotFound, cardID, err.Error())
	default:
		return fmt.Errorf("chain call failed: %w", err)
	}
}
