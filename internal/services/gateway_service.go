package services

import (
	"fmt"
	"log"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bridgegate-labs/bridgegate/internal/chain"
	"github.com/bridgegate-labs/bridgegate/internal/ledger"
	"github.com/bridgegate-labs/bridgegate/internal/models"
	"github.com/bridgegate-labs/bridgegate/internal/utils"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// DepositParams are the caller-supplied inputs of a deposit.
type DepositParams struct {
	Caller      common.Address
	Token       common.Address
	Amount      *big.Int
	Destination string
	// AttachedFeeWei is the native currency attached to the call. Nil means
	// zero.
	AttachedFeeWei *big.Int
}

// GatewayService is the one-directional asset-custody gateway: it pulls
// whitelisted tokens from the caller, destroys them, and appends a canonical
// bridge record for the off-chain relayer to consume.
type GatewayService interface {
	Deposit(params DepositParams) (*models.BridgeRecord, error)

	SetPaused(caller common.Address, paused bool) error
	AddSupportedToken(caller, token common.Address) error
	RemoveSupportedToken(caller, token common.Address) error
	SetFeeReceiver(caller, receiver common.Address) error
	SetBridgeFeeWei(caller common.Address, amountWei *big.Int) error
	SetRelayer(caller, relayer common.Address) error

	Settings() models.GatewaySettings
	IsSupported(token common.Address) bool
	ListSupportedTokens() ([]models.SupportedToken, error)
	GatewayAddress() common.Address
}

// GatewayConfig wires the gateway's collaborators.
type GatewayConfig struct {
	DB      *gorm.DB
	Ledger  ledger.Ledger
	Chain   chain.Context
	Owner   common.Address
	Address common.Address
	// Now overrides the timestamp source. Nil means time.Now.
	Now func() time.Time
}

type gatewayService struct {
	db      *gorm.DB
	ledger  ledger.Ledger
	chain   chain.Context
	address common.Address
	now     func() time.Time

	// executing is the re-entrancy marker: set for the full duration of a
	// deposit and cleared on every exit path. The hosting environment
	// serializes top-level calls; a nested entry can only come from a
	// callback inside one of the deposit's external calls.
	executing atomic.Bool

	mu        sync.RWMutex
	settings  models.GatewaySettings
	whitelist map[common.Address]struct{}
}

// NewGatewayService loads the gateway state from the database, creating the
// settings singleton with cfg.Owner as admin when it does not exist yet.
func NewGatewayService(cfg GatewayConfig) (GatewayService, error) {
	if cfg.DB == nil || cfg.Ledger == nil || cfg.Chain == nil {
		return nil, fmt.Errorf("db, ledger and chain context are required")
	}
	if cfg.Owner == (common.Address{}) {
		return nil, fmt.Errorf("owner address is required: %w", ErrZeroAddress)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &gatewayService{
		db:        cfg.DB,
		ledger:    cfg.Ledger,
		chain:     cfg.Chain,
		address:   cfg.Address,
		now:       now,
		whitelist: make(map[common.Address]struct{}),
	}

	var settings models.GatewaySettings
	err := cfg.DB.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.GatewaySettings{
			Owner:           cfg.Owner.Hex(),
			BridgeFeeWei:    "0",
			RetainedFeesWei: "0",
		}
		if err := cfg.DB.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create gateway settings: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load gateway settings: %w", err)
	}
	s.settings = settings

	var tokens []models.SupportedToken
	if err := cfg.DB.Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to load whitelist: %w", err)
	}
	for _, t := range tokens {
		s.whitelist[common.HexToAddress(t.Address)] = struct{}{}
	}

	return s, nil
}

// Deposit validates, pulls amount of token from the caller, destroys it,
// forwards the configured fee, and appends the canonical bridge record.
// All effects are atomic: any failure reverts every balance change and no
// record is emitted.
func (s *gatewayService) Deposit(p DepositParams) (*models.BridgeRecord, error) {
	if !s.executing.CompareAndSwap(false, true) {
		return nil, ErrReentrancy
	}
	defer s.executing.Store(false)

	s.mu.RLock()
	settings := s.settings
	_, supported := s.whitelist[p.Token]
	s.mu.RUnlock()

	// Preconditions, first failure wins.
	if p.Amount == nil || p.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if !supported {
		return nil, fmt.Errorf("%w: %s", ErrTokenNotSupported, p.Token.Hex())
	}
	if p.Destination == "" {
		return nil, ErrInvalidDestination
	}

	requiredFee := mustParseWei(settings.BridgeFeeWei)
	attached := p.AttachedFeeWei
	if attached == nil {
		attached = new(big.Int)
	}
	if requiredFee.Sign() > 0 && attached.Cmp(requiredFee) < 0 {
		return nil, fmt.Errorf("%w: required %s wei, attached %s wei", ErrInsufficientFee, requiredFee, attached)
	}
	if settings.Paused {
		return nil, ErrPaused
	}

	// All balance effects happen under one snapshot; any failure below
	// reverts to it.
	snap := s.ledger.Snapshot()

	if attached.Sign() > 0 {
		if err := s.ledger.Transfer(p.Caller, s.address, attached); err != nil {
			s.ledger.RevertToSnapshot(snap)
			return nil, fmt.Errorf("failed to collect attached fee: %w", err)
		}
	}

	if err := s.ledger.TransferIn(p.Token, p.Caller, s.address, p.Amount); err != nil {
		s.ledger.RevertToSnapshot(snap)
		return nil, fmt.Errorf("token transfer-in failed: %w", err)
	}

	if err := s.ledger.Burn(p.Token, s.address, p.Amount); err != nil {
		s.ledger.RevertToSnapshot(snap)
		return nil, fmt.Errorf("token burn failed: %w", err)
	}

	feeReceiver := common.HexToAddress(settings.FeeReceiver)
	forwarded := new(big.Int)
	if requiredFee.Sign() > 0 && feeReceiver != (common.Address{}) {
		if err := s.ledger.Transfer(s.address, feeReceiver, requiredFee); err != nil {
			s.ledger.RevertToSnapshot(snap)
			return nil, fmt.Errorf("fee forwarding failed: %w", err)
		}
		forwarded.Set(requiredFee)
	}
	retainedDelta := new(big.Int).Sub(attached, forwarded)

	height, err := s.chain.BlockNumber()
	if err != nil {
		s.ledger.RevertToSnapshot(snap)
		return nil, fmt.Errorf("failed to read block height: %w", err)
	}

	chainID := s.chain.ChainID()
	timestamp := s.now().Unix()
	id := utils.DeriveRecordID(chainID, height, p.Caller, p.Token, p.Amount, timestamp)

	record := &models.BridgeRecord{
		RecordID:    id.Hex(),
		Caller:      p.Caller.Hex(),
		Destination: p.Destination,
		Token:       p.Token.Hex(),
		Amount:      p.Amount.String(),
		ChainID:     chainID.String(),
		BlockHeight: height,
		Timestamp:   timestamp,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if retainedDelta.Sign() > 0 {
			retained := new(big.Int).Add(mustParseWei(settings.RetainedFeesWei), retainedDelta)
			return tx.Model(&models.GatewaySettings{}).
				Where("id = ?", settings.ID).
				Update("retained_fees_wei", retained.String()).Error
		}
		return nil
	})
	if err != nil {
		s.ledger.RevertToSnapshot(snap)
		return nil, fmt.Errorf("failed to append bridge record: %w", err)
	}

	if retainedDelta.Sign() > 0 {
		s.mu.Lock()
		retained := new(big.Int).Add(mustParseWei(s.settings.RetainedFeesWei), retainedDelta)
		s.settings.RetainedFeesWei = retained.String()
		s.mu.Unlock()
	}

	log.Printf("deposit recorded: id=%s caller=%s token=%s amount=%s height=%d",
		record.RecordID, record.Caller, record.Token, record.Amount, record.BlockHeight)
	return record, nil
}

// SetPaused flips the pause flag. Setting the current value is a no-op.
func (s *gatewayService) SetPaused(caller common.Address, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if s.settings.Paused == paused {
		return nil
	}

	if err := s.updateSettings(map[string]interface{}{"paused": paused}); err != nil {
		return err
	}
	s.settings.Paused = paused
	return s.audit(caller, "set_paused", models.JSON{"paused": paused})
}

// AddSupportedToken inserts token into the whitelist. Idempotent.
func (s *gatewayService) AddSupportedToken(caller, token common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if token == (common.Address{}) {
		return ErrZeroAddress
	}
	if _, ok := s.whitelist[token]; ok {
		return nil
	}

	entry := models.SupportedToken{Address: token.Hex(), AddedBy: caller.Hex()}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add supported token: %w", err)
	}
	s.whitelist[token] = struct{}{}
	return s.audit(caller, "add_supported_token", models.JSON{"token": token.Hex()})
}

// RemoveSupportedToken removes token from the whitelist. Removing a
// non-member is a no-op.
func (s *gatewayService) RemoveSupportedToken(caller, token common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if _, ok := s.whitelist[token]; !ok {
		return nil
	}

	if err := s.db.Where("address = ?", token.Hex()).Delete(&models.SupportedToken{}).Error; err != nil {
		return fmt.Errorf("failed to remove supported token: %w", err)
	}
	delete(s.whitelist, token)
	return s.audit(caller, "remove_supported_token", models.JSON{"token": token.Hex()})
}

// SetFeeReceiver sets the fee forwarding target. The zero address disables
// forwarding; required fees are then retained by the gateway.
func (s *gatewayService) SetFeeReceiver(caller, receiver common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}

	value := ""
	if receiver != (common.Address{}) {
		value = receiver.Hex()
	}
	if err := s.updateSettings(map[string]interface{}{"fee_receiver": value}); err != nil {
		return err
	}
	s.settings.FeeReceiver = value
	return s.audit(caller, "set_fee_receiver", models.JSON{"receiver": value})
}

// SetBridgeFeeWei sets the required native-currency fee. Zero disables the
// requirement.
func (s *gatewayService) SetBridgeFeeWei(caller common.Address, amountWei *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if amountWei == nil || amountWei.Sign() < 0 {
		return ErrInvalidAmount
	}

	if err := s.updateSettings(map[string]interface{}{"bridge_fee_wei": amountWei.String()}); err != nil {
		return err
	}
	s.settings.BridgeFeeWei = amountWei.String()
	return s.audit(caller, "set_bridge_fee_wei", models.JSON{"amount_wei": amountWei.String()})
}

// SetRelayer records an authorized relayer identity for future reverse-flow
// use. It has no effect on deposits.
func (s *gatewayService) SetRelayer(caller, relayer common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}

	value := ""
	if relayer != (common.Address{}) {
		value = relayer.Hex()
	}
	if err := s.updateSettings(map[string]interface{}{"relayer": value}); err != nil {
		return err
	}
	s.settings.Relayer = value
	return s.audit(caller, "set_relayer", models.JSON{"relayer": value})
}

// Settings returns a copy of the current administrative state.
func (s *gatewayService) Settings() models.GatewaySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *gatewayService) IsSupported(token common.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.whitelist[token]
	return ok
}

func (s *gatewayService) ListSupportedTokens() ([]models.SupportedToken, error) {
	var tokens []models.SupportedToken
	err := s.db.Order("created_at asc").Find(&tokens).Error
	return tokens, err
}

func (s *gatewayService) GatewayAddress() common.Address {
	return s.address
}

// requireOwner is the authorization gate at the top of every admin operation.
// Callers must hold s.mu.
func (s *gatewayService) requireOwner(caller common.Address) error {
	if caller != common.HexToAddress(s.settings.Owner) {
		return fmt.Errorf("%w: caller %s is not the owner", ErrUnauthorized, caller.Hex())
	}
	return nil
}

func (s *gatewayService) updateSettings(updates map[string]interface{}) error {
	err := s.db.Model(&models.GatewaySettings{}).
		Where("id = ?", s.settings.ID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update gateway settings: %w", err)
	}
	return nil
}

func (s *gatewayService) audit(caller common.Address, action string, params models.JSON) error {
	entry := models.NewAdminAction(caller.Hex(), action, params)
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record admin action: %w", err)
	}
	return nil
}

// mustParseWei parses a decimal wei string persisted by this service. The
// stored values are always valid decimals; an empty or corrupt value reads
// as zero.
func mustParseWei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}
