package mint

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// Currency credits BNC to participant accounts. DepositIntoExisting must
// only succeed when the account already exists and the full amount was
// applied.
type Currency interface {
	DepositIntoExisting(account common.Address, amount *uint256.Int) error
}

// StateCurrency mints BNC straight into StateDB balances.
type StateCurrency struct {
	db vm.StateDB
}

// NewStateCurrency returns a Currency backed by db balances.
func NewStateCurrency(db vm.StateDB) *StateCurrency {
	return &StateCurrency{db: db}
}

func (c *StateCurrency) DepositIntoExisting(account common.Address, amount *uint256.Int) error {
	if !c.db.Exist(account) {
		return ErrAccountNotExist
	}
	c.db.AddBalance(account, amount.ToBig())
	return nil
}
