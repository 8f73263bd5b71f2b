// Copyright 2024 The gtos Authors
// This file is part of the gtos library.
//
// The gtos library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gtos library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gtos library. If not, see <http://www.gnu.org/licenses/>.

package params

import "github.com/ethereum/go-ethereum/common"

// System addresses used by the mint protocol.
var (
	// SystemActionAddress is the sentinel To-address for system action transactions.
	// Transactions sent to this address carry a JSON-encoded SysAction in tx.Data
	// and are executed outside the EVM by the state processor.
	SystemActionAddress = common.HexToAddress("0x0000000000000000000000000000000054534F31") // "TOS1"

	// MintAddress owns every BNC emission ledger slot: the emission pool, the
	// price point, the issuance monitor and both credit tables.
	MintAddress = common.HexToAddress("0x0000000000000000000000000000000054534F37") // "TOS7"
)

// BNC emission defaults. Deployments override them through MintConfig.
const (
	// PriceHalfBlockInterval is the number of blocks between two halvings of
	// the per-block BNC emission price.
	PriceHalfBlockInterval uint32 = 2_628_000 // ~1 year at 12 s/block

	// MaxIssueBlockInterval is the number of blocks after the last monitor
	// update at which accrued BNC becomes due for distribution.
	MaxIssueBlockInterval uint32 = 14_400 // ~2 days

	// MaxTxAmount is the mint count that forces a distribution round
	// regardless of the block interval.
	MaxTxAmount uint32 = 1_000

	// PledgeBaseAmount is the pledge an asset must exceed before its weight
	// score moves at all.
	PledgeBaseAmount uint32 = 1_000

	// GenesisBncPrice is the BNC accrued per block until the first halving.
	GenesisBncPrice uint64 = 50

	// BncDecimals is the display precision of one BNC.
	BncDecimals int32 = 12
)

// MintActionGas is the fixed gas cost charged for any mint system action,
// on top of the intrinsic gas.
const MintActionGas uint64 = 50_000
