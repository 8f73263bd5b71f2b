package mint

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/tos-network/vmint/params"
)

// --- slot derivation ---

// mintSlot hashes ("mint" || 0x00 || field) for a module-wide slot.
func mintSlot(field string) common.Hash {
	key := make([]byte, 0, 5+len(field))
	key = append(key, "mint\x00"...)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// accountSlot hashes (addr[20B] || 0x00 || field). addr is always exactly
// 20 bytes, so there is no length-extension ambiguity.
func accountSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, 21+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

func assetKey(asset AssetID) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(asset))
	return b[:]
}

// assetSlot hashes ("mint" || 0x00 || "asset" || asset[4B] || 0x00 || field).
func assetSlot(asset AssetID, field string) common.Hash {
	key := make([]byte, 0, 16+len(field))
	key = append(key, "mint\x00asset"...)
	key = append(key, assetKey(asset)...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// assetAccountSlot hashes (asset[4B] || addr[20B] || 0x00 || field).
func assetAccountSlot(asset AssetID, addr common.Address, field string) common.Hash {
	key := make([]byte, 0, 25+len(field))
	key = append(key, assetKey(asset)...)
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// listSlot returns the slot for the i-th element of the named append-only list.
func listSlot(list []byte, i uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], i)
	key := make([]byte, 0, 5+len(list)+1+8)
	key = append(key, "mint\x00"...)
	key = append(key, list...)
	key = append(key, 0x00)
	key = append(key, idx[:]...)
	return common.BytesToHash(crypto.Keccak256(key))
}

var (
	poolSlot         = mintSlot("bncSum")
	priceBlockSlot   = mintSlot("priceBlock")
	priceSlot        = mintSlot("price")
	monitorBlockSlot = mintSlot("monitorBlock")
	watermarkSlot    = mintSlot("monitorWatermark")
	maxMintSlot      = mintSlot("monitorMaxMint")
	txCountSlot      = mintSlot("monitorTxCount")

	flatMinterList   = []byte("flatMinters")
	flatMinterCount  = mintSlot("flatMinterCount")
	assetList        = []byte("assets")
	assetCountSlot   = mintSlot("assetCount")
	weightedListName = []byte("weightedMinters")
)

func weightedMinterList(asset AssetID) []byte {
	return append(append([]byte{}, weightedListName...), assetKey(asset)...)
}

// --- word codecs ---

func readWord(db vm.StateDB, slot common.Hash) *uint256.Int {
	raw := db.GetState(params.MintAddress, slot)
	return new(uint256.Int).SetBytes(raw[:])
}

func writeWord(db vm.StateDB, slot common.Hash, v *uint256.Int) {
	db.SetState(params.MintAddress, slot, common.Hash(orZero(v).Bytes32()))
}

func readUint64(db vm.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.MintAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeUint64(db vm.StateDB, slot common.Hash, n uint64) {
	var val common.Hash
	binary.BigEndian.PutUint64(val[24:], n) // right-aligned in 32 bytes
	db.SetState(params.MintAddress, slot, val)
}

func readBool(db vm.StateDB, slot common.Hash) bool {
	return db.GetState(params.MintAddress, slot)[31] != 0
}

func writeBool(db vm.StateDB, slot common.Hash, v bool) {
	var val common.Hash
	if v {
		val[31] = 1
	}
	db.SetState(params.MintAddress, slot, val)
}

// --- append-only address lists ---

func readAddressAt(db vm.StateDB, list []byte, i uint64) common.Address {
	raw := db.GetState(params.MintAddress, listSlot(list, i))
	return common.BytesToAddress(raw[12:]) // address is right-aligned
}

func appendAddress(db vm.StateDB, list []byte, countSlot common.Hash, addr common.Address) {
	n := readUint64(db, countSlot)
	var val common.Hash
	copy(val[12:], addr.Bytes())
	db.SetState(params.MintAddress, listSlot(list, n), val)
	writeUint64(db, countSlot, n+1)
}

func readAddresses(db vm.StateDB, list []byte, countSlot common.Hash) []common.Address {
	count := readUint64(db, countSlot)
	out := make([]common.Address, 0, count)
	for i := uint64(0); i < count; i++ {
		out = append(out, readAddressAt(db, list, i))
	}
	return out
}

// --- emission pool ---

func readPool(db vm.StateDB) *uint256.Int { return readWord(db, poolSlot) }

func writePool(db vm.StateDB, v *uint256.Int) { writeWord(db, poolSlot, v) }

// --- price point ---

func readPricePoint(db vm.StateDB) PricePoint {
	return PricePoint{
		Block: readUint64(db, priceBlockSlot),
		Price: readWord(db, priceSlot),
	}
}

func writePricePoint(db vm.StateDB, pp PricePoint) {
	writeUint64(db, priceBlockSlot, pp.Block)
	writeWord(db, priceSlot, pp.Price)
}

// --- issuance monitor ---

func readMonitor(db vm.StateDB) Monitor {
	return Monitor{
		Block:     readUint64(db, monitorBlockSlot),
		Watermark: readWord(db, watermarkSlot),
		MaxMint:   readWord(db, maxMintSlot),
		TxCount:   uint32(readUint64(db, txCountSlot)),
	}
}

func writeMonitor(db vm.StateDB, m Monitor) {
	writeUint64(db, monitorBlockSlot, m.Block)
	writeWord(db, watermarkSlot, m.Watermark)
	writeWord(db, maxMintSlot, m.MaxMint)
	writeUint64(db, txCountSlot, uint64(m.TxCount))
}

func resetMonitor(db vm.StateDB) {
	writeMonitor(db, Monitor{})
}

// --- flat credits ---

func readFlatCredit(db vm.StateDB, minter common.Address) *uint256.Int {
	return readWord(db, accountSlot(minter, "flatCredit"))
}

// addFlatCredit creates the entry at amount on first mint and accumulates
// (saturating) afterwards.
func addFlatCredit(db vm.StateDB, minter common.Address, amount *uint256.Int) {
	listed := accountSlot(minter, "flatListed")
	if !readBool(db, listed) {
		writeBool(db, listed, true)
		appendAddress(db, flatMinterList, flatMinterCount, minter)
	}
	slot := accountSlot(minter, "flatCredit")
	writeWord(db, slot, satAdd(readWord(db, slot), amount))
}

func readFlatMinters(db vm.StateDB) []common.Address {
	return readAddresses(db, flatMinterList, flatMinterCount)
}

// clearFlatCredits removes every flat credit entry and empties the list.
func clearFlatCredits(db vm.StateDB) {
	count := readUint64(db, flatMinterCount)
	for i := uint64(0); i < count; i++ {
		minter := readAddressAt(db, flatMinterList, i)
		db.SetState(params.MintAddress, accountSlot(minter, "flatCredit"), common.Hash{})
		db.SetState(params.MintAddress, accountSlot(minter, "flatListed"), common.Hash{})
		db.SetState(params.MintAddress, listSlot(flatMinterList, i), common.Hash{})
	}
	db.SetState(params.MintAddress, flatMinterCount, common.Hash{})
}

// --- asset weights ---

func assetExists(db vm.StateDB, asset AssetID) bool {
	return readBool(db, assetSlot(asset, "exists"))
}

func readAssetWeight(db vm.StateDB, asset AssetID) Weight {
	return Weight{
		Base:   readWord(db, assetSlot(asset, "baseScore")),
		Adjust: readWord(db, assetSlot(asset, "adjustScore")),
	}
}

// writeAssetWeight upserts the weight, appending asset to the asset list the
// first time it is written.
func writeAssetWeight(db vm.StateDB, asset AssetID, w Weight) {
	exists := assetSlot(asset, "exists")
	if !readBool(db, exists) {
		writeBool(db, exists, true)
		n := readUint64(db, assetCountSlot)
		writeUint64(db, listSlot(assetList, n), uint64(asset))
		writeUint64(db, assetCountSlot, n+1)
	}
	writeWord(db, assetSlot(asset, "baseScore"), w.Base)
	writeWord(db, assetSlot(asset, "adjustScore"), w.Adjust)
}

// readAssets returns every registered asset in registration order.
func readAssets(db vm.StateDB) []AssetID {
	count := readUint64(db, assetCountSlot)
	out := make([]AssetID, 0, count)
	for i := uint64(0); i < count; i++ {
		out = append(out, AssetID(readUint64(db, listSlot(assetList, i))))
	}
	return out
}

// --- weighted credits ---

func readWeightedCredit(db vm.StateDB, asset AssetID, minter common.Address) *uint256.Int {
	return readWord(db, assetAccountSlot(asset, minter, "credit"))
}

func addWeightedCredit(db vm.StateDB, asset AssetID, minter common.Address, amount *uint256.Int) {
	listed := assetAccountSlot(asset, minter, "listed")
	if !readBool(db, listed) {
		writeBool(db, listed, true)
		appendAddress(db, weightedMinterList(asset), assetSlot(asset, "minterCount"), minter)
	}
	slot := assetAccountSlot(asset, minter, "credit")
	writeWord(db, slot, satAdd(readWord(db, slot), amount))
}

func readWeightedMinters(db vm.StateDB, asset AssetID) []common.Address {
	return readAddresses(db, weightedMinterList(asset), assetSlot(asset, "minterCount"))
}

// clearWeightedCredits drains the credit table of every asset. Asset weights
// are left in place.
func clearWeightedCredits(db vm.StateDB) {
	for _, asset := range readAssets(db) {
		list := weightedMinterList(asset)
		countSlot := assetSlot(asset, "minterCount")
		count := readUint64(db, countSlot)
		for i := uint64(0); i < count; i++ {
			minter := readAddressAt(db, list, i)
			db.SetState(params.MintAddress, assetAccountSlot(asset, minter, "credit"), common.Hash{})
			db.SetState(params.MintAddress, assetAccountSlot(asset, minter, "listed"), common.Hash{})
			db.SetState(params.MintAddress, listSlot(list, i), common.Hash{})
		}
		db.SetState(params.MintAddress, countSlot, common.Hash{})
	}
}

// --- locked pledges ---

func readPledge(db vm.StateDB, asset AssetID, account common.Address) *uint256.Int {
	return readWord(db, assetAccountSlot(asset, account, "pledge"))
}

func writePledge(db vm.StateDB, asset AssetID, account common.Address, amount *uint256.Int) {
	writeWord(db, assetAccountSlot(asset, account, "pledge"), amount)
}
