package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/tos-network/vmint/mint"
	"github.com/tos-network/vmint/params"
)

var (
	headKey   = []byte("vmint-head")   // -> rlp(chainHead)
	configKey = []byte("vmint-config") // -> rlp(params.MintConfig)

	errNotInitialized = errors.New("database not initialized, run 'vmint init' first")
)

// chainHead records the last finalized block and its state root.
type chainHead struct {
	Block uint64
	Root  common.Hash
}

// chain is an open emission database together with the state at its head.
type chain struct {
	db     ethdb.Database
	sdb    state.Database
	state  *state.StateDB
	head   chainHead
	config params.MintConfig
	rounds int // distribution rounds issued since open
}

func openDatabase(datadir string, readonly bool) (ethdb.Database, error) {
	return rawdb.NewLevelDBDatabase(filepath.Join(datadir, "chaindata"), 16, 16, "vmint/db/chaindata/", readonly)
}

// openChain loads the head state of an initialized database.
func openChain(datadir string, readonly bool) (*chain, error) {
	db, err := openDatabase(datadir, readonly)
	if err != nil {
		return nil, err
	}
	c := &chain{db: db, sdb: state.NewDatabase(db)}
	if err := readRLP(db, headKey, &c.head); err != nil {
		db.Close()
		return nil, err
	}
	if err := readRLP(db, configKey, &c.config); err != nil {
		db.Close()
		return nil, err
	}
	if c.state, err = state.New(c.head.Root, c.sdb, nil); err != nil {
		db.Close()
		return nil, fmt.Errorf("missing state %x: %w", c.head.Root, err)
	}
	return c, nil
}

// initChain writes the genesis state into an empty database.
func initChain(datadir string, cfg vmintConfig) (*chain, error) {
	db, err := openDatabase(datadir, false)
	if err != nil {
		return nil, err
	}
	if ok, _ := db.Has(headKey); ok {
		db.Close()
		return nil, fmt.Errorf("database at %s already initialized", datadir)
	}
	c := &chain{db: db, sdb: state.NewDatabase(db), config: cfg.Mint}
	if c.state, err = state.New(common.Hash{}, c.sdb, nil); err != nil {
		db.Close()
		return nil, err
	}
	mint.InitGenesis(c.state, &cfg.Genesis)
	c.head.Block = cfg.Genesis.Block
	if err := writeRLP(db, configKey, &c.config); err != nil {
		db.Close()
		return nil, err
	}
	if err := c.commit(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// engine returns an emission engine over the head state whose receipts are
// written to the database.
func (c *chain) engine() *mint.Engine {
	e := mint.New(c.state, &c.config, nil)
	e.OnIssue(func(r *mint.Receipt) {
		c.rounds++
		if err := mint.WriteReceipt(c.db, r); err != nil {
			log.Error("Failed to write issue receipt", "block", r.Block, "err", err)
		}
	})
	return e
}

// commit flushes the state to disk and moves the head to it.
func (c *chain) commit() error {
	root, err := c.state.Commit(true)
	if err != nil {
		return err
	}
	if err := c.sdb.TrieDB().Commit(root, false, nil); err != nil {
		return err
	}
	c.head.Root = root
	if err := writeRLP(c.db, headKey, &c.head); err != nil {
		return err
	}
	log.Debug("Committed emission state", "block", c.head.Block, "root", root)

	// Reopen so that the live state object reflects the committed trie.
	c.state, err = state.New(root, c.sdb, nil)
	return err
}

func (c *chain) Close() error { return c.db.Close() }

func readRLP(db ethdb.KeyValueReader, key []byte, val interface{}) error {
	data, err := db.Get(key)
	if err != nil {
		if ok, _ := db.Has(key); !ok {
			return errNotInitialized
		}
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func writeRLP(db ethdb.KeyValueWriter, key []byte, val interface{}) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return db.Put(key, data)
}
