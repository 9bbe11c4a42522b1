// Package solo is a local, in-process host for contracts written against
// the sandbox package. It serves every sandbox function from a key/value
// store and an in-memory asset ledger, one request at a time.
package solo

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/config"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/sandbox"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/store"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmrequests"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// Key spaces of the chain store.
const (
	accountPrefix  byte = 'a'
	contractPrefix byte = 'c'
	statePrefix    byte = 's'
)

// Request is an on-ledger request sent to the chain.
type Request struct {
	Sender   wasmtypes.ScAgentID
	Contract wasmtypes.ScHname
	Function wasmtypes.ScHname
	Params   *sandbox.ScDict
	// Transfer is deposited into the sender's account before the call and
	// stays there even when the call fails.
	Transfer *assets.ScAssets
	// Allowance is the part of the sender's account the called function may
	// take.
	Allowance *assets.ScAssets
	Minted    *assets.ScAssets
}

type Event struct {
	Contract  wasmtypes.ScHname
	Message   string
	Timestamp uint64
}

// PostedRequest is a request a contract queued with Post.
type PostedRequest struct {
	ChainID   wasmtypes.ScChainID
	Sender    wasmtypes.ScAgentID
	Contract  wasmtypes.ScHname
	Function  wasmtypes.ScHname
	Params    []byte
	Allowance *assets.ScAssets
	Transfer  *assets.ScAssets
	DueAt     uint64
}

// Sent records assets a contract sent to an L1 address.
type Sent struct {
	Address wasmtypes.ScAddress
	Assets  *assets.ScAssets
}

// Chain is a single local chain. It is safe for concurrent use, requests are
// processed one at a time.
type Chain struct {
	mu        sync.Mutex
	logger    *zap.Logger
	store     wasmtypes.KvStore
	chainID   wasmtypes.ScChainID
	owner     wasmtypes.ScAgentID
	bech32    string
	seed      []byte
	dust      uint64
	timestamp uint64
	counter   uint64
	programs  map[wasmtypes.ScHash]*program
	events    []Event
	posted    []*PostedRequest
	sent      []Sent
}

func NewChain(
	logger *zap.Logger,
	cfg *config.HostConfig,
	kv wasmtypes.KvStore,
) (*Chain, error) {
	if cfg == nil {
		cfg = &config.HostConfig{}
	}
	hostConfig := cfg.WithDefaults()
	if err := hostConfig.Validate(); err != nil {
		return nil, errors.Wrap(err, "new chain")
	}

	c := &Chain{
		store:     kv,
		bech32:    hostConfig.Bech32Prefix,
		dust:      hostConfig.DustAmount,
		timestamp: hostConfig.Timestamp,
		programs:  map[wasmtypes.ScHash]*program{},
	}
	if c.timestamp == 0 {
		c.timestamp = uint64(time.Now().UnixNano())
	}

	var err error
	if hostConfig.ChainID != "" {
		if c.chainID, err = wasmtypes.ChainIDFromString(hostConfig.ChainID); err != nil {
			return nil, errors.Wrap(err, "new chain")
		}
	}
	if hostConfig.ChainOwner != "" {
		if c.owner, err = wasmtypes.AgentIDFromString(hostConfig.ChainOwner); err != nil {
			return nil, errors.Wrap(err, "new chain")
		}
	}
	if hostConfig.EntropySeed != "" {
		if c.seed, err = wasmtypes.HexDecode(hostConfig.EntropySeed); err != nil {
			return nil, errors.Wrap(err, "new chain")
		}
	}

	c.logger = logger.With(
		zap.String("chain", wasmtypes.AddressToBech32(c.chainID.Address(), c.bech32)),
	)
	c.logger.Info("chain started", zap.Uint64("timestamp", c.timestamp))
	return c, nil
}

func (c *Chain) ChainID() wasmtypes.ScChainID {
	return c.chainID
}

func (c *Chain) Owner() wasmtypes.ScAgentID {
	return c.owner
}

// ContractAgentID returns the account of contract hname on this chain.
func (c *Chain) ContractAgentID(hname wasmtypes.ScHname) wasmtypes.ScAgentID {
	return wasmtypes.NewScAgentID(c.chainID, hname)
}

// RegisterProgram makes p deployable and returns its program hash.
func (c *Chain) RegisterProgram(p *Program) wasmtypes.ScHash {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := p.Hash()
	c.programs[hash] = &program{Program: p, eps: p.entryPoints()}
	c.logger.Debug(
		"program registered",
		zap.String("program", p.Name),
		zap.String("hash", hash.String()),
	)
	return hash
}

// DeployContract deploys a registered program under name on behalf of the
// chain owner and runs its init function.
func (c *Chain) DeployContract(
	progHash wasmtypes.ScHash,
	name string,
	description string,
	params *sandbox.ScDict,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.newRequest(nil)
	if err := r.deploy(c.owner, progHash, name, description, params); err != nil {
		r.overlay.Discard()
		return err
	}
	return r.commit()
}

// AdvanceTime moves the chain clock forward. The clock never goes back, a
// negative d is ignored.
func (c *Chain) AdvanceTime(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		c.logger.Warn("ignoring negative time advance", zap.Duration("duration", d))
		return
	}
	c.timestamp += uint64(d.Nanoseconds())
}

func (c *Chain) Timestamp() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timestamp
}

// Balances returns the assets held by agentID.
func (c *Chain) Balances(agentID wasmtypes.ScAgentID) (*assets.ScAssets, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf, err := c.store.Get(accountKey(agentID))
	if err != nil {
		return nil, errors.Wrap(err, "balances")
	}
	balances, err := assets.NewScAssets(buf)
	return balances, errors.Wrap(err, "balances")
}

func (c *Chain) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event{}, c.events...)
}

func (c *Chain) Posted() []*PostedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*PostedRequest{}, c.posted...)
}

func (c *Chain) Sent() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sent{}, c.sent...)
}

// Run processes req and returns the results of the called function. On
// failure every state change except the deposit of req.Transfer is
// discarded.
func (c *Chain) Run(req *Request) (*sandbox.ScDict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run(req)
}

func (c *Chain) run(req *Request) (*sandbox.ScDict, error) {
	r := c.newRequest(req.Minted)
	results, err := r.run(req)
	if err != nil {
		r.overlay.Discard()
		InvocationsTotal.WithLabelValues(failureStatus(err)).Inc()
		c.logger.Info(
			"request failed",
			zap.String("request", r.id.String()),
			zap.Error(err),
		)
		if derr := c.keepDeposit(req); derr != nil {
			return nil, errors.Wrap(derr, "keep deposit")
		}
		return nil, err
	}

	if err := r.commit(); err != nil {
		InvocationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	InvocationsTotal.WithLabelValues("success").Inc()
	return results, nil
}

func (c *Chain) keepDeposit(req *Request) error {
	if req.Transfer.IsEmpty() {
		return nil
	}
	r := c.newRequest(nil)
	if err := r.credit(req.Sender, req.Transfer); err != nil {
		r.overlay.Discard()
		return err
	}
	return r.overlay.Commit()
}

// CallView runs a view against the current state. Nothing it does is kept.
func (c *Chain) CallView(
	contract wasmtypes.ScHname,
	function wasmtypes.ScHname,
	params *sandbox.ScDict,
) (*sandbox.ScDict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.newRequest(nil)
	defer r.overlay.Discard()
	return r.invoke(wasmtypes.ScAgentID{}, contract, function, params, nil, true)
}

// ProcessPosted runs the posted requests for this chain that are due and
// returns how many ran. A failing request is logged and dropped.
func (c *Chain) ProcessPosted() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due, pending []*PostedRequest
	for _, post := range c.posted {
		if post.ChainID == c.chainID && post.DueAt <= c.timestamp {
			due = append(due, post)
			continue
		}
		pending = append(pending, post)
	}
	c.posted = pending

	for _, post := range due {
		params, err := sandbox.NewScDictFromBytes(post.Params)
		if err != nil {
			c.logger.Warn("dropping posted request", zap.Error(err))
			continue
		}
		_, err = c.run(&Request{
			Sender:    post.Sender,
			Contract:  post.Contract,
			Function:  post.Function,
			Params:    params,
			Transfer:  post.Transfer,
			Allowance: post.Allowance,
		})
		if err != nil {
			c.logger.Warn(
				"posted request failed",
				zap.String("contract", post.Contract.String()),
				zap.String("function", post.Function.String()),
				zap.Error(err),
			)
		}
	}
	return len(due)
}

func (c *Chain) newRequest(minted *assets.ScAssets) *requestCtx {
	c.counter++
	seed := append(append([]byte{}, c.seed...), wasmtypes.Uint64ToBytes(c.counter)...)
	entropy := hashBlake2b(seed)
	// index 0 is always a valid output index
	id, _ := wasmtypes.NewScRequestID(hashSha3(entropy.Bytes()), 0)
	return &requestCtx{
		chain:     c,
		overlay:   store.NewOverlay(c.store),
		id:        id,
		entropy:   entropy,
		timestamp: c.timestamp,
		minted:    minted,
	}
}

func failureStatus(err error) string {
	var abort *sandbox.Abort
	if errors.As(err, &abort) {
		return "aborted"
	}
	return "error"
}

func accountKey(agentID wasmtypes.ScAgentID) []byte {
	return append([]byte{accountPrefix}, agentID.Bytes()...)
}

func contractKey(hname wasmtypes.ScHname) []byte {
	return append([]byte{contractPrefix}, hname.Bytes()...)
}

func stateKey(hname wasmtypes.ScHname) []byte {
	return append([]byte{statePrefix}, hname.Bytes()...)
}

func decodeDeployRecord(buf []byte) (*wasmrequests.DeployRequest, error) {
	rec, err := wasmrequests.NewDeployRequestFromBytes(buf)
	return rec, errors.Wrap(err, "deploy record")
}
