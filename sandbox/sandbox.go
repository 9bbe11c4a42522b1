package sandbox

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmrequests"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// ScSandbox holds the operations shared by views and funcs.
type ScSandbox struct {
	host Host
}

func NewScSandbox(host Host) ScSandbox {
	return ScSandbox{host: host}
}

func (s ScSandbox) call(funcNr int32, params []byte) ([]byte, error) {
	res, err := s.host.Sandbox(funcNr, params)
	if err != nil {
		return nil, errors.Wrap(err, FuncName(funcNr))
	}
	return res, nil
}

// AccountID returns the agent id of this contract's account.
func (s ScSandbox) AccountID() (wasmtypes.ScAgentID, error) {
	res, err := s.call(FnAccountID, nil)
	if err != nil {
		return wasmtypes.ScAgentID{}, err
	}
	return wasmtypes.AgentIDFromBytes(res)
}

// Balance returns the amount of a native token held by this contract.
func (s ScSandbox) Balance(tokenID wasmtypes.ScTokenID) (wasmtypes.ScBigInt, error) {
	res, err := s.call(FnBalance, tokenID.Bytes())
	if err != nil {
		return wasmtypes.ScBigInt{}, err
	}
	return wasmtypes.BigIntFromBytes(res)
}

// BaseTokens returns the base token balance of this contract.
func (s ScSandbox) BaseTokens() (uint64, error) {
	res, err := s.call(FnBalance, nil)
	if err != nil {
		return 0, err
	}
	return wasmtypes.Uint64FromBytes(res)
}

func (s ScSandbox) Balances() (assets.ScBalances, error) {
	return s.balances(FnBalances)
}

func (s ScSandbox) balances(funcNr int32) (assets.ScBalances, error) {
	res, err := s.call(funcNr, nil)
	if err != nil {
		return assets.ScBalances{}, err
	}
	balances, err := assets.NewScBalances(res)
	return balances, errors.Wrap(err, FuncName(funcNr))
}

func (s ScSandbox) callWithAllowance(
	hContract wasmtypes.ScHname,
	hFunction wasmtypes.ScHname,
	params *ScDict,
	allowance *assets.ScTransfer,
) (*ScImmutableDict, error) {
	req := &wasmrequests.CallRequest{
		Contract:  hContract,
		Function:  hFunction,
		Params:    params.Bytes(),
		Allowance: allowance.Bytes(),
	}
	res, err := s.call(FnCall, req.Bytes())
	if err != nil {
		return nil, err
	}
	results, err := NewScDictFromBytes(res)
	if err != nil {
		return nil, errors.Wrap(err, "call results")
	}
	return results.Immutable(), nil
}

// ChainOwnerID returns the agent id of the owner of the current chain.
func (s ScSandbox) ChainOwnerID() (wasmtypes.ScAgentID, error) {
	res, err := s.call(FnChainOwnerID, nil)
	if err != nil {
		return wasmtypes.ScAgentID{}, err
	}
	return wasmtypes.AgentIDFromBytes(res)
}

// Contract returns the hname of the running contract.
func (s ScSandbox) Contract() (wasmtypes.ScHname, error) {
	res, err := s.call(FnContract, nil)
	if err != nil {
		return 0, err
	}
	return wasmtypes.HnameFromBytes(res)
}

func (s ScSandbox) CurrentChainID() (wasmtypes.ScChainID, error) {
	res, err := s.call(FnChainID, nil)
	if err != nil {
		return wasmtypes.ScChainID{}, err
	}
	return wasmtypes.ChainIDFromBytes(res)
}

// Log emits an informational message. Logging never fails an invocation.
func (s ScSandbox) Log(text string) {
	_, _ = s.host.Sandbox(FnLog, wasmtypes.StringToBytes(text))
}

// Panic reports text to the host and aborts the invocation. It does not
// return.
func (s ScSandbox) Panic(text string) {
	_, _ = s.host.Sandbox(FnPanic, wasmtypes.StringToBytes(text))
	panic(&Abort{Message: text})
}

// Params returns the parameters the running function was called with.
func (s ScSandbox) Params() (*ScImmutableDict, error) {
	res, err := s.call(FnParams, nil)
	if err != nil {
		return nil, err
	}
	params, err := NewScDictFromBytes(res)
	if err != nil {
		return nil, errors.Wrap(err, "params")
	}
	return params.Immutable(), nil
}

// Require aborts with msg unless cond holds.
func (s ScSandbox) Require(cond bool, msg string) {
	if !cond {
		s.Panic(msg)
	}
}

func (s ScSandbox) Results(results *ScDict) error {
	_, err := s.call(FnResults, results.Bytes())
	return err
}

// Timestamp returns the deterministic request time in nanoseconds.
func (s ScSandbox) Timestamp() (uint64, error) {
	res, err := s.call(FnTimestamp, nil)
	if err != nil {
		return 0, err
	}
	return wasmtypes.Uint64FromBytes(res)
}

func (s ScSandbox) Trace(text string) {
	_, _ = s.host.Sandbox(FnTrace, wasmtypes.StringToBytes(text))
}

func (s ScSandbox) Utility() ScSandboxUtils {
	return ScSandboxUtils{host: s.host}
}

// ScSandboxView is the sandbox handed to view functions.
type ScSandboxView struct {
	ScSandbox
}

func NewScSandboxView(host Host) ScSandboxView {
	return ScSandboxView{ScSandbox{host: host}}
}

// Call invokes a view of another contract. Views carry no allowance.
func (s ScSandboxView) Call(
	hContract wasmtypes.ScHname,
	hFunction wasmtypes.ScHname,
	params *ScDict,
) (*ScImmutableDict, error) {
	return s.callWithAllowance(hContract, hFunction, params, nil)
}

func (s ScSandboxView) RawState() ScImmutableState {
	return ScImmutableState{host: s.host}
}

// State returns a proxy over the read-only contract state.
func (s ScSandboxView) State() wasmtypes.Proxy {
	return wasmtypes.NewProxy(s.RawState())
}

// ScSandboxFunc is the sandbox handed to full functions. It carries the
// random generator of the invocation.
type ScSandboxFunc struct {
	ScSandbox
	rng *rng
}

func NewScSandboxFunc(host Host) ScSandboxFunc {
	return ScSandboxFunc{ScSandbox: ScSandbox{host: host}, rng: &rng{}}
}

// Allowance returns the assets the caller allowed this function to take.
func (s ScSandboxFunc) Allowance() (assets.ScBalances, error) {
	return s.balances(FnAllowance)
}

func (s ScSandboxFunc) Call(
	hContract wasmtypes.ScHname,
	hFunction wasmtypes.ScHname,
	params *ScDict,
	allowance *assets.ScTransfer,
) (*ScImmutableDict, error) {
	return s.callWithAllowance(hContract, hFunction, params, allowance)
}

func (s ScSandboxFunc) Caller() (wasmtypes.ScAgentID, error) {
	res, err := s.call(FnCaller, nil)
	if err != nil {
		return wasmtypes.ScAgentID{}, err
	}
	return wasmtypes.AgentIDFromBytes(res)
}

func (s ScSandboxFunc) DeployContract(
	progHash wasmtypes.ScHash,
	name string,
	description string,
	initParams *ScDict,
) error {
	req := &wasmrequests.DeployRequest{
		ProgHash:    progHash,
		Name:        name,
		Description: description,
		Params:      initParams.Bytes(),
	}
	buf, err := req.Bytes()
	if err != nil {
		return errors.Wrap(err, "deploy contract")
	}
	_, err = s.call(FnDeployContract, buf)
	return err
}

// Entropy returns the entropy of the current request.
func (s ScSandboxFunc) Entropy() (wasmtypes.ScHash, error) {
	res, err := s.call(FnEntropy, nil)
	if err != nil {
		return wasmtypes.ScHash{}, err
	}
	return wasmtypes.HashFromBytes(res)
}

// EstimateDust asks the host for the storage deposit a post of fn needs.
func (s ScSandboxFunc) EstimateDust(fn *ScFunc) (uint64, error) {
	res, err := s.call(FnEstimateDust, fn.postRequest().Bytes())
	if err != nil {
		return 0, err
	}
	return wasmtypes.Uint64FromBytes(res)
}

// Event publishes msg to subscribers of the chain.
func (s ScSandboxFunc) Event(msg string) error {
	_, err := s.call(FnEvent, wasmtypes.StringToBytes(msg))
	return err
}

// Minted returns the assets minted by the current transaction.
func (s ScSandboxFunc) Minted() (assets.ScBalances, error) {
	return s.balances(FnMinted)
}

// Post queues a request to a contract function, optionally delayed by a
// number of seconds.
func (s ScSandboxFunc) Post(
	chainID wasmtypes.ScChainID,
	hContract wasmtypes.ScHname,
	hFunction wasmtypes.ScHname,
	params *ScDict,
	allowance *assets.ScTransfer,
	transfer *assets.ScTransfer,
	delay uint32,
) error {
	req := &wasmrequests.PostRequest{
		ChainID:   chainID,
		Contract:  hContract,
		Function:  hFunction,
		Params:    params.Bytes(),
		Allowance: allowance.Bytes(),
		Transfer:  transfer.Bytes(),
		Delay:     delay,
	}
	_, err := s.call(FnPost, req.Bytes())
	return err
}

func (s ScSandboxFunc) RawState() ScState {
	return ScState{host: s.host}
}

// State returns a proxy over the mutable contract state.
func (s ScSandboxFunc) State() wasmtypes.Proxy {
	return wasmtypes.NewProxy(s.RawState())
}

func (s ScSandboxFunc) RequestID() (wasmtypes.ScRequestID, error) {
	res, err := s.call(FnRequestID, nil)
	if err != nil {
		return wasmtypes.ScRequestID{}, err
	}
	return wasmtypes.RequestIDFromBytes(res)
}

// Send transfers contract assets to an L1 address. An empty transfer is a
// no-op.
func (s ScSandboxFunc) Send(
	address wasmtypes.ScAddress,
	transfer *assets.ScTransfer,
) error {
	if transfer.IsEmpty() {
		return nil
	}
	req := &wasmrequests.SendRequest{
		Address:  address,
		Transfer: transfer.Bytes(),
	}
	_, err := s.call(FnSend, req.Bytes())
	return err
}

// TransferAllowed moves allowed assets from the caller to agentID. An empty
// transfer is a no-op.
func (s ScSandboxFunc) TransferAllowed(
	agentID wasmtypes.ScAgentID,
	transfer *assets.ScTransfer,
	create bool,
) error {
	if transfer.IsEmpty() {
		return nil
	}
	req := &wasmrequests.TransferRequest{
		AgentID:  agentID,
		Create:   create,
		Transfer: transfer.Bytes(),
	}
	_, err := s.call(FnTransferAllowed, req.Bytes())
	return err
}
