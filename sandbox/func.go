package sandbox

import (
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmrequests"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// ScView prepares and performs a call to a view of another contract.
type ScView struct {
	sandbox   ScSandbox
	hContract wasmtypes.ScHname
	hFunction wasmtypes.ScHname
	params    *ScDict
	results   *ScImmutableDict
}

func NewScView(
	ctx ScSandbox,
	hContract wasmtypes.ScHname,
	hFunction wasmtypes.ScHname,
) *ScView {
	return &ScView{
		sandbox:   ctx,
		hContract: hContract,
		hFunction: hFunction,
		params:    NewScDict(),
	}
}

// Params returns a proxy for filling in the call parameters.
func (v *ScView) Params() wasmtypes.Proxy {
	return v.params.AsProxy()
}

func (v *ScView) Call() error {
	results, err := v.sandbox.callWithAllowance(
		v.hContract,
		v.hFunction,
		v.params,
		nil,
	)
	if err != nil {
		return err
	}
	v.results = results
	return nil
}

// Results returns a proxy over the results of the last Call.
func (v *ScView) Results() (wasmtypes.Proxy, error) {
	if v.results == nil {
		return wasmtypes.Proxy{}, ErrMissingResults
	}
	return v.results.AsProxy(), nil
}

// ScFunc prepares a call or post to a function of another contract.
type ScFunc struct {
	ScView
	ctx       ScSandboxFunc
	allowance *assets.ScTransfer
	transfer  *assets.ScTransfer
	delay     uint32
}

func NewScFunc(
	ctx ScSandboxFunc,
	hContract wasmtypes.ScHname,
	hFunction wasmtypes.ScHname,
) *ScFunc {
	return &ScFunc{
		ScView: *NewScView(ctx.ScSandbox, hContract, hFunction),
		ctx:    ctx,
	}
}

func (f *ScFunc) Allowance(allowance *assets.ScTransfer) *ScFunc {
	f.allowance = allowance
	return f
}

func (f *ScFunc) AllowanceBaseTokens(amount uint64) *ScFunc {
	return f.Allowance(assets.NewScTransferBaseTokens(amount))
}

// Call performs a synchronous call with the configured allowance.
func (f *ScFunc) Call() error {
	results, err := f.ctx.Call(f.hContract, f.hFunction, f.params, f.allowance)
	if err != nil {
		return err
	}
	f.results = results
	return nil
}

// Delay sets the number of seconds a posted request waits before running.
func (f *ScFunc) Delay(seconds uint32) *ScFunc {
	f.delay = seconds
	return f
}

// Post queues the request on the current chain.
func (f *ScFunc) Post() error {
	chainID, err := f.ctx.CurrentChainID()
	if err != nil {
		return err
	}
	return f.PostToChain(chainID)
}

func (f *ScFunc) PostToChain(chainID wasmtypes.ScChainID) error {
	return f.ctx.Post(
		chainID,
		f.hContract,
		f.hFunction,
		f.params,
		f.allowance,
		f.transfer,
		f.delay,
	)
}

func (f *ScFunc) Transfer(transfer *assets.ScTransfer) *ScFunc {
	f.transfer = transfer
	return f
}

func (f *ScFunc) TransferBaseTokens(amount uint64) *ScFunc {
	return f.Transfer(assets.NewScTransferBaseTokens(amount))
}

func (f *ScFunc) postRequest() *wasmrequests.PostRequest {
	return &wasmrequests.PostRequest{
		Contract:  f.hContract,
		Function:  f.hFunction,
		Params:    f.params.Bytes(),
		Allowance: f.allowance.Bytes(),
		Transfer:  f.transfer.Bytes(),
		Delay:     f.delay,
	}
}
