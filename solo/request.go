package solo

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/sandbox"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/store"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmrequests"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// requestCtx holds everything a single request changes until it commits.
type requestCtx struct {
	chain     *Chain
	overlay   *store.Overlay
	id        wasmtypes.ScRequestID
	entropy   wasmtypes.ScHash
	timestamp uint64
	minted    *assets.ScAssets
	abort     *sandbox.Abort
	events    []Event
	posted    []*PostedRequest
	sent      []Sent
}

func (r *requestCtx) run(req *Request) (*sandbox.ScDict, error) {
	if err := r.credit(req.Sender, req.Transfer); err != nil {
		return nil, err
	}
	if err := r.covers(req.Sender, req.Allowance); err != nil {
		return nil, errors.Wrap(err, "allowance")
	}
	results, err := r.invoke(
		req.Sender,
		req.Contract,
		req.Function,
		req.Params,
		req.Allowance,
		false,
	)
	if err != nil {
		return nil, err
	}
	// a nested abort fails the request even when the caller carried on
	if r.abort != nil {
		return nil, r.abort
	}
	return results, nil
}

func (r *requestCtx) commit() error {
	if err := r.overlay.Commit(); err != nil {
		return errors.Wrap(err, "commit request")
	}
	c := r.chain
	c.events = append(c.events, r.events...)
	c.posted = append(c.posted, r.posted...)
	c.sent = append(c.sent, r.sent...)
	return nil
}

func (r *requestCtx) invoke(
	caller wasmtypes.ScAgentID,
	contract wasmtypes.ScHname,
	function wasmtypes.ScHname,
	params *sandbox.ScDict,
	allowance *assets.ScAssets,
	view bool,
) (*sandbox.ScDict, error) {
	rec, prog, err := r.contract(contract)
	if err != nil {
		return nil, err
	}
	ep, ok := prog.eps[function]
	if !ok {
		return nil, errors.Wrapf(
			ErrUnknownEntryPoint,
			"%s.%s",
			rec.Name,
			function,
		)
	}
	if view && ep.view == nil {
		return nil, errors.Wrapf(ErrFuncOnly, "%s.%s", rec.Name, ep.name)
	}

	if params == nil {
		params = sandbox.NewScDict()
	}
	inv := &invocation{
		request:   r,
		logger:    r.chain.logger.With(zap.String("contract", rec.Name)),
		contract:  contract,
		name:      rec.Name,
		caller:    caller,
		params:    params,
		allowance: allowance.Clone(),
		view:      view,
		state:     store.NewPrefixStore(r.overlay, stateKey(contract)),
	}

	inv.logger.Debug("invoke", zap.String("function", ep.name), zap.Bool("view", view))
	if err := r.runEntryPoint(inv, ep); err != nil {
		return nil, err
	}
	if inv.results == nil {
		return sandbox.NewScDict(), nil
	}
	return inv.results, nil
}

// runEntryPoint runs ep inside inv. A runtime fault of the contract code
// aborts the request the same way a contract panic does.
func (r *requestCtx) runEntryPoint(inv *invocation, ep entryPoint) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			abort := &sandbox.Abort{Message: fmt.Sprint(rec)}
			inv.logger.Error(
				"contract fault",
				zap.String("function", ep.name),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			if r.abort == nil {
				r.abort = abort
			}
			err = abort
		}
	}()

	if ep.view != nil {
		return sandbox.RunView(inv, ep.view)
	}
	return sandbox.RunFunc(inv, ep.fn)
}

func (r *requestCtx) contract(
	hname wasmtypes.ScHname,
) (*wasmrequests.DeployRequest, *program, error) {
	buf, err := r.overlay.Get(contractKey(hname))
	if err != nil {
		return nil, nil, errors.Wrap(err, "contract")
	}
	if buf == nil {
		return nil, nil, errors.Wrapf(ErrUnknownContract, "%s", hname)
	}
	rec, err := decodeDeployRecord(buf)
	if err != nil {
		return nil, nil, err
	}
	prog, ok := r.chain.programs[rec.ProgHash]
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownProgram, "%s", rec.ProgHash)
	}
	return rec, prog, nil
}

func (r *requestCtx) deploy(
	deployer wasmtypes.ScAgentID,
	progHash wasmtypes.ScHash,
	name string,
	description string,
	params *sandbox.ScDict,
) error {
	prog, ok := r.chain.programs[progHash]
	if !ok {
		return errors.Wrapf(ErrUnknownProgram, "%s", progHash)
	}
	hname := HashName(name)
	exists, err := r.overlay.Exists(contractKey(hname))
	if err != nil {
		return errors.Wrap(err, "deploy")
	}
	if exists {
		return errors.Wrapf(ErrContractExists, "%s", name)
	}

	rec := &wasmrequests.DeployRequest{
		ProgHash:    progHash,
		Name:        name,
		Description: description,
	}
	buf, err := rec.Bytes()
	if err != nil {
		return errors.Wrap(err, "deploy")
	}
	if err := r.overlay.Set(contractKey(hname), buf); err != nil {
		return errors.Wrap(err, "deploy")
	}
	r.chain.logger.Info(
		"contract deployed",
		zap.String("contract", name),
		zap.String("hname", hname.String()),
		zap.String("program", prog.Name),
	)

	if _, ok := prog.Funcs[InitFunc]; !ok {
		return nil
	}
	_, err = r.invoke(deployer, hname, HashName(InitFunc), params, nil, false)
	return err
}

func (r *requestCtx) account(
	agentID wasmtypes.ScAgentID,
) (*assets.ScAssets, bool, error) {
	buf, err := r.overlay.Get(accountKey(agentID))
	if err != nil {
		return nil, false, errors.Wrap(err, "account")
	}
	if buf == nil {
		return assets.NewEmptyScAssets(), false, nil
	}
	acct, err := assets.NewScAssets(buf)
	return acct, true, errors.Wrap(err, "account")
}

// accountExists is true for known accounts and for contracts deployed on
// this chain.
func (r *requestCtx) accountExists(agentID wasmtypes.ScAgentID) (bool, error) {
	_, exists, err := r.account(agentID)
	if err != nil || exists {
		return exists, err
	}
	if agentID.Kind() != wasmtypes.ScAgentIDContract {
		return false, nil
	}
	chainID, err := agentID.ChainID()
	if err != nil || chainID != r.chain.chainID {
		return false, nil
	}
	return r.overlay.Exists(contractKey(agentID.Hname()))
}

func (r *requestCtx) covers(agentID wasmtypes.ScAgentID, amount *assets.ScAssets) error {
	acct, _, err := r.account(agentID)
	if err != nil {
		return err
	}
	return acct.Spend(amount)
}

func (r *requestCtx) credit(agentID wasmtypes.ScAgentID, amount *assets.ScAssets) error {
	if amount.IsEmpty() {
		return nil
	}
	acct, _, err := r.account(agentID)
	if err != nil {
		return err
	}
	if err := acct.Add(amount); err != nil {
		return errors.Wrapf(err, "credit %s", agentID)
	}
	return r.overlay.Set(accountKey(agentID), acct.Bytes())
}

func (r *requestCtx) debit(agentID wasmtypes.ScAgentID, amount *assets.ScAssets) error {
	acct, _, err := r.account(agentID)
	if err != nil {
		return err
	}
	if err := acct.Spend(amount); err != nil {
		return errors.Wrapf(err, "debit %s", agentID)
	}
	return r.overlay.Set(accountKey(agentID), acct.Bytes())
}
