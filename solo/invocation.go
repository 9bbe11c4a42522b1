package solo

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/sandbox"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/store"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmrequests"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

var _ sandbox.Host = (*invocation)(nil)

// invocation serves the host calls of one running contract function.
type invocation struct {
	request   *requestCtx
	logger    *zap.Logger
	contract  wasmtypes.ScHname
	name      string
	caller    wasmtypes.ScAgentID
	params    *sandbox.ScDict
	allowance *assets.ScAssets
	results   *sandbox.ScDict
	view      bool
	state     *store.PrefixStore
}

type hostFunc func(inv *invocation, args []byte) ([]byte, error)

// indexed by the negated function number
var hostFuncs = [sandbox.FuncCount + 1]hostFunc{
	nil,
	(*invocation).fnAccountID,
	funcOnly((*invocation).fnAllowance),
	(*invocation).fnBalance,
	(*invocation).fnBalances,
	unsupported,
	(*invocation).fnCall,
	funcOnly((*invocation).fnCaller),
	(*invocation).fnChainID,
	(*invocation).fnChainOwnerID,
	(*invocation).fnContract,
	funcOnly((*invocation).fnDeployContract),
	funcOnly((*invocation).fnEntropy),
	funcOnly((*invocation).fnEstimateDust),
	funcOnly((*invocation).fnEvent),
	(*invocation).fnLog,
	funcOnly((*invocation).fnMinted),
	(*invocation).fnPanic,
	(*invocation).fnParams,
	funcOnly((*invocation).fnPost),
	unsupported,
	funcOnly((*invocation).fnRequestID),
	(*invocation).fnResults,
	funcOnly((*invocation).fnSend),
	unsupported,
	(*invocation).fnTimestamp,
	(*invocation).fnTrace,
	funcOnly((*invocation).fnTransferAllowed),
	(*invocation).fnUtilsBech32Decode,
	(*invocation).fnUtilsBech32Encode,
	unsupported,
	unsupported,
	unsupported,
	(*invocation).fnUtilsEd25519Address,
	(*invocation).fnUtilsEd25519Valid,
	(*invocation).fnUtilsHashBlake2b,
	(*invocation).fnUtilsHashName,
	(*invocation).fnUtilsHashSha3,
}

func unsupported(inv *invocation, args []byte) ([]byte, error) {
	return nil, ErrUnsupported
}

func funcOnly(fn hostFunc) hostFunc {
	return func(inv *invocation, args []byte) ([]byte, error) {
		if inv.view {
			return nil, ErrFuncOnly
		}
		return fn(inv, args)
	}
}

// Sandbox implements sandbox.Host.
func (inv *invocation) Sandbox(funcNr int32, params []byte) ([]byte, error) {
	name := sandbox.FuncName(funcNr)
	index := -int(funcNr)
	if index <= 0 || index >= len(hostFuncs) {
		HostCallErrors.WithLabelValues(name).Inc()
		return nil, errors.Wrapf(ErrUnknownFunction, "function %d", funcNr)
	}

	HostCallsTotal.WithLabelValues(name).Inc()
	timer := prometheus.NewTimer(HostCallDuration.WithLabelValues(name))
	defer timer.ObserveDuration()

	res, err := hostFuncs[index](inv, params)
	if err != nil {
		HostCallErrors.WithLabelValues(name).Inc()
		inv.logger.Debug("host call failed", zap.String("function", name), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (inv *invocation) StateDelete(key []byte) error {
	if inv.view {
		return sandbox.ErrViewMutation
	}
	return inv.state.Delete(key)
}

func (inv *invocation) StateExists(key []byte) (bool, error) {
	return inv.state.Exists(key)
}

func (inv *invocation) StateGet(key []byte) ([]byte, error) {
	return inv.state.Get(key)
}

func (inv *invocation) StateSet(key []byte, value []byte) error {
	if inv.view {
		return sandbox.ErrViewMutation
	}
	return inv.state.Set(key, value)
}

func (inv *invocation) chain() *Chain {
	return inv.request.chain
}

func (inv *invocation) accountID() wasmtypes.ScAgentID {
	return inv.chain().ContractAgentID(inv.contract)
}

func (inv *invocation) fnAccountID(args []byte) ([]byte, error) {
	return inv.accountID().Bytes(), nil
}

func (inv *invocation) fnAllowance(args []byte) ([]byte, error) {
	return inv.allowance.Bytes(), nil
}

func (inv *invocation) fnBalance(args []byte) ([]byte, error) {
	acct, _, err := inv.request.account(inv.accountID())
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return wasmtypes.Uint64ToBytes(acct.BaseTokens), nil
	}
	tokenID, err := wasmtypes.TokenIDFromBytes(args)
	if err != nil {
		return nil, err
	}
	return wasmtypes.BigIntToBytes(acct.NativeTokens[tokenID]), nil
}

func (inv *invocation) fnBalances(args []byte) ([]byte, error) {
	acct, _, err := inv.request.account(inv.accountID())
	if err != nil {
		return nil, err
	}
	return acct.Bytes(), nil
}

func (inv *invocation) fnCall(args []byte) ([]byte, error) {
	req, err := wasmrequests.NewCallRequestFromBytes(args)
	if err != nil {
		return nil, err
	}
	params, err := sandbox.NewScDictFromBytes(req.Params)
	if err != nil {
		return nil, err
	}
	allowance, err := assets.NewScAssets(req.Allowance)
	if err != nil {
		return nil, err
	}
	if inv.view && !allowance.IsEmpty() {
		return nil, errors.Wrap(ErrFuncOnly, "allowance")
	}
	if err := inv.request.covers(inv.accountID(), allowance); err != nil {
		return nil, errors.Wrap(err, "allowance")
	}

	inv.logger.Debug(
		"call",
		zap.String("target", req.Contract.String()),
		zap.String("function", req.Function.String()),
	)
	results, err := inv.request.invoke(
		inv.accountID(),
		req.Contract,
		req.Function,
		params,
		allowance,
		inv.view,
	)
	if err != nil {
		return nil, err
	}
	return results.Bytes(), nil
}

func (inv *invocation) fnCaller(args []byte) ([]byte, error) {
	return inv.caller.Bytes(), nil
}

func (inv *invocation) fnChainID(args []byte) ([]byte, error) {
	return inv.chain().chainID.Bytes(), nil
}

func (inv *invocation) fnChainOwnerID(args []byte) ([]byte, error) {
	return inv.chain().owner.Bytes(), nil
}

func (inv *invocation) fnContract(args []byte) ([]byte, error) {
	return inv.contract.Bytes(), nil
}

func (inv *invocation) fnDeployContract(args []byte) ([]byte, error) {
	req, err := wasmrequests.NewDeployRequestFromBytes(args)
	if err != nil {
		return nil, err
	}
	params, err := sandbox.NewScDictFromBytes(req.Params)
	if err != nil {
		return nil, err
	}
	return nil, inv.request.deploy(
		inv.accountID(),
		req.ProgHash,
		req.Name,
		req.Description,
		params,
	)
}

func (inv *invocation) fnEntropy(args []byte) ([]byte, error) {
	return inv.request.entropy.Bytes(), nil
}

func (inv *invocation) fnEstimateDust(args []byte) ([]byte, error) {
	if _, err := wasmrequests.NewPostRequestFromBytes(args); err != nil {
		return nil, err
	}
	return wasmtypes.Uint64ToBytes(inv.chain().dust), nil
}

func (inv *invocation) fnEvent(args []byte) ([]byte, error) {
	msg, err := wasmtypes.StringFromBytes(args)
	if err != nil {
		return nil, err
	}
	inv.request.events = append(inv.request.events, Event{
		Contract:  inv.contract,
		Message:   msg,
		Timestamp: inv.request.timestamp,
	})
	inv.logger.Info("contract event", zap.String("event", msg))
	return nil, nil
}

func (inv *invocation) fnLog(args []byte) ([]byte, error) {
	inv.logger.Info(string(args))
	return nil, nil
}

func (inv *invocation) fnMinted(args []byte) ([]byte, error) {
	return inv.request.minted.Bytes(), nil
}

// fnPanic marks the whole request as aborted. The contract side unwinds on
// its own once the call returns.
func (inv *invocation) fnPanic(args []byte) ([]byte, error) {
	msg := string(args)
	inv.logger.Error("contract panic", zap.String("message", msg))
	if inv.request.abort == nil {
		inv.request.abort = &sandbox.Abort{Message: msg}
	}
	return nil, nil
}

func (inv *invocation) fnParams(args []byte) ([]byte, error) {
	return inv.params.Bytes(), nil
}

func (inv *invocation) fnPost(args []byte) ([]byte, error) {
	req, err := wasmrequests.NewPostRequestFromBytes(args)
	if err != nil {
		return nil, err
	}
	if _, err := sandbox.NewScDictFromBytes(req.Params); err != nil {
		return nil, err
	}
	allowance, err := assets.NewScAssets(req.Allowance)
	if err != nil {
		return nil, err
	}
	transfer, err := assets.NewScAssets(req.Transfer)
	if err != nil {
		return nil, err
	}
	// every posted request carries at least the storage deposit
	if transfer.BaseTokens < inv.chain().dust {
		transfer.BaseTokens = inv.chain().dust
	}
	if err := inv.request.debit(inv.accountID(), transfer); err != nil {
		return nil, errors.Wrap(err, "post")
	}

	inv.request.posted = append(inv.request.posted, &PostedRequest{
		ChainID:   req.ChainID,
		Sender:    inv.accountID(),
		Contract:  req.Contract,
		Function:  req.Function,
		Params:    req.Params,
		Allowance: allowance,
		Transfer:  transfer,
		DueAt:     inv.request.timestamp + uint64(req.Delay)*1_000_000_000,
	})
	inv.logger.Debug(
		"post",
		zap.String("target", req.Contract.String()),
		zap.String("function", req.Function.String()),
		zap.Uint32("delay", req.Delay),
	)
	return nil, nil
}

func (inv *invocation) fnRequestID(args []byte) ([]byte, error) {
	return inv.request.id.Bytes(), nil
}

func (inv *invocation) fnResults(args []byte) ([]byte, error) {
	results, err := sandbox.NewScDictFromBytes(args)
	if err != nil {
		return nil, errors.Wrap(err, "results")
	}
	inv.results = results
	return nil, nil
}

func (inv *invocation) fnSend(args []byte) ([]byte, error) {
	req, err := wasmrequests.NewSendRequestFromBytes(args)
	if err != nil {
		return nil, err
	}
	transfer, err := assets.NewScAssets(req.Transfer)
	if err != nil {
		return nil, err
	}
	if transfer.IsEmpty() {
		return nil, nil
	}
	if err := inv.request.debit(inv.accountID(), transfer); err != nil {
		return nil, errors.Wrap(err, "send")
	}
	inv.request.sent = append(inv.request.sent, Sent{
		Address: req.Address,
		Assets:  transfer,
	})
	return nil, nil
}

func (inv *invocation) fnTimestamp(args []byte) ([]byte, error) {
	return wasmtypes.Uint64ToBytes(inv.request.timestamp), nil
}

func (inv *invocation) fnTrace(args []byte) ([]byte, error) {
	inv.logger.Debug(string(args))
	return nil, nil
}

// fnTransferAllowed moves assets out of the remaining allowance, from the
// caller's account to the target account.
func (inv *invocation) fnTransferAllowed(args []byte) ([]byte, error) {
	req, err := wasmrequests.NewTransferRequestFromBytes(args)
	if err != nil {
		return nil, err
	}
	transfer, err := assets.NewScAssets(req.Transfer)
	if err != nil {
		return nil, err
	}
	if transfer.IsEmpty() {
		return nil, nil
	}
	if !req.Create {
		exists, err := inv.request.accountExists(req.AgentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.Wrapf(ErrAccountNotFound, "%s", req.AgentID)
		}
	}
	if err := inv.allowance.Spend(transfer); err != nil {
		return nil, errors.Wrap(err, "allowance")
	}
	if err := inv.request.debit(inv.caller, transfer); err != nil {
		return nil, err
	}
	return nil, inv.request.credit(req.AgentID, transfer)
}

func (inv *invocation) fnUtilsBech32Decode(args []byte) ([]byte, error) {
	addr, hrp, err := wasmtypes.AddressFromBech32(string(args))
	if err != nil {
		return nil, err
	}
	if hrp != inv.chain().bech32 {
		return nil, errors.Wrapf(ErrBech32Prefix, "%q", hrp)
	}
	return addr.Bytes(), nil
}

func (inv *invocation) fnUtilsBech32Encode(args []byte) ([]byte, error) {
	addr, err := wasmtypes.AddressFromBytes(args)
	if err != nil {
		return nil, err
	}
	return []byte(wasmtypes.AddressToBech32(addr, inv.chain().bech32)), nil
}

func (inv *invocation) fnUtilsEd25519Address(args []byte) ([]byte, error) {
	addr, err := ed25519Address(args)
	if err != nil {
		return nil, err
	}
	return addr.Bytes(), nil
}

func (inv *invocation) fnUtilsEd25519Valid(args []byte) ([]byte, error) {
	dec := wasmtypes.NewWasmDecoder(args)
	data := dec.Bytes()
	pubKey := dec.Bytes()
	sig := dec.Bytes()
	if err := dec.Close(); err != nil {
		return nil, err
	}
	return wasmtypes.BoolToBytes(ed25519Valid(data, pubKey, sig)), nil
}

func (inv *invocation) fnUtilsHashBlake2b(args []byte) ([]byte, error) {
	return hashBlake2b(args).Bytes(), nil
}

func (inv *invocation) fnUtilsHashName(args []byte) ([]byte, error) {
	return HashName(string(args)).Bytes(), nil
}

func (inv *invocation) fnUtilsHashSha3(args []byte) ([]byte, error) {
	return hashSha3(args).Bytes(), nil
}
