package solo_test

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/blake2b"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/assets"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/config"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/sandbox"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/solo"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/store"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

const testTimestamp = 1_700_000_000_000_000_000

var (
	hCounter   = solo.HashName("counter")
	hIncrement = solo.HashName("increment")
	hGet       = solo.HashName("get")
)

func counterValue(state wasmtypes.Proxy) wasmtypes.ScMutable[uint64] {
	return wasmtypes.NewScMutable(state.Root("counter"), wasmtypes.Uint64Codec)
}

func setResult[T any](dict *sandbox.ScDict, key string, codec wasmtypes.Codec[T], value T) error {
	return wasmtypes.NewScMutable(dict.AsProxy().Root(key), codec).SetValue(value)
}

func result[T any](t *testing.T, dict *sandbox.ScDict, key string, codec wasmtypes.Codec[T]) T {
	t.Helper()
	value, err := wasmtypes.NewScImmutable(dict.AsProxy().Root(key), codec).Value()
	require.NoError(t, err)
	return value
}

func param[T any](params *sandbox.ScImmutableDict, key string, codec wasmtypes.Codec[T]) (T, error) {
	return wasmtypes.NewScImmutable(params.AsProxy().Root(key), codec).Value()
}

func counterProgram() *solo.Program {
	return &solo.Program{
		Name: "counter",
		Funcs: map[string]solo.FuncHandler{
			solo.InitFunc: func(ctx sandbox.ScSandboxFunc) error {
				params, err := ctx.Params()
				if err != nil {
					return err
				}
				start, err := param(params, "start", wasmtypes.Uint64Codec)
				if err != nil {
					return err
				}
				return counterValue(ctx.State()).SetValue(start)
			},
			"increment": func(ctx sandbox.ScSandboxFunc) error {
				counter := counterValue(ctx.State())
				value, err := counter.Value()
				if err != nil {
					return err
				}
				if err := counter.SetValue(value + 1); err != nil {
					return err
				}
				if err := ctx.Event("counter.incremented"); err != nil {
					return err
				}
				results := sandbox.NewScDict()
				if err := setResult(results, "value", wasmtypes.Uint64Codec, value+1); err != nil {
					return err
				}
				return ctx.Results(results)
			},
			"fail": func(ctx sandbox.ScSandboxFunc) error {
				if err := counterValue(ctx.State()).SetValue(999); err != nil {
					return err
				}
				return errors.New("fail requested")
			},
			"boom": func(ctx sandbox.ScSandboxFunc) error {
				if err := counterValue(ctx.State()).SetValue(999); err != nil {
					return err
				}
				var seen map[string]bool
				seen["boom"] = true
				return nil
			},
			"deposit": func(ctx sandbox.ScSandboxFunc) error {
				allowance, err := ctx.Allowance()
				if err != nil {
					return err
				}
				self, err := ctx.AccountID()
				if err != nil {
					return err
				}
				return ctx.TransferAllowed(self, assets.NewScTransferFromBalances(allowance), false)
			},
			"schedule": func(ctx sandbox.ScSandboxFunc) error {
				self, err := ctx.Contract()
				if err != nil {
					return err
				}
				return sandbox.NewScFunc(ctx, self, hIncrement).
					TransferBaseTokens(100).
					Delay(10).
					Post()
			},
			"roll": func(ctx sandbox.ScSandboxFunc) error {
				results := sandbox.NewScDict()
				for _, key := range []string{"a", "b", "c", "d", "e"} {
					value, err := ctx.Random(1000)
					if err != nil {
						return err
					}
					if err := setResult(results, key, wasmtypes.Uint64Codec, value); err != nil {
						return err
					}
				}
				return ctx.Results(results)
			},
			"bls": func(ctx sandbox.ScSandboxFunc) error {
				_, err := ctx.Utility().BlsValidSignature(nil, nil, nil)
				return err
			},
			"peek": func(ctx sandbox.ScSandboxFunc) error {
				res, err := ctx.Call(hCounter, hGet, nil, nil)
				if err != nil {
					return err
				}
				seen, err := param(res, "value", wasmtypes.Uint64Codec)
				if err != nil {
					return err
				}
				results := sandbox.NewScDict()
				if err := setResult(results, "seen", wasmtypes.Uint64Codec, seen); err != nil {
					return err
				}
				return ctx.Results(results)
			},
		},
		Views: map[string]solo.ViewHandler{
			"get": func(ctx sandbox.ScSandboxView) error {
				value, err := wasmtypes.NewScImmutable(
					ctx.State().Root("counter"),
					wasmtypes.Uint64Codec,
				).Value()
				if err != nil {
					return err
				}
				results := sandbox.NewScDict()
				if err := setResult(results, "value", wasmtypes.Uint64Codec, value); err != nil {
					return err
				}
				return ctx.Results(results)
			},
			"tamper": func(ctx sandbox.ScSandboxView) error {
				return wasmtypes.NewScMutable(
					ctx.State().Root("counter"),
					wasmtypes.Uint64Codec,
				).SetValue(0)
			},
			"verify": func(ctx sandbox.ScSandboxView) error {
				params, err := ctx.Params()
				if err != nil {
					return err
				}
				data, _ := param(params, "data", wasmtypes.BytesCodec)
				pubKey, _ := param(params, "pubKey", wasmtypes.BytesCodec)
				sig, _ := param(params, "sig", wasmtypes.BytesCodec)
				valid, err := ctx.Utility().Ed25519ValidSignature(data, pubKey, sig)
				if err != nil {
					return err
				}
				results := sandbox.NewScDict()
				if err := setResult(results, "valid", wasmtypes.BoolCodec, valid); err != nil {
					return err
				}
				return ctx.Results(results)
			},
		},
	}
}

func newTestChain(t *testing.T) (*solo.Chain, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	kv, err := store.NewPebbleStore(
		logger,
		&config.DBConfig{InMemoryDONOTUSE: true, Path: ".test/chain"},
	)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	chain, err := solo.NewChain(logger, &config.HostConfig{
		EntropySeed: "0x0102",
		Timestamp:   testTimestamp,
	}, kv)
	require.NoError(t, err)
	return chain, logs
}

func deployCounter(t *testing.T, chain *solo.Chain, start uint64) {
	t.Helper()
	hash := chain.RegisterProgram(counterProgram())
	params := sandbox.NewScDict()
	require.NoError(t, setResult(params, "start", wasmtypes.Uint64Codec, start))
	require.NoError(t, chain.DeployContract(hash, "counter", "test counter", params))
}

func testSender(t *testing.T) wasmtypes.ScAgentID {
	t.Helper()
	addr, err := wasmtypes.AddressFromBytes(
		append([]byte{wasmtypes.ScAddressEd25519}, bytes.Repeat([]byte{0x42}, 32)...),
	)
	require.NoError(t, err)
	return wasmtypes.NewScAgentIDFromAddress(addr)
}

func counterNow(t *testing.T, chain *solo.Chain) uint64 {
	t.Helper()
	res, err := chain.CallView(hCounter, hGet, nil)
	require.NoError(t, err)
	return result(t, res, "value", wasmtypes.Uint64Codec)
}

func baseTokens(n uint64) *assets.ScAssets {
	a := assets.NewEmptyScAssets()
	a.BaseTokens = n
	return a
}

func TestHashName(t *testing.T) {
	digest := blake2b.Sum256([]byte("increment"))
	expected, err := wasmtypes.HnameFromBytes(digest[:4])
	require.NoError(t, err)
	if expected == 0 || expected == 0xffffffff {
		expected = 1
	}
	assert.Equal(t, expected, solo.HashName("increment"))
	assert.NotEqual(t, solo.HashName("increment"), solo.HashName("get"))
}

func TestDeployAndIncrement(t *testing.T) {
	chain, logs := newTestChain(t)
	deployCounter(t, chain, 5)
	assert.Equal(t, 1, logs.FilterMessage("contract deployed").Len())
	assert.Equal(t, uint64(5), counterNow(t, chain))

	res, err := chain.Run(&solo.Request{
		Sender:   testSender(t),
		Contract: hCounter,
		Function: hIncrement,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(6), result(t, res, "value", wasmtypes.Uint64Codec))
	assert.Equal(t, uint64(6), counterNow(t, chain))

	events := chain.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "counter.incremented", events[0].Message)
	assert.Equal(t, hCounter, events[0].Contract)
	assert.Equal(t, uint64(testTimestamp), events[0].Timestamp)
}

func TestDeployErrors(t *testing.T) {
	chain, _ := newTestChain(t)
	err := chain.DeployContract(counterProgram().Hash(), "counter", "", nil)
	assert.ErrorIs(t, err, solo.ErrUnknownProgram)

	deployCounter(t, chain, 0)
	err = chain.DeployContract(counterProgram().Hash(), "counter", "", nil)
	assert.ErrorIs(t, err, solo.ErrContractExists)

	_, err = chain.Run(&solo.Request{Contract: solo.HashName("missing"), Function: hGet})
	assert.ErrorIs(t, err, solo.ErrUnknownContract)
	_, err = chain.Run(&solo.Request{Contract: hCounter, Function: solo.HashName("missing")})
	assert.ErrorIs(t, err, solo.ErrUnknownEntryPoint)
}

func TestAbortDiscardsStateButKeepsDeposit(t *testing.T) {
	chain, logs := newTestChain(t)
	deployCounter(t, chain, 5)
	sender := testSender(t)

	_, err := chain.Run(&solo.Request{
		Sender:   sender,
		Contract: hCounter,
		Function: solo.HashName("fail"),
		Transfer: baseTokens(50),
	})
	var abort *sandbox.Abort
	require.ErrorAs(t, err, &abort)
	assert.Equal(t, "fail requested", abort.Message)
	assert.Equal(t, 1, logs.FilterMessage("contract panic").Len())

	assert.Equal(t, uint64(5), counterNow(t, chain))
	balances, err := chain.Balances(sender)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balances.BaseTokens)
	assert.Empty(t, chain.Events())
}

func TestContractFaultAbortsRequest(t *testing.T) {
	chain, logs := newTestChain(t)
	deployCounter(t, chain, 5)
	sender := testSender(t)

	var res *sandbox.ScDict
	var err error
	require.NotPanics(t, func() {
		res, err = chain.Run(&solo.Request{
			Sender:   sender,
			Contract: hCounter,
			Function: solo.HashName("boom"),
			Transfer: baseTokens(50),
		})
	})
	assert.Nil(t, res)
	var abort *sandbox.Abort
	require.ErrorAs(t, err, &abort)
	assert.Contains(t, abort.Message, "assignment to entry in nil map")
	assert.Equal(t, 1, logs.FilterMessage("contract fault").Len())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())

	assert.Equal(t, uint64(5), counterNow(t, chain))
	balances, err := chain.Balances(sender)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balances.BaseTokens)

	// the chain keeps working after the fault
	_, err = chain.Run(&solo.Request{Sender: sender, Contract: hCounter, Function: hIncrement})
	require.NoError(t, err)
	assert.Equal(t, uint64(6), counterNow(t, chain))
}

func TestDepositOverflowFails(t *testing.T) {
	chain, _ := newTestChain(t)
	deployCounter(t, chain, 0)
	sender := testSender(t)

	req := &solo.Request{
		Sender:   sender,
		Contract: hCounter,
		Function: hIncrement,
		Transfer: baseTokens(math.MaxUint64),
	}
	_, err := chain.Run(req)
	require.NoError(t, err)

	_, err = chain.Run(req)
	assert.ErrorIs(t, err, wasmtypes.ErrIntegerOverflow)

	balances, err := chain.Balances(sender)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), balances.BaseTokens)
	assert.Equal(t, uint64(1), counterNow(t, chain))
}

func TestAdvanceTimeIgnoresNegative(t *testing.T) {
	chain, logs := newTestChain(t)
	chain.AdvanceTime(-time.Hour)
	assert.Equal(t, uint64(testTimestamp), chain.Timestamp())
	assert.Equal(t, 1, logs.FilterMessage("ignoring negative time advance").Len())

	chain.AdvanceTime(time.Second)
	assert.Equal(t, uint64(testTimestamp+time.Second), chain.Timestamp())
}

func TestTransferAllowed(t *testing.T) {
	chain, _ := newTestChain(t)
	deployCounter(t, chain, 0)
	sender := testSender(t)

	_, err := chain.Run(&solo.Request{
		Sender:    sender,
		Contract:  hCounter,
		Function:  solo.HashName("deposit"),
		Transfer:  baseTokens(100),
		Allowance: baseTokens(40),
	})
	require.NoError(t, err)

	senderBalances, err := chain.Balances(sender)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), senderBalances.BaseTokens)
	contractBalances, err := chain.Balances(chain.ContractAgentID(hCounter))
	require.NoError(t, err)
	assert.Equal(t, uint64(40), contractBalances.BaseTokens)

	// the allowance must be covered by the sender's account
	_, err = chain.Run(&solo.Request{
		Sender:    sender,
		Contract:  hCounter,
		Function:  solo.HashName("deposit"),
		Allowance: baseTokens(61),
	})
	assert.ErrorIs(t, err, assets.ErrInsufficientFunds)
}

func TestViewsAreReadOnly(t *testing.T) {
	chain, _ := newTestChain(t)
	deployCounter(t, chain, 3)

	_, err := chain.CallView(hCounter, solo.HashName("tamper"), nil)
	var abort *sandbox.Abort
	require.ErrorAs(t, err, &abort)
	assert.Contains(t, abort.Message, sandbox.ErrViewMutation.Error())
	assert.Equal(t, uint64(3), counterNow(t, chain))

	_, err = chain.CallView(hCounter, hIncrement, nil)
	assert.ErrorIs(t, err, solo.ErrFuncOnly)
}

func TestPostedRequestRunsWhenDue(t *testing.T) {
	chain, _ := newTestChain(t)
	deployCounter(t, chain, 0)
	contractAgent := chain.ContractAgentID(hCounter)

	_, err := chain.Run(&solo.Request{
		Sender:    testSender(t),
		Contract:  hCounter,
		Function:  solo.HashName("deposit"),
		Transfer:  baseTokens(500),
		Allowance: baseTokens(500),
	})
	require.NoError(t, err)

	_, err = chain.Run(&solo.Request{
		Sender:   testSender(t),
		Contract: hCounter,
		Function: solo.HashName("schedule"),
	})
	require.NoError(t, err)

	posted := chain.Posted()
	require.Len(t, posted, 1)
	assert.Equal(t, hIncrement, posted[0].Function)
	assert.Equal(t, contractAgent, posted[0].Sender)
	assert.Equal(t, uint64(testTimestamp+10*time.Second), posted[0].DueAt)

	balances, err := chain.Balances(contractAgent)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), balances.BaseTokens)

	assert.Zero(t, chain.ProcessPosted())
	chain.AdvanceTime(10 * time.Second)
	assert.Equal(t, 1, chain.ProcessPosted())
	assert.Empty(t, chain.Posted())
	assert.Equal(t, uint64(1), counterNow(t, chain))

	balances, err = chain.Balances(contractAgent)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), balances.BaseTokens)
}

func TestRandomIsDeterministic(t *testing.T) {
	roll := func() *sandbox.ScDict {
		chain, _ := newTestChain(t)
		deployCounter(t, chain, 0)
		res, err := chain.Run(&solo.Request{Contract: hCounter, Function: solo.HashName("roll")})
		require.NoError(t, err)
		return res
	}

	first := roll()
	second := roll()
	assert.Equal(t, first.Bytes(), second.Bytes())
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		assert.Less(t, result(t, first, key, wasmtypes.Uint64Codec), uint64(1000))
	}
}

func TestUnsupportedFunctionAborts(t *testing.T) {
	chain, _ := newTestChain(t)
	deployCounter(t, chain, 0)

	_, err := chain.Run(&solo.Request{Contract: hCounter, Function: solo.HashName("bls")})
	var abort *sandbox.Abort
	require.ErrorAs(t, err, &abort)
	assert.Contains(t, abort.Message, solo.ErrUnsupported.Error())
}

func TestNestedViewCall(t *testing.T) {
	chain, _ := newTestChain(t)
	deployCounter(t, chain, 11)

	res, err := chain.Run(&solo.Request{Contract: hCounter, Function: solo.HashName("peek")})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), result(t, res, "seen", wasmtypes.Uint64Codec))
}

func TestEd25519Verify(t *testing.T) {
	chain, _ := newTestChain(t)
	deployCounter(t, chain, 0)

	pubKey, privKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	data := []byte("transfer 10 to bob")
	sig := ed25519.Sign(privKey, data)

	verify := func(data []byte) bool {
		params := sandbox.NewScDict()
		require.NoError(t, setResult(params, "data", wasmtypes.BytesCodec, data))
		require.NoError(t, setResult(params, "pubKey", wasmtypes.BytesCodec, []byte(pubKey)))
		require.NoError(t, setResult(params, "sig", wasmtypes.BytesCodec, sig))
		res, err := chain.CallView(hCounter, solo.HashName("verify"), params)
		require.NoError(t, err)
		return result(t, res, "valid", wasmtypes.BoolCodec)
	}

	assert.True(t, verify(data))
	assert.False(t, verify([]byte("transfer 99 to bob")))
}
