// Package sandbox is the contract side of the host boundary. Every operation
// is a single numbered host call carrying flat or streaming encoded bytes.
package sandbox

// Host executes numbered sandbox functions and gives access to the calling
// contract's state partition.
type Host interface {
	Sandbox(funcNr int32, params []byte) ([]byte, error)
	StateDelete(key []byte) error
	StateExists(key []byte) (bool, error)
	StateGet(key []byte) ([]byte, error)
	StateSet(key []byte, value []byte) error
}

// Host function numbers. The numbering is part of the wire contract with the
// host and never changes.
const (
	FnAccountID           = int32(-1)
	FnAllowance           = int32(-2)
	FnBalance             = int32(-3)
	FnBalances            = int32(-4)
	FnBlockContext        = int32(-5)
	FnCall                = int32(-6)
	FnCaller              = int32(-7)
	FnChainID             = int32(-8)
	FnChainOwnerID        = int32(-9)
	FnContract            = int32(-10)
	FnDeployContract      = int32(-11)
	FnEntropy             = int32(-12)
	FnEstimateDust        = int32(-13)
	FnEvent               = int32(-14)
	FnLog                 = int32(-15)
	FnMinted              = int32(-16)
	FnPanic               = int32(-17)
	FnParams              = int32(-18)
	FnPost                = int32(-19)
	FnRequest             = int32(-20)
	FnRequestID           = int32(-21)
	FnResults             = int32(-22)
	FnSend                = int32(-23)
	FnStateAnchor         = int32(-24)
	FnTimestamp           = int32(-25)
	FnTrace               = int32(-26)
	FnTransferAllowed     = int32(-27)
	FnUtilsBech32Decode   = int32(-28)
	FnUtilsBech32Encode   = int32(-29)
	FnUtilsBlsAddress     = int32(-30)
	FnUtilsBlsAggregate   = int32(-31)
	FnUtilsBlsValid       = int32(-32)
	FnUtilsEd25519Address = int32(-33)
	FnUtilsEd25519Valid   = int32(-34)
	FnUtilsHashBlake2b    = int32(-35)
	FnUtilsHashName       = int32(-36)
	FnUtilsHashSha3       = int32(-37)
)

var funcNames = []string{
	"",
	"AccountID",
	"Allowance",
	"Balance",
	"Balances",
	"BlockContext",
	"Call",
	"Caller",
	"ChainID",
	"ChainOwnerID",
	"Contract",
	"DeployContract",
	"Entropy",
	"EstimateDust",
	"Event",
	"Log",
	"Minted",
	"Panic",
	"Params",
	"Post",
	"Request",
	"RequestID",
	"Results",
	"Send",
	"StateAnchor",
	"Timestamp",
	"Trace",
	"TransferAllowed",
	"UtilsBech32Decode",
	"UtilsBech32Encode",
	"UtilsBlsAddress",
	"UtilsBlsAggregate",
	"UtilsBlsValid",
	"UtilsEd25519Address",
	"UtilsEd25519Valid",
	"UtilsHashBlake2b",
	"UtilsHashName",
	"UtilsHashSha3",
}

// FuncName returns the name of a host function number, or "unknown".
func FuncName(funcNr int32) string {
	index := -int(funcNr)
	if index <= 0 || index >= len(funcNames) {
		return "unknown"
	}
	return funcNames[index]
}

// FuncCount is the number of defined host functions.
const FuncCount = 37
