package config

import "github.com/pkg/errors"

const (
	defaultBech32Prefix = "smr"
	defaultDustAmount   = 50
)

// HostConfig holds the chain context a local host reports to contracts. Ids
// are kept in their string forms and parsed by the host.
type HostConfig struct {
	// bech32 chain id, a zero chain id when empty
	ChainID string `yaml:"chainId"`
	// agent id string of the chain owner, the nil agent when empty
	ChainOwner   string `yaml:"chainOwner"`
	Bech32Prefix string `yaml:"bech32Prefix"`
	// hex seed for the deterministic entropy chain
	EntropySeed string `yaml:"entropySeed"`
	// base tokens reserved as storage deposit per output
	DustAmount uint64 `yaml:"dustAmount"`
	// fixed block time in unix nanoseconds, the wall clock when zero
	Timestamp uint64 `yaml:"timestamp"`
}

// WithDefaults returns a copy of the HostConfig with any missing fields set to
// their default values.
func (c HostConfig) WithDefaults() HostConfig {
	cpy := c
	if cpy.Bech32Prefix == "" {
		cpy.Bech32Prefix = defaultBech32Prefix
	}
	if cpy.DustAmount == 0 {
		cpy.DustAmount = defaultDustAmount
	}
	return cpy
}

func (c HostConfig) Validate() error {
	if c.Bech32Prefix == "" {
		return errors.New("bech32 prefix required")
	}
	for _, r := range c.Bech32Prefix {
		if r < 33 || r > 126 || (r >= 'A' && r <= 'Z') {
			return errors.Errorf("invalid bech32 prefix %q", c.Bech32Prefix)
		}
	}
	return nil
}
