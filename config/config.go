package config

import (
	"time"
)

// Config holds all of the node's runtime-configurable parameters, populated
// from the command line and/or a config file via go-flags struct tags.
// Within this module only TestNet, RegNet, Minting, StakeTimeIO,
// BlockMaxWeight, BlockMinTxFee and BlockPrioritySize are read; the other
// fields are parsed but no package reads them, and PrivNet selects no
// network of its own (the node then runs on mainnet).
type Config struct {
	HomeDir       string `short:"A" long:"appdata" description:"Path to application home directory"`
	ShowVersion   bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile    string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir       string `short:"b" long:"datadir" description:"Directory to store the block index and chain state"`
	LogDir        string `long:"logdir" description:"Directory to log output."`
	NoFileLogging bool   `long:"nofilelogging" description:"Disable file logging."`
	DebugLevel    string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`

	TestNet bool `long:"testnet" description:"Use the test network"`
	RegNet  bool `long:"regnet" description:"Use the regression test network"`
	PrivNet bool `long:"privnet" description:"Use the private network"`

	DisableCheckpoints bool `long:"nocheckpoints" description:"Disable built-in stake-modifier checkpoints. Don't do this unless you know what you're doing."`

	// VBParams overrides the start/expire/perform time of a named
	// consensus deployment, e.g. "segwit:1230768000:1230768000:0".
	VBParams []string `long:"vbparams" description:"Override the parameters for a consensus deployment"`

	// SegwitHeight, when non-zero, forces segregated-witness-style
	// signature-size accounting to activate at the given height instead
	// of the value baked into the selected network's parameters.
	SegwitHeight int64 `long:"segwitheight" description:"Override the block height segwit-style sigop accounting activates at"`

	// Minting controls the block assembler and minter loop.
	Minting        bool   `long:"minting" description:"Enable the minter loop to assemble and submit proof-of-stake blocks"`
	Staking        bool   `long:"staking" description:"Search for a kernel hash over owned, mature outputs while minting is enabled"`
	StakingAddrs   []string `long:"stakingaddr" description:"Restrict kernel search to outputs paid to the given addresses; empty means all owned outputs"`
	StakeTimeIO    int    `long:"staketimio" description:"Base milliseconds to wait between kernel search attempts while no block has been found"`
	MinerAddrs     []string `long:"mineraddr" description:"Payout addresses for coinbase/coinstake reward splits"`

	// Block template policy.
	BlockMaxWeight uint32 `long:"blockmaxweight" description:"Maximum weight of a block assembled for minting"`
	BlockMinTxFee  int64  `long:"blockmintxfee" description:"Minimum fee in atoms/kB for a transaction to be considered for inclusion"`
	BlockPrioritySize uint32 `long:"blockprioritysize" description:"Size in bytes reserved for high-priority/low-fee transactions when assembling a block"`

	// Diagnostics.
	PrintStakeModifier bool `long:"printstakemodifier" description:"Log the stake modifier computed for each new block"`
	PrintCoinstake     bool `long:"printcoinstake" description:"Log the coinstake transaction constructed for each minted block"`
	PrintPriority      bool `long:"printpriority" description:"Log the package-selection priority order during block assembly"`

	Debug bool `long:"debug" description:"Enable verbose consensus-rule tracing"`

	// BanDuration is retained for nodes embedding a peer layer above this
	// package; the kernel itself does not enforce it.
	BanDuration time.Duration `long:"banduration" description:"How long to ban misbehaving peers. Valid time units are {s, m, h}."`
}
