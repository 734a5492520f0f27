package gcd

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/coinbase/cb-gcd-go/internal/bindings"
	"github.com/coinbase/cb-gcd-go/pkg/gcd/logging"
)

// KernelMode selects which word kernel an Engine uses.
type KernelMode string

const (
	// KernelAuto uses the native kernel when it is built and passes its
	// startup self-test, and the arithmetic kernel otherwise.
	KernelAuto KernelMode = "auto"
	// KernelNative requires the native kernel; New fails without it.
	KernelNative KernelMode = "native"
	// KernelArithmetic always uses the pure Go kernel.
	KernelArithmetic KernelMode = "arithmetic"
)

// Config holds the tuning knobs of an Engine. Zero fields take the value from
// DefaultConfig, so Config{} is a valid configuration. The thresholds only
// affect speed: every valid Config produces the same results.
type Config struct {
	// HalfGCDThreshold is the bit length of the smaller operand above which
	// the half-GCD reduction runs.
	HalfGCDThreshold int `toml:"half_gcd_threshold"`

	// HalfGCDBase is the prefix size in bits at or below which a half-GCD
	// call is answered by a single word step.
	HalfGCDBase int `toml:"half_gcd_base"`

	// HalfGCDGuard is the number of extra bits kept between the entries of
	// the accumulated matrix and the prefix handed to a recursive call.
	HalfGCDGuard int `toml:"half_gcd_guard"`

	// HalfGCDStop ends a half-GCD call once the first operand has shrunk to
	// this fraction of its starting bit length.
	HalfGCDStop float64 `toml:"half_gcd_stop"`

	// LehmerThreshold is the bit length of the smaller operand above which
	// the word-windowed Lehmer loop runs.
	LehmerThreshold int `toml:"lehmer_threshold"`

	// LehmerRounds bounds how often the word step refines its window with
	// fresh low bits. Zero means until the low words are used up.
	LehmerRounds int `toml:"lehmer_rounds"`

	// KernelMode selects the word kernel.
	KernelMode KernelMode `toml:"kernel"`

	// Watermarks lists operand bit lengths beyond which a warning is logged
	// once per engine. A nil slice takes the default; an empty one disables
	// the warnings.
	Watermarks []int `toml:"watermarks"`

	// Kernel overrides KernelMode with a caller supplied word kernel.
	Kernel Kernel `toml:"-"`

	// Logger receives engine diagnostics. Nil binds to slog.Default().
	Logger logging.Logger `toml:"-"`
}

// DefaultConfig returns the configuration used by the package level helpers.
func DefaultConfig() Config {
	return Config{
		HalfGCDThreshold: 4096,
		HalfGCDBase:      512,
		HalfGCDGuard:     64,
		HalfGCDStop:      0.6667,
		LehmerThreshold:  96,
		LehmerRounds:     0,
		KernelMode:       KernelAuto,
		Watermarks:       []int{1 << 24},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HalfGCDThreshold == 0 {
		c.HalfGCDThreshold = d.HalfGCDThreshold
	}
	if c.HalfGCDBase == 0 {
		c.HalfGCDBase = d.HalfGCDBase
	}
	if c.HalfGCDGuard == 0 {
		c.HalfGCDGuard = d.HalfGCDGuard
	}
	if c.HalfGCDStop == 0 {
		c.HalfGCDStop = d.HalfGCDStop
	}
	if c.LehmerThreshold == 0 {
		c.LehmerThreshold = d.LehmerThreshold
	}
	if c.KernelMode == "" {
		c.KernelMode = d.KernelMode
	}
	if c.Watermarks == nil {
		c.Watermarks = d.Watermarks
	}
	if c.Logger == nil {
		c.Logger = logging.New(nil)
	}
	return c
}

// Validate reports whether the configuration can drive an Engine. Zero fields
// are checked after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	var problems []string
	if c.HalfGCDBase < WindowBits {
		problems = append(problems, fmt.Sprintf("half_gcd_base %d below window size %d", c.HalfGCDBase, WindowBits))
	}
	if c.HalfGCDThreshold <= c.HalfGCDBase {
		problems = append(problems, fmt.Sprintf("half_gcd_threshold %d not above half_gcd_base %d", c.HalfGCDThreshold, c.HalfGCDBase))
	}
	if c.HalfGCDGuard < 1 || c.HalfGCDGuard >= c.HalfGCDBase {
		problems = append(problems, fmt.Sprintf("half_gcd_guard %d outside [1, half_gcd_base)", c.HalfGCDGuard))
	}
	if c.HalfGCDStop <= 0.5 || c.HalfGCDStop >= 1 {
		problems = append(problems, fmt.Sprintf("half_gcd_stop %g outside (0.5, 1)", c.HalfGCDStop))
	}
	if c.LehmerThreshold < WordBits {
		problems = append(problems, fmt.Sprintf("lehmer_threshold %d below word size %d", c.LehmerThreshold, WordBits))
	}
	if c.LehmerRounds < 0 {
		problems = append(problems, fmt.Sprintf("lehmer_rounds %d is negative", c.LehmerRounds))
	}
	switch c.KernelMode {
	case KernelAuto, KernelNative, KernelArithmetic:
	default:
		problems = append(problems, fmt.Sprintf("unknown kernel %q", c.KernelMode))
	}
	for _, w := range c.Watermarks {
		if w <= 0 {
			problems = append(problems, fmt.Sprintf("watermark %d is not positive", w))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// LoadConfig reads a TOML tuning file on top of DefaultConfig. Unknown keys
// are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) toBindings() bindings.Config {
	return bindings.Config{Rounds: c.LehmerRounds}
}
