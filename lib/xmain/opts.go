package xmain

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"
)

// Opts registers flags that an environment variable may preset. A flag given
// on the command line wins over its variable.
type Opts struct {
	Args  []string
	Flags *pflag.FlagSet
	env   *xos.Env
	log   *cmdlog.Logger

	envKeys []string
}

func NewOpts(env *xos.Env, log *cmdlog.Logger, args []string) *Opts {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	return &Opts{
		Args:  args,
		Flags: flags,
		env:   env,
		log:   log,
	}
}

// Parse parses Args. help reports --help, which is not an error.
func (o *Opts) Parse() (help bool, err error) {
	err = o.Flags.Parse(o.Args)
	if errors.Is(err, pflag.ErrHelp) {
		return true, nil
	}
	if err != nil {
		return false, UsageErrorf("failed to parse flags: %v", err)
	}
	return false, nil
}

func (o *Opts) Help() string {
	b := &strings.Builder{}
	o.Flags.SetOutput(b)
	o.Flags.PrintDefaults()
	o.Flags.SetOutput(io.Discard)

	if len(o.envKeys) > 0 {
		b.WriteString("\nEnvironment variables (flags take precedence):\n")
		b.WriteString("  $" + strings.Join(o.envKeys, "\n  $"))
	}
	return b.String()
}

// lookup records envKey for Help and returns its value.
func (o *Opts) lookup(envKey string) (string, bool) {
	if envKey == "" {
		return "", false
	}
	o.envKeys = append(o.envKeys, envKey)
	v := o.env.Getenv(envKey)
	return v, v != ""
}

func invalidEnv(envKey, want, got string) error {
	return UsageErrorf("invalid environment variable %s: expected %s, got %q", envKey, want, got)
}

func (o *Opts) String(envKey, flag, shortFlag string, defaultVal, usage string) *string {
	if v, ok := o.lookup(envKey); ok {
		defaultVal = v
	}
	return o.Flags.StringP(flag, shortFlag, defaultVal, usage)
}

func (o *Opts) Float64(envKey, flag, shortFlag string, defaultVal float64, usage string) (*float64, error) {
	if v, ok := o.lookup(envKey); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, invalidEnv(envKey, "a number", v)
		}
		defaultVal = f
	}
	return o.Flags.Float64P(flag, shortFlag, defaultVal, usage), nil
}

func (o *Opts) Bool(envKey, flag, shortFlag string, defaultVal bool, usage string) (*bool, error) {
	if v, ok := o.lookup(envKey); ok {
		switch v {
		case "1", "true":
			defaultVal = true
		case "0", "false":
			defaultVal = false
		default:
			return nil, invalidEnv(envKey, "a bool", v)
		}
	}
	return o.Flags.BoolP(flag, shortFlag, defaultVal, usage), nil
}

// Warnf reports a recoverable flag problem without failing the command.
func (o *Opts) Warnf(format string, v ...interface{}) {
	if o.log != nil {
		o.log.Warn.Printf(format, v...)
	}
}
