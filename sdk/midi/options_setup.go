package midi

import (
	"github.com/leandrodaf/midicodec/internal/logger"
	"github.com/leandrodaf/midicodec/sdk/contracts"
)

// applyDefaultOptions seeds a CodecOptions with sane defaults and then
// folds opts on top, so an explicit Option always wins over a default.
func applyDefaultOptions(opts ...contracts.Option) contracts.CodecOptions {
	options := &contracts.CodecOptions{
		LogLevel:         contracts.InfoLevel,
		UseRunningStatus: true,
		RecursiveParse:   true,
		SysExCapacity:    contracts.SysExCapacityDefault,
		MaxThruSinks:     contracts.MaxThruSinksDefault,
		InputChannel:     contracts.ChannelOmni,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options
}
