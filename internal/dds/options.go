package dds

// Flags controls DDS encode/decode behavior beyond the literal wire format.
type Flags uint32

const (
	// FlagForceDX10Ext always writes the DXT10 extension header, even for a
	// format the legacy table could express on its own.
	FlagForceDX10Ext Flags = 1 << iota
	// FlagForceDX10ExtMisc2 always writes the DXT10 extension header, like
	// FlagForceDX10Ext.
	FlagForceDX10ExtMisc2
	// FlagForceDX9Legacy refuses to write a DXT10 extension, failing encode
	// if the format has no legacy table entry.
	FlagForceDX9Legacy
	// FlagForce24BPPRGB prefers the 24-bit R8G8B8 legacy template over a
	// 32-bit one when both could describe the same format.
	FlagForce24BPPRGB
	// FlagAllowLargeFiles is not consulted by EncodeHeader or Save;
	// DecodeHeader's sanity limits on dimension, mip count, array size, and
	// depth are lifted by Options.AllowLargeFiles instead.
	FlagAllowLargeFiles
)
