// Package compress measures the compressibility of EFI binaries with the
// external UEFI LzmaCompress tool.
//
// Tool discovery is a pure function of operating system and CPU
// architecture over the BaseTools directory convention; an unsupported
// platform or missing executable is a soft failure, never fatal to any
// caller. Results are advisory reporting only.
package compress
