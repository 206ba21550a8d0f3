package requires

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"
	"os"

	"github.com/altlinux/py3dephell/pkg/errors"
)

// ProbeABI reads the ELF header of a compiled extension module and returns
// the interpreter ABI it needs: "python<version>-ABI" for 32-bit objects and
// "python<version>-ABI(64bit)" for 64-bit ones.
//
// An INVALID_BINARY error is returned for short files, files without the ELF
// magic and unknown ELF classes.
func ProbeABI(path, version string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	var ident [elf.EI_CLASS + 1]byte
	if _, err := io.ReadFull(f, ident[:]); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidBinary, err, "%s: possibly file is empty or broken", path)
	}
	if !bytes.Equal(ident[:elf.EI_CLASS], []byte(elf.ELFMAG)) {
		return "", errors.New(errors.ErrCodeInvalidBinary, "%s: not an ELF file", path)
	}

	switch elf.Class(ident[elf.EI_CLASS]) {
	case elf.ELFCLASS32:
		return fmt.Sprintf("python%s-ABI", version), nil
	case elf.ELFCLASS64:
		return fmt.Sprintf("python%s-ABI(64bit)", version), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidBinary, "%s: wrong ELF class %d", path, ident[elf.EI_CLASS])
	}
}
