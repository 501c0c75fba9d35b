package library

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/libpanel/pkg/errors"
)

// Decode reads one library record from r.
//
// A record must carry an npm package identifier; everything else is optional.
func Decode(r io.Reader) (*Library, error) {
	var lib Library
	if err := json.NewDecoder(r).Decode(&lib); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode library record")
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// DecodeFile reads a library record from path. The path "-" reads stdin.
func DecodeFile(path string) (*Library, error) {
	if path == "" || path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open library record %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks the identity fields of the record.
func (l *Library) Validate() error {
	if l.NpmPkg == "" {
		return errors.New(errors.ErrCodeInvalidInput, "library record has no npmPkg")
	}
	return errors.ValidatePackageName(l.NpmPkg)
}
