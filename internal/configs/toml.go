package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file, creating parent directories.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML decodes a TOML file into data. Fields absent from the file keep
// whatever value data already holds.
func LoadTOML(filePath string, data interface{}) error {
	meta, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return &UnknownKeysError{Keys: undecoded}
	}
	return nil
}

// UnknownKeysError reports keys in a TOML file that match no config field.
type UnknownKeysError struct {
	Keys []toml.Key
}

func (e *UnknownKeysError) Error() string {
	msg := "unknown configuration keys:"
	for _, k := range e.Keys {
		msg += " " + k.String()
	}
	return msg
}
