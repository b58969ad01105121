package converter

import (
	"os"

	"gopkg.in/yaml.v2"
)

// LoadOptionFile reads converter options from a YAML file.
func LoadOptionFile(confpath string) (*GLTFToSceneOption, error) {
	data, err := os.ReadFile(confpath)
	if err != nil {
		return nil, err
	}
	var opt GLTFToSceneOption
	err = yaml.Unmarshal(data, &opt)
	if err != nil {
		return nil, err
	}
	return &opt, nil
}
