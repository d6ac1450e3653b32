package module

import (
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// DescriptorFile is the per-module descriptor file name, written into the
// module directory at creation time. The module directory owns the
// descriptor; there is no separate database.
const DescriptorFile = "module.yaml"

// Descriptor holds the identity and authorship metadata of one module.
// It is written once at creation; a rename means recreating the module.
type Descriptor struct {
	Identity    string    `yaml:"identity"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Author      string    `yaml:"author,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// NewDescriptor builds a Descriptor for id, filling the name from the
// identity when empty and stamping the creation time.
func NewDescriptor(id, name, description, author string) Descriptor {
	if name == "" {
		name = DefaultName(id)
	}
	return Descriptor{
		Identity:    id,
		Name:        name,
		Description: description,
		Author:      author,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

// MarshalYAML is not customized; Descriptor round-trips through yaml.v3
// with the struct tags above.

// EncodeDescriptor serializes a descriptor to its module.yaml form.
func EncodeDescriptor(d Descriptor) ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("module: encode descriptor for %s: %w", d.Identity, err)
	}
	return out, nil
}

// ReadDescriptor loads the descriptor of a module directory. A missing or
// unparseable file is reported as ErrDescriptorMalformed; modules created
// by older script tooling may legitimately lack one.
func ReadDescriptor(fsys billy.Filesystem, moduleDir string) (Descriptor, error) {
	path := fsys.Join(moduleDir, DescriptorFile)
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: read %s: %v", ErrDescriptorMalformed, path, err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("%w: parse %s: %v", ErrDescriptorMalformed, path, err)
	}
	return d, nil
}
