package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// StreamTarget is the path sentinel selecting the standard input or output
// stream instead of a named file.
const StreamTarget = "-"

// LoadUser reads the user configuration tree from path, or from stdin when
// path is the stream sentinel. An empty path, a missing file, or an empty
// document all yield an empty tree; only an unreadable or undecodable
// document is an error (wrapping ErrInvalidInput for decode failures).
func LoadUser(log zerolog.Logger, path string, stdin io.Reader) (Tree, error) {
	if path == "" {
		return Tree{}, nil
	}

	var data []byte
	var err error
	if path == StreamTarget {
		log.Info().Msg(`Loading configuration from "STDIN"`)
		data, err = io.ReadAll(stdin)
	} else {
		log.Info().Msgf("Loading configuration from %q", path)
		data, err = os.ReadFile(path)
		if os.IsNotExist(err) {
			return Tree{}, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var tree Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config %q: %v", ErrInvalidInput, path, err)
	}
	if tree == nil {
		tree = Tree{}
	}
	return tree, nil
}

// FromOverrides builds the command-line override tree. It carries the
// highest precedence in the merge chain; empty overrides produce a tree
// that merges as a no-op.
func FromOverrides(username, password string) Tree {
	login := Tree{}
	if username != "" {
		login["username"] = username
	}
	if password != "" {
		login["password"] = password
	}
	return Tree{
		"aci_config": Tree{
			"apic_login": login,
		},
	}
}
