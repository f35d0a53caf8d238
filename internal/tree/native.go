package tree

import (
	"github.com/spf13/cobra"

	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/track"
)

// CobraArtifact is implemented by artifacts backed by a cobra command.
// The builder mounts these directly; artifacts without one get a
// synthesized command.
type CobraArtifact interface {
	plugin.Artifact
	Cobra() *cobra.Command
}

// Describer is implemented by artifacts that carry a one-line
// description, used as the Short text of synthesized group commands.
type Describer interface {
	Describe() string
}

// Command wraps an existing cobra command as a native command
// descriptor valid for the given tracks. With no tracks it is a
// wildcard and must be its module's only descriptor.
func Command(cmd *cobra.Command, tracks ...track.Track) plugin.Descriptor {
	return &nativeCommand{cmd: cmd, tracks: track.NewSet(tracks...)}
}

type nativeCommand struct {
	cmd    *cobra.Command
	tracks track.Set
}

func (n *nativeCommand) Kind() plugin.Kind      { return plugin.KindCommand }
func (n *nativeCommand) ValidTracks() track.Set { return n.tracks }
func (n *nativeCommand) Cobra() *cobra.Command  { return n.cmd }
