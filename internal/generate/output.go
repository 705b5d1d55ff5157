package generate

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/noiro/accprovision/internal/config"
	"github.com/noiro/accprovision/internal/fabric"
)

// WriteManifest renders the deployment manifest and writes it to path, or
// to stdout when path is the stream sentinel.
func WriteManifest(log zerolog.Logger, t config.Tree, path string, stdout io.Writer) error {
	out, err := RenderManifest(t)
	if err != nil {
		return err
	}
	return writeTarget(log, "kubernetes deployment YAML", path, stdout, func(w io.Writer) error {
		_, err := w.Write(out)
		return err
	})
}

// WriteDescriptor writes the fabric provisioning descriptor to path, or to
// stdout when path is the stream sentinel. An empty path skips the write;
// a provisioning run may submit the descriptor without keeping a copy.
func WriteDescriptor(log zerolog.Logger, d fabric.Descriptor, path string, stdout io.Writer) error {
	if path == "" {
		return nil
	}
	return writeTarget(log, "fabric configuration", path, stdout, d.Write)
}

// writeTarget resolves the output target and runs write against it. File
// handles are closed on every path, and a close failure on a freshly
// written file is reported.
func writeTarget(log zerolog.Logger, what, path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == config.StreamTarget {
		log.Info().Msgf("Writing %s to \"STDOUT\"", what)
		return write(stdout)
	}

	log.Info().Msgf("Writing %s to %q", what, path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
