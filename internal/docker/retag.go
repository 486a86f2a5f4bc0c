package docker

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"shipit/internal/executil"
)

// RetagOptions describes a local re-tag of an already-built image.
type RetagOptions struct {
	SourceRef string // existing local ref, e.g. app:dev
	TargetRef string // new ref to apply, e.g. app:1.4.0
	DryRun    bool
}

// RetagImage applies TargetRef as a new tag on the image SourceRef
// points to. The source image must already exist locally; nothing is
// built or pulled here. In dry-run mode the daemon is not contacted.
func RetagImage(ctx context.Context, opts RetagOptions) error {
	if opts.SourceRef == "" || opts.TargetRef == "" {
		return errors.New("both source and target refs are required")
	}

	if opts.DryRun {
		return executil.DryRunCMD("docker", "tag", opts.SourceRef, opts.TargetRef)
	}

	eng, err := NewEngine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	if err := eng.Ping(ctx); err != nil {
		return err
	}

	exists, err := eng.ImageExists(ctx, opts.SourceRef)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Errorf("image %q not found locally; build it first", opts.SourceRef)
	}

	if err := eng.Tag(ctx, opts.SourceRef, opts.TargetRef); err != nil {
		return err
	}

	log.Info().
		Str("source", opts.SourceRef).
		Str("target", opts.TargetRef).
		Msg("re-tagged image")
	return nil
}
