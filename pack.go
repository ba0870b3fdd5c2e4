package resman

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/resman/internal/chunk"
	"github.com/meigma/resman/internal/platform"
	"github.com/meigma/resman/internal/write"
)

// PackedFile describes one file written to a package.
type PackedFile struct {
	// Path is the file path relative to the packed directory, in platform form.
	Path string

	// Size is the content length in bytes.
	Size uint64

	// Digest is the sha256 digest of the content.
	Digest digest.Digest
}

// PackResult summarizes a successful Pack.
type PackResult struct {
	// Output is the package file that was written.
	Output string

	// Files lists the packed files in the order they were written.
	Files []PackedFile

	// Bytes is the total content size of all packed files.
	Bytes uint64
}

// Pack writes every eligible file under dir to a package file.
//
// A file is packed when it is a regular file (symbolic links are not
// followed), its owner-execute bit is clear, its extension is not excluded,
// and no PackWithSkip predicate matches it. The package file itself is never
// packed. Paths are recorded relative to dir using the platform separator.
// Files are written in walk order; callers must not depend on chunk order.
//
// Pack fails with ErrInvalidRoot when dir is missing or not a directory, and
// with ErrIO when the package cannot be created or a source file cannot be
// read. On failure the partially written package is left on disk.
//
// The context can be used for cancellation of long-running packs.
func Pack(ctx context.Context, dir string, opts ...PackOption) (*PackResult, error) {
	cfg := packConfig{output: DefaultPackageName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.excludedSet {
		cfg.excluded = write.DefaultExcludedExtensions
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, dir)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, dir, err)
	}
	defer root.Close()

	p := &packer{cfg: cfg, logger: cfg.logger}
	p.log().Info("packing directory", "dir", dir, "output", cfg.output)

	out, err := os.Create(cfg.output)
	if err != nil {
		return nil, fmt.Errorf("%w: create package: %w", ErrIO, err)
	}
	if cfg.onCreate != nil {
		cfg.onCreate(cfg.output)
	}
	if outInfo, statErr := out.Stat(); statErr == nil {
		p.outInfo = outInfo
	}

	bw := bufio.NewWriter(out)
	res := &PackResult{Output: cfg.output}
	walkErr := p.writeFiles(ctx, root, chunk.NewWriter(bw), res)
	flushErr := bw.Flush()
	closeErr := out.Close()
	if walkErr != nil {
		return nil, walkErr
	}
	if err := errors.Join(flushErr, closeErr); err != nil {
		return nil, fmt.Errorf("%w: write package: %w", ErrIO, err)
	}

	p.log().Debug("package written", "file_count", len(res.Files), "data_size", res.Bytes)
	return res, nil
}

// packer holds state for one Pack call.
type packer struct {
	cfg     packConfig
	logger  *slog.Logger
	outInfo fs.FileInfo
}

// log returns the logger, falling back to a discard logger if nil.
func (p *packer) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// reportProgress sends a progress event if a callback is configured.
func (p *packer) reportProgress(stage ProgressStage, path string, bytesDone uint64, filesDone int) {
	if p.cfg.progress == nil {
		return
	}
	p.cfg.progress(ProgressEvent{
		Stage:     stage,
		Path:      path,
		BytesDone: bytesDone,
		FilesDone: filesDone,
	})
}

// writeFiles walks the directory tree and writes each eligible file as a chunk.
func (p *packer) writeFiles(ctx context.Context, root *os.Root, cw *chunk.Writer, res *PackResult) error {
	maxFiles := p.cfg.maxFiles
	if maxFiles == 0 {
		maxFiles = DefaultMaxFiles
	}
	skips := append([]SkipFunc{write.ExcludeExtensions(p.cfg.excluded...)}, p.cfg.skip...)

	p.reportProgress(StageEnumerating, "", 0, 0)

	return fs.WalkDir(root.FS(), ".", func(path string, d fs.DirEntry, walkErr error) error {
		file, skip, err := p.processEntry(ctx, root, cw, skips, path, d, walkErr, maxFiles, len(res.Files))
		if err != nil || skip {
			return err
		}
		res.Files = append(res.Files, file)
		res.Bytes += file.Size
		p.reportProgress(StagePacking, file.Path, res.Bytes, len(res.Files))
		return nil
	})
}

// processEntry handles a single directory entry during packing.
//
//nolint:gocritic // unnamedResult is acceptable for this internal helper
func (p *packer) processEntry(ctx context.Context, root *os.Root, cw *chunk.Writer, skips []SkipFunc, path string, d fs.DirEntry, walkErr error, maxFiles, count int) (PackedFile, bool, error) {
	if walkErr != nil {
		return PackedFile{}, false, fmt.Errorf("%w: walk %s: %w", ErrIO, path, walkErr)
	}
	if err := ctx.Err(); err != nil {
		return PackedFile{}, false, err
	}
	if d.IsDir() {
		return PackedFile{}, true, nil
	}

	fsPath := filepath.FromSlash(path)
	info, ok, err := write.ResolveEntryInfo(root, fsPath, d)
	if err != nil {
		return PackedFile{}, false, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	if !ok {
		p.log().Debug("skipped non-regular file", "path", path)
		return PackedFile{}, true, nil
	}
	if !p.include(fsPath, info, skips) {
		return PackedFile{}, true, nil
	}

	if maxFiles > 0 && count >= maxFiles {
		return PackedFile{}, false, ErrTooManyFiles
	}

	file, err := p.writeEntry(ctx, root, cw, fsPath)
	if err != nil {
		if errors.Is(err, platform.ErrSymlink) {
			p.log().Debug("skipped symlink", "path", path)
			return PackedFile{}, true, nil
		}
		return PackedFile{}, false, err
	}
	return file, false, nil
}

// include applies the packing filters to a regular file.
func (p *packer) include(fsPath string, info fs.FileInfo, skips []SkipFunc) bool {
	switch {
	case platform.OwnerExecutable(info):
		p.log().Debug("skipped executable", "path", fsPath)
		return false
	case write.ShouldSkip(fsPath, info, skips):
		p.log().Debug("skipped excluded file", "path", fsPath)
		return false
	case p.outInfo != nil && os.SameFile(info, p.outInfo):
		return false
	case strings.IndexByte(fsPath, chunk.PathTerminator) >= 0:
		p.log().Warn("skipped file with newline in path", "path", fsPath)
		return false
	}
	return true
}

// writeEntry writes a single file's content as one chunk and returns its metadata.
func (p *packer) writeEntry(ctx context.Context, root *os.Root, cw *chunk.Writer, fsPath string) (PackedFile, error) {
	f, err := platform.OpenFileNoFollow(root, fsPath)
	if err != nil {
		if errors.Is(err, platform.ErrSymlink) {
			return PackedFile{}, err
		}
		return PackedFile{}, fmt.Errorf("%w: open %s: %w", ErrIO, fsPath, err)
	}
	defer f.Close()

	finfo, err := f.Stat()
	if err != nil {
		return PackedFile{}, fmt.Errorf("%w: stat %s: %w", ErrIO, fsPath, err)
	}
	if !finfo.Mode().IsRegular() {
		return PackedFile{}, fmt.Errorf("%w: not a regular file: %s", ErrIO, fsPath)
	}

	size, dgst, err := write.File(ctx, f, cw, fsPath, finfo.Size())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return PackedFile{}, ctxErr
		}
		return PackedFile{}, fmt.Errorf("%w: write %s: %w", ErrIO, fsPath, err)
	}
	return PackedFile{Path: fsPath, Size: size, Digest: dgst}, nil
}
