package archive

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"resumerank/constants"
	"resumerank/internal/common"
)

// Extraction is the outcome of unpacking one resume archive: the qualifying
// PDF members copied into a scratch directory owned by this invocation.
type Extraction struct {
	ScratchDir string
	// Members maps each resume's base file name to its extracted path.
	Members map[string]string
	// Skipped lists member names left behind: non-PDF entries, platform
	// metadata, and duplicate base names (first occurrence wins).
	Skipped []string
}

// Close removes the scratch directory and everything in it. Safe to call on a
// zero Extraction and safe to call more than once.
func (x *Extraction) Close() error {
	if x == nil || x.ScratchDir == "" {
		return nil
	}
	dir := x.ScratchDir
	x.ScratchDir = ""
	return os.RemoveAll(dir)
}

// Unpacker validates a ZIP archive and extracts its resume PDFs.
type Unpacker struct {
	log *slog.Logger
}

func NewUnpacker(log *slog.Logger) *Unpacker {
	if log == nil {
		log = slog.Default()
	}
	return &Unpacker{log: log}
}

// Unpack opens the archive at zipPath and extracts every qualifying member
// (".pdf" suffix, not under __MACOSX/) into a fresh scratch directory under
// scratchParent (os.TempDir when empty). Member paths are flattened to base
// names; when two members share a base name the first wins and later ones are
// skipped with a warning.
//
// A file that is not a well-formed ZIP yields common.ErrCorruptArchive; a
// well-formed archive with zero qualifying members yields common.ErrNoPDFFiles.
// On any error the scratch directory has already been removed; on success the
// caller owns the Extraction and must Close it.
func (u *Unpacker) Unpack(ctx context.Context, zipPath, scratchParent string) (*Extraction, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrChecksum) {
			u.log.Warn("archive.unpack.corrupt", "zip", zipPath, "error", err)
			return nil, common.ErrCorruptArchive
		}
		return nil, common.WrapError(err, "open archive")
	}
	defer r.Close()

	scratch, err := os.MkdirTemp(scratchParent, "resumerank-batch-*")
	if err != nil {
		return nil, common.WrapError(err, "create scratch dir")
	}

	x := &Extraction{ScratchDir: scratch, Members: make(map[string]string)}
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			_ = x.Close()
			return nil, err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if !constants.IsResumeMember(f.Name) {
			x.Skipped = append(x.Skipped, f.Name)
			continue
		}

		base := filepath.Base(f.Name)
		if _, dup := x.Members[base]; dup {
			u.log.Warn("archive.unpack.duplicate_member", "zip", zipPath, "member", f.Name)
			x.Skipped = append(x.Skipped, f.Name)
			continue
		}

		dst := filepath.Join(scratch, base)
		if err := copyMember(f, dst); err != nil {
			_ = x.Close()
			if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrAlgorithm) {
				u.log.Warn("archive.unpack.corrupt_member", "zip", zipPath, "member", f.Name, "error", err)
				return nil, common.ErrCorruptArchive
			}
			return nil, common.WrapError(err, "extract member "+f.Name)
		}
		x.Members[base] = dst
	}

	if len(x.Members) == 0 {
		_ = x.Close()
		u.log.Warn("archive.unpack.no_pdfs", "zip", zipPath, "skipped", len(x.Skipped))
		return nil, common.ErrNoPDFFiles
	}

	u.log.Info("archive.unpack.ok",
		"zip", zipPath,
		"members", len(x.Members),
		"skipped", len(x.Skipped),
		"scratch", scratch,
	)
	return x, nil
}

func copyMember(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
