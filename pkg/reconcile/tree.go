package reconcile

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

const compareChunk = 32 * 1024

// FilesEqual compares two regular files byte for byte, streaming both.
func FilesEqual(filesystem types.FS, a, b string) (bool, error) {
	infoA, err := filesystem.Stat(a)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", a)
	}
	infoB, err := filesystem.Stat(b)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", b)
	}
	if !infoA.Mode().IsRegular() || !infoB.Mode().IsRegular() {
		return false, nil
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fa, err := filesystem.Open(a)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", a)
	}
	defer func() { _ = fa.Close() }()
	fb, err := filesystem.Open(b)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", b)
	}
	defer func() { _ = fb.Close() }()

	ra := bufio.NewReaderSize(fa, compareChunk)
	rb := bufio.NewReaderSize(fb, compareChunk)
	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, errA := io.ReadFull(ra, bufA)
		nb, errB := io.ReadFull(rb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if doneA || doneB {
			return doneA && doneB, nil
		}
		if errA != nil {
			return false, errors.Wrapf(errA, errors.ErrFileAccess, "cannot read %s", a)
		}
		if errB != nil {
			return false, errors.Wrapf(errB, errors.ErrFileAccess, "cannot read %s", b)
		}
	}
}

// DirsShallowEqual compares the immediate contents of two directories: both
// must hold the same names, and regular files present in both must have
// identical content. Subdirectories are compared by name only.
func DirsShallowEqual(filesystem types.FS, a, b string) (bool, error) {
	namesA, err := dirNames(filesystem, a)
	if err != nil {
		return false, err
	}
	namesB, err := dirNames(filesystem, b)
	if err != nil {
		return false, err
	}
	if !slices.Equal(namesA, namesB) {
		return false, nil
	}

	for _, name := range namesA {
		pa, pb := filepath.Join(a, name), filepath.Join(b, name)
		ia, errA := filesystem.Lstat(pa)
		ib, errB := filesystem.Lstat(pb)
		if errA != nil || errB != nil {
			return false, nil
		}
		if ia.Mode().IsRegular() && ib.Mode().IsRegular() {
			equal, err := FilesEqual(filesystem, pa, pb)
			if err != nil || !equal {
				return false, err
			}
		}
	}
	return true, nil
}

// TreesEqual compares two paths recursively: same types, same names at every
// level, identical file content and identical link targets.
func TreesEqual(filesystem types.FS, a, b string) (bool, error) {
	ia, err := filesystem.Lstat(a)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", a)
	}
	ib, err := filesystem.Lstat(b)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", b)
	}

	switch {
	case isSymlink(ia) || isSymlink(ib):
		if !isSymlink(ia) || !isSymlink(ib) {
			return false, nil
		}
		ta, errA := filesystem.Readlink(a)
		tb, errB := filesystem.Readlink(b)
		return errA == nil && errB == nil && ta == tb, nil
	case ia.IsDir() && ib.IsDir():
		namesA, err := dirNames(filesystem, a)
		if err != nil {
			return false, err
		}
		namesB, err := dirNames(filesystem, b)
		if err != nil {
			return false, err
		}
		if !slices.Equal(namesA, namesB) {
			return false, nil
		}
		for _, name := range namesA {
			equal, err := TreesEqual(filesystem, filepath.Join(a, name), filepath.Join(b, name))
			if err != nil || !equal {
				return false, err
			}
		}
		return true, nil
	case ia.Mode().IsRegular() && ib.Mode().IsRegular():
		return FilesEqual(filesystem, a, b)
	default:
		return false, nil
	}
}

// CopyTree copies src (file, directory or symlink) to dst, which must not
// exist. Modes are preserved and symlinks inside directories are recreated
// as links. It returns the number of non-directory entries written.
func CopyTree(filesystem types.FS, src, dst string) (int, error) {
	info, err := filesystem.Lstat(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileNotFound, "cannot read %s", src).WithDetail("path", src)
	}

	switch {
	case isSymlink(info):
		target, err := filesystem.Readlink(src)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", src)
		}
		if err := filesystem.Symlink(target, dst); err != nil {
			return 0, errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", dst)
		}
		return 1, nil

	case info.IsDir():
		if err := filesystem.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
			return 0, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dst)
		}
		entries, err := filesystem.ReadDir(src)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", src)
		}
		count := 0
		for _, e := range entries {
			n, err := CopyTree(filesystem, filepath.Join(src, e.Name()), filepath.Join(dst, e.Name()))
			count += n
			if err != nil {
				return count, err
			}
		}
		if err := filesystem.Chmod(dst, info.Mode().Perm()); err != nil {
			return count, errors.Wrapf(err, errors.ErrPermission, "cannot set mode on %s", dst)
		}
		return count, nil

	case info.Mode().IsRegular():
		return 1, CopyFile(filesystem, src, dst, info.Mode().Perm())

	default:
		return 0, errors.Newf(errors.ErrFileCopy, "cannot copy %s: %s", describe(info), src).WithDetail("path", src)
	}
}

// CopyFile streams a regular file from src to dst with the given mode.
func CopyFile(filesystem types.FS, src, dst string, mode os.FileMode) error {
	in, err := filesystem.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src).WithDetail("path", src)
	}
	defer func() { _ = in.Close() }()

	out, err := filesystem.Create(dst, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dst).WithDetail("path", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst).WithDetail("path", dst)
	}
	// Create does not change the mode of an existing file
	if err := filesystem.Chmod(dst, mode); err != nil {
		return errors.Wrapf(err, errors.ErrPermission, "cannot set mode on %s", dst)
	}
	return nil
}

// ReplaceTree replaces dst wholesale with a copy of src.
func ReplaceTree(filesystem types.FS, src, dst string) (int, error) {
	if info, err := filesystem.Lstat(dst); err == nil {
		if err := removeExisting(filesystem, dst, info, nil); err != nil {
			return 0, err
		}
	}
	if err := ensureParent(filesystem, dst); err != nil {
		return 0, err
	}
	return CopyTree(filesystem, src, dst)
}

func dirNames(filesystem types.FS, dir string) ([]string, error) {
	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", dir)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	slices.Sort(names)
	return names, nil
}
