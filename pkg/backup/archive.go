package backup

import (
	"archive/tar"
	"io"
	"path"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// writeArchive streams the index followed by every record into a
// zstd-compressed tarball.
func (m *Manager) writeArchive(file string, index *Index) (err error) {
	if err := m.fs.MkdirAll(m.root, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", m.root)
	}
	f, err := m.fs.Create(file, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", file)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, errors.ErrFileWrite, "cannot write %s", file)
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot start zstd encoder")
	}
	tw := tar.NewWriter(enc)

	indexData, err := yaml.Marshal(index)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode backup index")
	}
	hdr := &tar.Header{Name: IndexFile, Mode: 0644, Size: int64(len(indexData)), ModTime: index.Created, Typeflag: tar.TypeReg}
	if err := writeEntry(tw, hdr, indexData); err != nil {
		return err
	}

	for _, r := range index.Files {
		name := path.Join(filesDir, r.Path)
		hdr := &tar.Header{Name: name, ModTime: index.Created}
		var data []byte
		switch r.Type {
		case TypeDir:
			hdr.Typeflag = tar.TypeDir
			hdr.Name += "/"
			hdr.Mode = int64(r.FileMode(0755))
		case TypeSymlink:
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = r.Target
			hdr.Mode = 0777
		default:
			if data, err = m.fs.ReadFile(m.homePath(r.Path)); err != nil {
				return errors.Wrapf(err, errors.ErrBackup, "cannot back up %s", r.Path)
			}
			hdr.Typeflag = tar.TypeReg
			hdr.Mode = int64(r.FileMode(0644))
			hdr.Size = int64(len(data))
		}
		if err := writeEntry(tw, hdr, data); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot finish archive")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot finish archive")
	}
	return nil
}

func writeEntry(tw *tar.Writer, hdr *tar.Header, data []byte) error {
	if err := tw.WriteHeader(hdr); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s to archive", hdr.Name)
	}
	if len(data) > 0 {
		if _, err := tw.Write(data); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s to archive", hdr.Name)
		}
	}
	return nil
}

// archiveReader opens a snapshot archive positioned after its index.
type archiveReader struct {
	closer io.Closer
	dec    *zstd.Decoder
	tr     *tar.Reader
	index  *Index
}

func (m *Manager) openArchive(file string) (*archiveReader, error) {
	f, err := m.fs.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", file)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, errors.ErrBackup, "%s is not a zstd archive", file)
	}
	ar := &archiveReader{closer: f, dec: dec, tr: tar.NewReader(dec)}

	hdr, err := ar.tr.Next()
	if err != nil || hdr.Name != IndexFile {
		ar.Close()
		return nil, errors.Newf(errors.ErrBackup, "%s does not start with %s", file, IndexFile)
	}
	data, err := io.ReadAll(ar.tr)
	if err != nil {
		ar.Close()
		return nil, errors.Wrapf(err, errors.ErrBackup, "cannot read index from %s", file)
	}
	if ar.index, err = parseIndex(data, file); err != nil {
		ar.Close()
		return nil, err
	}
	return ar, nil
}

// next returns the following record's header with the files/ prefix removed.
func (ar *archiveReader) next() (*tar.Header, string, error) {
	hdr, err := ar.tr.Next()
	if err != nil {
		return nil, "", err
	}
	rel := strings.TrimSuffix(strings.TrimPrefix(hdr.Name, filesDir+"/"), "/")
	return hdr, rel, nil
}

func (ar *archiveReader) Close() {
	ar.dec.Close()
	_ = ar.closer.Close()
}

func (m *Manager) readArchiveIndex(file string) (*Index, error) {
	ar, err := m.openArchive(file)
	if err != nil {
		return nil, err
	}
	defer ar.Close()
	return ar.index, nil
}
