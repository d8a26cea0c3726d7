package boundary

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/insartools/sarcut"
)

// LoadKMZ extracts the KML document of a KMZ archive into a temporary file,
// decodes it, then removes the temporary file
func LoadKMZ(kmzPath string) (rs sarcut.RegionSet, err error) {
	zr, err := zip.OpenReader(kmzPath)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	defer zr.Close()

	if len(zr.File) == 0 {
		return nil, errors.Wrap(ErrParse, "empty kmz archive")
	}

	// doc.kml is expected first, take any other kml otherwise
	doc := zr.File[0]
	if !strings.EqualFold(path.Ext(doc.Name), ".kml") {
		for _, f := range zr.File {
			if strings.EqualFold(path.Ext(f.Name), ".kml") {
				doc = f
				break
			}
		}
	}

	tmp, err := os.CreateTemp("", "sarcut-*.kml")
	if err != nil {
		return nil, errors.Wrap(err, "can't create temporary kml")
	}
	defer func() {
		tmp.Close()
		if rerr := os.Remove(tmp.Name()); rerr != nil && err == nil {
			err = errors.Wrap(rerr, "can't remove temporary kml")
		}
	}()

	zf, err := doc.Open()
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	_, err = io.Copy(tmp, zf)
	zf.Close()
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "can't extract %s: %v", doc.Name, err)
	}

	if _, err = tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	return DecodeKML(tmp)
}
