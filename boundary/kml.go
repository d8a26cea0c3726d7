package boundary

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/insartools/sarcut"
)

type linearRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type polygon struct {
	Outer *linearRing `xml:"outerBoundaryIs"`
}

type placemark struct {
	Name          string     `xml:"name"`
	Polygon       *polygon   `xml:"Polygon"`
	MultiPolygons []*polygon `xml:"MultiGeometry>Polygon"`
}

// outer returns the first polygon outer ring of the placemark
func (p *placemark) outer() *linearRing {
	if p.Polygon != nil {
		return p.Polygon.Outer
	}
	for _, mp := range p.MultiPolygons {
		if mp.Outer != nil {
			return mp.Outer
		}
	}
	return nil
}

// DecodeKML reads every Placemark of a KML document, wherever it is nested,
// and returns one region per placemark named "<name>-<index>"
func DecodeKML(r io.Reader) (sarcut.RegionSet, error) {
	dec := xml.NewDecoder(r)

	var rs sarcut.RegionSet
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrParse, err.Error())
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}

		var pm placemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, errors.Wrap(ErrParse, err.Error())
		}

		id := uint32(len(rs))
		name := strings.TrimSpace(pm.Name)
		if name == "" {
			name = "Placemark"
		}
		name = name + "-" + strconv.Itoa(int(id))

		lr := pm.outer()
		if lr == nil {
			return nil, errors.Wrapf(ErrParse, "placemark %s has no polygon outer boundary", name)
		}

		coords, err := parseCoordinates(lr.Coordinates)
		if err != nil {
			return nil, errors.Wrapf(err, "placemark %s", name)
		}

		region, err := sarcut.NewRegion(id, name, coords)
		if err != nil {
			return nil, errors.Wrapf(ErrParse, "placemark %s: %v", name, err)
		}
		rs = append(rs, region)
	}

	if len(rs) == 0 {
		return nil, errors.Wrap(ErrParse, "no placemark found")
	}

	return rs, nil
}

// parseCoordinates reads a KML coordinates list "lng,lat[,alt] lng,lat[,alt] ..."
// altitude is ignored
func parseCoordinates(s string) ([]float64, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, errors.Wrap(ErrParse, "empty coordinates")
	}

	coords := make([]float64, 0, 2*len(tokens))
	for _, tok := range tokens {
		fields := strings.Split(tok, ",")
		if len(fields) < 2 {
			return nil, errors.Wrapf(ErrParse, "invalid coordinate %q", tok)
		}
		for _, f := range fields[:2] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrParse, "invalid coordinate %q", tok)
			}
			coords = append(coords, v)
		}
	}
	return coords, nil
}
